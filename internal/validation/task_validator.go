package validation

import (
	"strings"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// TaskInput is the raw text a user supplies for a new task.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Tags        string
	DueDate     string
	ListID      string
}

// TaskChanges is the raw text of an edit. Nil fields are left unchanged.
// A pointer to "" clears the due date, tags or list.
type TaskChanges struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Tags        *string
	DueDate     *string
	ListID      *string
}

// TaskValidator turns user input into task drafts and patches
type TaskValidator struct {
	validator *Validator
	// Location is used to interpret due dates. Defaults to time.Local.
	Location *time.Location
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return NewTaskValidatorWithConfig(nil)
}

// NewTaskValidatorWithConfig creates a task validator using cfg limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
		Location:  time.Local,
	}
}

// ValidateTitle checks that a trimmed title is present and short enough
func (tv *TaskValidator) ValidateTitle(title string) (string, error) {
	ve := NewValidationError()
	trimmed := tv.validator.TrimAndValidateString(title)
	tv.checkTitle(ve, trimmed)
	return trimmed, ve.OrNil()
}

func (tv *TaskValidator) checkTitle(ve *ValidationError, title string) {
	if !tv.validator.IsNonEmptyString(title) {
		ve.AddRequiredError("title")
		return
	}
	if max := tv.validator.titleMaxLength(); !tv.validator.IsWithinLength(title, max) {
		ve.AddMaxLengthError("title", title, max)
	}
}

func (tv *TaskValidator) checkTags(ve *ValidationError, raw string) []string {
	tags := tv.validator.ParseTags(raw)
	max := tv.validator.tagMaxLength()
	for _, tag := range tags {
		if !tv.validator.IsWithinLength(tag, max) {
			ve.AddMaxLengthError("tag", tag, max)
		}
	}
	return tags
}

func (tv *TaskValidator) checkDueDate(ve *ValidationError, raw string) *time.Time {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	due, err := tv.validator.ParseDate(raw, tv.Location)
	if err != nil {
		ve.AddInvalidFormatError("due_date", raw, tv.validator.DateLayout())
		return nil
	}
	return &due
}

// ValidateForCreation checks input and builds a draft from it
func (tv *TaskValidator) ValidateForCreation(input TaskInput) (domain.TaskDraft, error) {
	ve := NewValidationError()

	draft := domain.NewTaskDraft(tv.validator.TrimAndValidateString(input.Title))
	tv.checkTitle(ve, draft.Title)
	draft.Description = strings.TrimSpace(input.Description)

	if status, ok := tv.validator.ParseStatus(input.Status, domain.StatusTodo); ok {
		draft.Status = status
	} else {
		ve.AddInvalidValueError("status", input.Status, "must be todo, in-progress or completed")
	}
	if priority, ok := tv.validator.ParsePriority(input.Priority, domain.PriorityNone); ok {
		draft.Priority = priority
	} else {
		ve.AddInvalidValueError("priority", input.Priority, "must be none, low, medium or high")
	}

	draft.Tags = tv.checkTags(ve, input.Tags)
	draft.DueDate = tv.checkDueDate(ve, input.DueDate)
	draft.ListID = strings.TrimSpace(input.ListID)

	if ve.HasErrors() {
		return domain.TaskDraft{}, ve
	}
	return draft, nil
}

// ValidateForUpdate checks changes and builds a patch from them
func (tv *TaskValidator) ValidateForUpdate(changes TaskChanges) (domain.TaskPatch, error) {
	ve := NewValidationError()
	var patch domain.TaskPatch

	if changes.Title != nil {
		title := tv.validator.TrimAndValidateString(*changes.Title)
		tv.checkTitle(ve, title)
		patch.Title = &title
	}
	if changes.Description != nil {
		description := strings.TrimSpace(*changes.Description)
		patch.Description = &description
	}
	if changes.Status != nil {
		status, ok := tv.validator.ParseStatus(*changes.Status, "")
		if !ok || status == "" {
			ve.AddInvalidValueError("status", *changes.Status, "must be todo, in-progress or completed")
		} else {
			patch.Status = &status
		}
	}
	if changes.Priority != nil {
		priority, ok := tv.validator.ParsePriority(*changes.Priority, "")
		if !ok || priority == "" {
			ve.AddInvalidValueError("priority", *changes.Priority, "must be none, low, medium or high")
		} else {
			patch.Priority = &priority
		}
	}
	if changes.Tags != nil {
		patch.Tags = tv.checkTags(ve, *changes.Tags)
	}
	if changes.DueDate != nil {
		if strings.TrimSpace(*changes.DueDate) == "" {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = tv.checkDueDate(ve, *changes.DueDate)
		}
	}
	if changes.ListID != nil {
		listID := strings.TrimSpace(*changes.ListID)
		patch.ListID = &listID
	}

	if ve.HasErrors() {
		return domain.TaskPatch{}, ve
	}
	return patch, nil
}

// ValidateTask checks a fully built task
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	ve := NewValidationError()
	if strings.TrimSpace(task.ID) == "" {
		ve.AddRequiredError("id")
	}
	tv.checkTitle(ve, task.Title)
	if !task.Status.IsValid() {
		ve.AddInvalidValueError("status", task.Status, "unknown status")
	}
	if !task.Priority.IsValid() {
		ve.AddInvalidValueError("priority", task.Priority, "unknown priority")
	}
	if task.UpdatedAt.Before(task.CreatedAt) {
		ve.AddInvalidValueError("updated_at", task.UpdatedAt, "must not be before created_at")
	}
	return ve.OrNil()
}
