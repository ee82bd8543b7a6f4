package domain

import (
	"slices"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// AllStatuses lists every status in workflow order.
var AllStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusCompleted}

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

// String returns the display string
func (s TaskStatus) String() string {
	return string(s)
}

// TaskPriority is how urgent a task is.
type TaskPriority string

const (
	PriorityNone   TaskPriority = "none"
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// AllPriorities lists every priority from lowest to highest.
var AllPriorities = []TaskPriority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh}

// IsValid reports whether p is a known priority.
func (p TaskPriority) IsValid() bool {
	return slices.Contains(AllPriorities, p)
}

// Rank orders priorities none=0 < low=1 < medium=2 < high=3.
// Unknown values rank as none.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// String returns the display string
func (p TaskPriority) String() string {
	return string(p)
}

// Task is a unit of work. ListID is a weak reference to a UserList: an empty
// value means unassigned, and a non-empty value may point at a list that no
// longer exists.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	Tags        []string
	DueDate     *time.Time
	ListID      string
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCompleted returns true once the task reached the completed status.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// HasTag reports whether the task carries tag. Matching is case-sensitive.
func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// HasDueDate returns true if a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// TaskDraft carries the caller-supplied fields of a new task. Identity,
// position and timestamps are assigned by the repository.
type TaskDraft struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	Tags        []string
	DueDate     *time.Time
	ListID      string
}

// NewTaskDraft creates a draft with the default status and priority.
func NewTaskDraft(title string) TaskDraft {
	return TaskDraft{
		Title:    title,
		Status:   StatusTodo,
		Priority: PriorityNone,
		Tags:     []string{},
	}
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	// Tags replaces the tag list when non-nil; an empty non-nil slice clears it.
	Tags         []string
	DueDate      *time.Time
	ClearDueDate bool
	// ListID reassigns the task; a pointer to "" unassigns it.
	ListID *string
}

// IsEmpty returns true if applying the patch would change no field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Tags == nil && p.DueDate == nil &&
		!p.ClearDueDate && p.ListID == nil
}

// Apply merges the patch over t. Timestamps are not touched.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Tags != nil {
		t.Tags = append([]string{}, p.Tags...)
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.ListID != nil {
		t.ListID = *p.ListID
	}
	return t
}
