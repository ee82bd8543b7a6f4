package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

func strPtr(s string) *string { return &s }

func newUTCTaskValidator() *TaskValidator {
	tv := NewTaskValidator()
	tv.Location = time.UTC
	return tv
}

func TestTaskValidator_ValidateForCreation(t *testing.T) {
	tv := newUTCTaskValidator()

	draft, err := tv.ValidateForCreation(TaskInput{
		Title:    "  Write report ",
		Priority: "high",
		Tags:     "work, q1,",
		DueDate:  "2024-03-15",
		ListID:   " list-1 ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Write report", draft.Title)
	assert.Equal(t, domain.StatusTodo, draft.Status)
	assert.Equal(t, domain.PriorityHigh, draft.Priority)
	assert.Equal(t, []string{"work", "q1"}, draft.Tags)
	require.NotNil(t, draft.DueDate)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *draft.DueDate)
	assert.Equal(t, "list-1", draft.ListID)
}

func TestTaskValidator_ValidateForCreation_CollectsErrors(t *testing.T) {
	tv := newUTCTaskValidator()

	_, err := tv.ValidateForCreation(TaskInput{
		Title:    "   ",
		Status:   "blocked",
		Priority: "urgent",
		DueDate:  "tomorrow",
	})
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, ve.Errors, 4)
	assert.Len(t, ve.GetFieldErrors("title"), 1)
	assert.Equal(t, ErrorTypeInvalidFormat, ve.GetFieldErrors("due_date")[0].Type)
}

func TestTaskValidator_TitleLength(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TitleMaxLength = 5
	tv := NewTaskValidatorWithConfig(cfg)

	_, err := tv.ValidateTitle("abcdef")
	assert.True(t, IsValidationError(err))

	title, err := tv.ValidateTitle(" abcde ")
	require.NoError(t, err)
	assert.Equal(t, "abcde", title)
}

func TestTaskValidator_TagLength(t *testing.T) {
	tv := newUTCTaskValidator()

	_, err := tv.ValidateForCreation(TaskInput{Title: "t", Tags: strings.Repeat("x", 51)})
	assert.True(t, IsValidationError(err))
}

func TestTaskValidator_ValidateForUpdate(t *testing.T) {
	tv := newUTCTaskValidator()

	t.Run("empty changes give an empty patch", func(t *testing.T) {
		patch, err := tv.ValidateForUpdate(TaskChanges{})
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})

	t.Run("blank due date clears it", func(t *testing.T) {
		patch, err := tv.ValidateForUpdate(TaskChanges{DueDate: strPtr("")})
		require.NoError(t, err)
		assert.True(t, patch.ClearDueDate)
		assert.Nil(t, patch.DueDate)
	})

	t.Run("blank tags clear them", func(t *testing.T) {
		patch, err := tv.ValidateForUpdate(TaskChanges{Tags: strPtr("")})
		require.NoError(t, err)
		assert.NotNil(t, patch.Tags)
		assert.Empty(t, patch.Tags)
	})

	t.Run("status and list", func(t *testing.T) {
		patch, err := tv.ValidateForUpdate(TaskChanges{Status: strPtr("done"), ListID: strPtr("")})
		require.NoError(t, err)
		require.NotNil(t, patch.Status)
		assert.Equal(t, domain.StatusCompleted, *patch.Status)
		require.NotNil(t, patch.ListID)
		assert.Equal(t, "", *patch.ListID)
	})

	t.Run("blank status is rejected", func(t *testing.T) {
		_, err := tv.ValidateForUpdate(TaskChanges{Status: strPtr(" ")})
		assert.True(t, IsValidationError(err))
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		_, err := tv.ValidateForUpdate(TaskChanges{Title: strPtr("")})
		assert.True(t, IsValidationError(err))
	})
}

func TestTaskValidator_ValidateTask(t *testing.T) {
	tv := newUTCTaskValidator()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	valid := domain.Task{
		ID:        "t1",
		Title:     "Task",
		Status:    domain.StatusTodo,
		Priority:  domain.PriorityLow,
		CreatedAt: now,
		UpdatedAt: now,
	}
	assert.NoError(t, tv.ValidateTask(valid))

	invalid := valid
	invalid.ID = ""
	invalid.Status = "blocked"
	invalid.UpdatedAt = now.Add(-time.Second)
	err := tv.ValidateTask(invalid)
	require.Error(t, err)
	assert.Len(t, err.(*ValidationError).Errors, 3)
}
