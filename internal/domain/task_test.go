package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTaskDraft(t *testing.T) {
	draft := NewTaskDraft("Write report")
	assert.Equal(t, "Write report", draft.Title)
	assert.Equal(t, StatusTodo, draft.Status)
	assert.Equal(t, PriorityNone, draft.Priority)
	assert.NotNil(t, draft.Tags)
	assert.Nil(t, draft.DueDate)
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, TaskStatus("done").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}

func TestTaskPriority_Rank(t *testing.T) {
	tests := []struct {
		priority TaskPriority
		rank     int
	}{
		{PriorityNone, 0},
		{PriorityLow, 1},
		{PriorityMedium, 2},
		{PriorityHigh, 3},
		{TaskPriority("urgent"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			assert.Equal(t, tt.rank, tt.priority.Rank())
		})
	}
	assert.False(t, TaskPriority("urgent").IsValid())
}

func TestTask_Helpers(t *testing.T) {
	task := Task{Title: "Ship", Status: StatusCompleted, Tags: []string{"Work"}}
	assert.True(t, task.IsCompleted())
	assert.True(t, task.HasTag("Work"))
	assert.False(t, task.HasTag("work"), "tag match is case-sensitive")
	assert.False(t, task.HasDueDate())
	assert.Equal(t, "Ship", task.String())
}

func TestTaskPatch_Apply(t *testing.T) {
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := Task{
		ID:        "t1",
		Title:     "Old",
		Status:    StatusTodo,
		Priority:  PriorityLow,
		Tags:      []string{"a"},
		DueDate:   &due,
		ListID:    "l1",
		CreatedAt: created,
		UpdatedAt: created,
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		patch := TaskPatch{}
		assert.True(t, patch.IsEmpty())
		assert.Equal(t, base, patch.Apply(base))
	})

	t.Run("sets fields", func(t *testing.T) {
		title := "New"
		status := StatusInProgress
		unassigned := ""
		patch := TaskPatch{Title: &title, Status: &status, Tags: []string{}, ListID: &unassigned}
		assert.False(t, patch.IsEmpty())

		got := patch.Apply(base)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, StatusInProgress, got.Status)
		assert.Equal(t, PriorityLow, got.Priority)
		assert.Empty(t, got.Tags)
		assert.Equal(t, "", got.ListID)
		assert.Equal(t, "t1", got.ID)
		assert.Equal(t, created, got.UpdatedAt)
		assert.Equal(t, []string{"a"}, base.Tags, "original is not mutated")
	})

	t.Run("clears due date", func(t *testing.T) {
		got := TaskPatch{ClearDueDate: true}.Apply(base)
		assert.Nil(t, got.DueDate)
		assert.NotNil(t, base.DueDate)
	})

	t.Run("copies due date", func(t *testing.T) {
		next := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		got := TaskPatch{DueDate: &next}.Apply(base)
		next = next.AddDate(1, 0, 0)
		assert.Equal(t, 2024, got.DueDate.Year())
	})
}

func TestListPatch_Apply(t *testing.T) {
	list := UserList{ID: "l1", Name: "Work", Color: "#ff0000"}

	assert.True(t, ListPatch{}.IsEmpty())

	name := "Home"
	got := ListPatch{Name: &name}.Apply(list)
	assert.Equal(t, "Home", got.Name)
	assert.Equal(t, "#ff0000", got.Color)
	assert.Equal(t, "Home", got.String())
}
