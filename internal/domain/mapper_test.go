package domain

import (
	"bytes"
	"testing"
	"time"

	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskMapper_RoundTrip(t *testing.T) {
	mapper := NewTaskMapper()
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	task := Task{
		ID:          "t1",
		Title:       "Pay rent",
		Description: "before the 1st",
		Status:      StatusInProgress,
		Priority:    PriorityHigh,
		Tags:        []string{"home", "money"},
		DueDate:     &due,
		ListID:      "l1",
		Position:    3,
		CreatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 3, 2, 9, 0, 0, 1, time.UTC),
	}

	record := mapper.ToRecord(task)
	assert.Equal(t, "in-progress", record.Status)
	assert.Equal(t, "2024-03-02T09:00:00.000000001Z", record.UpdatedAt)
	require.NotNil(t, record.DueDate)
	assert.Equal(t, "2024-03-15T00:00:00Z", *record.DueDate)

	back, err := mapper.FromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, task, back)
}

func TestTaskMapper_Defaults(t *testing.T) {
	mapper := NewTaskMapper()

	record := mapper.ToRecord(Task{ID: "t1"})
	assert.NotNil(t, record.Tags)

	task, err := mapper.FromRecord(sqlite.TaskRecord{
		ID:        "t1",
		Title:     "bare",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, PriorityNone, task.Priority)
	assert.NotNil(t, task.Tags)
	assert.Nil(t, task.DueDate)
}

func TestTaskMapper_RejectsBadRecords(t *testing.T) {
	mapper := NewTaskMapper()
	bad := "31/12/2024"

	tests := []struct {
		name   string
		record sqlite.TaskRecord
	}{
		{"missing id", sqlite.TaskRecord{CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z"}},
		{"bad createdAt", sqlite.TaskRecord{ID: "t", CreatedAt: "x", UpdatedAt: "2024-01-01T00:00:00Z"}},
		{"bad updatedAt", sqlite.TaskRecord{ID: "t", CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapper.FromRecord(tt.record)
			assert.Error(t, err)
		})
	}
}

func TestTaskMapper_DropsUnreadableDueDate(t *testing.T) {
	var logs bytes.Buffer
	prev := logging.SetOutput(&logs)
	defer logging.SetOutput(prev)

	bad := "next tuesday"
	task, err := NewTaskMapper().FromRecord(sqlite.TaskRecord{
		ID:        "t",
		Title:     "kept",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:00:00Z",
		DueDate:   &bad,
	})
	require.NoError(t, err)
	assert.Equal(t, "kept", task.Title)
	assert.Nil(t, task.DueDate)
	assert.Contains(t, logs.String(), "clearing unreadable due date")
}

func TestListMapper_RoundTrip(t *testing.T) {
	mapper := NewMapper().List
	list := UserList{
		ID:        "l1",
		Name:      "Errands",
		Color:     "#3b82f6",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	back, err := mapper.FromRecord(mapper.ToRecord(list))
	require.NoError(t, err)
	assert.Equal(t, list, back)

	_, err = mapper.FromRecord(sqlite.ListRecord{Name: "no id"})
	assert.Error(t, err)
}

func TestCodecs(t *testing.T) {
	m := NewMapper()
	codec := m.Task.Codec()
	record := codec.Encode(Task{ID: "t1", CreatedAt: time.Unix(0, 0).UTC(), UpdatedAt: time.Unix(0, 0).UTC()})
	task, err := codec.Decode(record)
	require.NoError(t, err)
	assert.Equal(t, "t1", task.ID)

	listCodec := m.List.Codec()
	assert.Equal(t, "l1", listCodec.Encode(UserList{ID: "l1"}).ID)
}
