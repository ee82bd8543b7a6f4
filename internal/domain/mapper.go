package domain

import (
	"fmt"

	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and persisted Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to its persisted form.
func (m *TaskMapper) ToRecord(task Task) sqlite.TaskRecord {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}
	return sqlite.TaskRecord{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Tags:        tags,
		DueDate:     sqlite.FormatTimePtrForDB(task.DueDate),
		ListID:      task.ListID,
		Position:    task.Position,
		CreatedAt:   sqlite.FormatTimeForDB(task.CreatedAt),
		UpdatedAt:   sqlite.FormatTimeForDB(task.UpdatedAt),
	}
}

// FromRecord converts a persisted task back to the domain model. Records
// missing an id or carrying unparseable timestamps are rejected. An
// unparseable due date is dropped and the rest of the task kept.
func (m *TaskMapper) FromRecord(record sqlite.TaskRecord) (Task, error) {
	if record.ID == "" {
		return Task{}, fmt.Errorf("task record without id")
	}

	createdAt, err := sqlite.ParseTimeFromDB(record.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: createdAt: %w", record.ID, err)
	}
	updatedAt, err := sqlite.ParseTimeFromDB(record.UpdatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: updatedAt: %w", record.ID, err)
	}
	dueDate, err := sqlite.ParseTimePtrFromDB(record.DueDate)
	if err != nil {
		logging.Warnf("task %s: clearing unreadable due date: %v\n", record.ID, err)
		dueDate = nil
	}

	status := TaskStatus(record.Status)
	if status == "" {
		status = StatusTodo
	}
	priority := TaskPriority(record.Priority)
	if priority == "" {
		priority = PriorityNone
	}
	tags := record.Tags
	if tags == nil {
		tags = []string{}
	}

	return Task{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Status:      status,
		Priority:    priority,
		Tags:        tags,
		DueDate:     dueDate,
		ListID:      record.ListID,
		Position:    record.Position,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Codec exposes the mapper to a sqlite.Collection.
func (m *TaskMapper) Codec() sqlite.Codec[Task, sqlite.TaskRecord] {
	return sqlite.Codec[Task, sqlite.TaskRecord]{Encode: m.ToRecord, Decode: m.FromRecord}
}

// ListMapper handles conversion between domain and persisted UserList models.
type ListMapper struct{}

// NewListMapper creates a new ListMapper instance.
func NewListMapper() *ListMapper {
	return &ListMapper{}
}

// ToRecord converts a domain UserList to its persisted form.
func (m *ListMapper) ToRecord(list UserList) sqlite.ListRecord {
	return sqlite.ListRecord{
		ID:          list.ID,
		Name:        list.Name,
		Description: list.Description,
		Color:       list.Color,
		CreatedAt:   sqlite.FormatTimeForDB(list.CreatedAt),
		UpdatedAt:   sqlite.FormatTimeForDB(list.UpdatedAt),
	}
}

// FromRecord converts a persisted list back to the domain model.
func (m *ListMapper) FromRecord(record sqlite.ListRecord) (UserList, error) {
	if record.ID == "" {
		return UserList{}, fmt.Errorf("list record without id")
	}

	createdAt, err := sqlite.ParseTimeFromDB(record.CreatedAt)
	if err != nil {
		return UserList{}, fmt.Errorf("list %s: createdAt: %w", record.ID, err)
	}
	updatedAt, err := sqlite.ParseTimeFromDB(record.UpdatedAt)
	if err != nil {
		return UserList{}, fmt.Errorf("list %s: updatedAt: %w", record.ID, err)
	}

	return UserList{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Color:       record.Color,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Codec exposes the mapper to a sqlite.Collection.
func (m *ListMapper) Codec() sqlite.Codec[UserList, sqlite.ListRecord] {
	return sqlite.Codec[UserList, sqlite.ListRecord]{Encode: m.ToRecord, Decode: m.FromRecord}
}

// Mapper provides access to all entity mappers.
type Mapper struct {
	Task *TaskMapper
	List *ListMapper
}

// NewMapper creates a new Mapper instance with all entity mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
		List: NewListMapper(),
	}
}
