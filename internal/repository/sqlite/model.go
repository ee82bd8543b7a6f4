package sqlite

import "time"

// Storage keys for the three independent namespaces.
const (
	TasksKey = "task_manager.tasks"
	ListsKey = "task_manager.lists"
	ThemeKey = "task_manager.theme"
)

// Entry is one row of the key-value table.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Size returns the number of bytes the entry counts against the quota.
func (e Entry) Size() int64 {
	return int64(len(e.Key) + len(e.Value))
}

// TaskRecord is the persisted form of a task. Temporal fields are stored as
// RFC3339 text.
type TaskRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	DueDate     *string  `json:"dueDate,omitempty"`
	ListID      string   `json:"listId,omitempty"`
	Position    int      `json:"position"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ListRecord is the persisted form of a user list.
type ListRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}
