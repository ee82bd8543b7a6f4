package domain

// TaskMetrics aggregates a task set for the dashboard.
type TaskMetrics struct {
	Total          int
	Completed      int
	InProgress     int
	Todo           int
	ByPriority     map[TaskPriority]int
	CompletionRate int // percent, rounded to nearest whole
}
