package query

import (
	"slices"
	"time"

	"task-manager/internal/domain"
)

// DefaultDashboardLimit caps the dashboard task lists.
const DefaultDashboardLimit = 5

// HighPriorityTasks returns up to limit open high-priority tasks. Dated tasks
// come first by due date; undated ones follow, newest first.
func HighPriorityTasks(tasks []domain.Task, limit int) []domain.Task {
	result := make([]domain.Task, 0)
	for _, task := range tasks {
		if task.Priority == domain.PriorityHigh && !task.IsCompleted() {
			result = append(result, task)
		}
	}

	slices.SortStableFunc(result, func(a, b domain.Task) int {
		switch {
		case a.DueDate != nil && b.DueDate != nil:
			return a.DueDate.Compare(*b.DueDate)
		case a.DueDate != nil:
			return -1
		case b.DueDate != nil:
			return 1
		default:
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	})
	return truncate(result, limit)
}

// OverdueTasks returns up to limit open tasks due before now, earliest first.
func OverdueTasks(tasks []domain.Task, now time.Time, limit int) []domain.Task {
	result := make([]domain.Task, 0)
	for _, task := range tasks {
		if task.DueDate != nil && task.DueDate.Before(now) && !task.IsCompleted() {
			result = append(result, task)
		}
	}

	slices.SortStableFunc(result, func(a, b domain.Task) int {
		return a.DueDate.Compare(*b.DueDate)
	})
	return truncate(result, limit)
}

// truncate keeps the first limit tasks; a non-positive limit keeps all.
func truncate(tasks []domain.Task, limit int) []domain.Task {
	if limit > 0 && len(tasks) > limit {
		return tasks[:limit]
	}
	return tasks
}
