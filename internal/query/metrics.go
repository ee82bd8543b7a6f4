package query

import (
	"math"

	"task-manager/internal/domain"
)

// ComputeMetrics counts tasks by status and priority. CompletionRate is the
// rounded percentage of completed tasks, zero for an empty set. Unknown
// statuses count as todo and unknown priorities as none, so the buckets
// always sum to Total.
func ComputeMetrics(tasks []domain.Task) domain.TaskMetrics {
	m := domain.TaskMetrics{
		Total:      len(tasks),
		ByPriority: make(map[domain.TaskPriority]int, len(domain.AllPriorities)),
	}
	for _, p := range domain.AllPriorities {
		m.ByPriority[p] = 0
	}

	for _, task := range tasks {
		switch task.Status {
		case domain.StatusCompleted:
			m.Completed++
		case domain.StatusInProgress:
			m.InProgress++
		default:
			m.Todo++
		}
		if task.Priority.IsValid() {
			m.ByPriority[task.Priority]++
		} else {
			m.ByPriority[domain.PriorityNone]++
		}
	}

	if m.Total > 0 {
		m.CompletionRate = int(math.Round(float64(m.Completed) / float64(m.Total) * 100))
	}
	return m
}
