// Package query derives ordered views and aggregates from a task collection.
// Every function is pure: inputs are never modified and no state is kept.
package query

import (
	"slices"
	"strings"

	"task-manager/internal/domain"

	"golang.org/x/text/cases"
)

// FilterAndSort applies the filter stages of f to tasks and then sorts the
// survivors. Stages are ANDed; within a set-valued stage any member matches.
func FilterAndSort(tasks []domain.Task, f domain.TaskFilter) []domain.Task {
	return Sort(Filter(tasks, f), f.SortBy, f.Descending())
}

// Filter returns the tasks that pass every enabled stage of f, in input order.
func Filter(tasks []domain.Task, f domain.TaskFilter) []domain.Task {
	search := newMatcher(f.SearchQuery)

	result := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, task.Status) {
			continue
		}
		if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, task.Priority) {
			continue
		}
		if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, task.HasTag) {
			continue
		}
		if f.ListID != "" && task.ListID != f.ListID {
			continue
		}
		if f.HideCompleted && task.IsCompleted() {
			continue
		}
		if search != nil && !search.matches(task) {
			continue
		}
		result = append(result, task)
	}
	return result
}

// matcher does case-insensitive substring search over title, description
// and tags.
type matcher struct {
	fold  cases.Caser
	query string
}

func newMatcher(query string) *matcher {
	if query == "" {
		return nil
	}
	fold := cases.Fold()
	return &matcher{fold: fold, query: fold.String(query)}
}

func (m *matcher) contains(s string) bool {
	return s != "" && strings.Contains(m.fold.String(s), m.query)
}

func (m *matcher) matches(task domain.Task) bool {
	return m.contains(task.Title) ||
		m.contains(task.Description) ||
		slices.ContainsFunc(task.Tags, m.contains)
}
