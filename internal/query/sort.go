package query

import (
	"cmp"
	"slices"

	"task-manager/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a stably sorted copy of tasks. SortByNone returns the input
// order. Tasks without a due date always follow dated ones under
// SortByDueDate, whichever direction is requested.
func Sort(tasks []domain.Task, key domain.SortKey, descending bool) []domain.Task {
	result := slices.Clone(tasks)
	if result == nil {
		result = []domain.Task{}
	}
	if key == domain.SortByNone || len(result) < 2 {
		return result
	}

	compare := comparator(key)
	if compare == nil {
		return result
	}

	slices.SortStableFunc(result, func(a, b domain.Task) int {
		if key == domain.SortByDueDate {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			}
		}
		c := compare(a, b)
		if descending {
			return -c
		}
		return c
	})
	return result
}

func comparator(key domain.SortKey) func(a, b domain.Task) int {
	switch key {
	case domain.SortByDueDate:
		return func(a, b domain.Task) int { return a.DueDate.Compare(*b.DueDate) }
	case domain.SortByPriority:
		return func(a, b domain.Task) int { return cmp.Compare(a.Priority.Rank(), b.Priority.Rank()) }
	case domain.SortByCreatedAt:
		return func(a, b domain.Task) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case domain.SortByTitle:
		// Collators keep internal buffers, so each sort gets its own.
		col := collate.New(language.Und, collate.Loose)
		return func(a, b domain.Task) int { return col.CompareString(a.Title, b.Title) }
	case domain.SortByPosition:
		return func(a, b domain.Task) int { return cmp.Compare(a.Position, b.Position) }
	default:
		return nil
	}
}
