package query

import (
	"slices"

	"task-manager/internal/domain"
)

// TasksInList returns the tasks assigned to listID in manual order.
func TasksInList(tasks []domain.Task, listID string) []domain.Task {
	return Sort(Filter(tasks, domain.TaskFilter{ListID: listID}), domain.SortByPosition, false)
}

// ResolveList looks listID up in lists. A blank or dangling reference
// reports false and is treated as unassigned.
func ResolveList(lists []domain.UserList, listID string) (domain.UserList, bool) {
	if listID == "" {
		return domain.UserList{}, false
	}
	for _, list := range lists {
		if list.ID == listID {
			return list, true
		}
	}
	return domain.UserList{}, false
}

// CountByList counts tasks per resolved list id. Unassigned and dangling
// tasks are counted under "".
func CountByList(tasks []domain.Task, lists []domain.UserList) map[string]int {
	counts := make(map[string]int, len(lists)+1)
	for _, task := range tasks {
		if _, ok := ResolveList(lists, task.ListID); ok {
			counts[task.ListID]++
		} else {
			counts[""]++
		}
	}
	return counts
}

// AvailableTags returns every distinct tag in use, sorted.
func AvailableTags(tasks []domain.Task) []string {
	seen := make(map[string]struct{})
	for _, task := range tasks {
		for _, tag := range task.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
