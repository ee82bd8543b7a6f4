package domain

// SortKey selects the comparator used to order tasks.
type SortKey string

const (
	SortByNone      SortKey = ""
	SortByDueDate   SortKey = "dueDate"
	SortByPriority  SortKey = "priority"
	SortByCreatedAt SortKey = "createdAt"
	SortByTitle     SortKey = "title"
	SortByPosition  SortKey = "position"
)

// SortKeys lists the selectable sort keys.
var SortKeys = []SortKey{SortByDueDate, SortByPriority, SortByCreatedAt, SortByTitle, SortByPosition}

// IsValid reports whether k is a known key. SortByNone is valid.
func (k SortKey) IsValid() bool {
	if k == SortByNone {
		return true
	}
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// SortDirection is ascending unless set to SortDesc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid reports whether d is a known direction. The empty value means ascending.
func (d SortDirection) IsValid() bool {
	return d == "" || d == SortAsc || d == SortDesc
}

// TaskFilter describes which tasks to show and how to order them. Every
// field is optional: an empty set or zero value disables that stage.
type TaskFilter struct {
	Statuses      []TaskStatus
	Priorities    []TaskPriority
	Tags          []string
	SearchQuery   string
	HideCompleted bool
	ListID        string
	SortBy        SortKey
	SortDirection SortDirection
}

// IsActive returns true if any filtering stage is enabled. Sorting alone
// does not make a filter active.
func (f TaskFilter) IsActive() bool {
	return len(f.Statuses) > 0 ||
		len(f.Priorities) > 0 ||
		len(f.Tags) > 0 ||
		f.SearchQuery != "" ||
		f.HideCompleted ||
		f.ListID != ""
}

// Descending reports whether the sort direction is flipped.
func (f TaskFilter) Descending() bool {
	return f.SortDirection == SortDesc
}

// ToggleSort selects key ascending, or flips the direction if key is
// already selected.
func (f *TaskFilter) ToggleSort(key SortKey) {
	if f.SortBy == key {
		if f.SortDirection == SortDesc {
			f.SortDirection = SortAsc
		} else {
			f.SortDirection = SortDesc
		}
		return
	}
	f.SortBy = key
	f.SortDirection = SortAsc
}

// Clone returns a copy that shares no slices with f.
func (f TaskFilter) Clone() TaskFilter {
	out := f
	out.Statuses = append([]TaskStatus(nil), f.Statuses...)
	out.Priorities = append([]TaskPriority(nil), f.Priorities...)
	out.Tags = append([]string(nil), f.Tags...)
	return out
}
