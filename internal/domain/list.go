package domain

import "time"

// UserList is a user-defined grouping of tasks.
type UserList struct {
	ID          string
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// String returns the list name for display purposes.
func (l UserList) String() string {
	return l.Name
}

// ListDraft carries the caller-supplied fields of a new list.
type ListDraft struct {
	Name        string
	Description string
	Color       string
}

// ListPatch is a partial update. Nil fields are left unchanged.
type ListPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// IsEmpty returns true if applying the patch would change no field.
func (p ListPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Color == nil
}

// Apply merges the patch over l. Timestamps are not touched.
func (p ListPatch) Apply(l UserList) UserList {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
	return l
}
