package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator with default limits
func NewValidator() *Validator {
	return &Validator{config: config.NewConfig()}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	if cfg == nil {
		return NewValidator()
	}
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength reports whether s has at most max characters.
func (v *Validator) IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

// IsValidColor accepts "#rgb", "#rrggbb" or an empty hint.
func (v *Validator) IsValidColor(s string) bool {
	return s == "" || colorPattern.MatchString(s)
}

// ParseStatus maps user input onto a status. Blank input yields fallback.
func (v *Validator) ParseStatus(s string, fallback domain.TaskStatus) (domain.TaskStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback, true
	}
	switch s {
	case "inprogress", "in_progress", "doing":
		s = string(domain.StatusInProgress)
	case "done":
		s = string(domain.StatusCompleted)
	}
	status := domain.TaskStatus(s)
	return status, status.IsValid()
}

// ParsePriority maps user input onto a priority. Blank input yields fallback.
func (v *Validator) ParsePriority(s string, fallback domain.TaskPriority) (domain.TaskPriority, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback, true
	}
	priority := domain.TaskPriority(s)
	return priority, priority.IsValid()
}

// ParseTags splits comma-separated tags, trimming each and dropping empty
// entries. Duplicates are kept.
func (v *Validator) ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ParseDate parses a due date with the configured layout in loc.
func (v *Validator) ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(v.DateLayout(), strings.TrimSpace(s), loc)
}

// DateLayout returns the configured date layout.
func (v *Validator) DateLayout() string {
	return v.config.Display.DateLayout
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) titleMaxLength() int {
	return v.config.Validation.TitleMaxLength
}

func (v *Validator) listNameMaxLength() int {
	return v.config.Validation.ListNameMaxLength
}

func (v *Validator) tagMaxLength() int {
	return v.config.Validation.TagMaxLength
}
