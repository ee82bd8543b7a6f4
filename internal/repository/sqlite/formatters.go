package sqlite

import (
	"time"
)

// FormatTimeForDB formats a time.Time value as an RFC3339 string in UTC,
// keeping sub-second precision so instants survive a round trip.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimeForDB(*t)
	return &s
}

// ParseTimeFromDB parses an RFC3339 formatted time string. Fractional
// seconds are optional.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// ParseTimePtrFromDB parses an optional timestamp.
func ParseTimePtrFromDB(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseTimeFromDB(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
