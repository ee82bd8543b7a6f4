package services

import (
	"fmt"
	"time"

	"task-manager/internal/errors"
)

const maxIDAttempts = 16

// nextUpdate returns the updatedAt to stamp after prev. It is strictly later
// than prev even when the clock has not advanced.
func nextUpdate(now, prev time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}

// freshID draws ids until one is not already taken.
func freshID(gen IDGenerator, taken func(string) bool) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := gen()
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", errors.NewDatabaseError("assign id", fmt.Errorf("no unused id after %d attempts", maxIDAttempts))
}
