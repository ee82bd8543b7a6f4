package services

import (
	"context"
	"fmt"
	"time"

	"task-manager/internal/errors"
)

// memoryStore keeps the saved collection in memory.
type memoryStore[T any] struct {
	items   []T
	saves   int
	saveErr error
}

func (m *memoryStore[T]) Load(ctx context.Context) []T {
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

func (m *memoryStore[T]) Save(ctx context.Context, items []T) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.items = make([]T, len(items))
	copy(m.items, items)
	return nil
}

// fakeClock advances by step on every reading.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), step: time.Second}
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func sequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

var quotaErr = errors.NewQuotaExceededError("task_manager.tasks", 10, 5, nil)
