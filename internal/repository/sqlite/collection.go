package sqlite

import (
	"context"
	"encoding/json"
	"strings"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// Codec converts between an in-memory value and its persisted record.
type Codec[T any, R any] struct {
	Encode func(T) R
	Decode func(R) (T, error)
}

// Collection persists a whole sequence of values as one JSON array under a
// single key.
type Collection[T any, R any] struct {
	repo  Repository
	key   string
	codec Codec[T, R]
}

// NewCollection binds a collection to key in repo.
func NewCollection[T any, R any](repo Repository, key string, codec Codec[T, R]) *Collection[T, R] {
	return &Collection[T, R]{repo: repo, key: key, codec: codec}
}

// Key returns the storage key backing the collection.
func (c *Collection[T, R]) Key() string {
	return c.key
}

// Load returns the stored sequence. Absent, unreadable or malformed data
// yields an empty sequence; the failure is logged, never returned. Records
// that fail to decode are skipped and the rest are kept.
func (c *Collection[T, R]) Load(ctx context.Context) []T {
	raw, ok, err := c.repo.Get(ctx, c.key)
	if err != nil {
		logging.Warnf("could not read %s: %v\n", c.key, err)
		return []T{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []T{}
	}

	items, err := c.decode(raw)
	if err != nil {
		logging.Warnf("%v\n", errors.NewMalformedDataError(c.key, err))
		return []T{}
	}
	return items
}

// Save replaces the stored sequence with items.
func (c *Collection[T, R]) Save(ctx context.Context, items []T) error {
	records := make([]R, len(items))
	for i, item := range items {
		records[i] = c.codec.Encode(item)
	}

	encoded, err := json.Marshal(records)
	if err != nil {
		return errors.NewDatabaseError("encode "+c.key, err)
	}

	if err := c.repo.Put(ctx, c.key, string(encoded)); err != nil {
		if errors.IsQuotaExceeded(err) {
			logging.Warnf("%s: %v\n", errors.QuotaRemediation, err)
		} else {
			logging.Errorf("could not save %s: %v\n", c.key, err)
		}
		return err
	}
	return nil
}

func (c *Collection[T, R]) decode(raw string) ([]T, error) {
	var records []R
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}

	items := make([]T, 0, len(records))
	for i, record := range records {
		item, err := c.codec.Decode(record)
		if err != nil {
			logging.Warnf("skipping record %d: %v\n", i, errors.NewMalformedDataError(c.key, err))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
