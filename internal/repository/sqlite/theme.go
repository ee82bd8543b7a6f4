package sqlite

import (
	"context"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// DefaultThemeValue is returned when no preference has been stored.
const DefaultThemeValue = "light"

// ThemeStore persists the display theme preference as a bare string.
type ThemeStore struct {
	repo Repository
}

// NewThemeStore creates a theme store backed by repo.
func NewThemeStore(repo Repository) *ThemeStore {
	return &ThemeStore{repo: repo}
}

// Get returns the stored theme, or "light" when unset or unreadable.
func (s *ThemeStore) Get(ctx context.Context) string {
	value, ok, err := s.repo.Get(ctx, ThemeKey)
	if err != nil {
		logging.Warnf("could not read theme: %v\n", err)
		return DefaultThemeValue
	}
	if !ok || value == "" {
		return DefaultThemeValue
	}
	return value
}

// Set stores the theme preference. A full store is logged and otherwise
// ignored; the preference then lasts only for the current session.
func (s *ThemeStore) Set(ctx context.Context, value string) error {
	if err := s.repo.Put(ctx, ThemeKey, value); err != nil {
		if errors.IsQuotaExceeded(err) {
			logging.Warnf("could not save theme: %s\n", errors.QuotaRemediation)
			return nil
		}
		return err
	}
	return nil
}
