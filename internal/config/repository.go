package config

import (
	"context"
	"fmt"
	"os"

	"task-manager/internal/repository/sqlite"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(ctx context.Context, config *Config) (sqlite.Repository, error) {
	dbPath := config.GetDatabasePath()

	if !sqlite.IsInMemoryPath(dbPath) {
		if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	repo, err := sqlite.NewWithOptions(ctx, dbPath, config.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository(ctx context.Context) (sqlite.Repository, error) {
	repo, err := sqlite.New(ctx, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
