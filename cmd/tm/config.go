package main

import (
	"context"
	"fmt"
	"os"

	"task-manager/internal/api"
	"task-manager/internal/cli"
	"task-manager/internal/config"
	"task-manager/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// developmentStore is the store used while developing, relative to the
// working directory.
const developmentStore = "tm.db"

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(ctx context.Context, cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		repo, err := sqlite.NewWithOptions(ctx, developmentStore, cfg.StorageOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	case Testing:
		return config.CreateTestRepository(ctx)
	default:
		return config.CreateRepository(ctx, cfg)
	}
}

// AppFactory builds the CLI application on a repository for this environment
func (rf *RepositoryFactory) AppFactory() cli.AppFactory {
	return func(ctx context.Context, cfg *config.Config) (*cli.App, func() error, error) {
		repo, err := rf.CreateRepository(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		businessAPI, err := api.NewBusinessAPI(ctx, repo, cfg)
		if err != nil {
			repo.Close()
			return nil, nil, err
		}
		return cli.NewAppWithConfig(businessAPI, cfg), repo.Close, nil
	}
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("TM_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}
