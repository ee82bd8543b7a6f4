package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite/migrations"
)

// DefaultQuotaBytes mirrors the capacity browsers give local storage.
const DefaultQuotaBytes int64 = 5 * 1024 * 1024

// Repository is a string key-value store with a byte quota.
type Repository interface {
	// Get returns the value under key. The bool is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put replaces the value under key.
	Put(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Entries lists every stored key with its value.
	Entries(ctx context.Context) ([]*Entry, error)
	// Usage returns the bytes currently counted against the quota.
	Usage(ctx context.Context) (int64, error)
	// Quota returns the capacity in bytes. Zero means unlimited.
	Quota() int64
	Close() error
}

// Options tunes a SQLiteRepository. Zero values are replaced by defaults.
type Options struct {
	QuotaBytes   int64
	QueryTimeout time.Duration
	WriteTimeout time.Duration
	// Unlimited disables the quota check regardless of QuotaBytes.
	Unlimited bool
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	quota        int64
	queryTimeout time.Duration
	writeTimeout time.Duration
}

// New creates a new SQLite repository instance with default options
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(ctx, dbPath, Options{})
}

// NewWithOptions opens dbPath, runs pending migrations and applies opts.
func NewWithOptions(ctx context.Context, dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	repo := &SQLiteRepository{
		db:           db,
		quota:        opts.QuotaBytes,
		queryTimeout: opts.QueryTimeout,
		writeTimeout: opts.WriteTimeout,
	}
	if repo.quota <= 0 {
		repo.quota = DefaultQuotaBytes
	}
	if opts.Unlimited {
		repo.quota = 0
	}
	if repo.queryTimeout <= 0 {
		repo.queryTimeout = 5 * time.Second
	}
	if repo.writeTimeout <= 0 {
		repo.writeTimeout = 10 * time.Second
	}

	logging.Debugf("opened store %s (quota %d bytes)\n", dbPath, repo.quota)
	return repo, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Quota returns the configured capacity in bytes.
func (r *SQLiteRepository) Quota() int64 {
	return r.quota
}

// Get retrieves the value stored under key
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `
	SELECT key, value, updated_at
	FROM kv_store
	WHERE key = ?`

	entry, err := QuerySingle(ctx, r.db, query, ScanEntry, "key", key, key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Put stores value under key, rejecting writes that would exceed the quota
func (r *SQLiteRepository) Put(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	size := Entry{Key: key, Value: value}.Size()
	if r.quota > 0 {
		used, err := r.usage(ctx, key)
		if err != nil {
			return err
		}
		if used+size > r.quota {
			return errors.NewQuotaExceededError(key, size, r.quota, nil)
		}
	}

	query := `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, key, value, FormatTimeForDB(time.Now())); err != nil {
		return HandleWriteError(ctx, key, size, err)
	}
	return nil
}

// Delete removes key from the store
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return HandleDatabaseError("delete "+key, err)
	}
	return nil
}

// Entries retrieves every stored entry ordered by key
func (r *SQLiteRepository) Entries(ctx context.Context) ([]*Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `
	SELECT key, value, updated_at
	FROM kv_store
	ORDER BY key ASC`

	return QueryMultiple(ctx, r.db, query, ScanEntries, "entries")
}

// Usage returns the bytes used by all stored entries
func (r *SQLiteRepository) Usage(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()
	return r.usage(ctx, "")
}

// usage sums entry sizes, skipping exclude since its value is about to be
// replaced.
func (r *SQLiteRepository) usage(ctx context.Context, exclude string) (int64, error) {
	query := `
	SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
	FROM kv_store
	WHERE key <> ?`

	var used int64
	if err := r.db.QueryRowContext(ctx, query, exclude).Scan(&used); err != nil {
		return 0, HandleDatabaseError("measure usage", err)
	}
	return used, nil
}

// IsInMemoryPath reports whether dbPath names a transient database.
func IsInMemoryPath(dbPath string) bool {
	return dbPath == ":memory:" || strings.HasPrefix(dbPath, "file::memory:")
}
