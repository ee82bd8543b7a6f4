package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"task-manager/internal/repository/sqlite"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the task manager
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Calendar    CalendarConfig    `yaml:"calendar"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	Dir            string        `yaml:"dir" env:"TM_STORAGE_DIR"`
	Filename       string        `yaml:"filename" env:"TM_STORAGE_FILENAME"`
	Quota          ByteSize      `yaml:"quota" env:"TM_STORAGE_QUOTA"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TM_STORAGE_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TM_STORAGE_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TM_STORAGE_DIR_PERMISSIONS"`
}

// CalendarConfig holds calendar projection configuration
type CalendarConfig struct {
	WeekStart   string `yaml:"week_start" env:"TM_CALENDAR_WEEK_START"`
	LabelLayout string `yaml:"label_layout" env:"TM_CALENDAR_LABEL_LAYOUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength    int `yaml:"title_max_length" env:"TM_VALIDATION_TITLE_MAX"`
	ListNameMaxLength int `yaml:"list_name_max_length" env:"TM_VALIDATION_LIST_NAME_MAX"`
	TagMaxLength      int `yaml:"tag_max_length" env:"TM_VALIDATION_TAG_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateLayout     string `yaml:"date_layout" env:"TM_DISPLAY_DATE_LAYOUT"`
	DashboardLimit int    `yaml:"dashboard_limit" env:"TM_DISPLAY_DASHBOARD_LIMIT"`
	NoColor        bool   `yaml:"no_color" env:"TM_DISPLAY_NO_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TM_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TM_APP_VERBOSE"`
}

// ByteSize is a byte count that accepts human-readable sizes such as
// "5MiB" or "512 kB".
type ByteSize int64

// ParseByteSize parses a human-readable size.
func ParseByteSize(s string) (ByteSize, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return ByteSize(n), nil
}

// UnmarshalYAML accepts either a plain integer or a human-readable size.
func (b *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	size, err := ParseByteSize(node.Value)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", node.Value, err)
	}
	*b = size
	return nil
}

// String renders the size in binary units.
func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}

// DefaultDir returns ~/.tm, falling back to a relative path without a home.
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tm"
	}
	return filepath.Join(homeDir, ".tm")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:            DefaultDir(),
			Filename:       "tm.db",
			Quota:          ByteSize(sqlite.DefaultQuotaBytes),
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Calendar: CalendarConfig{
			WeekStart:   "sunday",
			LabelLayout: "January 2006",
		},
		Validation: ValidationConfig{
			TitleMaxLength:    255,
			ListNameMaxLength: 100,
			TagMaxLength:      50,
		},
		Display: DisplayConfig{
			DateLayout:     "2006-01-02",
			DashboardLimit: 5,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if sqlite.IsInMemoryPath(c.Storage.Filename) {
		return c.Storage.Filename
	}
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// StorageOptions translates the storage section for the repository.
func (c *Config) StorageOptions() sqlite.Options {
	return sqlite.Options{
		QuotaBytes:   int64(c.Storage.Quota),
		QueryTimeout: c.Storage.QueryTimeout,
		WriteTimeout: c.Storage.WriteTimeout,
	}
}

// WeekStartDay parses the configured first day of the week.
func (c *Config) WeekStartDay() (time.Weekday, error) {
	return ParseWeekday(c.Calendar.WeekStart)
}

// ParseWeekday accepts full or three-letter English day names.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("TM_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TM_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if quota := os.Getenv("TM_STORAGE_QUOTA"); quota != "" {
		size, err := ParseByteSize(quota)
		if err != nil {
			return &ConfigError{Field: "storage.quota", Message: err.Error()}
		}
		c.Storage.Quota = size
	}
	if timeout := os.Getenv("TM_STORAGE_QUERY_TIMEOUT"); timeout != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(timeout, c.Storage.QueryTimeout)
	}
	if timeout := os.Getenv("TM_STORAGE_WRITE_TIMEOUT"); timeout != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(timeout, c.Storage.WriteTimeout)
	}
	if perms := os.Getenv("TM_STORAGE_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Calendar configuration
	if weekStart := os.Getenv("TM_CALENDAR_WEEK_START"); weekStart != "" {
		c.Calendar.WeekStart = weekStart
	}
	if layout := os.Getenv("TM_CALENDAR_LABEL_LAYOUT"); layout != "" {
		c.Calendar.LabelLayout = layout
	}

	// Validation configuration
	if n := os.Getenv("TM_VALIDATION_TITLE_MAX"); n != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(n, c.Validation.TitleMaxLength)
	}
	if n := os.Getenv("TM_VALIDATION_LIST_NAME_MAX"); n != "" {
		c.Validation.ListNameMaxLength = ParseIntWithFallback(n, c.Validation.ListNameMaxLength)
	}
	if n := os.Getenv("TM_VALIDATION_TAG_MAX"); n != "" {
		c.Validation.TagMaxLength = ParseIntWithFallback(n, c.Validation.TagMaxLength)
	}

	// Display configuration
	if layout := os.Getenv("TM_DISPLAY_DATE_LAYOUT"); layout != "" {
		c.Display.DateLayout = layout
	}
	if limit := os.Getenv("TM_DISPLAY_DASHBOARD_LIMIT"); limit != "" {
		c.Display.DashboardLimit = ParseIntWithFallback(limit, c.Display.DashboardLimit)
	}
	if noColor := os.Getenv("TM_DISPLAY_NO_COLOR"); noColor != "" {
		c.Display.NoColor = ParseBoolWithFallback(noColor, c.Display.NoColor)
	}

	// Application configuration
	if timeout := os.Getenv("TM_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TM_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Storage configuration
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
	}
	if c.Storage.Quota <= 0 {
		return &ConfigError{Field: "storage.quota", Message: "quota must be positive"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Calendar configuration
	if _, err := c.WeekStartDay(); err != nil {
		return &ConfigError{Field: "calendar.week_start", Message: err.Error()}
	}
	if c.Calendar.LabelLayout == "" {
		return &ConfigError{Field: "calendar.label_layout", Message: "label layout cannot be empty"}
	}

	// Validation configuration
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.ListNameMaxLength < 1 {
		return &ConfigError{Field: "validation.list_name_max_length", Message: "list name maximum length must be at least 1"}
	}
	if c.Validation.TagMaxLength < 1 {
		return &ConfigError{Field: "validation.tag_max_length", Message: "tag maximum length must be at least 1"}
	}

	// Display configuration
	if c.Display.DateLayout == "" {
		return &ConfigError{Field: "display.date_layout", Message: "date layout cannot be empty"}
	}
	if c.Display.DashboardLimit < 1 {
		return &ConfigError{Field: "display.dashboard_limit", Message: "dashboard limit must be at least 1"}
	}

	// Application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
