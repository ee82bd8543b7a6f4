package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"task-manager/internal/logging"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable pointing at a config file.
const ConfigFileEnv = "TM_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
}

// NewLoader creates a new configuration loader. The config file defaults to
// $TM_CONFIG, then ~/.tm/config.yaml.
func NewLoader() *Loader {
	path := os.Getenv(ConfigFileEnv)
	if path == "" {
		path = filepath.Join(DefaultDir(), "config.yaml")
	}
	return &Loader{
		config:     NewConfig(),
		configFile: path,
	}
}

// SetConfigFile overrides the config file location.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// ConfigFile returns the config file location.
func (l *Loader) ConfigFile() string {
	return l.configFile
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile merges the config file over the current values. A missing file
// is not an error.
func (l *Loader) loadFile() error {
	if l.configFile == "" {
		return nil
	}

	data, err := os.ReadFile(l.configFile)
	if os.IsNotExist(err) {
		logging.Debugf("no config file at %s\n", l.configFile)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, l.config); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("%s: %v", l.configFile, err)}
	}
	logging.Debugf("loaded config file %s\n", l.configFile)
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if overrides != nil && overrides.ConfigFile != nil {
		l.configFile = *overrides.ConfigFile
	}

	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		if err := l.applyOverrides(config, overrides); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	// Storage overrides
	StorageDir      *string
	StorageFilename *string
	StorageQuota    *string
	QueryTimeout    *time.Duration
	WriteTimeout    *time.Duration

	// Calendar overrides
	WeekStart *string

	// Display overrides
	DateLayout     *string
	DashboardLimit *int
	NoColor        *bool

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) error {
	// Storage overrides
	if overrides.StorageDir != nil {
		config.Storage.Dir = *overrides.StorageDir
	}
	if overrides.StorageFilename != nil {
		config.Storage.Filename = *overrides.StorageFilename
	}
	if overrides.StorageQuota != nil {
		size, err := ParseByteSize(*overrides.StorageQuota)
		if err != nil {
			return &ConfigError{Field: "storage.quota", Message: err.Error()}
		}
		config.Storage.Quota = size
	}
	if overrides.QueryTimeout != nil {
		config.Storage.QueryTimeout = *overrides.QueryTimeout
	}
	if overrides.WriteTimeout != nil {
		config.Storage.WriteTimeout = *overrides.WriteTimeout
	}

	// Calendar overrides
	if overrides.WeekStart != nil {
		config.Calendar.WeekStart = *overrides.WeekStart
	}

	// Display overrides
	if overrides.DateLayout != nil {
		config.Display.DateLayout = *overrides.DateLayout
	}
	if overrides.DashboardLimit != nil {
		config.Display.DashboardLimit = *overrides.DashboardLimit
	}
	if overrides.NoColor != nil {
		config.Display.NoColor = *overrides.NoColor
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	return nil
}
