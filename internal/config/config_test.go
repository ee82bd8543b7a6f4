package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "tm.db", cfg.Storage.Filename)
	assert.Equal(t, ByteSize(5*1024*1024), cfg.Storage.Quota)
	assert.Equal(t, "5.0 MiB", cfg.Storage.Quota.String())
	assert.Equal(t, 10*time.Second, cfg.Storage.QueryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Storage.WriteTimeout)

	day, err := cfg.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)

	opts := cfg.StorageOptions()
	assert.Equal(t, int64(5*1024*1024), opts.QuotaBytes)
}

func TestGetDatabasePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Dir = "/data"
	assert.Equal(t, filepath.Join("/data", "tm.db"), cfg.GetDatabasePath())

	cfg.Storage.Filename = ":memory:"
	assert.Equal(t, ":memory:", cfg.GetDatabasePath())
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"sunday", time.Sunday, false},
		{"Monday", time.Monday, false},
		{" sat ", time.Saturday, false},
		{"funday", time.Sunday, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoader_Cascade(t *testing.T) {
	path := writeConfigFile(t, `
storage:
  dir: /from/file
  quota: 1MiB
  query_timeout: 3s
calendar:
  week_start: monday
display:
  dashboard_limit: 7
`)
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("TM_STORAGE_DIR", "/from/env")
	t.Setenv("TM_DISPLAY_NO_COLOR", "true")

	loader := NewLoader()
	assert.Equal(t, path, loader.ConfigFile())

	limit := 3
	cfg, err := loader.LoadWithOverrides(&ConfigOverrides{DashboardLimit: &limit})
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Storage.Dir, "env beats file")
	assert.Equal(t, ByteSize(1024*1024), cfg.Storage.Quota)
	assert.Equal(t, 3*time.Second, cfg.Storage.QueryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Storage.WriteTimeout, "unset keys keep defaults")
	assert.Equal(t, "monday", cfg.Calendar.WeekStart)
	assert.True(t, cfg.Display.NoColor)
	assert.Equal(t, 3, cfg.Display.DashboardLimit, "flags beat file")
}

func TestLoader_MissingFileIsFine(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "nope.yaml"))
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "tm.db", cfg.Storage.Filename)
}

func TestLoader_BadFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, writeConfigFile(t, "storage: [unclosed"))
	_, err := NewLoader().Load()
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoader_ConfigFileOverride(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	path := writeConfigFile(t, "display:\n  date_layout: 02/01/2006\n")

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{ConfigFile: &path})
	require.NoError(t, err)
	assert.Equal(t, "02/01/2006", cfg.Display.DateLayout)
}

func TestLoader_InvalidValues(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "nope.yaml"))

	t.Run("bad quota from env", func(t *testing.T) {
		t.Setenv("TM_STORAGE_QUOTA", "lots")
		_, err := NewLoader().Load()
		assert.Error(t, err)
	})

	t.Run("bad week start", func(t *testing.T) {
		t.Setenv("TM_CALENDAR_WEEK_START", "someday")
		_, err := NewLoader().Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calendar.week_start")
	})

	t.Run("bad quota flag", func(t *testing.T) {
		quota := "-1"
		_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{StorageQuota: &quota})
		assert.Error(t, err)
	})

	t.Run("zero dashboard limit flag", func(t *testing.T) {
		limit := 0
		_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{DashboardLimit: &limit})
		assert.Error(t, err)
	})
}

func TestParseFallbacks(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseDurationWithFallback("2s", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationWithFallback("soon", time.Minute))
	assert.Equal(t, 4, ParseIntWithFallback("4", 1))
	assert.Equal(t, 1, ParseIntWithFallback("four", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
	assert.Equal(t, uint32(0700), ParseUint32WithFallback("700", 8, 0755))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("9", 8, 0755))
}
