package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "Valid time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45Z",
		},
		{
			name:     "Zero time",
			input:    time.Time{},
			expected: "0001-01-01T00:00:00Z",
		},
		{
			name:     "Offset is normalized to UTC",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-06-15T19:30:00Z",
		},
		{
			name:     "Nanoseconds are kept",
			input:    time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC),
			expected: "2024-03-10T09:15:30.123456789Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	ts := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	got := FormatTimePtrForDB(&ts)
	require.NotNil(t, got)
	assert.Equal(t, "2024-02-29T00:00:00Z", *got)
}

func TestParseTimeFromDB(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "Whole seconds",
			input:    "2024-01-15T10:30:45Z",
			expected: time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
		},
		{
			name:     "Fractional seconds",
			input:    "2024-01-15T10:30:45.5Z",
			expected: time.Date(2024, 1, 15, 10, 30, 45, 500000000, time.UTC),
		},
		{
			name:    "Not a timestamp",
			input:   "yesterday",
			wantErr: true,
		},
		{
			name:    "Empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeFromDB(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got))
		})
	}
}

func TestParseTimePtrFromDB(t *testing.T) {
	got, err := ParseTimePtrFromDB(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	empty := ""
	got, err = ParseTimePtrFromDB(&empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	bad := "nope"
	_, err = ParseTimePtrFromDB(&bad)
	assert.Error(t, err)
}

func TestTimeRoundTrip(t *testing.T) {
	original := time.Date(2025, 7, 4, 23, 59, 59, 987654321, time.FixedZone("PDT", -7*3600))
	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
	assert.Equal(t, time.UTC, parsed.Location())
}
