package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		rng, err := NewDateRange(date("2024-01-01T00:00:00Z"), date("2024-01-03T00:00:00Z"))
		require.NoError(t, err)
		assert.Equal(t, 2, rng.Days())
	})

	t.Run("end equal to start is rejected", func(t *testing.T) {
		_, err := NewDateRange(date("2024-01-01T00:00:00Z"), date("2024-01-01T00:00:00Z"))
		require.Error(t, err)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := NewDateRange(date("2024-01-03T00:00:00Z"), date("2024-01-01T00:00:00Z"))
		require.Error(t, err)
	})
}

func TestDateRangeOverlaps(t *testing.T) {
	base, err := NewDateRange(date("2024-06-10T00:00:00Z"), date("2024-06-15T00:00:00Z"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		start   string
		end     string
		overlap bool
	}{
		{"identical interval", "2024-06-10T00:00:00Z", "2024-06-15T00:00:00Z", true},
		{"contained interval", "2024-06-11T00:00:00Z", "2024-06-12T00:00:00Z", true},
		{"containing interval", "2024-06-01T00:00:00Z", "2024-06-30T00:00:00Z", true},
		{"overlaps start", "2024-06-08T00:00:00Z", "2024-06-11T00:00:00Z", true},
		{"overlaps end", "2024-06-14T00:00:00Z", "2024-06-20T00:00:00Z", true},
		{"back-to-back before", "2024-06-05T00:00:00Z", "2024-06-10T00:00:00Z", false},
		{"back-to-back after", "2024-06-15T00:00:00Z", "2024-06-20T00:00:00Z", false},
		{"fully before", "2024-06-01T00:00:00Z", "2024-06-05T00:00:00Z", false},
		{"fully after", "2024-06-20T00:00:00Z", "2024-06-25T00:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := NewDateRange(date(tt.start), date(tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.overlap, base.Overlaps(other))
			assert.Equal(t, tt.overlap, other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestDateRangeDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		days  int
	}{
		{"exactly one day", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", 1},
		{"exactly two days", "2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z", 2},
		{"partial day rounds up", "2024-01-01T00:00:00Z", "2024-01-02T06:00:00Z", 2},
		{"sub-day interval counts as one", "2024-01-01T08:00:00Z", "2024-01-01T18:00:00Z", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := NewDateRange(date(tt.start), date(tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.days, rng.Days())
		})
	}
}
