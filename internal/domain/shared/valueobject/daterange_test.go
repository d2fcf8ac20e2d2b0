package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := NewDateRange(date(2026, 6, 10), date(2026, 6, 14))
		require.NoError(t, err)
		assert.Equal(t, date(2026, 6, 10), r.Start())
		assert.Equal(t, date(2026, 6, 14), r.End())
	})

	t.Run("single day range", func(t *testing.T) {
		r, err := NewDateRange(date(2026, 6, 10), date(2026, 6, 10))
		require.NoError(t, err)
		assert.Equal(t, 1, r.Days())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewDateRange(date(2026, 6, 14), date(2026, 6, 10))
		assert.Error(t, err)
	})

	t.Run("times are normalized to midnight UTC", func(t *testing.T) {
		start := time.Date(2026, 6, 10, 18, 30, 0, 0, time.UTC)
		end := time.Date(2026, 6, 12, 9, 0, 0, 0, time.UTC)
		r, err := NewDateRange(start, end)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 6, 10), r.Start())
		assert.Equal(t, date(2026, 6, 12), r.End())
	})
}

func TestDateRange_Days(t *testing.T) {
	r, err := NewDateRange(date(2026, 6, 10), date(2026, 6, 14))
	require.NoError(t, err)
	assert.Equal(t, 5, r.Days())
}

func TestDateRange_Contains(t *testing.T) {
	r, err := NewDateRange(date(2026, 6, 10), date(2026, 6, 14))
	require.NoError(t, err)

	tests := []struct {
		name     string
		day      time.Time
		contains bool
	}{
		{"start boundary", date(2026, 6, 10), true},
		{"end boundary", date(2026, 6, 14), true},
		{"inside", date(2026, 6, 12), true},
		{"day before", date(2026, 6, 9), false},
		{"day after", date(2026, 6, 15), false},
		{"intraday time inside", time.Date(2026, 6, 12, 23, 59, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contains, r.Contains(tt.day))
		})
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	base, err := NewDateRange(date(2026, 6, 10), date(2026, 6, 14))
	require.NoError(t, err)

	mk := func(s, e time.Time) DateRange {
		r, err := NewDateRange(s, e)
		require.NoError(t, err)
		return r
	}

	tests := []struct {
		name     string
		other    DateRange
		overlaps bool
	}{
		{"identical", mk(date(2026, 6, 10), date(2026, 6, 14)), true},
		{"fully inside", mk(date(2026, 6, 11), date(2026, 6, 13)), true},
		{"fully covering", mk(date(2026, 6, 1), date(2026, 6, 30)), true},
		{"partial left", mk(date(2026, 6, 8), date(2026, 6, 10)), true},
		{"partial right", mk(date(2026, 6, 14), date(2026, 6, 20)), true},
		{"touching start boundary conflicts", mk(date(2026, 6, 5), date(2026, 6, 10)), true},
		{"touching end boundary conflicts", mk(date(2026, 6, 14), date(2026, 6, 18)), true},
		{"before", mk(date(2026, 6, 1), date(2026, 6, 9)), false},
		{"after", mk(date(2026, 6, 15), date(2026, 6, 20)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
		})
	}
}

func TestDateRange_String(t *testing.T) {
	r, err := NewDateRange(date(2026, 6, 10), date(2026, 6, 14))
	require.NoError(t, err)
	assert.Equal(t, "2026-06-10..2026-06-14", r.String())
}
