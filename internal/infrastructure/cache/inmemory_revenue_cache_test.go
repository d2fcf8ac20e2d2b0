package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRevenueCache(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("round-trips a daily figure", func(t *testing.T) {
		c := NewInMemoryRevenueCache(time.Hour)
		storeID := uuid.New()

		require.NoError(t, c.SetDailyRevenue(ctx, storeID, day, decimal.NewFromInt(420)))

		amount, ok, err := c.GetDailyRevenue(ctx, storeID, day)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, amount.Equal(decimal.NewFromInt(420)))
	})

	t.Run("misses on unknown keys", func(t *testing.T) {
		c := NewInMemoryRevenueCache(time.Hour)

		_, ok, err := c.GetDailyRevenue(ctx, uuid.New(), day)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("figures are keyed per store and per day", func(t *testing.T) {
		c := NewInMemoryRevenueCache(time.Hour)
		storeA := uuid.New()
		storeB := uuid.New()

		require.NoError(t, c.SetDailyRevenue(ctx, storeA, day, decimal.NewFromInt(100)))
		require.NoError(t, c.SetDailyRevenue(ctx, storeB, day, decimal.NewFromInt(200)))
		require.NoError(t, c.SetDailyRevenue(ctx, storeA, day.AddDate(0, 0, 1), decimal.NewFromInt(300)))

		amount, ok, err := c.GetDailyRevenue(ctx, storeA, day)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, amount.Equal(decimal.NewFromInt(100)))

		amount, ok, err = c.GetDailyRevenue(ctx, storeB, day)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, amount.Equal(decimal.NewFromInt(200)))
	})

	t.Run("invalidated days miss until recomputed", func(t *testing.T) {
		c := NewInMemoryRevenueCache(time.Hour)
		storeID := uuid.New()

		require.NoError(t, c.SetDailyRevenue(ctx, storeID, day, decimal.NewFromInt(420)))
		require.NoError(t, c.InvalidateDailyRevenue(ctx, storeID, day))

		_, ok, err := c.GetDailyRevenue(ctx, storeID, day)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidating an absent day is a no-op", func(t *testing.T) {
		c := NewInMemoryRevenueCache(time.Hour)
		require.NoError(t, c.InvalidateDailyRevenue(ctx, uuid.New(), day))
	})

	t.Run("expired entries miss", func(t *testing.T) {
		c := NewInMemoryRevenueCache(time.Nanosecond)
		storeID := uuid.New()

		require.NoError(t, c.SetDailyRevenue(ctx, storeID, day, decimal.NewFromInt(100)))
		time.Sleep(time.Millisecond)

		_, ok, err := c.GetDailyRevenue(ctx, storeID, day)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("writes sweep expired entries out", func(t *testing.T) {
		c := NewInMemoryRevenueCache(time.Nanosecond)
		storeID := uuid.New()

		for i := 0; i < 5; i++ {
			require.NoError(t, c.SetDailyRevenue(ctx, storeID, day.AddDate(0, 0, i), decimal.NewFromInt(int64(i))))
		}
		time.Sleep(time.Millisecond)
		require.NoError(t, c.SetDailyRevenue(ctx, storeID, day, decimal.NewFromInt(7)))

		assert.Equal(t, 1, c.Size())
	})
}
