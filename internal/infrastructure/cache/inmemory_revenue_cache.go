package cache

import (
	"context"
	"sync"
	"time"

	apprental "github.com/atelier/backend/internal/application/rental"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// revenueEntry represents a cached daily figure with expiration
type revenueEntry struct {
	amount    decimal.Decimal
	expiresAt time.Time
}

// InMemoryRevenueCache implements the revenue report cache using an in-memory
// map. This is suitable for single-instance deployments and testing.
type InMemoryRevenueCache struct {
	mu      sync.RWMutex
	entries map[string]revenueEntry
	ttl     time.Duration
}

// NewInMemoryRevenueCache creates a new in-memory revenue cache
func NewInMemoryRevenueCache(ttl time.Duration) *InMemoryRevenueCache {
	return &InMemoryRevenueCache{
		entries: make(map[string]revenueEntry),
		ttl:     ttl,
	}
}

func revenueKey(storeID uuid.UUID, day time.Time) string {
	return storeID.String() + ":" + day.Format("2006-01-02")
}

// GetDailyRevenue reads a cached daily figure
func (c *InMemoryRevenueCache) GetDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[revenueKey(storeID, day)]
	if !exists {
		return decimal.Zero, false, nil
	}
	if time.Now().After(e.expiresAt) {
		return decimal.Zero, false, nil
	}
	return e.amount, true, nil
}

// SetDailyRevenue caches the figure of a finished day
func (c *InMemoryRevenueCache) SetDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time, amount decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Opportunistically drop expired entries so the map does not grow
	// without bound under long uptimes.
	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}

	c.entries[revenueKey(storeID, day)] = revenueEntry{
		amount:    amount,
		expiresAt: now.Add(c.ttl),
	}
	return nil
}

// InvalidateDailyRevenue drops the cached figure for a day, if present
func (c *InMemoryRevenueCache) InvalidateDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, revenueKey(storeID, day))
	return nil
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryRevenueCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryRevenueCache implements the revenue cache contract
var _ apprental.RevenueCache = (*InMemoryRevenueCache)(nil)
