package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	apprental "github.com/atelier/backend/internal/application/rental"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisRevenueCache implements the revenue report cache using Redis.
// This is suitable for distributed deployments where multiple instances
// serve reports over the same stores.
type RedisRevenueCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisRevenueCache creates a new Redis-based revenue cache
func NewRedisRevenueCache(cfg RedisConfig, ttl time.Duration) (*RedisRevenueCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRevenueCache{
		client:    client,
		keyPrefix: "report:revenue:daily:",
		ttl:       ttl,
	}, nil
}

// NewRedisRevenueCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisRevenueCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisRevenueCache {
	if keyPrefix == "" {
		keyPrefix = "report:revenue:daily:"
	}
	return &RedisRevenueCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// dailyKey builds the cache key for one store and day
func (c *RedisRevenueCache) dailyKey(storeID uuid.UUID, day time.Time) string {
	return c.keyPrefix + storeID.String() + ":" + day.Format("2006-01-02")
}

// GetDailyRevenue reads a cached daily figure. The second return value
// reports whether the day was in the cache at all.
func (c *RedisRevenueCache) GetDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, c.dailyKey(storeID, day)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to read revenue cache: %w", err)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		// A corrupt value is treated as a miss so the live figure wins.
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

// SetDailyRevenue caches the figure of a finished day
func (c *RedisRevenueCache) SetDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time, amount decimal.Decimal) error {
	if err := c.client.Set(ctx, c.dailyKey(storeID, day), amount.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write revenue cache: %w", err)
	}
	return nil
}

// InvalidateDailyRevenue drops the cached figure for a day, if present
func (c *RedisRevenueCache) InvalidateDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time) error {
	if err := c.client.Del(ctx, c.dailyKey(storeID, day)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate revenue cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisRevenueCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisRevenueCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisRevenueCache implements the revenue cache contract
var _ apprental.RevenueCache = (*RedisRevenueCache)(nil)
