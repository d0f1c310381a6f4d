package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskhive/todo-system/internal/api/metrics"
	"github.com/taskhive/todo-system/internal/core/domain"
)

const statsTTL = time.Minute

// StatsCache caches per-user todo statistics in Redis.
// Key format: stats:<owner_id>
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats for ownerID, or nil on a miss.
func (c *StatsCache) Get(ctx context.Context, ownerID string) (*domain.TodoStats, error) {
	raw, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats domain.TodoStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		// Corrupt entry: treat as a miss, the next Set overwrites it.
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return &stats, nil
}

// Set stores stats for ownerID (expires after statsTTL).
func (c *StatsCache) Set(ctx context.Context, ownerID string, stats *domain.TodoStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(ownerID), raw, statsTTL).Err()
}

// Invalidate drops the cached stats for ownerID. Called on every mutation.
func (c *StatsCache) Invalidate(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, c.key(ownerID)).Err()
}

func (c *StatsCache) key(ownerID string) string {
	return "stats:" + ownerID
}
