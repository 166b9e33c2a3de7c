// Package rediscache is an optional event cache backed by Redis, for setups
// where several operators share one extraction budget. Values are JSON with a
// TTL so stale extractions age out on their own.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mrnkim/creator-discovery/internal/types"
)

const keyPrefix = "creator-discovery:events:"

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func (c *Cache) Get(ctx context.Context, contentID string) ([]types.Event, bool, error) {
	b, err := c.rdb.Get(ctx, keyPrefix+contentID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var events []types.Event
	if err := json.Unmarshal(b, &events); err != nil {
		// Treat a corrupt value as a miss; it will be overwritten.
		return nil, false, nil
	}
	return events, true, nil
}

func (c *Cache) Put(ctx context.Context, contentID string, events []types.Event) error {
	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+contentID, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error { return c.rdb.Close() }
