package quiz

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPoolCacheTTL = 5 * time.Minute

// Cache provides Redis-backed question-pool caching so repeated quiz
// generation for the same filter does not hit Postgres. Sampling still happens
// per request, so cached pools do not make results reproducible.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ PoolCache = (*Cache)(nil)

// NewCache wraps a Redis client; ttl <= 0 uses the default.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultPoolCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(f Filter) string {
	return strings.Join([]string{
		"questionpool",
		strconv.Itoa(f.Difficulty),
		f.Category,
	}, ":")
}

// Get returns the cached pool for a filter, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, f Filter) ([]Question, error) {
	data, err := c.client.Get(ctx, c.key(f)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var pool []Question
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// Set stores a pool under its filter key with the configured TTL.
func (c *Cache) Set(ctx context.Context, f Filter, pool []Question) error {
	data, err := json.Marshal(pool)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(f), data, c.ttl).Err()
}
