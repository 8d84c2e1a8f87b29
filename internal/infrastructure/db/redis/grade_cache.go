package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// GradeCache memoizes model responses in Redis.
// Key format: grade:<sha256 of model and prompt>
type GradeCache struct {
	client *redis.Client
}

// NewGradeCache creates a GradeCache wrapping the given Redis client.
func NewGradeCache(client *redis.Client) *GradeCache {
	return &GradeCache{client: client}
}

// Get returns the cached response for key, reporting whether it was present.
func (c *GradeCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("grade cache get: %w", err)
	}
	return val, true, nil
}

// Set records the response for key (expires after cacheTTL).
func (c *GradeCache) Set(ctx context.Context, key, report string) error {
	return c.client.Set(ctx, c.key(key), report, cacheTTL).Err()
}

func (c *GradeCache) key(k string) string {
	return "grade:" + k
}
