package trust

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache shares validated trust records across processes. Useful
// when many backend replicas would otherwise each warm their own
// in-memory cache against the system dataset.
type redisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache creates a Cache backed by the given Redis client.
// The client's lifecycle belongs to the caller; Close is a no-op.
func NewRedisCache(client redis.UniversalClient, keyPrefix string) Cache {
	if keyPrefix == "" {
		keyPrefix = "trust:"
	}
	return &redisCache{client: client, prefix: keyPrefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Trust, bool) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var t Trust
	if err := json.Unmarshal(payload, &t); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, false
	}
	return &t, true
}

func (c *redisCache) Set(ctx context.Context, key string, t *Trust, ttl time.Duration) {
	payload, err := json.Marshal(t)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.prefix+key, payload, ttl)
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, c.prefix+key)
}

func (c *redisCache) Close() error { return nil }
