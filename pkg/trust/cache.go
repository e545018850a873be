package trust

import (
	"context"
	"sync"
	"time"
)

// Cache stores validated trust records between requests so the system
// dataset is not hit on every resolution.
type Cache interface {
	Get(ctx context.Context, key string) (*Trust, bool)
	Set(ctx context.Context, key string, t *Trust, ttl time.Duration)
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheSize bounds the in-memory cache.
const DefaultCacheSize = 1000

type cacheItem struct {
	trust     *Trust
	expiresAt time.Time
}

// inMemoryCache is a TTL cache with LRU eviction and a background
// sweep of expired entries.
type inMemoryCache struct {
	mu      sync.Mutex
	items   map[string]cacheItem
	order   []string // least recently used first
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

// NewInMemoryCache creates the default in-memory cache.
func NewInMemoryCache() Cache {
	return NewInMemoryCacheWithSize(DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-memory cache bounded to
// maxSize entries.
func NewInMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	c := &inMemoryCache{
		items:   make(map[string]cacheItem),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (*Trust, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		c.forget(key)
		return nil, false
	}
	c.touch(key)
	return item.trust, true
}

func (c *inMemoryCache) Set(ctx context.Context, key string, t *Trust, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		if len(c.order) > 0 {
			delete(c.items, c.order[0])
			c.order = c.order[1:]
		}
	}
	c.items[key] = cacheItem{trust: t, expiresAt: time.Now().Add(ttl)}
	c.touch(key)
}

func (c *inMemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	c.forget(key)
}

func (c *inMemoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

func (c *inMemoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, item := range c.items {
				if now.After(item.expiresAt) {
					delete(c.items, key)
					c.forget(key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

// touch moves the key to the most-recently-used end. Callers hold c.mu.
func (c *inMemoryCache) touch(key string) {
	c.forget(key)
	c.order = append(c.order, key)
}

// forget drops the key from the LRU order. Callers hold c.mu.
func (c *inMemoryCache) forget(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// noOpCache disables caching. Useful for tests and for deployments
// where every resolution must hit the directory.
type noOpCache struct{}

// NewNoOpCache creates a cache that never stores anything.
func NewNoOpCache() Cache { return noOpCache{} }

func (noOpCache) Get(ctx context.Context, key string) (*Trust, bool)            { return nil, false }
func (noOpCache) Set(ctx context.Context, key string, t *Trust, d time.Duration) {}
func (noOpCache) Delete(ctx context.Context, key string)                        {}
func (noOpCache) Close() error                                                  { return nil }
