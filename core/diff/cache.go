package diff

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Default cache bounds.
const (
	DefaultCacheSize = 32
	DefaultCacheTTL  = 10 * time.Minute
)

// Key identifies one comparison.
type Key struct {
	Dataset  string
	VersionA string
	VersionB string
}

func (k Key) String() string {
	return k.Dataset + "|" + k.VersionA + "|" + k.VersionB
}

// LoadFunc computes a result on a cache miss.
type LoadFunc func(ctx context.Context) (*Result, error)

// Cache memoizes comparison results.
type Cache struct {
	lru *expirable.LRU[Key, *Result]
	sf  singleflight.Group
}

// NewCache creates a cache bounded by size entries and ttl age. Non-positive
// values select the defaults.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{lru: expirable.NewLRU[Key, *Result](size, nil, ttl)}
}

// GetOrCompute returns the cached result for key or runs load once, even
// when called concurrently, and stores its result. Errors are not cached.
// The boolean reports whether the result came from the cache.
func (c *Cache) GetOrCompute(ctx context.Context, key Key, load LoadFunc) (*Result, bool, error) {
	if res, ok := c.lru.Get(key); ok {
		return res, true, nil
	}

	v, err, _ := c.sf.Do(key.String(), func() (interface{}, error) {
		// Double-check after acquiring the flight
		if res, ok := c.lru.Get(key); ok {
			return res, nil
		}
		res, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, res)
		return res, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Result), false, nil
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.lru.Len()
}
