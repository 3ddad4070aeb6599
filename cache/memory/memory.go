// Package memory provides an in-memory implementation of the cache facade.
// It is the default when no Redis address is configured, and the backend of
// choice in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/studiolore/studyhall/cache"
)

// Cache is a simple in-memory TTL cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

var _ cache.Cache = (*Cache)(nil)

// New creates a new in-memory cache.
func New() *Cache {
	return &Cache{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// Get returns the value stored under key, or cache.ErrMiss if the key is
// absent or expired. Expired entries are removed on access.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, cache.ErrMiss
	}
	if c.now().After(e.expiresAt) {
		// stale
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, cache.ErrMiss
	}
	return e.value, nil
}

// Set inserts or overwrites key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Close clears the cache.
func (c *Cache) Close() error {
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.mu.Unlock()
	return nil
}

// Size returns the current number of items, expired ones included.
func (c *Cache) Size() int {
	c.mu.RLock()
	sz := len(c.items)
	c.mu.RUnlock()
	return sz
}

// Cleanup removes expired entries. Callers that keep a long-lived cache
// should run this periodically; Get removes expired entries lazily.
func (c *Cache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
}
