package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value      V
	expiration time.Time
}

// Cache is a TTL map safe for concurrent use.
type Cache[K comparable, V any] struct {
	items sync.Map
	now   func() time.Time
}

// New creates a new Cache instance
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{now: time.Now}
}

// WithClock replaces the time source, mainly for tests.
func (c *Cache[K, V]) WithClock(now func() time.Time) *Cache[K, V] {
	c.now = now
	return c
}

// Set adds an item to the cache with a specific TTL
func (c *Cache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.items.Store(key, item[V]{
		value:      value,
		expiration: c.now().Add(ttl),
	})
}

// Get retrieves an item from the cache. Returns false if not found or expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	val, ok := c.items.Load(key)
	if !ok {
		var zero V
		return zero, false
	}

	itm := val.(item[V])
	if !c.now().Before(itm.expiration) {
		c.items.Delete(key)
		var zero V
		return zero, false
	}

	return itm.value, true
}

// Delete removes an item from the cache
func (c *Cache[K, V]) Delete(key K) {
	c.items.Delete(key)
}

// Cleanup removes expired items and reports how many are left.
func (c *Cache[K, V]) Cleanup() int {
	now := c.now()
	left := 0
	c.items.Range(func(key, value any) bool {
		itm := value.(item[V])
		if !now.Before(itm.expiration) {
			c.items.Delete(key)
		} else {
			left++
		}
		return true
	})
	return left
}
