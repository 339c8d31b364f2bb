package utils

import (
	"sync"
	"time"
)

// Cache holds a single value until it expires.
type Cache[T any] struct {
	value      T
	expiration time.Time
	mutex      sync.RWMutex
	now        func() time.Time
}

// NewCacheWithClock initializes an empty cache that reads the time from now.
func NewCacheWithClock[T any](now func() time.Time) *Cache[T] {
	var zero T
	return &Cache[T]{
		value: zero,
		now:   now,
	}
}

// Set sets a new value in the cache with an expiration time.
func (c *Cache[T]) Set(value T, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.value = value
	c.expiration = c.now().Add(duration)
}

// Get retrieves the cached value if it has not expired.
func (c *Cache[T]) Get() (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.now().Before(c.expiration) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Clear removes the cached value.
func (c *Cache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var zero T
	c.value = zero
	c.expiration = time.Time{}
}
