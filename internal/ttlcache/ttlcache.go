// Package ttlcache implements a small in-process memoization cache with a
// fixed expiration window. Both the search result caches and the assistant's
// catalog snapshot use the same expiry pattern; this package is the shared
// implementation so the two cannot drift.
package ttlcache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a key→value map whose entries expire ttl after insertion. Expiry is
// lazy: Get treats a stale entry as a miss and evicts it. Sweep may run on a
// timer to bound memory but is never required for correctness.
//
// All methods are safe for concurrent use.
type Cache[V any] struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]entry[V]

	// now is swappable for tests.
	now func() time.Time
}

// New returns an empty cache with the given TTL.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl: ttl,
		m:   make(map[string]entry[V]),
		now: time.Now,
	}
}

// Get returns the value stored under key if it was inserted less than TTL ago.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		delete(c.m, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the current timestamp, overwriting any
// prior entry.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry[V]{value: value, insertedAt: c.now()}
}

// Delete removes key if present.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

// Sweep removes every entry older than TTL and reports how many were evicted.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	now := c.now()
	for k, e := range c.m {
		if now.Sub(e.insertedAt) >= c.ttl {
			delete(c.m, k)
			evicted++
		}
	}
	return evicted
}

// Purge drops all entries regardless of age.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]entry[V])
}

// Len reports the number of stored entries, stale ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// StartSweeper runs Sweep every interval until stop is closed. It exists to
// bound memory on long-lived processes; correctness never depends on it.
func (c *Cache[V]) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

// SetNowFunc overrides the clock. Tests use this to step time across the TTL
// boundary without sleeping.
func (c *Cache[V]) SetNowFunc(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
