// Package cache provides a small in-process TTL cache used to memoize
// analysis reports between requests, so a page refresh does not replay a
// full batch of provider calls.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/JoaoVF25/dashboard/internal/logger"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLCache is a concurrency-safe map with per-entry expiry. Expired
// entries are ignored on read and reclaimed by the janitor sweep.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	log     zerolog.Logger

	now func() time.Time // test indirection
}

// New builds a TTLCache whose entries live for ttl after each Set.
func New(ttl time.Duration) *TTLCache {
	return &TTLCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		log:     logger.With("cache"),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or ok=false when the key is
// absent or its entry has expired.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with a fresh TTL, replacing any previous entry.
func (c *TTLCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate removes key immediately. Removing an absent key is a no-op.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of stored entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweep removes every expired entry and reports how many were reclaimed.
func (c *TTLCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Janitor sweeps expired entries every interval until ctx is canceled.
// It is meant to run in its own goroutine and always returns nil so it
// can sit directly in an errgroup.
func (c *TTLCache) Janitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := c.sweep(); removed > 0 {
				c.log.Debug().Int("removed", removed).Msg("cache sweep")
			}
		}
	}
}
