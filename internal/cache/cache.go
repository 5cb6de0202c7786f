// SPDX-License-Identifier: MIT

// Package cache provides TTL caching for analysis results, with in-memory,
// Redis and no-op backends.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// SCCKey builds the cache key for the strong component result of a graph at
// a given revision. Because the revision is part of the key, updating a
// graph can never serve a stale result.
func SCCKey(graphID string, revision uint64) string {
	return fmt.Sprintf("scc:%s:%d", graphID, revision)
}

// Cache is a thread-safe TTL cache.
type Cache interface {
	// Get retrieves a value. The second result is false when the key is
	// missing or expired.
	Get(key string) (any, bool)
	// Set stores a value with the given TTL.
	Set(key string, value any, ttl time.Duration)
	// Delete removes a key.
	Delete(key string)
	// Clear removes every key.
	Clear()
	// Stats returns hit/miss counters.
	Stats() Stats
}

// Stats holds cache performance counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Sets        int64
	Evictions   int64
	CurrentSize int
}

type entry struct {
	value      any
	expiration time.Time
}

func (e *entry) expired() bool {
	return time.Now().After(e.expiration)
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	stats   Stats
	janitor *janitor
}

// NewMemory creates an in-memory cache. When cleanupInterval is positive, a
// background goroutine evicts expired entries at that interval; call Stop to
// end it.
func NewMemory(cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{entries: make(map[string]*entry)}
	if cleanupInterval > 0 {
		c.janitor = &janitor{
			interval: cleanupInterval,
			stop:     make(chan struct{}),
		}
		go c.janitor.run(c)
	}
	return c
}

func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[key]
	if !found || e.expired() {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return e.value, true
}

func (c *MemoryCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{value: value, expiration: time.Now().Add(ttl)}
	c.stats.Sets++
}

func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

func (c *MemoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := c.stats
	stats.CurrentSize = len(c.entries)
	return stats
}

func (c *MemoryCache) deleteExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for key, e := range c.entries {
		if e.expired() {
			delete(c.entries, key)
			count++
		}
	}
	c.stats.Evictions += int64(count)
	return count
}

// Stop ends the background cleanup goroutine.
func (c *MemoryCache) Stop() {
	if c.janitor != nil {
		close(c.janitor.stop)
	}
}

type janitor struct {
	interval time.Duration
	stop     chan struct{}
}

func (j *janitor) run(c *MemoryCache) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-j.stop:
			return
		}
	}
}

type noopCache struct{}

// NewNoop returns a cache that stores nothing, for disabling caching.
func NewNoop() Cache { return noopCache{} }

func (noopCache) Get(string) (any, bool)         { return nil, false }
func (noopCache) Set(string, any, time.Duration) {}
func (noopCache) Delete(string)                  {}
func (noopCache) Clear()                         {}
func (noopCache) Stats() Stats                   { return Stats{} }
