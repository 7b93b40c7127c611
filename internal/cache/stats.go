// Package cache provides caching utilities for the MCP server.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/docsift/mongo-mcp/internal/store"
)

// StatsCache is a thread-safe LRU cache for collection stats with a
// freshness window. collStats is cheap but tool-calling clients tend to
// hammer list_collections, so short-lived caching keeps introspection snappy
// without going stale.
type StatsCache struct {
	cache *lru.Cache[string, statsEntry]
	ttl   time.Duration
}

type statsEntry struct {
	stats   *store.CollectionStats
	fetched time.Time
}

// NewStatsCache creates an LRU stats cache holding up to maxItems entries,
// each valid for ttl.
func NewStatsCache(maxItems int, ttl time.Duration) (*StatsCache, error) {
	c, err := lru.New[string, statsEntry](maxItems)
	if err != nil {
		return nil, err
	}
	return &StatsCache{cache: c, ttl: ttl}, nil
}

// Get returns fresh cached stats for a collection, or nil and false.
func (c *StatsCache) Get(collection string) (*store.CollectionStats, bool) {
	entry, ok := c.cache.Get(collection)
	if !ok {
		return nil, false
	}
	if time.Since(entry.fetched) > c.ttl {
		c.cache.Remove(collection)
		return nil, false
	}
	return entry.stats, true
}

// Put stores stats for a collection.
func (c *StatsCache) Put(collection string, stats *store.CollectionStats) {
	c.cache.Add(collection, statsEntry{stats: stats, fetched: time.Now()})
}

// Invalidate drops the cached stats for a collection, if any.
func (c *StatsCache) Invalidate(collection string) {
	c.cache.Remove(collection)
}

// Len returns the current number of cached entries.
func (c *StatsCache) Len() int {
	return c.cache.Len()
}
