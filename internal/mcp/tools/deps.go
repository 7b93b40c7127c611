package tools

import (
	"context"

	"github.com/docsift/mongo-mcp/internal/cache"
	"github.com/docsift/mongo-mcp/internal/config"
	"github.com/docsift/mongo-mcp/internal/store"
	"github.com/docsift/mongo-mcp/internal/transform"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Store     *store.Store
	Cache     *cache.StatsCache
	Config    *config.Config
	Transform *transform.Engine
}

// CollectionStats retrieves stats for a collection, checking the cache
// first. If not cached (or stale), it runs collStats and caches the result.
func (d *Deps) CollectionStats(ctx context.Context, collection string) (*store.CollectionStats, error) {
	if stats, ok := d.Cache.Get(collection); ok {
		return stats, nil
	}
	stats, err := d.Store.Stats(ctx, collection)
	if err != nil {
		return nil, err
	}
	d.Cache.Put(collection, stats)
	return stats, nil
}

// SampleSize resolves the effective sample size for inference: the caller's
// request when positive, the configured default otherwise, capped at the
// configured maximum.
func (d *Deps) SampleSize(requested int) int {
	size := requested
	if size <= 0 {
		size = d.Config.DefaultSampleSize
	}
	if size > d.Config.MaxSampleSize {
		size = d.Config.MaxSampleSize
	}
	return size
}

// QueryLimit resolves the effective result limit for queries.
func (d *Deps) QueryLimit(requested int) int {
	limit := requested
	if limit <= 0 {
		limit = d.Config.DefaultQueryLimit
	}
	if limit > d.Config.MaxQueryLimit {
		limit = d.Config.MaxQueryLimit
	}
	return limit
}
