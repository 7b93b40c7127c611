package mcpsrv

import (
	"github.com/docsift/mongo-mcp/internal/cache"
	"github.com/docsift/mongo-mcp/internal/config"
	"github.com/docsift/mongo-mcp/internal/store"
	"github.com/docsift/mongo-mcp/internal/transform"
)

// Deps holds the dependencies available to custom tools registered with
// WithDepsTool. The same store, cache, and transform engine back the
// builtin tools, so custom tools observe the same configuration limits
// and read-only guard.
type Deps struct {
	Store     *store.Store
	Cache     *cache.StatsCache
	Config    *config.Config
	Transform *transform.Engine
}
