package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsift/mongo-mcp/internal/cache"
	"github.com/docsift/mongo-mcp/internal/config"
	"github.com/docsift/mongo-mcp/internal/logging"
	"github.com/docsift/mongo-mcp/internal/mcp"
	"github.com/docsift/mongo-mcp/internal/mcp/tools"
	"github.com/docsift/mongo-mcp/internal/store"
	"github.com/docsift/mongo-mcp/internal/transform"
)

// Server is the MongoDB MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	store      *store.Store
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with all builtin MongoDB tools.
//
// Configuration is loaded from environment variables (see internal/config)
// and can be overridden with functional options.
func NewServer(opts ...Option) (*Server, error) {
	// Build configuration from options
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Setup logging
	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	// Create the store unless the caller injected one
	st := cfg.store
	if st == nil {
		st = store.New(cfg.config.Database,
			store.WithURI(cfg.config.MongoURI),
			store.WithTimeout(cfg.config.QueryTimeout),
			store.WithReadOnly(cfg.config.ReadOnly),
		)
	}

	statsCache, err := cache.NewStatsCache(cfg.config.StatsCacheMaxItems, cfg.config.StatsCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats cache: %w", err)
	}

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Store:     st,
		Cache:     statsCache,
		Config:    cfg.config,
		Transform: transform.NewEngine(),
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Store:     st,
		Cache:     statsCache,
		Config:    cfg.config,
		Transform: toolDeps.Transform,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	// Add custom extension registration callbacks
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Add deferred tool registrations (tools that need Deps access)
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		store:      st,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run connects to MongoDB and starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.store.Connect(ctx); err != nil {
		return err
	}
	return s.internal.Run(ctx)
}

// Close cleans up server resources, including the MongoDB connection.
func (s *Server) Close(ctx context.Context) error {
	err := s.store.Close(ctx)
	if s.logCleanup != nil {
		if lerr := s.logCleanup(); err == nil {
			err = lerr
		}
	}
	return err
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
