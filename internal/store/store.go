// Package store is the MongoDB gateway for the MCP server. It owns the
// connection lifecycle and exposes the bounded operations the tool layer
// delegates to: sampling, queries, aggregation, mutations, and introspection.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultURI is the connection string used when none is configured.
const DefaultURI = "mongodb://localhost:27017"

// Store wraps a mongo.Client scoped to one database. The connection is
// process-scoped: opened once on first use, closed explicitly on shutdown.
type Store struct {
	uri      string
	database string
	timeout  time.Duration
	readOnly bool

	mu     sync.Mutex
	client *mongo.Client
}

// Option is a functional option for configuring the Store.
type Option func(*Store)

// WithURI sets the MongoDB connection string.
func WithURI(uri string) Option {
	return func(s *Store) {
		s.uri = uri
	}
}

// WithTimeout sets the per-operation timeout applied when the caller's
// context carries no deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// WithReadOnly blocks all mutating operations.
func WithReadOnly(readOnly bool) Option {
	return func(s *Store) {
		s.readOnly = readOnly
	}
}

// New creates a Store for the given database. No connection is opened until
// Connect or the first operation.
func New(database string, opts ...Option) *Store {
	s := &Store{
		uri:      DefaultURI,
		database: database,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Database returns the database name the store is scoped to.
func (s *Store) Database() string {
	return s.database
}

// ReadOnly reports whether mutating operations are blocked.
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// Connect opens and pings the MongoDB connection. Safe to call more than
// once; subsequent calls are no-ops while the client is live.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}

	start := time.Now()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return wrapError("connect", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return wrapError("ping", err)
	}

	slog.Info("connected to MongoDB",
		slog.String("database", s.database),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	s.client = client
	return nil
}

// Close tears down the connection. Safe to call without a prior Connect.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	if err != nil {
		return wrapError("disconnect", err)
	}
	return nil
}

// collection returns a handle for the named collection, connecting lazily.
func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	if name == "" {
		return nil, &Error{Code: ErrCodeCommand, Message: "collection name is required"}
	}
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	return client.Database(s.database).Collection(name), nil
}

// opContext applies the store's default timeout when the caller's context
// has no deadline of its own.
func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// guardWrite rejects mutations in read-only mode.
func (s *Store) guardWrite(op string) error {
	if s.readOnly {
		return &Error{
			Code:    ErrCodeReadOnly,
			Message: fmt.Sprintf("%s rejected: store is in read-only mode", op),
		}
	}
	return nil
}
