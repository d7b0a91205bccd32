package itemstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/itemstore/internal/platform"
	"github.com/aretw0/itemstore/pkg/core"
)

// --- Types ---

// Item is a public alias for the stored entity.
type Item = core.Item

// DeleteRequest is a public alias for the delete input.
type DeleteRequest = core.DeleteRequest

// Outcome is a public alias for the normalized operation result.
type Outcome = core.Outcome

// --- Configuration ---

// Option defines a functional option for configuring the item service.
type Option = platform.Option

// Adapter names accepted by WithAdapter.
const (
	AdapterMongo  = platform.AdapterMongo
	AdapterFS     = platform.AdapterFS
	AdapterMemory = platform.AdapterMemory
)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithDatabase overrides the mongo database name.
func WithDatabase(name string) Option {
	return platform.WithDatabase(name)
}

// WithCollection overrides the mongo collection name.
func WithCollection(name string) Option {
	return platform.WithCollection(name)
}

// WithConnectTimeout bounds connecting to the store.
func WithConnectTimeout(d time.Duration) Option {
	return platform.WithConnectTimeout(d)
}

// WithOperationTimeout bounds each persistence call.
func WithOperationTimeout(d time.Duration) Option {
	return platform.WithOperationTimeout(d)
}

// WithWatch reloads the fs adapter's file when it changes on disk.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// WithReadOnly rejects writes on the fs adapter.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// --- Factory ---

// New creates an item service backed by the store at uri.
func New(ctx context.Context, uri string, opts ...Option) (*core.Service, error) {
	return platform.New(ctx, uri, opts...)
}

// Init provisions and initializes a repository explicitly.
func Init(ctx context.Context, uri string, opts ...Option) (core.Repository, error) {
	return platform.Init(ctx, uri, opts...)
}
