package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/itemstore/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterMongo  = "mongo"
	AdapterFS     = "fs"
	AdapterMemory = "memory"
)

// options holds the internal configuration for the item service.
type options struct {
	repository       core.Repository
	logger           *slog.Logger
	adapter          string
	database         string
	collection       string
	connectTimeout   time.Duration
	operationTimeout time.Duration
	watch            bool
	readOnly         bool
}

// Option defines a functional option for configuring the item service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterMongo,
	}
}

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock).
// If provided, adapter selection is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name ("mongo", "fs", "memory").
// Defaults to "mongo".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithDatabase overrides the mongo database name.
func WithDatabase(name string) Option {
	return func(o *options) {
		o.database = name
	}
}

// WithCollection overrides the mongo collection name.
func WithCollection(name string) Option {
	return func(o *options) {
		o.collection = name
	}
}

// WithConnectTimeout bounds connection provisioning.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *options) {
		o.connectTimeout = d
	}
}

// WithOperationTimeout bounds each persistence call made by the service.
func WithOperationTimeout(d time.Duration) Option {
	return func(o *options) {
		o.operationTimeout = d
	}
}

// WithWatch makes the fs adapter reload its file on external changes.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}

// WithReadOnly makes the fs adapter reject mutations with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}
