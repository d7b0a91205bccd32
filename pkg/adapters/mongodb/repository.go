// Package mongodb implements core.Repository on a MongoDB collection.
//
// Connect is the connection provisioner: it is called once at process start
// and the returned Repository, backed by the driver's pooled client, is shared
// by every request until Close.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/introspection"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/aretw0/itemstore/pkg/core"
)

// Defaults for the store layout.
const (
	DefaultDatabase   = "rust_api_db"
	DefaultCollection = "items"
)

// Config holds the connection descriptor and layout of the store.
type Config struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration // bounds Connect's dial and ping; zero means the driver default
	Logger         *slog.Logger
}

// Repository implements core.Repository using one MongoDB collection.
type Repository struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger
}

// Connect dials the store, verifies it answers a ping and returns a
// repository scoped to the configured collection. Every failure wraps
// core.ErrConnection.
func Connect(ctx context.Context, cfg Config) (*Repository, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("%w: connection string is empty", core.ErrConnection)
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)

		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrConnection, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("%w: ping failed: %w", core.ErrConnection, err)
	}

	repo := NewRepository(client.Database(cfg.Database).Collection(cfg.Collection), cfg.Logger)
	repo.logger.Info("connected to document store",
		"database", cfg.Database,
		"collection", cfg.Collection,
	)
	return repo, nil
}

// NewRepository wraps an existing collection handle.
func NewRepository(coll *mongo.Collection, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		client: coll.Database().Client(),
		coll:   coll,
		logger: logger,
	}
}

// Initialize checks the store is still reachable.
func (r *Repository) Initialize(ctx context.Context) error {
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: ping failed: %w", core.ErrConnection, err)
	}
	return nil
}

// Close disconnects the client and its pool.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Insert implements core.Repository.
func (r *Repository) Insert(ctx context.Context, item core.Item) error {
	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("insert %q: %w", item.Name, err)
	}
	return nil
}

// List implements core.Repository. The cursor is drained completely; an
// error while decoding or fetching a batch fails the whole call.
func (r *Repository) List(ctx context.Context) ([]core.Item, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	items := []core.Item{}
	for cur.Next(ctx) {
		var it core.Item
		if err := cur.Decode(&it); err != nil {
			return nil, fmt.Errorf("decode item %d: %w", len(items), err)
		}
		items = append(items, it)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor after %d items: %w", len(items), err)
	}
	return items, nil
}

// UpdateDescription implements core.Repository.
func (r *Repository) UpdateDescription(ctx context.Context, name, description string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"description": description}},
	)
	if err != nil {
		return 0, fmt.Errorf("update %q: %w", name, err)
	}
	return res.MatchedCount, nil
}

// Delete implements core.Repository.
func (r *Repository) Delete(ctx context.Context, name string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"name": name})
	if err != nil {
		return 0, fmt.Errorf("delete %q: %w", name, err)
	}
	return res.DeletedCount, nil
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Database   string `json:"database"`
	Collection string `json:"collection"`
	Sessions   int    `json:"open_sessions"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	return RepositoryState{
		Database:   r.coll.Database().Name(),
		Collection: r.coll.Name(),
		Sessions:   r.client.NumberSessionsInProgress(),
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "mongo"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
