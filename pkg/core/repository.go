package core

import "context"

// Repository defines the contract for storing and retrieving items.
// Each method maps to exactly one call against the underlying store, so the
// atomicity of a single insert, update or delete is whatever the store gives.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Insert persists a new item. No duplicate check is performed.
	Insert(ctx context.Context, item Item) error

	// List returns every stored item. An error at any point of the read
	// discards what was read so far.
	List(ctx context.Context) ([]Item, error)

	// UpdateDescription sets the description of every item named name and
	// reports how many items matched.
	UpdateDescription(ctx context.Context, name, description string) (matched int64, err error)

	// Delete removes every item named name and reports how many were removed.
	Delete(ctx context.Context, name string) (deleted int64, err error)

	// Initialize ensures the underlying storage is ready (e.g. create directories, load files).
	Initialize(ctx context.Context) error

	// Close releases the store handle.
	Close(ctx context.Context) error
}
