// Package memory provides a process-local core.Repository.
// Items live only as long as the process; it backs development servers and tests.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/itemstore/pkg/core"
)

// Repository implements core.Repository over an in-memory slice.
// Insertion order is preserved by List.
type Repository struct {
	mu    sync.RWMutex
	items []core.Item
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Initialize implements core.Repository.
func (r *Repository) Initialize(ctx context.Context) error { return nil }

// Close implements core.Repository.
func (r *Repository) Close(ctx context.Context) error { return nil }

// Insert implements core.Repository.
func (r *Repository) Insert(ctx context.Context, item core.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return nil
}

// List implements core.Repository.
func (r *Repository) List(ctx context.Context) ([]core.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}

// UpdateDescription implements core.Repository.
func (r *Repository) UpdateDescription(ctx context.Context, name, description string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched int64
	for i := range r.items {
		if r.items[i].Name == name {
			r.items[i].Description = description
			matched++
		}
	}
	return matched, nil
}

// Delete implements core.Repository.
func (r *Repository) Delete(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	var deleted int64
	for _, it := range r.items {
		if it.Name == name {
			deleted++
			continue
		}
		kept = append(kept, it)
	}
	// Clear the tail so removed items are not retained by the backing array.
	for i := len(kept); i < len(r.items); i++ {
		r.items[i] = core.Item{}
	}
	r.items = kept
	return deleted, nil
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Items int `json:"items"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{Items: len(r.items)}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
