// Package fs implements core.Repository as a single YAML file on the local
// filesystem. Writes are atomic (temp file + rename); external edits to the
// file are picked up on the next call, or immediately when watching is enabled.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/itemstore/pkg/core"
)

// DefaultFileName is the items file created inside the repository directory.
const DefaultFileName = "items.yaml"

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string // directory holding the items file
	FileName     string // defaults to DefaultFileName
	MustExist    bool   // fail Initialize when Path is missing instead of creating it
	ReadOnly     bool   // reject mutations with core.ErrReadOnly
	Watch        bool   // reload on external changes via fsnotify
	Logger       *slog.Logger
	ErrorHandler func(error) // receives watcher failures; defaults to logging
}

// Repository implements core.Repository using one file on disk.
type Repository struct {
	Path   string
	config Config

	mu    sync.RWMutex
	cache cache

	watcherActive bool
	lastReload    *time.Time
	reloads       int
	stopWatch     context.CancelFunc
	watchDone     chan struct{}
}

// NewRepository creates a new filesystem-backed repository.
// No I/O happens until Initialize.
func NewRepository(config Config) *Repository {
	if config.FileName == "" {
		config.FileName = DefaultFileName
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// File returns the absolute location of the items file.
func (r *Repository) File() string {
	return filepath.Join(r.Path, r.config.FileName)
}

// Initialize ensures the directory exists, loads the items file and starts
// the watcher when configured.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat store path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", r.Path)
		}
	} else {
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	r.mu.Lock()
	err := r.refreshLocked()
	r.mu.Unlock()
	if err != nil {
		return err
	}

	if r.config.Watch {
		return r.startWatch(ctx)
	}
	return nil
}

// Close stops the watcher, if any, and waits for it to exit.
func (r *Repository) Close(ctx context.Context) error {
	r.mu.Lock()
	stop, done := r.stopWatch, r.watchDone
	r.stopWatch = nil
	r.mu.Unlock()

	if stop == nil {
		return nil
	}
	stop()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Insert appends item to the file.
func (r *Repository) Insert(ctx context.Context, item core.Item) error {
	return r.mutate(ctx, func(items []core.Item) ([]core.Item, int64) {
		return append(items, item), 1
	}, nil)
}

// List returns the items in file order.
func (r *Repository) List(ctx context.Context) ([]core.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	info, statErr := r.stat()
	if statErr == nil && r.cache.fresh(info) {
		items := r.cache.snapshot()
		r.mu.RUnlock()
		return items, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.refreshLocked(); err != nil {
		return nil, err
	}
	return r.cache.snapshot(), nil
}

// UpdateDescription rewrites the description of every item named name.
func (r *Repository) UpdateDescription(ctx context.Context, name, description string) (int64, error) {
	var matched int64
	err := r.mutate(ctx, func(items []core.Item) ([]core.Item, int64) {
		for i := range items {
			if items[i].Name == name {
				items[i].Description = description
				matched++
			}
		}
		return items, matched
	}, &matched)
	return matched, err
}

// Delete removes every item named name.
func (r *Repository) Delete(ctx context.Context, name string) (int64, error) {
	var deleted int64
	err := r.mutate(ctx, func(items []core.Item) ([]core.Item, int64) {
		kept := make([]core.Item, 0, len(items))
		for _, it := range items {
			if it.Name == name {
				deleted++
				continue
			}
			kept = append(kept, it)
		}
		return kept, deleted
	}, &deleted)
	return deleted, err
}

// mutate applies fn to a private copy of the items and persists the result.
// The file is only rewritten when fn reports a change; the mirror is only
// replaced once the write succeeded. A non-nil count is reset on failure.
func (r *Repository) mutate(ctx context.Context, fn func([]core.Item) ([]core.Item, int64), count *int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refreshLocked(); err != nil {
		return err
	}

	next, changed := fn(r.cache.snapshot())
	if changed == 0 {
		return nil
	}

	data, err := encodeItems(next)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.File(), data, 0644); err != nil {
		if count != nil {
			*count = 0
		}
		return err
	}

	info, err := r.stat()
	if err != nil {
		if count != nil {
			*count = 0
		}
		return err
	}
	r.cache.set(next, info)
	return nil
}

// refreshLocked reloads the mirror when the file changed. Caller holds r.mu.
func (r *Repository) refreshLocked() error {
	info, err := r.stat()
	if err != nil {
		return err
	}
	if r.cache.fresh(info) {
		return nil
	}

	if info == nil {
		r.cache.set(nil, nil)
		return nil
	}

	data, err := os.ReadFile(r.File())
	if err != nil {
		return fmt.Errorf("failed to read items file: %w", err)
	}
	items, err := decodeItems(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.File(), err)
	}
	r.cache.set(items, info)
	r.config.Logger.Debug("items file loaded", "path", r.File(), "items", len(items))
	return nil
}

// reload forces a refresh from disk. Used by the watcher.
func (r *Repository) reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.refreshLocked(); err != nil {
		return err
	}
	now := time.Now()
	r.lastReload = &now
	r.reloads++
	return nil
}

// stat returns the items file info, or nil when the file does not exist.
func (r *Repository) stat() (os.FileInfo, error) {
	info, err := os.Stat(r.File())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat items file: %w", err)
	}
	return info, nil
}

var _ core.Repository = (*Repository)(nil)
