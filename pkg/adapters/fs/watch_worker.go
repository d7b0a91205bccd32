package fs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// startWatch watches the store directory and reloads the mirror whenever the
// items file is written, replaced or removed by another process.
// The directory is watched rather than the file, because atomic renames
// replace the inode and would silently detach a file watch.
func (r *Repository) startWatch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", r.Path, err)
	}

	// The watcher outlives the Initialize call, so it only stops on Close.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	r.mu.Lock()
	r.stopWatch = cancel
	r.watchDone = done
	r.watcherActive = true
	r.mu.Unlock()

	lifecycle.Go(runCtx, func(ctx context.Context) error {
		defer close(done)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher)
	}, lifecycle.WithErrorHandler(func(err error) {
		r.handleWatchError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return nil
}

// watchLoop is the main event loop of the watcher.
func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !r.relevant(event) {
				continue
			}
			r.config.Logger.Debug("items file changed", "op", event.Op.String())
			if err := r.reload(); err != nil {
				r.handleWatchError(err)
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			r.handleWatchError(wErr)
		}
	}
}

// relevant filters out events for other files, including our own temp files.
func (r *Repository) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != r.config.FileName {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (r *Repository) handleWatchError(err error) {
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
		return
	}
	r.config.Logger.Error("fsnotify error", "error", err)
}

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
