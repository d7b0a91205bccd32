package fs

import (
	"os"
	"time"

	"github.com/aretw0/itemstore/pkg/core"
)

// racyWindow covers coarse filesystem timestamps. A file modified this close
// to the moment it was mirrored may change again without its mtime or size
// moving, so it is re-read until the window has passed.
const racyWindow = 2 * time.Second

// cache mirrors the items file in memory.
// It is keyed on the file's modification time and size: when either differs
// from what was last read or written, the mirror is stale and must be reloaded.
type cache struct {
	items   []core.Item
	modTime time.Time
	size    int64
	loaded  bool
	checked time.Time
}

// fresh reports whether the mirror still matches the file described by info.
// A nil info means the file does not exist.
func (c *cache) fresh(info os.FileInfo) bool {
	if !c.loaded {
		return false
	}
	if info == nil {
		return c.modTime.IsZero() && c.size == 0
	}
	if !info.ModTime().Equal(c.modTime) || info.Size() != c.size {
		return false
	}
	return c.checked.Sub(c.modTime) >= racyWindow
}

// set replaces the mirror with items read from or written to the file described by info.
func (c *cache) set(items []core.Item, info os.FileInfo) {
	c.items = items
	c.loaded = true
	c.checked = time.Now()
	if info == nil {
		c.modTime = time.Time{}
		c.size = 0
		return
	}
	c.modTime = info.ModTime()
	c.size = info.Size()
}

// snapshot returns a copy of the mirrored items.
func (c *cache) snapshot() []core.Item {
	out := make([]core.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of mirrored items.
func (c *cache) Len() int {
	return len(c.items)
}
