package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/itemstore/pkg/core"
)

func TestCache_Freshness(t *testing.T) {
	t.Run("Unloaded Is Stale", func(t *testing.T) {
		var c cache
		assert.False(t, c.fresh(nil))
	})

	t.Run("Missing File Stays Fresh", func(t *testing.T) {
		var c cache
		c.set(nil, nil)
		assert.True(t, c.fresh(nil))
	})

	t.Run("Detects Modification", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "items.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))
		past := time.Now().Add(-time.Minute)
		require.NoError(t, os.Chtimes(path, past, past))
		info, err := os.Stat(path)
		require.NoError(t, err)

		var c cache
		c.set([]core.Item{{Name: "a"}}, info)
		assert.True(t, c.fresh(info))

		later := info.ModTime().Add(2 * time.Second)
		require.NoError(t, os.Chtimes(path, later, later))
		changed, err := os.Stat(path)
		require.NoError(t, err)
		assert.False(t, c.fresh(changed))
		assert.False(t, c.fresh(nil), "deleted file must invalidate the mirror")
	})

	t.Run("Recent Write Is Rechecked", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "items.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))
		info, err := os.Stat(path)
		require.NoError(t, err)

		var c cache
		c.set([]core.Item{{Name: "a"}}, info)
		assert.False(t, c.fresh(info), "same-size edits inside the timestamp granularity must not be missed")

		c.checked = info.ModTime().Add(racyWindow)
		assert.True(t, c.fresh(info))
	})

	t.Run("Snapshot Is A Copy", func(t *testing.T) {
		var c cache
		c.set([]core.Item{{Name: "a", Description: "x"}}, nil)
		snap := c.snapshot()
		snap[0].Description = "y"
		assert.Equal(t, "x", c.items[0].Description)
		assert.Equal(t, 1, c.Len())
	})
}
