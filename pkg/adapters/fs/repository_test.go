package fs_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/itemstore/pkg/adapters/fs"
	"github.com/aretw0/itemstore/pkg/core"
)

// setupRepo creates an initialized repository under a fresh temp directory.
func setupRepo(t *testing.T, opts ...func(*fs.Config)) (*fs.Repository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "store")
	cfg := fs.Config{
		Path:   path,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	repo := fs.NewRepository(cfg)
	require.NoError(t, repo.Initialize(context.Background()))
	t.Cleanup(func() { _ = repo.Close(context.Background()) })
	return repo, path
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		_, path := setupRepo(t)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		repo := fs.NewRepository(fs.Config{
			Path:      filepath.Join(t.TempDir(), "nope"),
			MustExist: true,
		})
		assert.Error(t, repo.Initialize(context.Background()))
	})

	t.Run("Fails on Corrupted File", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, fs.DefaultFileName), []byte("items: [unclosed"), 0644))
		repo := fs.NewRepository(fs.Config{Path: dir})
		assert.Error(t, repo.Initialize(context.Background()))
	})
}

func TestRepository_CRUD(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, repo.Insert(ctx, core.Item{Name: "widget", Description: "a thing"}))
	require.NoError(t, repo.Insert(ctx, core.Item{Name: "gadget", Description: "other"}))

	matched, err := repo.UpdateDescription(ctx, "widget", "a better thing")
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	matched, err = repo.UpdateDescription(ctx, "ghost", "x")
	require.NoError(t, err)
	assert.Zero(t, matched)

	items, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Item{
		{Name: "widget", Description: "a better thing"},
		{Name: "gadget", Description: "other"},
	}, items)

	deleted, err := repo.Delete(ctx, "widget")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.Delete(ctx, "widget")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRepository_PersistsAcrossReopen(t *testing.T) {
	repo, path := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, core.Item{Name: "kept", Description: "on disk"}))
	require.NoError(t, repo.Close(ctx))

	reopened := fs.NewRepository(fs.Config{Path: path, MustExist: true})
	require.NoError(t, reopened.Initialize(ctx))

	items, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Item{{Name: "kept", Description: "on disk"}}, items)
}

func TestRepository_PicksUpExternalEdits(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, core.Item{Name: "a", Description: "x"}))

	external := "version: 1\nitems:\n  - name: b\n    description: edited by hand\n"
	require.NoError(t, os.WriteFile(repo.File(), []byte(external), 0644))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(repo.File(), later, later))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Item{{Name: "b", Description: "edited by hand"}}, items)
}

func TestRepository_PicksUpSameSizeEdit(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, core.Item{Name: "a", Description: "x"}))

	info, err := os.Stat(repo.File())
	require.NoError(t, err)

	// Same length, same mtime: only the content differs.
	external := "version: 1\nitems:\n  - name: a\n    description: y\n"
	require.NoError(t, os.WriteFile(repo.File(), []byte(external), 0644))
	require.NoError(t, os.Chtimes(repo.File(), info.ModTime(), info.ModTime()))
	edited, err := os.Stat(repo.File())
	require.NoError(t, err)
	require.Equal(t, info.Size(), edited.Size())

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Item{{Name: "a", Description: "y"}}, items)
}

func TestRepository_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	seed := "version: 1\nitems:\n  - name: a\n    description: x\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, fs.DefaultFileName), []byte(seed), 0644))

	repo := fs.NewRepository(fs.Config{Path: dir, ReadOnly: true})
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx))

	assert.ErrorIs(t, repo.Insert(ctx, core.Item{Name: "b"}), core.ErrReadOnly)
	_, err := repo.UpdateDescription(ctx, "a", "y")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, err = repo.Delete(ctx, "a")
	assert.ErrorIs(t, err, core.ErrReadOnly)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Item{{Name: "a", Description: "x"}}, items)
}

func TestRepository_Watch(t *testing.T) {
	repo, _ := setupRepo(t, func(c *fs.Config) { c.Watch = true })

	require.Eventually(t, func() bool {
		return repo.State().(fs.RepositoryState).WatcherActive
	}, time.Second, 10*time.Millisecond)

	external := "version: 1\nitems:\n  - name: watched\n    description: from outside\n"
	require.NoError(t, os.WriteFile(repo.File(), []byte(external), 0644))

	require.Eventually(t, func() bool {
		st := repo.State().(fs.RepositoryState)
		return st.Reloads > 0 && st.CacheSize == 1
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, repo.Close(context.Background()))
	assert.False(t, repo.State().(fs.RepositoryState).WatcherActive)
}
