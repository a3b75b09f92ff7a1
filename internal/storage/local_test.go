package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStorage_CreatesRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "archive")
	store, err := NewLocalStorage(root)
	require.NoError(t, err)
	assert.Equal(t, root, store.Root())
	assert.DirExists(t, root)
}

func TestLocalStorage_Archive(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	src := filepath.Join(base, "split_1.matroska")
	require.NoError(t, os.WriteFile(src, []byte("audio bytes"), 0640))

	store, err := NewLocalStorage(filepath.Join(base, "archive"))
	require.NoError(t, err)

	require.NoError(t, store.Archive(context.Background(), "book/split_1.matroska", src))

	data, err := os.ReadFile(filepath.Join(base, "archive", "book", "split_1.matroska"))
	require.NoError(t, err)
	assert.Equal(t, []byte("audio bytes"), data)
}

func TestLocalStorage_ArchiveMissingSource(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "archive"))
	require.NoError(t, err)

	err = store.Archive(context.Background(), "book/split_1.matroska", "/nonexistent/split_1.matroska")
	require.Error(t, err)
}

func TestLocalStorage_ArchiveCancelledContext(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	src := filepath.Join(base, "split_1.matroska")
	require.NoError(t, os.WriteFile(src, []byte("audio"), 0640))

	store, err := NewLocalStorage(filepath.Join(base, "archive"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, store.Archive(ctx, "book/split_1.matroska", src), context.Canceled)
}
