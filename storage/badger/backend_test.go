package badger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "index")
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := OpenBackend(file, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	_, err = backend.FindSimilar(context.Background(), []float32{1}, 0, 5)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestFindSimilar_NoChunks(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	results, err := backend.FindSimilar(context.Background(), []float32{1, 0}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_RanksAndFilters(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	chunks := []*core.Chunk{
		{ID: "GDPR-a", Content: "right to erasure", Source: "GDPR", Embedding: []float32{1, 0, 0}},
		{ID: "GDPR-b", Content: "bare chunk", Source: "GDPR"},
		{ID: "PDPA SL-c", Content: "data controller", Source: "PDPA SL", Embedding: []float32{0.8, 0.6, 0}},
		{ID: "PDPA 2025-d", Content: "penalties", Source: "PDPA 2025", Embedding: []float32{0, 0, 1}},
	}
	require.NoError(t, repo.WriteChunks(ctx, chunks))

	results, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.1, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "GDPR-a", results[0].Chunk.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.Equal(t, "PDPA SL-c", results[1].Chunk.ID)
	assert.InDelta(t, 0.8, results[1].Score, 1e-6)

	limited, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, -1, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "GDPR-a", limited[0].Chunk.ID)

	_, err = backend.FindSimilar(ctx, []float32{1, 0, 0}, 0, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestListAndDeleteKeys(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	require.NoError(t, repo.WriteChunks(ctx, []*core.Chunk{
		{ID: "GDPR-a", Content: "a", Source: "GDPR"},
	}))
	keys, err := backend.ListKeys(chunkPrefix, chunkIDPrefix, chunkCountKey)
	require.NoError(t, err)
	assert.Len(t, keys, 3)

	require.NoError(t, backend.DeleteKeys(keys))
	_, err = repo.LoadChunks(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	keys, err = backend.ListKeys(chunkPrefix)
	require.NoError(t, err)
	assert.Empty(t, keys)
	// Nothing to delete is not an error
	assert.NoError(t, backend.DeleteKeys(nil))
}
