package storage

import (
	"context"

	"github.com/poiesic/regindex/core"
)

// ChunkWriter persists a complete chunk collection.
// Each call replaces whatever collection the writer held before, so a run
// always produces a fresh collection.
type ChunkWriter interface {
	// WriteChunks stores chunks in order. Implementations reject collections
	// that fail ValidateCollection without writing anything.
	WriteChunks(ctx context.Context, chunks []*core.Chunk) error
}

// ChunkReader loads a persisted chunk collection.
type ChunkReader interface {
	// LoadChunks returns every stored chunk in its original order.
	// Returns ErrNotFound if no collection has been written.
	LoadChunks(ctx context.Context) ([]*core.Chunk, error)
}

// VectorSearcher is implemented by stores that can rank chunks themselves.
type VectorSearcher interface {
	// FindSimilar finds chunks similar to the given vector.
	// Returns chunks with cosine similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	// Chunks without an embedding are never returned.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)
}

// ChunkRepository is a store that supports writing, reading, point lookups
// and vector search.
type ChunkRepository interface {
	ChunkWriter
	ChunkReader
	VectorSearcher

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id string) (*core.Chunk, error)

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
