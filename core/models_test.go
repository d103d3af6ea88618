package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunkID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewChunkID("PDPA 2025")
		require.True(t, strings.HasPrefix(id, "PDPA 2025-"), id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestChunkHasEmbedding(t *testing.T) {
	assert.False(t, (&Chunk{}).HasEmbedding())
	assert.False(t, (&Chunk{Embedding: []float32{}}).HasEmbedding())
	assert.True(t, (&Chunk{Embedding: []float32{1}}).HasEmbedding())
}

func TestChunkMUS(t *testing.T) {
	chunks := []Chunk{
		{ID: "GDPR-1", Content: "Article 5\nPrinciples", Source: "GDPR", Embedding: []float32{0.25, -1.5, 3}},
		{ID: "PDPA SL-2", Content: "Section 1 § ‘personal data’", Source: "PDPA SL"},
	}

	for _, c := range chunks {
		buf := make([]byte, ChunkMUS.Size(c))
		n := ChunkMUS.Marshal(c, buf)
		require.Equal(t, len(buf), n)

		decoded, m, err := ChunkMUS.Unmarshal(buf)
		require.NoError(t, err)
		assert.Equal(t, n, m)
		assert.Equal(t, c, decoded)

		skipped, err := ChunkMUS.Skip(buf)
		require.NoError(t, err)
		assert.Equal(t, n, skipped)
	}
}
