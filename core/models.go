package core

import "github.com/segmentio/ksuid"

// NewChunkID returns a collision-resistant identifier for a chunk taken from
// the document labelled label. The suffix is a KSUID, whose payload carries
// 128 random bits. Spaces in the label are kept so IDs stay readable
// ("PDPA 2025-2HbW...").
func NewChunkID(label string) string {
	return label + "-" + ksuid.New().String()
}

// Source identifies one input document and the label its chunks carry.
type Source struct {
	Path  string `yaml:"path" json:"path"`
	Label string `yaml:"label" json:"label"`
}

// Chunk is a contiguous, overlapping fragment of a source document.
// Embedding is nil until the embedding stage succeeds for the chunk's batch.
type Chunk struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// HasEmbedding reports whether a vector has been attached.
func (c *Chunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// SearchResult pairs a chunk with its similarity to a query.
type SearchResult struct {
	Chunk *Chunk
	Score float32
}
