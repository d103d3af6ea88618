package ai

import "context"

// Embedder generates vector embeddings from text for semantic retrieval.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The task hint tells the service how the vector will be used.
	EmbedText(ctx context.Context, text string, task TaskType) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in one
	// service call. The returned slice is in the same order as the input texts.
	// Returns an error if the call fails as a whole.
	EmbedTexts(ctx context.Context, texts []string, task TaskType) ([][]float32, error)
}

// Provider owns an embedding service and the client resources behind it.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
