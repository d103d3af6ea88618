// Package mock provides test double implementations of AI service interfaces.
//
// The mocks let tests run without network access to an embedding service and
// give controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Default behavior: deterministic unit vectors derived from the text
//	mockProvider := mock.NewMockProvider()
//	vec, err := mockProvider.Embedder().EmbedText(ctx, "test", ai.TaskRetrievalQuery)
//
//	// Custom behavior injection
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string, task ai.TaskType) ([][]float32, error) {
//	    return nil, errors.New("quota exceeded")
//	}
//
//	// Assertions
//	count := embedder.CallCount()
//	tasks := embedder.Tasks()
package mock
