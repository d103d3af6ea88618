package mock

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/poiesic/regindex/ai"
	"github.com/poiesic/regindex/core"
)

// DefaultDimension is the length of vectors produced by the default behavior.
const DefaultDimension = 384

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string, task ai.TaskType) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string, task ai.TaskType) ([][]float32, error)

	mu        sync.Mutex
	callCount int
	tasks     []ai.TaskType
}

var _ ai.Embedder = (*MockEmbedder)(nil)

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

func (m *MockEmbedder) record(task ai.TaskType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.tasks = append(m.tasks, task)
}

// EmbedText generates a deterministic embedding based on text hash.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string, task ai.TaskType) ([]float32, error) {
	m.record(task)

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text, task)
	}
	return Vector(text, DefaultDimension), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string, task ai.TaskType) ([][]float32, error) {
	m.record(task)

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts, task)
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = Vector(text, DefaultDimension)
	}
	return embeddings, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Tasks returns the task hints received, in call order.
func (m *MockEmbedder) Tasks() []ai.TaskType {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ai.TaskType(nil), m.tasks...)
}

// Reset clears the call history and injected behavior.
func (m *MockEmbedder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.tasks = nil
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// Vector creates a deterministic unit-length embedding vector from text.
// It uses an FNV hash so the same text always produces the same vector.
func Vector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	return core.NormalizeVector(vector)
}
