package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/poiesic/regindex/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderRequiresAPIKey(t *testing.T) {
	_, err := NewProvider(context.Background(), ai.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIKey is required")
}

func TestNewProviderBindsTaskTypes(t *testing.T) {
	p, err := NewProvider(context.Background(), ai.NewConfig(ai.WithAPIKey("test-key")))
	require.NoError(t, err)
	defer p.Close()

	e, ok := p.Embedder().(*Embedder)
	require.True(t, ok)

	assert.Equal(t, genai.TaskTypeRetrievalDocument, e.model(ai.TaskRetrievalDocument).TaskType)
	assert.Equal(t, genai.TaskTypeRetrievalQuery, e.model(ai.TaskRetrievalQuery).TaskType)
	assert.Equal(t, genai.TaskTypeUnspecified, e.model(ai.TaskType(99)).TaskType)
	assert.NotSame(t, e.model(ai.TaskRetrievalDocument), e.model(ai.TaskRetrievalQuery))
}

func TestEmbedTextsEmptyInput(t *testing.T) {
	p, err := NewProvider(context.Background(), ai.NewConfig(ai.WithAPIKey("test-key")))
	require.NoError(t, err)
	defer p.Close()

	vectors, err := p.Embedder().EmbedTexts(context.Background(), nil, ai.TaskRetrievalDocument)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}
