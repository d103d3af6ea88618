package mock

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/poiesic/regindex/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorIsDeterministicAndNormalized(t *testing.T) {
	a := Vector("article 5", 16)
	b := Vector("article 5", 16)
	c := Vector("article 6", 16)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestMockEmbedderRecordsCalls(t *testing.T) {
	ctx := context.Background()
	m := NewMockEmbedder()

	vecs, err := m.EmbedTexts(ctx, []string{"a", "b"}, ai.TaskRetrievalDocument)
	require.NoError(t, err)
	assert.Len(t, vecs, 2)
	assert.Len(t, vecs[0], DefaultDimension)

	_, err = m.EmbedText(ctx, "q", ai.TaskRetrievalQuery)
	require.NoError(t, err)

	assert.Equal(t, 2, m.CallCount())
	assert.Equal(t, []ai.TaskType{ai.TaskRetrievalDocument, ai.TaskRetrievalQuery}, m.Tasks())

	m.Reset()
	assert.Zero(t, m.CallCount())
	assert.Empty(t, m.Tasks())
}

func TestMockEmbedderInjectedFailure(t *testing.T) {
	m := NewMockEmbedder()
	m.EmbedTextsFunc = func(ctx context.Context, texts []string, task ai.TaskType) ([][]float32, error) {
		return nil, errors.New("boom")
	}

	_, err := m.EmbedTexts(context.Background(), []string{"x"}, ai.TaskRetrievalDocument)
	assert.EqualError(t, err, "boom")
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider()
	mp := p.(*MockProvider)

	assert.Same(t, mp.GetMockEmbedder(), p.Embedder())
	require.NoError(t, p.Close())
	assert.True(t, mp.Closed())
}
