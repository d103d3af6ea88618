package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/regindex/ai"
	"github.com/poiesic/regindex/ai/mock"
	"github.com/poiesic/regindex/chunking"
	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/embedding"
	"github.com/poiesic/regindex/storage"
	"github.com/poiesic/regindex/storage/jsonfile"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureWriter records the collection it is given.
type captureWriter struct {
	chunks []*core.Chunk
	calls  int
	err    error
}

func (w *captureWriter) WriteChunks(ctx context.Context, chunks []*core.Chunk) error {
	w.calls++
	w.chunks = chunks
	return w.err
}

func writeDoc(t *testing.T, fs afero.Fs, path, text string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(text), 0644))
}

func newTestPipeline(t *testing.T, provider ai.Provider, opts ...Option) *Pipeline {
	t.Helper()
	base := []Option{WithBatcherOptions(embedding.WithPause(0))}
	p, err := NewPipeline(provider, append(base, opts...)...)
	require.NoError(t, err)
	return p
}

func TestNewPipelineRequiresProvider(t *testing.T) {
	_, err := NewPipeline(nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}

func TestNewPipelineRejectsBadOptions(t *testing.T) {
	_, err := NewPipeline(mock.NewMockProvider(), WithBatcherOptions(embedding.WithBatchSize(0)))
	assert.ErrorIs(t, err, embedding.ErrInvalidBatchSize)

	_, err = NewPipeline(mock.NewMockProvider(), WithWriter(nil))
	assert.ErrorIs(t, err, storage.ErrWriterRequired)
}

func TestRunSkipsMissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "docs/PDPA_SL.md", "Section 1\nShort title\n\nSection 2\nApplication")
	w := &captureWriter{}
	p := newTestPipeline(t, mock.NewMockProvider(), WithFilesystem(fs), WithBaseDir("docs"), WithWriter(w))

	result, err := p.Run(context.Background(), []core.Source{
		{Path: "GDPR.md", Label: "GDPR"},
		{Path: "PDPA_SL.md", Label: "PDPA SL"},
	})

	require.NoError(t, err)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "GDPR", result.Skipped[0].Label)
	assert.ErrorIs(t, result.Skipped[0], ErrSourceNotFound)

	require.NotEmpty(t, result.Chunks)
	for _, c := range result.Chunks {
		assert.Equal(t, "PDPA SL", c.Source)
		assert.True(t, c.HasEmbedding())
	}
	assert.Equal(t, map[string]int{"PDPA SL": len(result.Chunks)}, result.PerSource)
	assert.Equal(t, 1, w.calls)
	assert.Equal(t, result.Chunks, w.chunks)
}

func TestRunConcatenatesSourcesInOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "a.md", strings.Repeat("alpha line\n", 30))
	writeDoc(t, fs, "b.md", strings.Repeat("beta line\n", 30))
	chunker, err := chunking.New(chunking.WithMaxChars(100), chunking.WithOverlap(20))
	require.NoError(t, err)

	m := mock.NewMockEmbedder()
	p := newTestPipeline(t, mock.NewMockProviderWithEmbedder(m),
		WithFilesystem(fs),
		WithChunker(chunker),
		WithBatcherOptions(embedding.WithBatchSize(4)),
	)

	result, err := p.Run(context.Background(), []core.Source{
		{Path: "a.md", Label: "A"},
		{Path: "b.md", Label: "B"},
	})
	require.NoError(t, err)

	seenB := false
	for _, c := range result.Chunks {
		if c.Source == "B" {
			seenB = true
		} else {
			assert.False(t, seenB, "A chunks must precede B chunks")
		}
	}
	assert.True(t, seenB)
	assert.Equal(t, result.PerSource["A"]+result.PerSource["B"], len(result.Chunks))

	// One embedding pass over the combined sequence
	expectedCalls := (len(result.Chunks) + 3) / 4
	assert.Equal(t, expectedCalls, m.CallCount())
	for _, task := range m.Tasks() {
		assert.Equal(t, ai.TaskRetrievalDocument, task)
	}
}

func TestRunKeepsBareChunksWhenEmbeddingFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "GDPR.md", "Article 1\nArticle 2")
	m := mock.NewMockEmbedder()
	m.EmbedTextsFunc = func(ctx context.Context, texts []string, task ai.TaskType) ([][]float32, error) {
		return nil, errors.New("permission denied: invalid API key")
	}
	w := &captureWriter{}
	p := newTestPipeline(t, mock.NewMockProviderWithEmbedder(m), WithFilesystem(fs), WithWriter(w))

	result, err := p.Run(context.Background(), []core.Source{{Path: "GDPR.md", Label: "GDPR"}})

	require.NoError(t, err)
	require.Len(t, result.Chunks, 1)
	assert.False(t, result.Chunks[0].HasEmbedding())
	assert.Equal(t, 1, result.Embedding.Bare)
	assert.ErrorIs(t, result.Embedding.Err(), embedding.ErrBatchFailed)
	assert.Equal(t, result.Chunks, w.chunks, "bare chunks are still persisted")
}

func TestRunReturnsWriterError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "GDPR.md", "Article 1")
	good := &captureWriter{}
	bad := &captureWriter{err: errors.New("read-only filesystem")}
	p := newTestPipeline(t, mock.NewMockProvider(), WithFilesystem(fs), WithWriter(good), WithWriter(bad))

	result, err := p.Run(context.Background(), []core.Source{{Path: "GDPR.md", Label: "GDPR"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persisting chunks")
	assert.Contains(t, err.Error(), "read-only filesystem")
	require.NotNil(t, result)
	assert.Len(t, result.Chunks, 1)
	assert.Equal(t, 1, good.calls)
	assert.Equal(t, 1, bad.calls)
}

func TestRunNormalizesLineEndings(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "PDPA_2025.md", "Part I\r\nPreliminary\r\n")
	p := newTestPipeline(t, mock.NewMockProvider(), WithFilesystem(fs))

	result, err := p.Run(context.Background(), []core.Source{{Path: "PDPA_2025.md", Label: "PDPA 2025"}})

	require.NoError(t, err)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, "Part I\nPreliminary", result.Chunks[0].Content)
}

func TestRunInvalidSourceIsSkipped(t *testing.T) {
	p := newTestPipeline(t, mock.NewMockProvider(), WithFilesystem(afero.NewMemMapFs()))

	result, err := p.Run(context.Background(), []core.Source{{Path: "", Label: "GDPR"}})

	require.NoError(t, err)
	require.Len(t, result.Skipped, 1)
	assert.ErrorIs(t, result.Skipped[0], core.ErrInvalidSource)
	assert.Empty(t, result.Chunks)
}

func TestRunWritesJSONCollection(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "GDPR.md", "Article 5\nPrinciples relating to processing")
	w := jsonfile.NewWriter("lib/data/chunks.json", jsonfile.WithFilesystem(fs))
	p := newTestPipeline(t, mock.NewMockProvider(), WithFilesystem(fs), WithWriter(w))

	result, err := p.Run(context.Background(), []core.Source{{Path: "GDPR.md", Label: "GDPR"}})
	require.NoError(t, err)

	loaded, err := jsonfile.NewReader("lib/data/chunks.json", jsonfile.WithFilesystem(fs)).LoadChunks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Chunks, loaded)
}

func TestRunNoSources(t *testing.T) {
	w := &captureWriter{}
	p := newTestPipeline(t, mock.NewMockProvider(), WithFilesystem(afero.NewMemMapFs()), WithWriter(w))

	result, err := p.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, result.Chunks)
	assert.Equal(t, 1, w.calls, "an empty collection is still written")
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	require.Len(t, sources, 3)
	assert.Equal(t, core.Source{Path: "GDPR.md", Label: "GDPR"}, sources[0])
	assert.Equal(t, core.Source{Path: "PDPA_2025.md", Label: "PDPA 2025"}, sources[1])
	assert.Equal(t, core.Source{Path: "PDPA_SL.md", Label: "PDPA SL"}, sources[2])
}
