package jsonfile

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunks() []*core.Chunk {
	return []*core.Chunk{
		{ID: "GDPR-a", Content: "Article 17\nRight to erasure", Source: "GDPR", Embedding: []float32{0.5, -1}},
		{ID: "PDPA SL-b", Content: "Section 5 <controller> & ‘processor’", Source: "PDPA SL"},
	}
}

func TestWriterWritesIndentedArray(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter("", WithFilesystem(fs))
	assert.Equal(t, DefaultPath, w.Path())

	require.NoError(t, w.WriteChunks(context.Background(), testChunks()))

	data, err := afero.ReadFile(fs, DefaultPath)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, len(text) > 0 && text[:8] == "[\n  {\n  ", "unexpected prefix: %q", text)
	assert.Contains(t, text, `"source": "PDPA SL"`)
	assert.Contains(t, text, "<controller> & ‘processor’")

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Contains(t, raw[0], "embedding")
	assert.NotContains(t, raw[1], "embedding", "bare chunks omit the field")

	exists, err := afero.Exists(fs, DefaultPath+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriterManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter("out/chunks.json", WithFilesystem(fs))
	assert.Nil(t, w.Manifest())

	require.NoError(t, w.WriteChunks(context.Background(), testChunks()))

	data, err := afero.ReadFile(fs, "out/chunks.json")
	require.NoError(t, err)
	h, err := blake2b.New(32, nil)
	require.NoError(t, err)
	h.Write(data)

	m := w.Manifest()
	require.NotNil(t, m)
	assert.Equal(t, "out/chunks.json", m.Path)
	assert.Equal(t, 2, m.Count)
	assert.Equal(t, 1, m.Embedded)
	assert.Equal(t, len(data), m.Bytes)
	assert.Equal(t, hex.EncodeToString(h.Sum(nil)), m.Digest)
}

func TestWriterEmptyCollection(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter("chunks.json", WithFilesystem(fs))

	require.NoError(t, w.WriteChunks(context.Background(), nil))

	data, err := afero.ReadFile(fs, "chunks.json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriterRejectsDuplicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter("chunks.json", WithFilesystem(fs))
	chunks := testChunks()
	chunks[1].ID = chunks[0].ID

	err := w.WriteChunks(context.Background(), chunks)
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	exists, err := afero.Exists(fs, "chunks.json")
	require.NoError(t, err)
	assert.False(t, exists, "nothing is written for an invalid collection")
}

func TestWriterCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWriter("chunks.json", WithFilesystem(afero.NewMemMapFs())).WriteChunks(ctx, testChunks())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReaderRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx := context.Background()
	chunks := testChunks()
	require.NoError(t, NewWriter("data/chunks.json", WithFilesystem(fs)).WriteChunks(ctx, chunks))

	loaded, err := NewReader("data/chunks.json", WithFilesystem(fs)).LoadChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, chunks, loaded)
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader("nope.json", WithFilesystem(afero.NewMemMapFs())).LoadChunks(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReaderCorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "chunks.json", []byte("{not json"), 0644))

	_, err := NewReader("chunks.json", WithFilesystem(fs)).LoadChunks(context.Background())
	assert.ErrorIs(t, err, storage.ErrSerializationFailed)
}

func TestReaderAcceptsForeignCollections(t *testing.T) {
	// Collections produced by other tools use float64 precision and may omit embeddings
	fs := afero.NewMemMapFs()
	doc := `[{"id":"GDPR-1","content":"a","source":"GDPR","embedding":[0.1,0.2]},{"id":"GDPR-2","content":"b","source":"GDPR"}]`
	require.NoError(t, afero.WriteFile(fs, "chunks.json", []byte(doc), 0644))

	loaded, err := NewReader("chunks.json", WithFilesystem(fs)).LoadChunks(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, []float32{0.1, 0.2}, loaded[0].Embedding)
	assert.Nil(t, loaded[1].Embedding)
}
