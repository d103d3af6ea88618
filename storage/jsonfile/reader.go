package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/storage"
	"github.com/spf13/afero"
)

// Reader loads a collection written by Writer.
type Reader struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

var _ storage.ChunkReader = (*Reader)(nil)

// NewReader creates a Reader for path. An empty path means DefaultPath.
func NewReader(path string, opts ...Option) *Reader {
	if path == "" {
		path = DefaultPath
	}
	o := applyOptions(opts)
	return &Reader{
		fs:     o.fs,
		path:   path,
		logger: o.logger.With("component", "json-reader"),
	}
}

// LoadChunks reads and decodes the collection file.
// Returns storage.ErrNotFound if the file does not exist.
func (r *Reader) LoadChunks(ctx context.Context) ([]*core.Chunk, error) {
	exists, err := afero.Exists(r.fs, r.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, r.path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		return nil, err
	}

	var chunks []*core.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", storage.ErrSerializationFailed, r.path, err)
	}

	r.logger.Debug("loaded chunk collection", "path", r.path, "chunks", len(chunks))
	return chunks, nil
}
