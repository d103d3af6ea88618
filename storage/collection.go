package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/poiesic/regindex/core"
)

// EnsureUniqueIDs reports the first pair of chunks sharing an ID.
// IDs are random, so a collision points at a generator fault rather than
// anything a caller should paper over.
func EnsureUniqueIDs(chunks []*core.Chunk) error {
	seen := make(map[string]int, len(chunks))
	for i, c := range chunks {
		if c == nil {
			continue
		}
		if j, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: chunk id %q at positions %d and %d", ErrDuplicateKey, c.ID, j, i)
		}
		seen[c.ID] = i
	}
	return nil
}

// ValidateCollection checks every chunk with core.ValidateChunk and then
// checks ID uniqueness.
func ValidateCollection(chunks []*core.Chunk) error {
	for i, c := range chunks {
		if err := core.ValidateChunk(c); err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}
	}
	return EnsureUniqueIDs(chunks)
}

type multiWriter struct {
	writers []ChunkWriter
}

// MultiWriter returns a ChunkWriter that writes the collection to every
// writer in turn. All writers are attempted; their errors are joined.
func MultiWriter(writers ...ChunkWriter) ChunkWriter {
	return &multiWriter{writers: writers}
}

func (m *multiWriter) WriteChunks(ctx context.Context, chunks []*core.Chunk) error {
	var errs []error
	for _, w := range m.writers {
		if w == nil {
			errs = append(errs, ErrWriterRequired)
			continue
		}
		if err := w.WriteChunks(ctx, chunks); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
