package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository on an open backend.
// The repository does not own the backend; Close leaves it open.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	if backend == nil {
		return nil, errors.New("badger: backend required")
	}
	return &ChunkRepository{backend: backend}, nil
}

// Close is a no-op; the backend is closed by its owner.
func (r *ChunkRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WriteChunks replaces the stored collection with chunks.
// The collection is validated first; an invalid collection leaves the
// previous one untouched. New keys are written before keys the new
// collection does not reuse are deleted, so a failed write never leaves
// the store empty.
func (r *ChunkRepository) WriteChunks(ctx context.Context, chunks []*core.Chunk) error {
	if err := storage.ValidateCollection(chunks); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	previous, err := r.backend.ListKeys(chunkPrefix, chunkIDPrefix)
	if err != nil {
		return fmt.Errorf("listing previous collection: %w", err)
	}

	written := make(map[string]struct{}, 2*len(chunks))
	err = r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for i, chunk := range chunks {
			pos := uint64(i)
			chunkKey, idKey := makeChunkKey(pos), makeChunkIDKey(chunk.ID)
			if err := wb.Set(chunkKey, storage.MarshalChunk(chunk)); err != nil {
				return err
			}
			if err := wb.Set(idKey, encodeUint64(pos)); err != nil {
				return err
			}
			written[string(chunkKey)] = struct{}{}
			written[string(idKey)] = struct{}{}
		}
		return wb.Set([]byte(chunkCountKey), encodeUint64(uint64(len(chunks))))
	})
	if err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}

	var stale [][]byte
	for _, key := range previous {
		if _, ok := written[string(key)]; !ok {
			stale = append(stale, key)
		}
	}
	if err := r.backend.DeleteKeys(stale); err != nil {
		return fmt.Errorf("removing stale chunks: %w", err)
	}

	r.backend.logger.Debug("wrote chunk collection", "count", len(chunks), "removed", len(stale))
	return nil
}

// LoadChunks returns the stored collection in order.
// Returns storage.ErrNotFound if no collection has been written.
func (r *ChunkRepository) LoadChunks(ctx context.Context) ([]*core.Chunk, error) {
	var chunks []*core.Chunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		count, err := readCount(tx)
		if err != nil {
			return err
		}
		chunks = make([]*core.Chunk, 0, count)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunk, err := readChunk(iter.Item())
			if err != nil {
				return err
			}
			chunks = append(chunks, chunk)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// GetChunk retrieves a single chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id string) (*core.Chunk, error) {
	var chunk *core.Chunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeChunkIDKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		posBytes, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		item, err = tx.Get(makeChunkKey(decodeUint64(posBytes)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		chunk, err = readChunk(item)
		return err
	}, false)

	return chunk, err
}

// CountChunks returns the size of the stored collection, or zero when none
// has been written.
func (r *ChunkRepository) CountChunks(ctx context.Context) (int, error) {
	var count uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		count, err = readCount(tx)
		return err
	}, false)

	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	return int(count), err
}

func readCount(tx *badger.Txn) (uint64, error) {
	item, err := tx.Get([]byte(chunkCountKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, storage.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return 0, err
	}
	return decodeUint64(val), nil
}
