// Package badger stores chunk collections in an embedded BadgerDB database.
//
// Chunks are kept under position-ordered keys so a collection loads back in
// the order it was written, with a secondary index from chunk ID to position.
// Writing a collection first drops the previous one.
//
//	backend, err := badger.OpenBackend("data/index", false)
//	repo, err := badger.NewChunkRepository(backend)
//	err = repo.WriteChunks(ctx, chunks)
//	hits, err := repo.FindSimilar(ctx, queryVector, 0.3, 5)
package badger
