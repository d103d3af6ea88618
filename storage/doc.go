// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the persistence abstraction for chunk collections.
//
// The indexing pipeline hands its finished collection to a ChunkWriter; the
// search side reads it back through a ChunkReader. Two backends exist:
//
//   - storage/jsonfile: a pretty-printed JSON array, the format web front
//     ends load directly
//   - storage/badger: an embedded BadgerDB store with point lookups and
//     vector search
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces where the caller only needs the
// abstraction:
//
//	repo, err := badger.NewChunkRepository(backend)  // returns storage.ChunkRepository
//
// # Integrity
//
// Writers call ValidateCollection before touching storage. A duplicate chunk
// ID fails the write with ErrDuplicateKey.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support.
package storage
