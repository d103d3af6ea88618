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


// Package search retrieves the chunks of a persisted collection that are
// closest to a natural-language query.
//
// The query is embedded with the retrieval-query task hint and compared
// against every chunk that carries an embedding using cosine similarity.
// Stores that implement storage.VectorSearcher rank chunks themselves;
// for plain collections the Searcher scores chunks on a bounded worker
// pool. Chunks without an embedding are never returned.
//
// FormatContext renders results as the labelled context block handed to a
// downstream answer generator.
package search
