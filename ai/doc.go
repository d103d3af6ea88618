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


// Package ai provides abstractions for the embedding services used by regindex.
//
// The core chunking and embedding pipeline depends on the Embedder interface
// only. Credentials and endpoints are bound when a Provider is constructed,
// never read from process globals inside the pipeline.
//
// # Implementation Packages
//
//   - ai/gemini: Google Gemini embeddings with retrieval task hints
//   - ai/openai: OpenAI-compatible embedding APIs via langchaingo
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (gemini.NewProvider, openai.NewProvider, etc.) return
// INTERFACE types so callers never couple to a concrete backend.
//
//	provider, err := gemini.NewProvider(ctx, config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable assertions and behavior injection via the mock's public fields.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(key))
//	provider, err := gemini.NewProvider(ctx, config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedTexts(ctx, texts, ai.TaskRetrievalDocument)
package ai
