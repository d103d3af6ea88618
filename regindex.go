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


package regindex

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/regindex/ai"
	"github.com/poiesic/regindex/ai/gemini"
	"github.com/poiesic/regindex/ai/openai"
	"github.com/poiesic/regindex/ingestion"
	"github.com/poiesic/regindex/search"
	"github.com/poiesic/regindex/storage"
	"github.com/poiesic/regindex/storage/badger"
)

// Index ties an embedding provider to a Badger-backed chunk collection.
// Pipelines created from an Index write into its collection and searchers
// read from it.
type Index struct {
	backend      *badger.Backend
	repo         *badger.ChunkRepository
	provider     ai.Provider
	ownsProvider bool
	logger       *slog.Logger
}

// IndexOption configures an Index.
type IndexOption func(*indexOptions)

type indexOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
	logger   *slog.Logger
}

// WithAIConfig sets the configuration used to build the embedding provider.
func WithAIConfig(config *ai.Config) IndexOption {
	return func(o *indexOptions) {
		o.aiConfig = config
	}
}

// WithProvider uses an existing provider instead of building one.
// The caller keeps ownership; Close does not close it.
func WithProvider(provider ai.Provider) IndexOption {
	return func(o *indexOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps the collection in memory. The path is ignored.
func WithInMemory() IndexOption {
	return func(o *indexOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) IndexOption {
	return func(o *indexOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewProvider builds the embedding provider named by config.Provider.
func NewProvider(ctx context.Context, config *ai.Config) (ai.Provider, error) {
	if config == nil {
		return nil, errors.New("ai config required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Provider {
	case ai.ProviderOpenAI:
		return openai.NewProvider(config)
	default:
		return gemini.NewProvider(ctx, config)
	}
}

// Open opens (or creates) the collection at filePath.
func Open(ctx context.Context, filePath string, opts ...IndexOption) (*Index, error) {
	options := &indexOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	ownsProvider := false
	if provider == nil {
		provider, err = NewProvider(ctx, options.aiConfig)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
		ownsProvider = true
	}

	return &Index{
		backend:      backend,
		repo:         repo,
		provider:     provider,
		ownsProvider: ownsProvider,
		logger:       options.logger.With("component", "index"),
	}, nil
}

// Close releases the provider (if the Index built it) and the storage.
func (ix *Index) Close() error {
	if ix.ownsProvider {
		if err := ix.provider.Close(); err != nil {
			ix.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := ix.repo.Close(); err != nil {
		ix.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	if err := ix.backend.Close(); err != nil {
		ix.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Repository returns the chunk collection.
func (ix *Index) Repository() storage.ChunkRepository {
	return ix.repo
}

// Provider returns the embedding provider.
func (ix *Index) Provider() ai.Provider {
	return ix.provider
}

// NewPipeline creates an ingestion pipeline that writes into this index.
// Additional writers given in opts receive the same collection.
func (ix *Index) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	all := append([]ingestion.Option{ingestion.WithWriter(ix.repo)}, opts...)
	return ingestion.NewPipeline(ix.provider, all...)
}

// NewSearcher creates a searcher over this index.
func (ix *Index) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(ix.provider.Embedder(), ix.repo, opts...)
}
