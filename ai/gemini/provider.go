package gemini

import (
	"context"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"github.com/poiesic/regindex/ai"
	"google.golang.org/api/option"
)

// Provider implements ai.Provider on top of a genai client.
type Provider struct {
	client   *genai.Client
	embedder *Embedder
	logger   *slog.Logger
}

// NewProvider validates config and opens a Gemini client authenticated with
// config.APIKey. EmbeddingHost, when set, overrides the service endpoint.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction.
func NewProvider(ctx context.Context, config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.EmbeddingHost != "" {
		opts = append(opts, option.WithEndpoint(config.EmbeddingHost))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &Provider{
		client:   client,
		embedder: newEmbedder(client, config.EmbeddingModel),
		logger:   slog.Default().With("component", "gemini-provider", "model", config.EmbeddingModel),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close shuts down the underlying gRPC connections.
func (p *Provider) Close() error {
	p.logger.Debug("closing Gemini provider")
	return p.client.Close()
}
