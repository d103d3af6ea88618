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


package ai

import (
	"errors"
	"strings"
)

const (
	// ProviderGemini selects the Google Gemini embedding API.
	ProviderGemini = "gemini"
	// ProviderOpenAI selects an OpenAI-compatible embedding API.
	ProviderOpenAI = "openai"
)

// DefaultEmbeddingModel is the Gemini model the regulation corpus is embedded with.
const DefaultEmbeddingModel = "models/gemini-embedding-001"

// Config holds configuration for embedding service providers.
type Config struct {
	// Provider names the embedding backend: "gemini" or "openai".
	Provider string

	// EmbeddingHost is the base URL for the embedding service API.
	// Required for "openai"; optional endpoint override for "gemini".
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "models/gemini-embedding-001", "text-embedding-3-small"
	EmbeddingModel string

	// APIKey is the credential presented to the embedding service.
	// Required for "gemini". Local OpenAI-compatible servers may leave it empty.
	APIKey string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the embedding backend.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIKey sets the embedding service credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// DefaultConfig returns a Config targeting the Gemini embedding API.
// The API key is left empty and must be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGemini,
		EmbeddingModel: DefaultEmbeddingModel,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	)
//
// Example with a local OpenAI-compatible server:
//
//	cfg := NewConfig(
//	    WithProvider(ProviderOpenAI),
//	    WithEmbeddingHost("http://localhost:11434"),
//	    WithEmbeddingModel("embeddinggemma"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Provider names are lowercased and OpenAI-compatible hosts get the /v1
// suffix most such servers (Ollama, LocalAI, vLLM) expect.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.Provider == ProviderOpenAI && c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	switch c.Provider {
	case ProviderGemini:
		if c.APIKey == "" {
			return errors.New("ai config: APIKey is required for the gemini provider")
		}
	case ProviderOpenAI:
		if c.EmbeddingHost == "" {
			return errors.New("ai config: EmbeddingHost is required for the openai provider")
		}
	case "":
		return errors.New("ai config: Provider is required")
	default:
		return errors.New("ai config: unknown Provider " + c.Provider)
	}
	return nil
}
