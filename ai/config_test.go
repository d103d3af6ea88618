package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "models/gemini-embedding-001", cfg.EmbeddingModel)
	assert.Empty(t, cfg.EmbeddingHost)
	assert.Empty(t, cfg.APIKey)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, ProviderGemini, cfg.Provider)
		assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider(ProviderOpenAI),
			WithEmbeddingHost("http://custom:8080/v1"),
			WithEmbeddingModel("custom-embed"),
			WithAPIKey("secret"),
		)

		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "custom-embed", cfg.EmbeddingModel)
		assert.Equal(t, "secret", cfg.APIKey)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name             string
		provider         string
		host             string
		expectedProvider string
		expectedHost     string
	}{
		{"openai already has /v1", "openai", "http://localhost:11434/v1", "openai", "http://localhost:11434/v1"},
		{"openai missing /v1", "openai", "http://localhost:11434", "openai", "http://localhost:11434/v1"},
		{"openai trailing slash", "openai", "http://localhost:11434/", "openai", "http://localhost:11434/v1"},
		{"openai empty host", "openai", "", "openai", ""},
		{"gemini host untouched", "gemini", "https://example.test", "gemini", "https://example.test"},
		{"provider case folded", " Gemini ", "", "gemini", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Provider: tt.provider, EmbeddingHost: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expectedProvider, cfg.Provider)
			assert.Equal(t, tt.expectedHost, cfg.EmbeddingHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid gemini config", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("key"))

		assert.NoError(t, cfg.Validate())
	})

	t.Run("valid openai config normalizes host", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider(ProviderOpenAI),
			WithEmbeddingHost("http://localhost:11434"),
		)

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("gemini without api key", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("   "))

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "APIKey")
	})

	t.Run("openai without host", func(t *testing.T) {
		cfg := NewConfig(WithProvider(ProviderOpenAI))

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingHost")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("key"), WithEmbeddingModel(""))

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("missing provider", func(t *testing.T) {
		cfg := NewConfig(WithProvider(""))

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Provider")
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := NewConfig(WithProvider("cohere"))

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cohere")
	})
}

func TestTaskTypeString(t *testing.T) {
	assert.Equal(t, "retrieval_document", TaskRetrievalDocument.String())
	assert.Equal(t, "retrieval_query", TaskRetrievalQuery.String())
	assert.Equal(t, "unspecified", TaskUnspecified.String())
}
