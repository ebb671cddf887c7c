package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Zero(t, cfg.MaxLength)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
	})

	t.Run("with custom host and model", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://custom:8080/v1"),
			WithEmbeddingModel("nomic-embed-text"),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
	})

	t.Run("with local provider", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider(ProviderFastEmbed),
			WithEmbeddingModel(DefaultFastEmbedModel),
			WithCacheDir("/tmp/models"),
			WithMaxLength(256),
		)

		assert.Equal(t, ProviderFastEmbed, cfg.Provider)
		assert.Equal(t, "BAAI/bge-small-en-v1.5", cfg.EmbeddingModel)
		assert.Equal(t, "/tmp/models", cfg.CacheDir)
		assert.Equal(t, 256, cfg.MaxLength)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		provider ProviderKind
		host     string
		expected string
	}{
		{
			name:     "already has /v1",
			provider: ProviderOpenAI,
			host:     "http://localhost:11434/v1",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "missing /v1",
			provider: ProviderOpenAI,
			host:     "http://localhost:11434",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "has trailing slash",
			provider: ProviderOpenAI,
			host:     "http://localhost:11434/",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "empty host",
			provider: ProviderOpenAI,
			host:     "",
			expected: "",
		},
		{
			name:     "empty provider defaults to openai",
			provider: "",
			host:     "http://embed:8080",
			expected: "http://embed:8080/v1",
		},
		{
			name:     "local provider leaves host alone",
			provider: ProviderFastEmbed,
			host:     "http://embed:8080",
			expected: "http://embed:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Provider:      tt.provider,
				EmbeddingHost: tt.host,
			}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.EmbeddingHost)
			assert.NotEmpty(t, cfg.Provider)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:  "http://localhost:11434",
			EmbeddingModel: "embeddinggemma",
		}

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := &Config{
			Provider:       ProviderOpenAI,
			EmbeddingModel: "embeddinggemma",
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingHost")
	})

	t.Run("local provider needs no host", func(t *testing.T) {
		cfg := &Config{
			Provider:       ProviderFastEmbed,
			EmbeddingModel: DefaultFastEmbedModel,
		}

		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost: "http://localhost:11434/v1",
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := &Config{
			Provider:       "spacy",
			EmbeddingModel: "en_core_web_md",
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "spacy")
	})

	t.Run("negative max length", func(t *testing.T) {
		cfg := NewConfig(WithMaxLength(-1))

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MaxLength")
	})
}

func TestConfigValidate_Integration(t *testing.T) {
	cfg := NewConfig()
	err := cfg.Validate()
	require.NoError(t, err)

	cfg = DefaultConfig()
	err = cfg.Validate()
	require.NoError(t, err)
}
