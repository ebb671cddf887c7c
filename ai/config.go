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
	"fmt"
	"strings"
)

// ProviderKind selects the embedding backend.
type ProviderKind string

const (
	// ProviderOpenAI talks to an OpenAI-compatible embeddings endpoint.
	ProviderOpenAI ProviderKind = "openai"
	// ProviderFastEmbed runs a local ONNX model in-process.
	ProviderFastEmbed ProviderKind = "fastembed"
)

// Default model identifiers per provider.
const (
	DefaultOpenAIModel    = "embeddinggemma"
	DefaultFastEmbedModel = "BAAI/bge-small-en-v1.5"
)

// Config holds configuration for embedding providers.
type Config struct {
	// Provider selects the embedding backend. Default: ProviderOpenAI.
	Provider ProviderKind

	// EmbeddingHost is the base URL for the embedding service API.
	// Only used by ProviderOpenAI.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "BAAI/bge-small-en-v1.5"
	EmbeddingModel string

	// CacheDir is where local model files are stored. Only used by ProviderFastEmbed.
	CacheDir string

	// MaxLength is the maximum input sequence length for local models.
	// Zero selects the provider default.
	MaxLength int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the embedding backend.
func WithProvider(kind ProviderKind) ConfigOption {
	return func(c *Config) {
		c.Provider = kind
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

// WithCacheDir sets the local model cache directory.
func WithCacheDir(dir string) ConfigOption {
	return func(c *Config) {
		c.CacheDir = dir
	}
}

// WithMaxLength sets the maximum input sequence length for local models.
func WithMaxLength(n int) ConfigOption {
	return func(c *Config) {
		c.MaxLength = n
	}
}

// DefaultConfig returns a Config with sensible defaults for a local OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderOpenAI,
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: DefaultOpenAIModel,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//   cfg := NewConfig(
//       WithEmbeddingHost("http://localhost:11434/v1"),
//       WithEmbeddingModel("nomic-embed-text"),
//   )
//
// Example with a local model:
//   cfg := NewConfig(
//       WithProvider(ProviderFastEmbed),
//       WithEmbeddingModel("BAAI/bge-small-en-v1.5"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.Provider == ProviderOpenAI && c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderOpenAI:
		if c.EmbeddingHost == "" {
			return errors.New("ai config: EmbeddingHost is required")
		}
	case ProviderFastEmbed:
	default:
		return fmt.Errorf("ai config: unknown provider %q", c.Provider)
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.MaxLength < 0 {
		return errors.New("ai config: MaxLength must not be negative")
	}
	return nil
}
