//go:build cgo

package fastembed

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	fe "github.com/anush008/fastembed-go"
	"github.com/poiesic/promptclass/ai"
)

// modelMapping maps friendly model names to fastembed model constants.
var modelMapping = map[string]fe.EmbeddingModel{
	"BAAI/bge-small-en-v1.5":                 fe.BGESmallENV15,
	"BAAI/bge-small-en":                      fe.BGESmallEN,
	"BAAI/bge-base-en-v1.5":                  fe.BGEBaseENV15,
	"BAAI/bge-base-en":                       fe.BGEBaseEN,
	"sentence-transformers/all-MiniLM-L6-v2": fe.AllMiniLML6V2,
}

// onnxModel is the subset of *fe.FlagEmbedding the provider uses.
type onnxModel interface {
	Embed(input []string, batchSize int) ([][]float32, error)
	Destroy() error
}

// Provider implements ai.EmbeddingProvider with a local ONNX model.
type Provider struct {
	model     onnxModel
	modelName string
	mu        sync.RWMutex
	logger    *slog.Logger
}

var _ ai.EmbeddingProvider = (*Provider)(nil)

// NewProvider loads the configured model, downloading it into CacheDir on first use.
//
// Returns ai.EmbeddingProvider interface to enforce abstraction.
func NewProvider(config *ai.Config) (ai.EmbeddingProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	model, ok := modelMapping[config.EmbeddingModel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, config.EmbeddingModel)
	}

	cacheDir := config.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(".", "local_cache")
	}
	maxLength := config.MaxLength
	if maxLength == 0 {
		maxLength = defaultMaxLength
	}
	showProgress := false

	flagEmbed, err := fe.NewFlagEmbedding(&fe.InitOptions{
		Model:                model,
		CacheDir:             cacheDir,
		MaxLength:            maxLength,
		ShowDownloadProgress: &showProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing fastembed: %w", err)
	}

	logger := slog.Default().With("component", "fastembed-provider")
	logger.Debug("loaded model", "model", config.EmbeddingModel, "cache_dir", cacheDir)

	return &Provider{
		model:     flagEmbed,
		modelName: config.EmbeddingModel,
		logger:    logger,
	}, nil
}

// Embedder returns the provider itself.
func (p *Provider) Embedder() ai.Embedder {
	return p
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.modelName
}

// EmbedText embeds a prompt. Prompts and keywords share one embedding
// function so identical text yields identical vectors.
func (p *Provider) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.model == nil {
		return nil, ErrProviderClosed
	}

	vectors, err := p.model.Embed([]string{text}, 1)
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("fastembed: expected 1 embedding, got %d", len(vectors))
	}
	return vectors[0], nil
}

// EmbedTexts embeds a batch of keywords.
func (p *Provider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.model == nil {
		return nil, ErrProviderClosed
	}

	p.logger.Debug("generating embeddings for texts", "count", len(texts))
	return p.model.Embed(texts, batchSize)
}

// Close releases the ONNX session. It is safe to call more than once.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.model == nil {
		return nil
	}
	err := p.model.Destroy()
	p.model = nil
	return err
}
