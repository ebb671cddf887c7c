package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/promptclass/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder turns prompts and category keywords into vectors through an
// OpenAI-compatible /embeddings endpoint.
//
// Both paths go through one batch call so a prompt and a keyword with the
// same text receive the same vector.
type Embedder struct {
	client embeddings.Embedder
	model  string
	logger *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	// Local servers (Ollama, LocalAI) ignore the token but the client wants one.
	llm, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating embedding client for %s: %w", config.EmbeddingHost, err)
	}

	client, err := embeddings.NewEmbedder(llm, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return &Embedder{
		client: client,
		model:  config.EmbeddingModel,
		logger: slog.Default().With("component", "openai-embedder", "model", config.EmbeddingModel),
	}, nil
}

// EmbedText embeds one prompt.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("expected 1 embedding from %s, got %d", e.model, len(vecs))
	}
	return vecs[0], nil
}

// EmbedTexts embeds keywords in one request per langchaingo batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vecs, err := e.client.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("embedding request failed", "texts", len(texts), "err", err)
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings from %s, got %d", len(texts), e.model, len(vecs))
	}
	e.logger.Debug("embedded texts", "texts", len(texts))
	return vecs, nil
}
