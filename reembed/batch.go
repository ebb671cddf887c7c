package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/promptclass/ai"
	"github.com/poiesic/promptclass/storage"
)

// BatchProcessor embeds batches of keywords and stores the vectors.
type BatchProcessor struct {
	cache          storage.VectorCache
	embedder       ai.Embedder
	model          string
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// model: cache namespace the vectors are stored under
// maxRetries: maximum number of attempts for each embedding call
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(cache storage.VectorCache, embedder ai.Embedder, model string, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		cache:          cache,
		embedder:       embedder,
		model:          model,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds keywords and writes their vectors to the cache.
func (bp *BatchProcessor) Process(ctx context.Context, keywords []string) error {
	if len(keywords) == 0 {
		return nil
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, keywords)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(keywords) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(keywords), len(embeddings))
	}

	if err := bp.cache.PutVectors(ctx, bp.model, keywords, embeddings); err != nil {
		return fmt.Errorf("failed to store vectors: %w", err)
	}

	return nil
}
