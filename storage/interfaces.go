package storage

import (
	"context"
)

// VectorCache persists keyword embeddings keyed by (model, text).
// Vectors from different models never mix: every operation is scoped to one model.
// Implementations must be thread-safe and support concurrent access.
type VectorCache interface {
	// GetVectors looks up a vector for each text.
	// The result is index-aligned with texts; entries that are not cached are nil.
	GetVectors(ctx context.Context, model string, texts []string) ([][]float32, error)

	// PutVectors stores vectors[i] for texts[i], replacing existing entries.
	// Returns ErrLengthMismatch if the slices differ in length.
	PutVectors(ctx context.Context, model string, texts []string, vectors [][]float32) error

	// Count returns the number of vectors cached for a model.
	Count(ctx context.Context, model string) (int, error)

	// Purge removes every vector cached for a model.
	Purge(ctx context.Context, model string) error

	// Close closes the storage backend and releases resources.
	Close() error
}
