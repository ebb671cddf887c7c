package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity scoring.
// Implementations must be thread-safe for concurrent use and deterministic for
// identical input within a process lifetime, since keyword vectors are cached.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Used for the prompt being classified.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Used for keyword vocabularies.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingProvider owns an Embedder together with any resources it holds
// (HTTP clients, loaded ONNX sessions).
type EmbeddingProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Model identifies the embedding model. Vectors produced by different
	// models are never comparable, so caches key on this value.
	Model() string

	// Close releases resources held by the provider and its embedder.
	// After Close is called, the provider and its embedder should not be used.
	Close() error
}
