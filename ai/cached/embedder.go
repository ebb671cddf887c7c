// Package cached provides an ai.Embedder decorator that serves keyword
// vectors from a storage.VectorCache.
//
// Only EmbedTexts, the keyword path, goes through the cache. Prompts are
// embedded fresh on every call since they rarely repeat.
package cached

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/promptclass/ai"
	"github.com/poiesic/promptclass/storage"
)

// ErrCacheRequired is returned when no cache is supplied.
var ErrCacheRequired = errors.New("cached: vector cache is required")

// ErrEmbedderRequired is returned when no embedder is supplied.
var ErrEmbedderRequired = errors.New("cached: embedder is required")

// LookupObserver is notified of cache hits and misses.
type LookupObserver interface {
	CacheLookups(hits, misses int)
}

// Embedder wraps an ai.Embedder with a persistent keyword-vector cache.
type Embedder struct {
	inner    ai.Embedder
	cache    storage.VectorCache
	model    string
	observer LookupObserver
	logger   *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// Option configures an Embedder.
type Option func(*Embedder) error

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Embedder) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "cached-embedder")
		return nil
	}
}

// WithObserver registers a hit/miss observer.
func WithObserver(observer LookupObserver) Option {
	return func(e *Embedder) error {
		e.observer = observer
		return nil
	}
}

// NewEmbedder wraps inner. Vectors are stored under model, which must
// identify the model inner embeds with.
func NewEmbedder(inner ai.Embedder, cache storage.VectorCache, model string, opts ...Option) (*Embedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}

	e := &Embedder{
		inner:  inner,
		cache:  cache,
		model:  model,
		logger: slog.Default().With("component", "cached-embedder"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// EmbedText delegates to the wrapped embedder.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return e.inner.EmbedText(ctx, text)
}

// EmbedTexts returns cached vectors where present and embeds only the misses,
// storing them for next time. Cache read failures degrade to a full embed;
// write failures are logged and ignored.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors, err := e.cache.GetVectors(ctx, e.model, texts)
	if err != nil {
		e.logger.Warn("cache read failed, embedding all texts", "err", err)
		vectors = make([][]float32, len(texts))
	}

	var missTexts []string
	var missIdx []int
	for i, v := range vectors {
		if v == nil {
			missTexts = append(missTexts, texts[i])
			missIdx = append(missIdx, i)
		}
	}

	hits := len(texts) - len(missTexts)
	if e.observer != nil {
		e.observer.CacheLookups(hits, len(missTexts))
	}
	e.logger.Debug("cache lookup", "model", e.model, "hits", hits, "misses", len(missTexts))

	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := e.inner.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("cached: embedder returned %d vectors for %d texts", len(fresh), len(missTexts))
	}

	for j, i := range missIdx {
		vectors[i] = fresh[j]
	}

	if err := e.cache.PutVectors(ctx, e.model, missTexts, fresh); err != nil {
		e.logger.Warn("cache write failed", "count", len(missTexts), "err", err)
	}

	return vectors, nil
}
