package classify

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/promptclass/ai"
	"github.com/poiesic/promptclass/core"
)

// Classifier scores prompts against weighted keyword categories.
// It is safe for concurrent use once constructed.
type Classifier struct {
	embedder ai.Embedder
	settings Settings
	// vectors[i][j] is the embedding of settings.Categories[i].Keywords[j]
	vectors [][][]float32
	gate    *Gate
	pool    *ants.Pool
	monitor Monitor
	logger  *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "classifier")
		return nil
	}
}

// WithPoolSize sets the worker pool size for per-category scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(c *Classifier) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if c.pool != nil {
			c.pool.Release()
		}
		c.pool = pool
		return nil
	}
}

// WithMonitor sets the monitor used when ClassifyWithMonitor gets nil.
func WithMonitor(monitor Monitor) Option {
	return func(c *Classifier) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		c.monitor = monitor
		return nil
	}
}

// WithGate replaces the validity gate.
// Default is DefaultGate().
func WithGate(gate *Gate) Option {
	return func(c *Classifier) error {
		if gate == nil {
			gate = DefaultGate()
		}
		c.gate = gate
		return nil
	}
}

// NewClassifier creates a classifier and embeds every configured keyword.
// This is the only place keyword embeddings are computed.
func NewClassifier(ctx context.Context, embedder ai.Embedder, settings Settings, opts ...Option) (*Classifier, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	settings = settings.clone()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	c := &Classifier{
		embedder: embedder,
		settings: settings,
		gate:     DefaultGate(),
		pool:     pool,
		monitor:  &noopMonitor{},
		logger:   slog.Default().With("component", "classifier"),
	}

	for _, opt := range opts {
		if optErr := opt(c); optErr != nil {
			c.Release()
			return nil, optErr
		}
	}

	if err := c.embedKeywords(ctx); err != nil {
		c.Release()
		return nil, err
	}

	return c, nil
}

// embedKeywords embeds all keywords in one batch and splits the result per category.
func (c *Classifier) embedKeywords(ctx context.Context) error {
	var all []string
	for _, cat := range c.settings.Categories {
		if len(cat.Keywords) == 0 {
			c.logger.Warn("category has no keywords", "category", cat.Name)
		}
		all = append(all, cat.Keywords...)
	}

	c.vectors = make([][][]float32, len(c.settings.Categories))
	if len(all) == 0 {
		for i := range c.vectors {
			c.vectors[i] = [][]float32{}
		}
		return nil
	}

	c.logger.Debug("embedding keywords", "categories", len(c.settings.Categories), "keywords", len(all))
	vecs, err := c.embedder.EmbedTexts(ctx, all)
	if err != nil {
		c.logger.Error("error embedding keywords", "err", err)
		return fmt.Errorf("%w: keywords: %w", ErrEmbeddingFailed, err)
	}
	if len(vecs) != len(all) {
		return fmt.Errorf("%w: got %d vectors for %d keywords", ErrEmbeddingFailed, len(vecs), len(all))
	}

	offset := 0
	for i, cat := range c.settings.Categories {
		c.vectors[i] = vecs[offset : offset+len(cat.Keywords) : offset+len(cat.Keywords)]
		offset += len(cat.Keywords)
	}
	return nil
}

// Classify scores text against every category.
// Returns core.ErrInvalidPrompt if text fails the gate, core.ErrNoRelevantKeywords
// if no categories are configured, and an error wrapping ErrEmbeddingFailed if
// the provider fails.
func (c *Classifier) Classify(ctx context.Context, text string) (*core.QueryResult, error) {
	return c.ClassifyWithMonitor(ctx, text, nil)
}

// ClassifyWithMonitor classifies text with monitoring.
// The monitor receives callbacks at each stage of the classification.
func (c *Classifier) ClassifyWithMonitor(ctx context.Context, text string, monitor Monitor) (result *core.QueryResult, err error) {
	if monitor == nil {
		monitor = c.monitor
	}

	monitor.Start(text)
	defer func() {
		monitor.Finish(result, err)
	}()

	if !c.gate.Allows(text) {
		c.logger.Debug("prompt rejected by gate", "length", len(text))
		monitor.Rejected(text, core.ErrInvalidPrompt)
		return nil, core.ErrInvalidPrompt
	}
	if len(c.settings.Categories) == 0 {
		monitor.Rejected(text, core.ErrNoRelevantKeywords)
		return nil, core.ErrNoRelevantKeywords
	}

	input, err := c.embedder.EmbedText(ctx, text)
	if err != nil {
		c.logger.Error("error generating embedding for prompt", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	monitor.AfterEmbedding(len(input))

	n := len(c.settings.Categories)
	posteriors := make([][]core.PosteriorEntry, n)
	combined := make([]float64, n)

	var wg sync.WaitGroup
	var submitErr error
	for i := range c.settings.Categories {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			cat := &c.settings.Categories[i]
			ranked := ScoreCategory(input, c.vectors[i], cat.Keywords, text, ScoreParams{
				Weight:         cat.Weight,
				BoostFactor:    c.settings.BoostFactor,
				Boost:          c.settings.boosts(cat.Name),
				Threshold:      c.settings.Threshold,
				ApplyThreshold: c.settings.ApplyThreshold,
			})
			posteriors[i], combined[i] = CombinePosteriors(ranked, n, c.settings.Clamp)
			monitor.CategoryScored(cat.Name, ranked, combined[i])
		}
		if submitErr = c.pool.Submit(task); submitErr != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()
	if submitErr != nil {
		return nil, fmt.Errorf("submitting scoring task: %w", submitErr)
	}

	result = &core.QueryResult{
		Categories:            c.settings.CategoryNames(),
		CategoryPosteriors:    make(map[string][]core.PosteriorEntry, n),
		CombinedProbabilities: make(map[string]float64, n),
	}
	for i, cat := range c.settings.Categories {
		result.CategoryPosteriors[cat.Name] = posteriors[i]
		result.CombinedProbabilities[cat.Name] = combined[i]
	}

	if len(result.CategoryPosteriors) == 0 || len(result.CombinedProbabilities) == 0 {
		return nil, core.ErrNoRelevantKeywords
	}

	c.logger.Debug("classified prompt", "categories", n)
	return result, nil
}

// Categories returns a copy of the configured categories in order.
func (c *Classifier) Categories() []core.Category {
	return c.settings.clone().Categories
}

// Settings returns a copy of the classifier settings.
func (c *Classifier) Settings() Settings {
	return c.settings.clone()
}

// Gate returns the validity gate.
func (c *Classifier) Gate() *Gate {
	return c.gate
}

// Release releases resources including the worker pool.
// The classifier should not be used after calling Release.
func (c *Classifier) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}
