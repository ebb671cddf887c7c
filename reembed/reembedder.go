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


package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/promptclass/ai"
	"github.com/poiesic/promptclass/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of keywords embedded per provider call
	BatchSize int

	// ReportInterval is how often to report progress (number of keywords)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for each batch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Force re-embeds keywords that already have a cached vector.
	Force bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Summary describes a finished run.
type Summary struct {
	Total    int
	Skipped  int
	Embedded int
	Elapsed  time.Duration
}

// Reembedder fills a vector cache with embeddings of a keyword vocabulary.
type Reembedder struct {
	cache     storage.VectorCache
	model     string
	keywords  []string
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	logger    *slog.Logger
}

// NewReembedder creates a new reembedder.
// embedder should be the provider itself, not a cache-backed wrapper.
// model: cache namespace, normally the provider's Model()
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(cache storage.VectorCache, embedder ai.Embedder, model string, keywords []string, config *Config, progress io.Writer) (*Reembedder, error) {
	if model == "" {
		return nil, ErrModelRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reembedder{
		cache:     cache,
		model:     model,
		keywords:  keywords,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(cache, embedder, model, config.MaxRetries, config.RetryDelay),
		logger:    slog.Default().With("component", "reembedder", "model", model),
	}, nil
}

// Run embeds the vocabulary and stores the vectors.
// Unless Config.Force is set, keywords already cached for the model are skipped.
func (r *Reembedder) Run(ctx context.Context) (Summary, error) {
	summary := Summary{Total: len(r.keywords)}

	pending, err := r.pending(ctx)
	if err != nil {
		return summary, err
	}
	summary.Skipped = summary.Total - len(pending)

	if len(pending) == 0 {
		fmt.Fprintf(r.progress, "All %d keywords already cached for %s\n", summary.Total, r.model)
		return summary, nil
	}

	fmt.Fprintf(r.progress, "Embedding %d keywords with %s (batch size: %d, cached: %d)\n",
		len(pending), r.model, r.config.BatchSize, summary.Skipped)

	tracker := NewProgressTracker(r.progress, len(pending), r.config.ReportInterval)
	tracker.Start()

	err = NewKeywordIterator(pending, r.config.BatchSize).ForEach(ctx, func(batch []string) error {
		if err := r.processor.Process(ctx, batch); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		summary.Embedded += len(batch)
		tracker.Update(summary.Embedded)
		return nil
	})
	summary.Elapsed = tracker.Elapsed()
	if err != nil {
		r.logger.Error("reembedding aborted", "embedded", summary.Embedded, "error", err)
		return summary, err
	}

	tracker.Finish()

	fmt.Fprintf(r.progress, "Reembedding complete. Embedded %d keywords in %v\n",
		summary.Embedded, summary.Elapsed.Round(time.Millisecond))
	r.logger.Info("reembedding complete", "embedded", summary.Embedded, "skipped", summary.Skipped)

	return summary, nil
}

// pending returns the keywords that need embedding.
func (r *Reembedder) pending(ctx context.Context) ([]string, error) {
	if r.config.Force || len(r.keywords) == 0 {
		return r.keywords, nil
	}

	cached, err := r.cache.GetVectors(ctx, r.model, r.keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var out []string
	for i, vec := range cached {
		if vec == nil {
			out = append(out, r.keywords[i])
		}
	}
	return out, nil
}
