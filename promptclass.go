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


// Package promptclass classifies short technical prompts into weighted
// keyword categories using embedding similarity.
//
// Service wires an embedding provider, an optional persistent keyword-vector
// cache, optional Prometheus metrics and the classification engine:
//
//	settings, _ := config.Load("config.json")
//	svc, err := promptclass.NewService(ctx, ai.NewConfig(), settings,
//		promptclass.WithCacheDir("~/.cache/promptclass"))
//	defer svc.Close()
//	result, err := svc.Classify(ctx, "create a cpp docker image")
package promptclass

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/promptclass/ai"
	"github.com/poiesic/promptclass/ai/cached"
	"github.com/poiesic/promptclass/ai/fastembed"
	"github.com/poiesic/promptclass/ai/openai"
	"github.com/poiesic/promptclass/classify"
	"github.com/poiesic/promptclass/core"
	"github.com/poiesic/promptclass/metrics"
	"github.com/poiesic/promptclass/report"
	"github.com/poiesic/promptclass/storage"
	"github.com/poiesic/promptclass/storage/badger"
)

// Service owns the provider, cache and classifier for one configuration.
type Service struct {
	provider   ai.EmbeddingProvider
	cache      storage.VectorCache
	classifier *classify.Classifier
	metrics    *metrics.Recorder
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	cacheDir          string
	cache             storage.VectorCache
	provider          ai.EmbeddingProvider
	metrics           *metrics.Recorder
	logger            *slog.Logger
	classifierOptions []classify.Option
}

// WithCacheDir persists keyword vectors in a BadgerDB database at dir.
func WithCacheDir(dir string) ServiceOption {
	return func(o *serviceOptions) {
		o.cacheDir = dir
	}
}

// WithCache uses an already open vector cache. The Service takes ownership
// and closes it on Close.
func WithCache(cache storage.VectorCache) ServiceOption {
	return func(o *serviceOptions) {
		o.cache = cache
	}
}

// WithEmbeddingProvider uses provider instead of building one from the
// ai.Config. The Service takes ownership and closes it on Close.
func WithEmbeddingProvider(provider ai.EmbeddingProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithMetrics records classifications and cache lookups in recorder.
func WithMetrics(recorder *metrics.Recorder) ServiceOption {
	return func(o *serviceOptions) {
		o.metrics = recorder
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithClassifierOptions passes options through to classify.NewClassifier.
func WithClassifierOptions(opts ...classify.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.classifierOptions = append(o.classifierOptions, opts...)
	}
}

// NewProvider builds the embedding provider selected by config.Provider.
func NewProvider(config *ai.Config) (ai.EmbeddingProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Provider {
	case ai.ProviderFastEmbed:
		return fastembed.NewProvider(config)
	default:
		return openai.NewProvider(config)
	}
}

// NewService builds the provider and cache, then embeds every keyword in
// settings. Keyword vectors come from the cache when one is configured.
func NewService(ctx context.Context, aiConfig *ai.Config, settings classify.Settings, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if aiConfig == nil {
		aiConfig = ai.DefaultConfig()
	}

	s := &Service{
		provider: options.provider,
		cache:    options.cache,
		metrics:  options.metrics,
		logger:   options.logger.With("component", "service"),
	}

	if s.provider == nil {
		provider, err := NewProvider(aiConfig)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.provider = provider
	}

	if s.cache == nil && options.cacheDir != "" {
		backend, err := badger.OpenBackend(options.cacheDir, false)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("opening vector cache: %w", err)
		}
		cache, err := badger.NewVectorCache(backend)
		if err != nil {
			backend.Close()
			s.Close()
			return nil, err
		}
		s.cache = cache
	}

	embedder := s.provider.Embedder()
	if s.cache != nil {
		cacheOpts := []cached.Option{cached.WithLogger(options.logger)}
		if s.metrics != nil {
			cacheOpts = append(cacheOpts, cached.WithObserver(s.metrics))
		}
		wrapped, err := cached.NewEmbedder(embedder, s.cache, s.provider.Model(), cacheOpts...)
		if err != nil {
			s.Close()
			return nil, err
		}
		embedder = wrapped
	}

	classifierOpts := append([]classify.Option{classify.WithLogger(options.logger)}, options.classifierOptions...)
	classifier, err := classify.NewClassifier(ctx, embedder, settings, classifierOpts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.classifier = classifier

	s.logger.Info("service ready",
		"model", s.provider.Model(),
		"categories", len(settings.Categories),
		"cache", s.cache != nil)
	return s, nil
}

// Classify scores text against the configured categories.
func (s *Service) Classify(ctx context.Context, text string) (*core.QueryResult, error) {
	start := time.Now()
	result, err := s.classifier.Classify(ctx, text)
	if s.metrics != nil {
		s.metrics.ObserveClassification(time.Since(start), result, err)
	}
	return result, err
}

// Present wraps a result for ranking and display.
func (s *Service) Present(result *core.QueryResult) *report.Presenter {
	return report.NewPresenter(result)
}

// Categories returns the configured categories in order.
func (s *Service) Categories() []core.Category {
	return s.classifier.Categories()
}

// Classifier returns the underlying engine.
func (s *Service) Classifier() *classify.Classifier {
	return s.classifier
}

// Provider returns the embedding provider.
func (s *Service) Provider() ai.EmbeddingProvider {
	return s.provider
}

// Cache returns the vector cache, or nil when none is configured.
func (s *Service) Cache() storage.VectorCache {
	return s.cache
}

// Metrics returns the metrics recorder, or nil when none is configured.
func (s *Service) Metrics() *metrics.Recorder {
	return s.metrics
}

// Close releases the classifier pool, then the provider, then the cache.
func (s *Service) Close() error {
	var errs []error

	if s.classifier != nil {
		s.classifier.Release()
	}
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			s.logger.Error("error closing embedding provider", "err", err)
			errs = append(errs, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing vector cache", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
