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


// Package metrics provides Prometheus instrumentation for classification.
package metrics

import (
	"net/http"
	"time"

	"github.com/poiesic/promptclass/ai/cached"
	"github.com/poiesic/promptclass/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the classification metrics and the registry they live in.
// Each Recorder owns its registry, so several can coexist in one process.
//
// Metrics:
//   - promptclass_classifications_total{status} - classifications by outcome
//   - promptclass_classification_duration_seconds - end-to-end latency
//   - promptclass_combined_probability{category} - combined probability per category
//   - promptclass_keyword_cache_lookups_total{result} - keyword cache hits and misses
type Recorder struct {
	registry *prometheus.Registry

	ClassificationsTotal *prometheus.CounterVec
	Duration             prometheus.Histogram
	CombinedProbability  *prometheus.HistogramVec
	CacheLookupsTotal    *prometheus.CounterVec
}

var _ cached.LookupObserver = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry.
// Go runtime and process collectors are registered alongside.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	r := &Recorder{
		registry: registry,

		ClassificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptclass_classifications_total",
				Help: "Total number of classifications by outcome",
			},
			[]string{"status"}, // ok, invalid_prompt, no_relevant_keywords, provider_failure
		),

		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "promptclass_classification_duration_seconds",
				Help:    "Duration of a classification in seconds, embedding included",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
			},
		),

		CombinedProbability: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "promptclass_combined_probability",
				Help:    "Combined probability of each category per classification",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
			[]string{"category"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptclass_keyword_cache_lookups_total",
				Help: "Total number of keyword vector cache lookups",
			},
			[]string{"result"}, // hit, miss
		),
	}

	for _, status := range []core.Status{
		core.StatusOK,
		core.StatusInvalidPrompt,
		core.StatusNoRelevantKeywords,
		core.StatusProviderFailure,
	} {
		r.ClassificationsTotal.WithLabelValues(status.String())
	}

	return r
}

// ObserveClassification records the outcome of one classification.
func (r *Recorder) ObserveClassification(elapsed time.Duration, result *core.QueryResult, err error) {
	r.ClassificationsTotal.WithLabelValues(core.StatusOf(err).String()).Inc()
	r.Duration.Observe(elapsed.Seconds())

	if err != nil || result == nil {
		return
	}
	for _, name := range result.Categories {
		if p, ok := result.Combined(name); ok {
			r.CombinedProbability.WithLabelValues(name).Observe(p)
		}
	}
}

// CacheLookups records keyword cache hits and misses.
func (r *Recorder) CacheLookups(hits, misses int) {
	if hits > 0 {
		r.CacheLookupsTotal.WithLabelValues("hit").Add(float64(hits))
	}
	if misses > 0 {
		r.CacheLookupsTotal.WithLabelValues("miss").Add(float64(misses))
	}
}

// Registry returns the registry the metrics are registered in.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
