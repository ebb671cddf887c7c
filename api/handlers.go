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


package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/promptclass/core"
	"github.com/poiesic/promptclass/report"
)

// maxRequestBodySize bounds POST bodies.
const maxRequestBodySize = 64 * 1024

// Classifier is the engine surface the API needs.
type Classifier interface {
	Classify(ctx context.Context, text string) (*core.QueryResult, error)
	Categories() []core.Category
}

// API holds dependencies for API handlers.
type API struct {
	classifier Classifier
	metrics    http.Handler
	logger     *slog.Logger
}

// Option configures the API.
type Option func(*API)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger.With("component", "api")
	}
}

// WithMetricsHandler serves handler on GET /metrics.
func WithMetricsHandler(handler http.Handler) Option {
	return func(a *API) {
		a.metrics = handler
	}
}

// NewAPI creates a new API handler structure.
func NewAPI(classifier Classifier, opts ...Option) *API {
	a := &API{
		classifier: classifier,
		logger:     slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewRouter builds a gin engine with middleware and all routes.
func NewRouter(classifier Classifier, opts ...Option) *gin.Engine {
	a := NewAPI(classifier, opts...)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggingMiddleware(a.logger),
		RequestSizeLimitMiddleware(maxRequestBodySize),
	)
	a.SetupRoutes(router)
	return router
}

// SetupRoutes defines the API routes on router.
func (a *API) SetupRoutes(router gin.IRouter) {
	router.GET("/health", a.HealthCheckHandler)
	router.GET("/categories", a.CategoriesHandler)
	router.POST("/classify", a.ClassifyHandler)

	if a.metrics != nil {
		router.GET("/metrics", gin.WrapH(a.metrics))
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (a *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CategoryResponse describes one configured category.
type CategoryResponse struct {
	ID       string   `json:"id"`
	Keywords []string `json:"keywords"`
	Weight   float64  `json:"weight"`
}

// CategoriesHandler lists the configured categories in order.
func (a *API) CategoriesHandler(c *gin.Context) {
	categories := a.classifier.Categories()
	out := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		keywords := cat.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		out[i] = CategoryResponse{ID: cat.Name, Keywords: keywords, Weight: cat.Weight}
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	Prompt string `json:"prompt"`
	// Compare optionally names two categories to pick a winner from.
	Compare []string `json:"compare,omitempty"`
}

// KeywordPosterior is one keyword's posterior within a category.
type KeywordPosterior struct {
	Keyword   string  `json:"keyword"`
	Posterior float64 `json:"posterior"`
}

// ClassifyResponse is the body of a successful POST /classify.
type ClassifyResponse struct {
	Categories            []string                      `json:"categories"`
	CategoryPosteriors    map[string][]KeywordPosterior `json:"category_posteriors"`
	CombinedProbabilities map[string]float64            `json:"combined_probabilities"`
	Ranking               []report.CategoryScore        `json:"ranking"`
	Winner                string                        `json:"winner,omitempty"`
	WinnerError           string                        `json:"winner_error,omitempty"`
}

// ClassifyHandler classifies a prompt.
// Request Body: ClassifyRequest
func (a *API) ClassifyHandler(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if req.Compare != nil && len(req.Compare) != 2 {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"compare must name exactly two categories")
		return
	}

	result, err := a.classifier.Classify(c.Request.Context(), req.Prompt)
	if err != nil {
		SendClassificationError(c, err)
		return
	}

	presenter := report.NewPresenter(result)
	resp := ClassifyResponse{
		Categories:            result.Categories,
		CategoryPosteriors:    make(map[string][]KeywordPosterior, len(result.CategoryPosteriors)),
		CombinedProbabilities: result.CombinedProbabilities,
		Ranking:               presenter.Ranking(),
	}
	for name := range result.CategoryPosteriors {
		entries := presenter.Rank(name)
		out := make([]KeywordPosterior, len(entries))
		for i, e := range entries {
			out[i] = KeywordPosterior{Keyword: e.Keyword, Posterior: e.Posterior}
		}
		resp.CategoryPosteriors[name] = out
	}

	if len(req.Compare) == 2 {
		winner, err := presenter.Winner(req.Compare[0], req.Compare[1])
		switch {
		case errors.Is(err, report.ErrCategoryNotRecognized):
			a.logger.Debug("winner not computed", "error", err)
			resp.WinnerError = report.ErrCategoryNotRecognized.Error()
		case err != nil:
			resp.WinnerError = err.Error()
		default:
			resp.Winner = winner
		}
	}

	c.JSON(http.StatusOK, resp)
}
