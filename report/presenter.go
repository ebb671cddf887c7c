// Package report presents classification results: per-category keyword
// rankings, a category ranking, head-to-head winners and a text report.
package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"github.com/poiesic/promptclass/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCategoryNotRecognized is returned by Winner when a named category is
// absent from the result or scored exactly zero.
var ErrCategoryNotRecognized = errors.New("category not recognized")

// CategoryScore pairs a category with its combined probability.
type CategoryScore struct {
	Category    string  `json:"category"`
	Probability float64 `json:"probability"`
}

// Presenter answers questions about one QueryResult.
type Presenter struct {
	result *core.QueryResult
}

// NewPresenter wraps result. A nil result behaves as an empty one.
func NewPresenter(result *core.QueryResult) *Presenter {
	if result == nil {
		result = &core.QueryResult{}
	}
	return &Presenter{result: result}
}

// Result returns the wrapped result.
func (p *Presenter) Result() *core.QueryResult {
	return p.result
}

// Rank returns the posterior entries for category, highest first.
// Unknown categories yield an empty slice.
func (p *Presenter) Rank(category string) []core.PosteriorEntry {
	entries, ok := p.result.CategoryPosteriors[category]
	if !ok {
		return []core.PosteriorEntry{}
	}
	return slices.Clone(entries)
}

// Winner returns whichever of a and b has the higher combined probability.
// Ties go to a.
func (p *Presenter) Winner(a, b string) (string, error) {
	pa, okA := p.result.CombinedProbabilities[a]
	pb, okB := p.result.CombinedProbabilities[b]
	if !okA || !okB || pa == 0 || pb == 0 {
		return "", fmt.Errorf("%w: %s or %s not in defined categories", ErrCategoryNotRecognized, a, b)
	}
	if pa >= pb {
		return a, nil
	}
	return b, nil
}

// Ranking returns every category ordered by combined probability, highest
// first. Ties keep configuration order.
func (p *Presenter) Ranking() []CategoryScore {
	scores := make([]CategoryScore, 0, len(p.result.CombinedProbabilities))
	for _, name := range p.order() {
		scores = append(scores, CategoryScore{Category: name, Probability: p.result.CombinedProbabilities[name]})
	}
	slices.SortStableFunc(scores, func(x, y CategoryScore) int {
		switch {
		case x.Probability > y.Probability:
			return -1
		case x.Probability < y.Probability:
			return 1
		default:
			return 0
		}
	})
	return scores
}

// DisplayName upper-cases the first letter of the category name and
// lower-cases the rest. Only the first word is capitalized.
func DisplayName(category string) string {
	if category == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(category)
	return cases.Upper(language.English).String(category[:size]) +
		cases.Lower(language.English).String(category[size:])
}

// DisplayOption configures Display.
type DisplayOption func(*displayConfig)

type displayConfig struct {
	keywords bool
}

// WithKeywords includes per-keyword posteriors in the report.
func WithKeywords() DisplayOption {
	return func(c *displayConfig) {
		c.keywords = true
	}
}

// Display writes the text report to w.
func (p *Presenter) Display(w io.Writer, opts ...DisplayOption) error {
	cfg := &displayConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ew := &errWriter{w: w}
	ew.printf("\nMost Similar Keywords to Input Text (Ranked by Posterior Probability):\n")
	if cfg.keywords {
		for _, name := range p.order() {
			ew.printf("\nCategory: %s\n", DisplayName(name))
			for _, e := range p.result.CategoryPosteriors[name] {
				ew.printf("  Keyword: %s, Posterior Probability: %.4f\n", e.Keyword, e.Posterior)
			}
		}
	}

	ew.printf("\nCombined Probability of Category Occurrence (OR of All Keywords):\n")
	for _, name := range p.order() {
		ew.printf("  Category: %s, Combined Probability: %.4f\n", DisplayName(name), p.result.CombinedProbabilities[name])
	}
	return ew.err
}

// order returns category names in configuration order, falling back to
// sorted map keys when the result carries no order.
func (p *Presenter) order() []string {
	if len(p.result.Categories) > 0 {
		return p.result.Categories
	}
	names := make([]string, 0, len(p.result.CombinedProbabilities))
	for name := range p.result.CombinedProbabilities {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// errWriter remembers the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
