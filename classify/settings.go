package classify

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/poiesic/promptclass/core"
)

// Defaults carried over from the original keyword configuration.
const (
	DefaultThreshold   = 0.2
	DefaultBoostFactor = 0.5
)

// Settings is the immutable configuration a Classifier is built from.
type Settings struct {
	// Categories in presentation order. Each keyword list is embedded once
	// when the classifier is constructed.
	Categories []core.Category

	// Threshold is the minimum boosted score a keyword needs to count.
	// Only consulted when ApplyThreshold is set.
	Threshold float64

	// BoostFactor is added to a keyword's score when the keyword appears
	// verbatim (case-insensitive) in the prompt. Not capped.
	BoostFactor float64

	// ApplyThreshold zeroes keywords whose boosted score is below Threshold.
	ApplyThreshold bool

	// BoostCategories limits exact-match boosting to the named categories.
	// Empty means every category is boosted.
	BoostCategories []string

	// Clamp bounds posteriors to [0, 1] so combined probabilities stay
	// within [0, 1].
	Clamp bool
}

// NewSettings builds Settings from keyword and weight maps. Categories are
// ordered by name; use OrderCategories to impose another order. Categories missing from weights get core.DefaultWeight;
// weights naming unknown categories are ignored.
func NewSettings(keywords map[string][]string, weights map[string]float64, threshold, boostFactor float64) Settings {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]core.Category, 0, len(names))
	for _, name := range names {
		weight, ok := weights[name]
		if !ok {
			weight = core.DefaultWeight
		}
		categories = append(categories, core.Category{
			Name:     name,
			Keywords: slices.Clone(keywords[name]),
			Weight:   weight,
		})
	}

	return Settings{
		Categories:  categories,
		Threshold:   threshold,
		BoostFactor: boostFactor,
	}
}

// OrderCategories moves the named categories to the front in the given order.
// Categories not named keep their relative order after them. Unknown names
// are ignored.
func (s *Settings) OrderCategories(order []string) {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, seen := rank[name]; !seen {
			rank[name] = i
		}
	}
	slices.SortStableFunc(s.Categories, func(a, b core.Category) int {
		ra, okA := rank[a.Name]
		rb, okB := rank[b.Name]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}

// Validate checks categories and scalar parameters.
func (s *Settings) Validate() error {
	if err := core.ValidateCategories(s.Categories); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if math.IsNaN(s.Threshold) || math.IsInf(s.Threshold, 0) {
		return fmt.Errorf("%w: threshold %v", ErrInvalidSettings, s.Threshold)
	}
	if math.IsNaN(s.BoostFactor) || math.IsInf(s.BoostFactor, 0) {
		return fmt.Errorf("%w: boost factor %v", ErrInvalidSettings, s.BoostFactor)
	}
	return nil
}

// CategoryNames returns the category names in order.
func (s *Settings) CategoryNames() []string {
	names := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		names[i] = c.Name
	}
	return names
}

// boosts reports whether exact-match boosting applies to category.
func (s *Settings) boosts(category string) bool {
	if len(s.BoostCategories) == 0 {
		return true
	}
	return slices.Contains(s.BoostCategories, category)
}

// clone deep-copies s so the classifier is isolated from caller mutation.
func (s Settings) clone() Settings {
	out := s
	out.Categories = make([]core.Category, len(s.Categories))
	for i, c := range s.Categories {
		c.Keywords = slices.Clone(c.Keywords)
		out.Categories[i] = c
	}
	out.BoostCategories = slices.Clone(s.BoostCategories)
	return out
}
