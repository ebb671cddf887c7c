package classify

import (
	"slices"

	"github.com/poiesic/promptclass/core"
)

// CombinePosteriors turns a ranked keyword list into posterior entries and
// the category's combined probability.
//
// Each posterior is score / categoryCount (a uniform prior). Entries are
// ordered by posterior, highest first, ties keeping input order. The combined
// probability is 1 - Π(1 - posterior), which is 0 for an empty list. With
// clamp set, posteriors are bounded to [0, 1] first; otherwise boosted scores
// can push the combined probability outside [0, 1]. Raising a weight never
// lowers the combined probability only while every posterior stays at or
// below 1, which clamp guarantees.
func CombinePosteriors(ranked []core.RankedKeyword, categoryCount int, clamp bool) ([]core.PosteriorEntry, float64) {
	entries := make([]core.PosteriorEntry, 0, len(ranked))
	if categoryCount <= 0 || len(ranked) == 0 {
		return entries, 0
	}

	prior := 1 / float64(categoryCount)
	for _, r := range ranked {
		posterior := r.Score * prior
		if clamp {
			posterior = min(max(posterior, 0), 1)
		}
		entries = append(entries, core.PosteriorEntry{Keyword: r.Keyword, Posterior: posterior})
	}

	slices.SortStableFunc(entries, func(a, b core.PosteriorEntry) int {
		return compareDesc(a.Posterior, b.Posterior)
	})

	notOccurring := 1.0
	for _, e := range entries {
		notOccurring *= 1 - e.Posterior
	}
	return entries, 1 - notOccurring
}
