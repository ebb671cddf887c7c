package classify

import (
	"slices"
	"strings"

	"github.com/poiesic/promptclass/ai"
	"github.com/poiesic/promptclass/core"
)

// ScoreParams are the per-category knobs applied by ScoreCategory.
type ScoreParams struct {
	Weight         float64
	BoostFactor    float64
	Boost          bool // whether exact-match boosting applies to this category
	Threshold      float64
	ApplyThreshold bool
}

// Rescale maps a cosine similarity from [-1, 1] to [0, 1].
func Rescale(similarity float64) float64 {
	return (similarity + 1) / 2
}

// ScoreCategory ranks one category's keywords against the prompt.
//
// keywordVectors must be index-aligned with keywords. Keywords are ordered by
// rescaled similarity, highest first, ties keeping keyword order. Boosting,
// thresholding and weighting then adjust scores without reordering.
func ScoreCategory(input []float32, keywordVectors [][]float32, keywords []string, text string, p ScoreParams) []core.RankedKeyword {
	if len(keywords) == 0 {
		return []core.RankedKeyword{}
	}

	sims := ai.CosineSimilarities(input, keywordVectors)
	ranked := make([]core.RankedKeyword, len(keywords))
	for i, kw := range keywords {
		var sim float64
		if i < len(sims) {
			sim = sims[i]
		}
		ranked[i] = core.RankedKeyword{
			Keyword:    kw,
			Similarity: sim,
			Score:      Rescale(sim),
		}
	}

	slices.SortStableFunc(ranked, func(a, b core.RankedKeyword) int {
		return compareDesc(a.Score, b.Score)
	})

	lower := strings.ToLower(text)
	for i := range ranked {
		r := &ranked[i]
		if p.Boost && strings.Contains(lower, strings.ToLower(r.Keyword)) {
			r.Score += p.BoostFactor
			r.Boosted = true
		}
		if p.ApplyThreshold && r.Score < p.Threshold {
			r.Score = 0
			continue
		}
		r.Score *= p.Weight
	}

	return ranked
}

// compareDesc orders larger values first.
func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
