package classify

import (
	"testing"

	"github.com/poiesic/promptclass/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinePosteriors(t *testing.T) {
	ranked := []core.RankedKeyword{
		{Keyword: "a", Score: 0.4},
		{Keyword: "b", Score: 0.8},
		{Keyword: "c", Score: 0.4},
	}

	entries, combined := CombinePosteriors(ranked, 4, false)

	require.Len(t, entries, 3)
	assert.Equal(t, "b", entries[0].Keyword)
	assert.Equal(t, "a", entries[1].Keyword)
	assert.Equal(t, "c", entries[2].Keyword)
	assert.InDelta(t, 0.2, entries[0].Posterior, 1e-12)
	assert.InDelta(t, 0.1, entries[1].Posterior, 1e-12)

	// 1 - (0.8 * 0.9 * 0.9)
	assert.InDelta(t, 0.352, combined, 1e-12)
}

func TestCombinePosteriors_Empty(t *testing.T) {
	entries, combined := CombinePosteriors(nil, 3, false)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.Equal(t, 0.0, combined)

	entries, combined = CombinePosteriors([]core.RankedKeyword{{Keyword: "x", Score: 1}}, 0, false)
	assert.Empty(t, entries)
	assert.Equal(t, 0.0, combined)
}

func TestCombinePosteriors_Unclamped(t *testing.T) {
	ranked := []core.RankedKeyword{
		{Keyword: "boosted", Score: 3},
		{Keyword: "plain", Score: 0.5},
	}

	entries, combined := CombinePosteriors(ranked, 1, false)
	assert.InDelta(t, 3.0, entries[0].Posterior, 1e-12)
	// 1 - (-2 * 0.5)
	assert.InDelta(t, 2.0, combined, 1e-12)
}

func TestCombinePosteriors_Clamped(t *testing.T) {
	ranked := []core.RankedKeyword{
		{Keyword: "boosted", Score: 3},
		{Keyword: "plain", Score: 0.5},
	}

	entries, combined := CombinePosteriors(ranked, 1, true)
	assert.Equal(t, 1.0, entries[0].Posterior)
	assert.Equal(t, 1.0, combined)
	assert.GreaterOrEqual(t, combined, 0.0)
	assert.LessOrEqual(t, combined, 1.0)
}

func TestCombinePosteriors_ZeroScores(t *testing.T) {
	ranked := []core.RankedKeyword{{Keyword: "a", Score: 0}, {Keyword: "b", Score: 0}}
	_, combined := CombinePosteriors(ranked, 2, false)
	assert.Equal(t, 0.0, combined)
}

func TestCombinePosteriors_WeightMonotonicity(t *testing.T) {
	// Two boosted keywords at 1.5, scaled by weight 1 and weight 4.
	scaled := func(weight float64) []core.RankedKeyword {
		return []core.RankedKeyword{
			{Keyword: "a", Score: 1.5 * weight},
			{Keyword: "b", Score: 1.5 * weight},
		}
	}

	t.Run("unclamped posteriors above one break it", func(t *testing.T) {
		_, low := CombinePosteriors(scaled(1), 2, false)
		_, high := CombinePosteriors(scaled(4), 2, false)
		assert.InDelta(t, 0.9375, low, 1e-12)
		assert.InDelta(t, -3.0, high, 1e-12)
		assert.Less(t, high, low)
	})

	t.Run("clamped", func(t *testing.T) {
		prev := 0.0
		for _, weight := range []float64{0, 0.5, 1, 2, 4, 8} {
			_, combined := CombinePosteriors(scaled(weight), 2, true)
			assert.GreaterOrEqual(t, combined, prev, "weight %v", weight)
			prev = combined
		}
	})

	t.Run("unclamped with posteriors at most one", func(t *testing.T) {
		prev := 0.0
		for _, weight := range []float64{0, 0.25, 0.5, 1, 4.0 / 3} {
			_, combined := CombinePosteriors(scaled(weight), 2, false)
			assert.GreaterOrEqual(t, combined, prev, "weight %v", weight)
			prev = combined
		}
	})
}
