package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier used for cache keys.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DefaultWeight is applied to categories that have no configured weight.
const DefaultWeight = 1.0

// Category is a named group of keywords sharing a weight.
// Keywords are ordered; their position links each keyword to its cached vector.
type Category struct {
	Name     string
	Keywords []string
	Weight   float64
}

// RankedKeyword is a keyword with its similarity-derived score.
// Score is the rescaled similarity after boosting, thresholding and weighting;
// it is not a probability and may exceed 1 when boosted.
type RankedKeyword struct {
	Keyword    string
	Similarity float64 // raw cosine similarity in [-1, 1]
	Score      float64
	Boosted    bool
}

// PosteriorEntry is a keyword's score multiplied by the uniform category prior.
type PosteriorEntry struct {
	Keyword   string
	Posterior float64
}

// QueryResult is the per-category breakdown produced for one prompt.
// Every configured category is a key in both maps.
type QueryResult struct {
	// Categories lists category names in configuration order.
	Categories            []string
	CategoryPosteriors    map[string][]PosteriorEntry
	CombinedProbabilities map[string]float64
}

// Posteriors returns the ordered posterior entries for a category, or nil if
// the category is unknown.
func (r *QueryResult) Posteriors(category string) []PosteriorEntry {
	if r == nil {
		return nil
	}
	return r.CategoryPosteriors[category]
}

// Combined returns the combined probability for a category and whether it exists.
func (r *QueryResult) Combined(category string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	p, ok := r.CombinedProbabilities[category]
	return p, ok
}
