//go:build !cgo

package fastembed

import "github.com/poiesic/promptclass/ai"

// NewProvider returns ErrNotAvailable when cgo is not available.
func NewProvider(_ *ai.Config) (ai.EmbeddingProvider, error) {
	return nil, ErrNotAvailable
}
