package reembed

import (
	"testing"

	"github.com/poiesic/promptclass/storage"
	"github.com/poiesic/promptclass/storage/badger"
	"github.com/stretchr/testify/require"
)

const testModel = "test-model"

func setupTestCache(t *testing.T) storage.VectorCache {
	t.Helper()
	cache, err := badger.NewMemoryVectorCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}
