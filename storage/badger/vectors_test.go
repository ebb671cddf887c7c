package badger

import (
	"context"
	"testing"

	"github.com/poiesic/promptclass/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCache_PutGet(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()
	ctx := context.Background()

	texts := []string{"python", "flask", "django"}
	vectors := [][]float32{{1, 0}, {0, 1}, {0.5, 0.5}}
	require.NoError(t, cache.PutVectors(ctx, "m1", texts, vectors))

	got, err := cache.GetVectors(ctx, "m1", []string{"flask", "missing", "python"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []float32{0, 1}, got[0])
	assert.Nil(t, got[1])
	assert.Equal(t, []float32{1, 0}, got[2])
}

func TestVectorCache_ModelIsolation(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.PutVectors(ctx, "m1", []string{"go"}, [][]float32{{1}}))

	got, err := cache.GetVectors(ctx, "m2", []string{"go"})
	require.NoError(t, err)
	assert.Nil(t, got[0])

	n, err := cache.Count(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = cache.Count(ctx, "m2")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestVectorCache_Overwrite(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.PutVectors(ctx, "m", []string{"java"}, [][]float32{{1, 2}}))
	require.NoError(t, cache.PutVectors(ctx, "m", []string{"java"}, [][]float32{{3, 4}}))

	got, err := cache.GetVectors(ctx, "m", []string{"java"})
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, got[0])

	n, err := cache.Count(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestVectorCache_Purge(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.PutVectors(ctx, "m1", []string{"a", "b"}, [][]float32{{1}, {2}}))
	require.NoError(t, cache.PutVectors(ctx, "m2", []string{"a"}, [][]float32{{1}}))

	require.NoError(t, cache.Purge(ctx, "m1"))

	n, err := cache.Count(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = cache.Count(ctx, "m2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestVectorCache_LengthMismatch(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	err = cache.PutVectors(context.Background(), "m", []string{"a", "b"}, [][]float32{{1}})
	assert.ErrorIs(t, err, storage.ErrLengthMismatch)
}

func TestVectorCache_Closed(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())
	ctx := context.Background()

	_, err = cache.GetVectors(ctx, "m", []string{"a"})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = cache.PutVectors(ctx, "m", []string{"a"}, [][]float32{{1}})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = cache.Count(ctx, "m")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	// second close is a no-op
	assert.NoError(t, cache.Close())
}

func TestVectorCache_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	cache, err := NewVectorCache(backend)
	require.NoError(t, err)
	require.NoError(t, cache.PutVectors(ctx, "m", []string{"tensorflow"}, [][]float32{{0.1, 0.2}}))
	require.NoError(t, cache.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	cache, err = NewVectorCache(backend)
	require.NoError(t, err)
	defer cache.Close()

	got, err := cache.GetVectors(ctx, "m", []string{"tensorflow"})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, got[0])
}

func TestNewVectorCache_NilBackend(t *testing.T) {
	_, err := NewVectorCache(nil)
	assert.Error(t, err)
}
