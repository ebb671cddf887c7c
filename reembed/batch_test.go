package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/promptclass/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchProcessor_Process(t *testing.T) {
	ctx := context.Background()
	cache := setupTestCache(t)
	embedder := mock.NewMockEmbedderWithVectors(map[string][]float32{
		"python": {1, 2, 2},
		"flask":  {0, 1, 0},
	})

	bp := NewBatchProcessor(cache, embedder, testModel, 3, time.Millisecond)
	require.NoError(t, bp.Process(ctx, []string{"python", "flask"}))

	vectors, err := cache.GetVectors(ctx, testModel, []string{"python", "flask"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 2, 2}, {0, 1, 0}}, vectors)
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	bp := NewBatchProcessor(setupTestCache(t), embedder, testModel, 3, time.Millisecond)

	require.NoError(t, bp.Process(context.Background(), nil))
	assert.Equal(t, 0, embedder.CallCount())
}

func TestBatchProcessor_RetriesThenSucceeds(t *testing.T) {
	ctx := context.Background()
	cache := setupTestCache(t)
	embedder := mock.NewMockEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("temporary outage")
		}
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1, 0}
		}
		return out, nil
	}

	bp := NewBatchProcessor(cache, embedder, testModel, 3, time.Millisecond)
	require.NoError(t, bp.Process(ctx, []string{"cpp"}))
	assert.Equal(t, 3, calls)

	count, err := cache.Count(ctx, testModel)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBatchProcessor_Failures(t *testing.T) {
	tests := []struct {
		name    string
		embed   func(context.Context, []string) ([][]float32, error)
		wantErr error
	}{
		{
			name: "provider keeps failing",
			embed: func(context.Context, []string) ([][]float32, error) {
				return nil, errors.New("down")
			},
		},
		{
			name: "count mismatch",
			embed: func(context.Context, []string) ([][]float32, error) {
				return [][]float32{{1}}, nil
			},
			wantErr: ErrEmbeddingCountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cache := setupTestCache(t)
			embedder := mock.NewMockEmbedder()
			embedder.EmbedTextsFunc = tt.embed

			bp := NewBatchProcessor(cache, embedder, testModel, 2, time.Millisecond)
			err := bp.Process(ctx, []string{"a", "b"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			count, err := cache.Count(ctx, testModel)
			require.NoError(t, err)
			assert.Zero(t, count, "nothing is stored on failure")
		})
	}
}
