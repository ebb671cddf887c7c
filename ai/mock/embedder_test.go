package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/promptclass/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	v1, err := m.EmbedText(ctx, "python")
	require.NoError(t, err)
	v2, err := m.EmbedText(ctx, "python")
	require.NoError(t, err)
	v3, err := m.EmbedText(ctx, "java")
	require.NoError(t, err)

	assert.Len(t, v1, DefaultDimension)
	assert.Equal(t, v1, v2)
	assert.NotEqual(t, v1, v3)
	assert.InDelta(t, 1.0, ai.CosineSimilarity(v1, v2), 1e-6)
}

func TestMockEmbedder_Vectors(t *testing.T) {
	m := NewMockEmbedderWithVectors(map[string][]float32{"cpp": {0, 1}})
	ctx := context.Background()

	vecs, err := m.EmbedTexts(ctx, []string{"cpp", "go"})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, vecs[0])
	assert.Len(t, vecs[1], DefaultDimension)

	assert.Equal(t, 1, m.CallCount())
	assert.Equal(t, 2, m.TextsEmbedded())
}

func TestMockEmbedder_InjectedFunc(t *testing.T) {
	m := NewMockEmbedder()
	boom := errors.New("boom")
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, boom
	}

	_, err := m.EmbedText(context.Background(), "x")
	assert.ErrorIs(t, err, boom)

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	_, err = m.EmbedText(context.Background(), "x")
	assert.NoError(t, err)
}

func TestNewMockProvider(t *testing.T) {
	p := NewMockProvider()
	assert.Equal(t, MockModel, p.Model())

	mp, ok := p.(*MockProvider)
	require.True(t, ok)
	assert.Same(t, mp.GetMockEmbedder(), p.Embedder())

	_, err := p.Embedder().EmbedText(context.Background(), "python")
	require.NoError(t, err)
	assert.Equal(t, 1, mp.GetMockEmbedder().CallCount())
	require.NoError(t, p.Close())
	assert.True(t, mp.Closed())
}

func TestMockProvider(t *testing.T) {
	p := NewMockProviderWithEmbedder(NewMockEmbedder())
	assert.Equal(t, MockModel, p.Model())
	assert.NotNil(t, p.Embedder())
	assert.False(t, p.Closed())
	require.NoError(t, p.Close())
	assert.True(t, p.Closed())
}
