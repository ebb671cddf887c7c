package classify

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/poiesic/promptclass/ai/mock"
	"github.com/poiesic/promptclass/core"
	"github.com/stretchr/testify/require"
)

// unit returns the 2D unit vector whose cosine with (1, 0) is sim.
func unit(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

const flipPrompt = "create cpp docker image served by tornado"

// flipEmbedder places the prompt at (1, 0), "cpp" at similarity 0.2 and
// "asyncio server" at similarity 0.6.
func flipEmbedder() *mock.MockEmbedder {
	return mock.NewMockEmbedderWithVectors(map[string][]float32{
		flipPrompt:       {1, 0},
		"cpp":            unit(0.2),
		"asyncio server": unit(0.6),
	})
}

func flipSettings(boost float64) Settings {
	return Settings{
		Categories: []core.Category{
			{Name: "cpp", Keywords: []string{"cpp"}, Weight: 1},
			{Name: "web", Keywords: []string{"asyncio server"}, Weight: 1},
		},
		Threshold:   0,
		BoostFactor: boost,
	}
}

func newTestClassifier(t *testing.T, embedder *mock.MockEmbedder, settings Settings, opts ...Option) *Classifier {
	t.Helper()
	c, err := NewClassifier(context.Background(), embedder, settings, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Release)
	return c
}

type recordingMonitor struct {
	mu       sync.Mutex
	started  []string
	rejected []error
	dims     []int
	scored   map[string]float64
	finished int
	lastErr  error
}

func newRecordingMonitor() *recordingMonitor {
	return &recordingMonitor{scored: make(map[string]float64)}
}

func (m *recordingMonitor) Start(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, text)
}

func (m *recordingMonitor) Rejected(_ string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, err)
}

func (m *recordingMonitor) AfterEmbedding(dimension int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dims = append(m.dims, dimension)
}

func (m *recordingMonitor) CategoryScored(category string, _ []core.RankedKeyword, combined float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scored[category] = combined
}

func (m *recordingMonitor) Finish(_ *core.QueryResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished++
	m.lastErr = err
}
