package classify

import "github.com/poiesic/promptclass/core"

// Monitor provides hooks to observe a classification.
// Implement this interface to track intermediate steps and results.
// CategoryScored may be called concurrently from pool workers.
type Monitor interface {
	Start(text string)
	Rejected(text string, err error)
	AfterEmbedding(dimension int)
	CategoryScored(category string, ranked []core.RankedKeyword, combined float64)
	Finish(result *core.QueryResult, err error)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                             {}
func (n *noopMonitor) Rejected(_ string, _ error)                                 {}
func (n *noopMonitor) AfterEmbedding(_ int)                                       {}
func (n *noopMonitor) CategoryScored(_ string, _ []core.RankedKeyword, _ float64) {}
func (n *noopMonitor) Finish(_ *core.QueryResult, _ error)                        {}
