package search

import "github.com/kaiserguy/ai-questions-sub000/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to surface progress to a user while a search runs.
// All callbacks are advisory: they must not block and their absence never
// affects correctness.
type SearchMonitor interface {
	Start(query string)
	PredicateAccepted(predicate string, rows, attempts int)
	BatchScoringStarted(documents, batches int)
	AfterBatchScoring(scored []*core.ScoredDocument)
	AfterSelection(topK []*core.ScoredDocument)
	DeepScoringStarted(documents int)
	AfterDeepScoring(rescored []*core.ScoredDocument)
	Finish(result *core.Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) PredicateAccepted(_ string, _, _ int)       {}
func (n *noopMonitor) BatchScoringStarted(_, _ int)               {}
func (n *noopMonitor) AfterBatchScoring(_ []*core.ScoredDocument) {}
func (n *noopMonitor) AfterSelection(_ []*core.ScoredDocument)    {}
func (n *noopMonitor) DeepScoringStarted(_ int)                   {}
func (n *noopMonitor) AfterDeepScoring(_ []*core.ScoredDocument)  {}
func (n *noopMonitor) Finish(_ *core.Result)                      {}
