package search

import (
	"sort"

	"github.com/kaiserguy/ai-questions-sub000/core"
)

// SelectTopK sorts scored documents by descending score and truncates to k.
// The sort is stable: ties keep their original order, so running the
// selector twice on the same input yields the same ordering. The input slice
// is not modified.
func SelectTopK(scored []*core.ScoredDocument, k int) []*core.ScoredDocument {
	out := make([]*core.ScoredDocument, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
