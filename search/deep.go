package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/kaiserguy/ai-questions-sub000/ai"
	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/kaiserguy/ai-questions-sub000/corpus"
	"github.com/panjf2000/ants/v2"
)

// deepScorer re-scores the top candidates using full document content for a
// final, higher-confidence ordering.
type deepScorer struct {
	oracle ai.Oracle
	store  corpus.Store
	pool   *ants.Pool
	logger *slog.Logger
}

// rescore fetches full content for each candidate and asks the oracle for a
// single refined score, one concurrent call per candidate. A candidate whose
// fetch, call, or parse fails keeps its batch score and source; nothing is
// dropped or zeroed. Cancellation is checked before each dispatch;
// candidates not dispatched keep their batch scores. The result is re-sorted
// by descending score.
func (d *deepScorer) rescore(ctx context.Context, topK []*core.ScoredDocument, query string) []*core.ScoredDocument {
	if len(topK) == 0 {
		return nil
	}

	out := make([]*core.ScoredDocument, len(topK))
	callCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for i, candidate := range topK {
		if ctx.Err() != nil {
			out[i] = candidate
			continue
		}

		wg.Add(1)
		i, candidate := i, candidate
		err := d.pool.Submit(func() {
			defer wg.Done()
			out[i] = d.rescoreOne(callCtx, candidate, query)
		})
		if err != nil {
			wg.Done()
			out[i] = candidate
		}
	}
	wg.Wait()

	return SelectTopK(out, len(out))
}

// rescoreOne deep-scores a single candidate, returning the candidate
// unchanged on any failure.
func (d *deepScorer) rescoreOne(ctx context.Context, candidate *core.ScoredDocument, query string) *core.ScoredDocument {
	full, err := d.fetchFull(ctx, candidate.Document)
	if err != nil {
		d.logger.Warn("full document fetch failed, keeping batch score",
			"title", candidate.Document.Title, "err", err)
		return candidate
	}

	raw, err := d.oracle.Complete(ctx, buildDeepScorePrompt(query, full))
	if err != nil {
		d.logger.Warn("deep scoring call failed, keeping batch score",
			"title", full.Title, "err", err)
		return candidate
	}

	parsed := parseResponse(raw)
	if parsed.kind != parsedSingleScore {
		d.logger.Warn("unusable deep score response, keeping batch score", "title", full.Title)
		return candidate
	}

	return &core.ScoredDocument{
		Document: full,
		Score:    core.ClampScore(parsed.score),
		Source:   core.ScoreSourceDeep,
	}
}

// fetchFull resolves the complete document for a partial candidate row,
// falling back to title lookup when the ID misses.
func (d *deepScorer) fetchFull(ctx context.Context, doc *core.CorpusDocument) (*core.CorpusDocument, error) {
	if doc.Content != "" {
		return doc, nil
	}
	full, err := d.store.FetchFullById(ctx, doc.Id)
	if err == nil {
		return full, nil
	}
	if doc.Title != "" && errors.Is(err, corpus.ErrNotFound) {
		return d.store.FetchFullByTitle(ctx, doc.Title)
	}
	return nil, err
}
