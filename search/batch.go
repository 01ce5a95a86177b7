package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kaiserguy/ai-questions-sub000/ai"
	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/panjf2000/ants/v2"
)

// neutralScore is assigned to every member of a batch whose oracle call
// failed outright. Losing documents is worse than an uninformative score.
const neutralScore = 50

// batchScorer assigns coarse relevance scores to candidate documents in
// fixed-size batches, one concurrent oracle call per batch.
type batchScorer struct {
	oracle ai.Oracle
	pool   *ants.Pool
	logger *slog.Logger
}

// scoreAll partitions documents into batches of batchSize and scores each
// batch independently. Batches are dispatched on the worker pool, which
// bounds concurrent oracle calls; each goroutine writes only its own result
// slot and the parent merges after the join.
//
// The output always contains exactly one ScoredDocument per input document.
// Cancellation is checked before each dispatch: batches not yet dispatched
// fall back to local keyword scoring, while in-flight batches run to
// completion on a detached context.
func (b *batchScorer) scoreAll(ctx context.Context, docs []*core.CorpusDocument, query string, batchSize int) []*core.ScoredDocument {
	if len(docs) == 0 {
		return nil
	}

	batches := partition(docs, batchSize)
	results := make([][]*core.ScoredDocument, len(batches))

	// In-flight oracle calls are allowed to finish after cancellation;
	// cancellation is honored at dispatch, not mid-call.
	callCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for i, batch := range batches {
		if ctx.Err() != nil {
			b.logger.Debug("cancellation requested, fallback-scoring remaining batches", "batch", i)
			results[i] = b.fallbackBatch(batch, query)
			continue
		}

		wg.Add(1)
		i, batch := i, batch
		err := b.pool.Submit(func() {
			defer wg.Done()
			results[i] = b.scoreBatch(callCtx, batch, query)
		})
		if err != nil {
			wg.Done()
			results[i] = b.fallbackBatch(batch, query)
		}
	}
	wg.Wait()

	merged := make([]*core.ScoredDocument, 0, len(docs))
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}

// scoreBatch asks the oracle for one score per batch member and parses the
// response defensively. Malformed output degrades to keyword scoring; an
// unreachable oracle degrades to a neutral score for the whole batch.
func (b *batchScorer) scoreBatch(ctx context.Context, batch []*core.CorpusDocument, query string) []*core.ScoredDocument {
	raw, err := b.oracle.Complete(ctx, buildBatchScorePrompt(query, batch))
	if err != nil {
		b.logger.Warn("batch scoring call failed, assigning neutral scores", "size", len(batch), "err", err)
		scored := make([]*core.ScoredDocument, len(batch))
		for i, doc := range batch {
			scored[i] = &core.ScoredDocument{Document: doc, Score: neutralScore, Source: core.ScoreSourceFallback}
		}
		return scored
	}

	parsed := parseResponse(raw)
	if parsed.kind != parsedScoreArray || len(parsed.scores) != len(batch) {
		b.logger.Warn("unusable batch score response, falling back to keyword scoring",
			"size", len(batch), "kind", int(parsed.kind))
		return b.fallbackBatch(batch, query)
	}

	scored := make([]*core.ScoredDocument, len(batch))
	for i, doc := range batch {
		scored[i] = &core.ScoredDocument{
			Document: doc,
			Score:    core.ClampScore(parsed.scores[i]),
			Source:   core.ScoreSourceBatch,
		}
	}
	return scored
}

// fallbackBatch scores every batch member with the keyword heuristic.
func (b *batchScorer) fallbackBatch(batch []*core.CorpusDocument, query string) []*core.ScoredDocument {
	scored := make([]*core.ScoredDocument, len(batch))
	for i, doc := range batch {
		scored[i] = &core.ScoredDocument{
			Document: doc,
			Score:    keywordScore(doc, query),
			Source:   core.ScoreSourceFallback,
		}
	}
	return scored
}

// partition splits docs into slices of at most size elements, order preserved.
func partition(docs []*core.CorpusDocument, size int) [][]*core.CorpusDocument {
	if size < 1 {
		size = 1
	}
	var batches [][]*core.CorpusDocument
	for start := 0; start < len(docs); start += size {
		end := start + size
		if end > len(docs) {
			end = len(docs)
		}
		batches = append(batches, docs[start:end])
	}
	return batches
}
