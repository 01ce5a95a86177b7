package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/kaiserguy/ai-questions-sub000/ai/mock"
	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPool(t *testing.T) *ants.Pool {
	t.Helper()
	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	return pool
}

func candidateDocs(n int) []*core.CorpusDocument {
	docs := make([]*core.CorpusDocument, n)
	for i := range docs {
		docs[i] = &core.CorpusDocument{
			Id:      core.ID(i + 1),
			Title:   fmt.Sprintf("Article %d", i+1),
			Summary: fmt.Sprintf("Summary of article %d", i+1),
		}
	}
	return docs
}

func TestBatchScorerScoreAll(t *testing.T) {
	t.Run("well-formed scores in batch order", func(t *testing.T) {
		oracle := mock.NewMockOracle()
		oracle.CompleteFunc = func(_ context.Context, _ string) (string, error) {
			return "[90, 80, 70]", nil
		}
		scorer := &batchScorer{oracle: oracle, pool: testPool(t), logger: testLogger()}

		scored := scorer.scoreAll(context.Background(), candidateDocs(9), "query", 3)
		require.Len(t, scored, 9)
		assert.Equal(t, 3, oracle.CallCount())
		for i, sd := range scored {
			assert.Equal(t, core.ID(i+1), sd.Document.Id, "batch order must be preserved")
			assert.Equal(t, core.ScoreSourceBatch, sd.Source)
			assert.Equal(t, []int{90, 80, 70}[i%3], sd.Score)
		}
	})

	t.Run("oracle error assigns neutral scores", func(t *testing.T) {
		oracle := mock.NewMockOracle()
		oracle.CompleteFunc = func(_ context.Context, _ string) (string, error) {
			return "", errors.New("connection refused")
		}
		scorer := &batchScorer{oracle: oracle, pool: testPool(t), logger: testLogger()}

		scored := scorer.scoreAll(context.Background(), candidateDocs(5), "query", 10)
		require.Len(t, scored, 5)
		for _, sd := range scored {
			assert.Equal(t, neutralScore, sd.Score)
			assert.Equal(t, core.ScoreSourceFallback, sd.Source)
		}
	})

	t.Run("garbage response falls back to keyword scoring", func(t *testing.T) {
		oracle := mock.NewScriptedOracle("I'm sorry, I can't rate these articles.")
		scorer := &batchScorer{oracle: oracle, pool: testPool(t), logger: testLogger()}

		docs := []*core.CorpusDocument{
			{Id: 1, Title: "Paris", Summary: "Capital of France"},
			{Id: 2, Title: "London", Summary: "Capital of England"},
		}
		scored := scorer.scoreAll(context.Background(), docs, "history of Paris", 10)
		require.Len(t, scored, 2)
		assert.Equal(t, core.ScoreSourceFallback, scored[0].Source)
		assert.Greater(t, scored[0].Score, scored[1].Score, "keyword fallback should favor the title match")
	})

	t.Run("length mismatch falls back", func(t *testing.T) {
		oracle := mock.NewScriptedOracle("[90, 80]")
		scorer := &batchScorer{oracle: oracle, pool: testPool(t), logger: testLogger()}

		scored := scorer.scoreAll(context.Background(), candidateDocs(3), "query", 10)
		require.Len(t, scored, 3)
		for _, sd := range scored {
			assert.Equal(t, core.ScoreSourceFallback, sd.Source)
		}
	})

	t.Run("out-of-range scores are clamped", func(t *testing.T) {
		oracle := mock.NewScriptedOracle("[150, -20]")
		scorer := &batchScorer{oracle: oracle, pool: testPool(t), logger: testLogger()}

		scored := scorer.scoreAll(context.Background(), candidateDocs(2), "query", 10)
		require.Len(t, scored, 2)
		assert.Equal(t, 100, scored[0].Score)
		assert.Equal(t, 0, scored[1].Score)
	})

	t.Run("cancelled context skips oracle entirely", func(t *testing.T) {
		oracle := mock.NewMockOracle()
		scorer := &batchScorer{oracle: oracle, pool: testPool(t), logger: testLogger()}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		scored := scorer.scoreAll(ctx, candidateDocs(6), "query", 2)
		require.Len(t, scored, 6, "every input document must be scored")
		assert.Zero(t, oracle.CallCount())
		for _, sd := range scored {
			assert.Equal(t, core.ScoreSourceFallback, sd.Source)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		scorer := &batchScorer{oracle: mock.NewMockOracle(), pool: testPool(t), logger: testLogger()}
		assert.Empty(t, scorer.scoreAll(context.Background(), nil, "query", 10))
	})
}

func TestPartition(t *testing.T) {
	docs := candidateDocs(7)

	batches := partition(docs, 3)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 3)
	assert.Len(t, batches[1], 3)
	assert.Len(t, batches[2], 1)

	assert.Len(t, partition(docs, 100), 1)
	assert.Len(t, partition(docs, 0), 7, "degenerate size degrades to singleton batches")
	assert.Empty(t, partition(nil, 3))
}
