package ingestion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/kaiserguy/ai-questions-sub000/corpus/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testDump = `{"title": "Paris", "summary": "Capital of France", "content": "Paris is the capital of France."}
{"title": "London", "summary": "Capital of England", "content": "London sits on the Thames."}
{"title": "France", "summary": "Country in Europe", "content": "France is a republic."}
`

func TestPipelineRun(t *testing.T) {
	t.Run("ingests a dump end to end", func(t *testing.T) {
		store, err := sqlite.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		pipeline, err := NewPipeline(store, WithLogger(testLogger()))
		require.NoError(t, err)

		report, err := pipeline.Run(context.Background(), strings.NewReader(testDump))
		require.NoError(t, err)
		assert.Equal(t, 3, report.Ingested)
		assert.Zero(t, report.Skipped)

		count, err := store.DocumentCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("reingestion is idempotent", func(t *testing.T) {
		store, err := sqlite.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		pipeline, err := NewPipeline(store, WithLogger(testLogger()))
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			_, err = pipeline.Run(context.Background(), strings.NewReader(testDump))
			require.NoError(t, err)
		}

		count, err := store.DocumentCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, count, "content-hash identity deduplicates reingestion")
	})

	t.Run("skips malformed and invalid records", func(t *testing.T) {
		store, err := sqlite.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		dump := `garbage line
{"title": "", "content": "body without a title"}
{"title": "Paris", "content": "Paris is the capital of France."}
`
		pipeline, err := NewPipeline(store, WithLogger(testLogger()))
		require.NoError(t, err)

		report, err := pipeline.Run(context.Background(), strings.NewReader(dump))
		require.NoError(t, err)
		assert.Equal(t, 1, report.Ingested)
		assert.Equal(t, 2, report.Skipped)
	})

	t.Run("small batches flush repeatedly", func(t *testing.T) {
		store, err := sqlite.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		pipeline, err := NewPipeline(store, WithBatchSize(1), WithLogger(testLogger()))
		require.NoError(t, err)

		report, err := pipeline.Run(context.Background(), strings.NewReader(testDump))
		require.NoError(t, err)
		assert.Equal(t, 3, report.Ingested)
	})

	t.Run("cancellation stops the run with a partial report", func(t *testing.T) {
		store, err := sqlite.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		pipeline, err := NewPipeline(store, WithLogger(testLogger()))
		require.NoError(t, err)

		report, err := pipeline.Run(ctx, strings.NewReader(testDump))
		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, report)
		assert.Zero(t, report.Ingested)
	})

	t.Run("write failure surfaces the error", func(t *testing.T) {
		pipeline, err := NewPipeline(&failingWriter{}, WithLogger(testLogger()))
		require.NoError(t, err)

		_, err = pipeline.Run(context.Background(), strings.NewReader(testDump))
		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("requires a writer", func(t *testing.T) {
		_, err := NewPipeline(nil)
		assert.ErrorIs(t, err, ErrWriterRequired)
	})
}

type failingWriter struct{}

func (f *failingWriter) AddDocuments(_ context.Context, _ ...*core.CorpusDocument) (int, error) {
	return 0, errors.New("disk full")
}
