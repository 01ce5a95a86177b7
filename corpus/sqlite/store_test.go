package sqlite

import (
	"context"
	"testing"

	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/kaiserguy/ai-questions-sub000/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	docs := []*core.CorpusDocument{
		{
			Title:      "Paris",
			Summary:    "Paris is the capital and largest city of France.",
			Content:    "Paris is the capital and largest city of France. It is known for the Eiffel Tower and the Louvre.",
			Categories: []string{"Cities", "France"},
		},
		{
			Title:      "London",
			Summary:    "London is the capital of England and the United Kingdom.",
			Content:    "London is the capital of England and the United Kingdom, situated on the River Thames.",
			Categories: []string{"Cities", "England"},
		},
		{
			Title:      "France",
			Summary:    "France is a country in Western Europe.",
			Content:    "France is a country in Western Europe. Its capital is Paris.",
			Categories: []string{"Countries", "Europe"},
		},
	}

	written, err := store.AddDocuments(context.Background(), docs...)
	require.NoError(t, err)
	require.Equal(t, 3, written)

	return store
}

func TestAddDocuments(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	t.Run("assigns content-hash IDs", func(t *testing.T) {
		doc, err := store.FetchFullByTitle(ctx, "Paris")
		require.NoError(t, err)
		assert.Equal(t, core.IDFromContent("Paris"), doc.Id)
	})

	t.Run("computes word counts", func(t *testing.T) {
		doc, err := store.FetchFullByTitle(ctx, "France")
		require.NoError(t, err)
		assert.Greater(t, doc.WordCount, 0)
	})

	t.Run("reingest is idempotent", func(t *testing.T) {
		written, err := store.AddDocuments(ctx, &core.CorpusDocument{
			Title:   "Paris",
			Summary: "Paris is the capital and largest city of France.",
			Content: "Paris is the capital and largest city of France. It is known for the Eiffel Tower and the Louvre.",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, written)

		count, err := store.DocumentCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		_, err := store.AddDocuments(ctx, &core.CorpusDocument{Title: "No Content"})
		assert.ErrorIs(t, err, core.ErrInvalidDocument)
	})

	t.Run("does not mutate the caller's documents", func(t *testing.T) {
		doc := &core.CorpusDocument{
			Title:   "Berlin",
			Summary: "Berlin is the capital of Germany.",
			Content: "Berlin is the capital and largest city of Germany.",
		}
		written, err := store.AddDocuments(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, 1, written)
		assert.Zero(t, doc.Id)
		assert.Zero(t, doc.WordCount)

		stored, err := store.FetchFullByTitle(ctx, "Berlin")
		require.NoError(t, err)
		assert.Equal(t, core.IDFromContent("Berlin"), stored.Id)
		assert.Equal(t, 9, stored.WordCount)
	})
}

func TestCountMatching(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	t.Run("counts matching rows", func(t *testing.T) {
		count, err := store.CountMatching(ctx,
			"SELECT id, title, summary FROM articles WHERE summary LIKE '%capital%'")
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("zero matches", func(t *testing.T) {
		count, err := store.CountMatching(ctx,
			"SELECT id, title, summary FROM articles WHERE title = 'Atlantis'")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("rejects mutation SQL", func(t *testing.T) {
		_, err := store.CountMatching(ctx, "DROP TABLE articles")
		assert.ErrorIs(t, err, corpus.ErrNotReadOnly)
	})

	t.Run("malformed SQL surfaces an error", func(t *testing.T) {
		_, err := store.CountMatching(ctx, "SELECT id FROM articles WHERE (")
		assert.Error(t, err)
	})
}

func TestFetchMatching(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	t.Run("returns partial documents", func(t *testing.T) {
		docs, err := store.FetchMatching(ctx,
			"SELECT id, title, summary FROM articles WHERE title IN ('Paris', 'France')")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		for _, doc := range docs {
			assert.NotZero(t, doc.Id)
			assert.NotEmpty(t, doc.Title)
			assert.NotEmpty(t, doc.Summary)
			assert.Empty(t, doc.Content) // full content deferred to FetchFullById
		}
	})

	t.Run("preserves predicate ordering clauses", func(t *testing.T) {
		docs, err := store.FetchMatching(ctx,
			"SELECT id, title, summary FROM articles ORDER BY title LIMIT 2")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "France", docs[0].Title)
		assert.Equal(t, "London", docs[1].Title)
	})

	t.Run("rejects statement chaining", func(t *testing.T) {
		_, err := store.FetchMatching(ctx,
			"SELECT id, title, summary FROM articles; DELETE FROM articles")
		assert.ErrorIs(t, err, corpus.ErrNotReadOnly)
	})

	t.Run("rejects comma cross join onto another table", func(t *testing.T) {
		_, err := store.FetchMatching(ctx,
			"SELECT id, name AS title, sql AS summary FROM articles, sqlite_master")
		assert.ErrorIs(t, err, corpus.ErrNotReadOnly)
	})
}

func TestFetchFull(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	t.Run("by id", func(t *testing.T) {
		doc, err := store.FetchFullById(ctx, core.IDFromContent("London"))
		require.NoError(t, err)
		assert.Equal(t, "London", doc.Title)
		assert.Contains(t, doc.Content, "River Thames")
		assert.Equal(t, []string{"Cities", "England"}, doc.Categories)
	})

	t.Run("by title", func(t *testing.T) {
		doc, err := store.FetchFullByTitle(ctx, "Paris")
		require.NoError(t, err)
		assert.Contains(t, doc.Content, "Eiffel Tower")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := store.FetchFullById(ctx, core.ID(12345))
		assert.ErrorIs(t, err, corpus.ErrNotFound)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := store.FetchFullByTitle(ctx, "Atlantis")
		assert.ErrorIs(t, err, corpus.ErrNotFound)
	})
}

func TestFetchByCategory(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	t.Run("lists tagged articles ordered by title", func(t *testing.T) {
		docs, err := store.FetchByCategory(ctx, "Cities", 10)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "London", docs[0].Title)
		assert.Equal(t, "Paris", docs[1].Title)
		assert.Equal(t, []string{"Cities", "England"}, docs[0].Categories)
		assert.Empty(t, docs[0].Content, "category browsing returns partial rows")
	})

	t.Run("honors the limit", func(t *testing.T) {
		docs, err := store.FetchByCategory(ctx, "Cities", 1)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "London", docs[0].Title)
	})

	t.Run("matches whole tags only", func(t *testing.T) {
		// "France" the category, not a substring of another tag.
		docs, err := store.FetchByCategory(ctx, "Franc", 10)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("unknown category", func(t *testing.T) {
		docs, err := store.FetchByCategory(ctx, "Mathematics", 10)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestStats(t *testing.T) {
	store := newSeededStore(t)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalDocuments)
	assert.Greater(t, stats.TotalWords, int64(0))
	assert.Greater(t, stats.AvgWordsPerDoc, 0.0)
	assert.LessOrEqual(t, stats.MinWords, stats.MaxWords)
	// Cities, France, England, Countries, Europe
	assert.Equal(t, 5, stats.TotalCategories)
}

func TestGuardReadOnly(t *testing.T) {
	cases := []struct {
		name      string
		predicate string
		wantErr   bool
	}{
		{"plain select", "SELECT id, title, summary FROM articles WHERE title = 'Paris'", false},
		{"lowercase select", "select id, title, summary from articles", false},
		{"empty", "   ", true},
		{"drop table", "DROP TABLE articles", true},
		{"embedded delete", "SELECT id FROM articles WHERE id IN (DELETE FROM articles)", true},
		{"chained statement", "SELECT id FROM articles; DROP TABLE articles", true},
		{"line comment", "SELECT id FROM articles -- WHERE id = 1", true},
		{"block comment", "SELECT id FROM articles /* hidden */", true},
		{"pragma", "SELECT id FROM articles WHERE id = (PRAGMA page_count)", true},
		{"comma cross join", "SELECT id, name AS title, sql AS summary FROM articles, sqlite_master", true},
		{"subquery with where commas", "SELECT id FROM articles WHERE id IN (SELECT id FROM articles WHERE title IN ('a', 'b'))", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := guardReadOnly(tc.predicate)
			if tc.wantErr {
				assert.ErrorIs(t, err, corpus.ErrNotReadOnly)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
