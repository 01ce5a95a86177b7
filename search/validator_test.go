package search

import (
	"testing"

	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePredicate(t *testing.T) {
	valid := "SELECT id, title, summary FROM articles WHERE title LIKE '%paris%'"

	t.Run("accepts read-only select over articles", func(t *testing.T) {
		p, err := ValidatePredicate(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, p.Text())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		p, err := ValidatePredicate("  " + valid + "\n")
		require.NoError(t, err)
		assert.Equal(t, valid, p.Text())
	})

	t.Run("accepts self-join on articles", func(t *testing.T) {
		_, err := ValidatePredicate(
			"SELECT id, title, summary FROM articles WHERE id IN (SELECT id FROM articles WHERE word_count > 100)")
		require.NoError(t, err)
	})

	rejections := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \n"},
		{"not a select", "DROP TABLE articles"},
		{"statement chaining", "SELECT id, title, summary FROM articles WHERE 1=1; DROP TABLE articles"},
		{"trailing semicolon", "SELECT id, title, summary FROM articles WHERE 1=1;"},
		{"line comment", "SELECT id, title, summary FROM articles WHERE 1=1 -- hidden"},
		{"block comment", "SELECT id, title, summary FROM articles /* x */ WHERE 1=1"},
		{"embedded delete verb", "SELECT id FROM articles WHERE id = (DELETE FROM articles)"},
		{"pragma function table", "SELECT id, title, summary FROM pragma_table_info('articles')"},
		{"union splice", "SELECT id, title, summary FROM articles UNION SELECT 1, name, sql FROM sqlite_master"},
		{"foreign table", "SELECT id, title, summary FROM sqlite_master"},
		{"foreign join", "SELECT a.id, a.title, a.summary FROM articles a JOIN users u ON u.id = a.id"},
		{"comma cross join", "SELECT id, name AS title, sql AS summary FROM articles, sqlite_master"},
		{"comma cross join with trailing clause", "SELECT id, title, summary FROM articles, sqlite_master WHERE 1=1"},
	}
	for _, tc := range rejections {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			_, err := ValidatePredicate(tc.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrPredicateRejected)
		})
	}

	t.Run("deterministic for identical input", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			p, err := ValidatePredicate(valid)
			require.NoError(t, err)
			assert.Equal(t, valid, p.Text())

			_, err = ValidatePredicate("DELETE FROM articles")
			assert.ErrorIs(t, err, core.ErrPredicateRejected)
		}
	})
}
