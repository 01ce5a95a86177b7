package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResponse(t *testing.T) {
	t.Run("bare predicate", func(t *testing.T) {
		p := parseResponse("SELECT id, title, summary FROM articles WHERE title LIKE '%x%'")
		assert.Equal(t, parsedPredicate, p.kind)
		assert.Equal(t, "SELECT id, title, summary FROM articles WHERE title LIKE '%x%'", p.predicate)
	})

	t.Run("fenced predicate with language tag and semicolon", func(t *testing.T) {
		p := parseResponse("```sql\nSELECT id, title, summary FROM articles WHERE 1=1;\n```")
		assert.Equal(t, parsedPredicate, p.kind)
		assert.Equal(t, "SELECT id, title, summary FROM articles WHERE 1=1", p.predicate)
	})

	t.Run("fenced predicate surrounded by prose", func(t *testing.T) {
		p := parseResponse("Here is the query:\n```\nselect id, title, summary from articles where id = 1\n```\nHope that helps!")
		assert.Equal(t, parsedPredicate, p.kind)
	})

	t.Run("score array", func(t *testing.T) {
		p := parseResponse("[85, 10, 40]")
		assert.Equal(t, parsedScoreArray, p.kind)
		assert.Equal(t, []int{85, 10, 40}, p.scores)
	})

	t.Run("score array with prose", func(t *testing.T) {
		p := parseResponse("Sure! The scores are: [0,100, 55]")
		assert.Equal(t, parsedScoreArray, p.kind)
		assert.Equal(t, []int{0, 100, 55}, p.scores)
	})

	t.Run("single score", func(t *testing.T) {
		p := parseResponse("85")
		assert.Equal(t, parsedSingleScore, p.kind)
		assert.Equal(t, 85, p.score)
	})

	t.Run("single score with label", func(t *testing.T) {
		p := parseResponse("Score: 73")
		assert.Equal(t, parsedSingleScore, p.kind)
		assert.Equal(t, 73, p.score)
	})

	t.Run("negative score parses", func(t *testing.T) {
		p := parseResponse("-5")
		assert.Equal(t, parsedSingleScore, p.kind)
		assert.Equal(t, -5, p.score)
	})

	t.Run("predicate wins over embedded digits", func(t *testing.T) {
		p := parseResponse("SELECT id, title, summary FROM articles WHERE word_count > 100")
		assert.Equal(t, parsedPredicate, p.kind)
	})

	t.Run("array with non-integers falls through to single score", func(t *testing.T) {
		p := parseResponse("[high, low, 40]")
		assert.Equal(t, parsedSingleScore, p.kind)
		assert.Equal(t, 40, p.score)
	})

	t.Run("unparseable", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "I cannot answer that.", "```\n\n```"} {
			p := parseResponse(raw)
			assert.Equal(t, parsedUnparseable, p.kind, "raw=%q", raw)
		}
	})
}

func TestStripFormatting(t *testing.T) {
	assert.Equal(t, "SELECT 1", stripFormatting("```sql\nSELECT 1;\n```"))
	assert.Equal(t, "SELECT 1", stripFormatting("  SELECT 1 ; "))
}
