package search

import (
	"strings"

	"github.com/kaiserguy/ai-questions-sub000/core"
)

// Stop words to filter out of query terms before keyword matching
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "what": true, "who": true, "when": true,
	"where": true, "why": true, "how": true, "which": true,
}

// queryTerms splits a query into lowercase terms, trims punctuation, and
// drops stop words and terms of three characters or fewer. Short terms match
// too much text to carry signal.
func queryTerms(query string) []string {
	words := strings.Fields(query)
	terms := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if len(cleaned) <= 3 || stopWords[cleaned] {
			continue
		}
		terms = append(terms, cleaned)
	}

	return terms
}

// keywordScore is the deterministic fallback relevance heuristic used when
// the oracle's batch response is unusable. It counts query terms appearing
// in the document's title or summary, weighted toward title hits, and clamps
// the result to the valid score range.
func keywordScore(doc *core.CorpusDocument, query string) int {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return 0
	}

	title := strings.ToLower(doc.Title)
	summary := strings.ToLower(doc.Summary)

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += 25
		} else if strings.Contains(summary, term) {
			score += 10
		}
	}

	return core.ClampScore(score)
}
