package search

import (
	"fmt"
	"strings"

	"github.com/kaiserguy/ai-questions-sub000/core"
)

const predicatePromptTemplate = `You translate a user's question into a single SQLite query over an offline article corpus.

The corpus has exactly one table:

  articles(id INTEGER, title TEXT, summary TEXT, content TEXT, categories TEXT, word_count INTEGER)

Write ONE query of exactly this shape:

  SELECT id, title, summary FROM articles WHERE <conditions>

Rules:
- Output ONLY the SQL query. No explanation, no preamble, no code fences.
- Read-only SELECT. Never any other statement type.
- Reference only the articles table.
- Use LIKE patterns against title, summary, and content to find articles relevant to the question.
- Prefer broad OR conditions over exact matches; titles rarely match the question verbatim.

Question: %s
%s`

const batchScorePromptTemplate = `Rate how relevant each article is to the question, as an integer from 0 (irrelevant) to 100 (directly answers it).

Question: %s

Articles:
%s
Respond with ONLY a JSON array of %d integers, one per article, in the same order. Example: [85, 10, 40]`

const deepScorePromptTemplate = `Rate how relevant this article is to the question, as an integer from 0 (irrelevant) to 100 (directly answers it).

Question: %s

Article: %s

%s

Respond with ONLY the integer.`

// summaryExcerptLen bounds per-article summary text in batch prompts.
const summaryExcerptLen = 300

// contentExcerptLen bounds full-content text in deep scoring prompts.
const contentExcerptLen = 4000

// buildPredicatePrompt renders the predicate synthesis prompt, including a
// feedback block describing previous failed attempts so the oracle can
// diverge instead of repeating itself.
func buildPredicatePrompt(query string, history []core.RefinementAttempt) string {
	return fmt.Sprintf(predicatePromptTemplate, query, renderFeedback(history))
}

// renderFeedback formats the trailing window of refinement attempts.
func renderFeedback(history []core.RefinementAttempt) string {
	if len(history) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\nPrevious attempts that failed, most recent last. Produce a different query:\n")
	for _, attempt := range history {
		b.WriteString("- ")
		b.WriteString(attempt.Predicate)
		switch attempt.Outcome {
		case core.OutcomeTooMany:
			fmt.Fprintf(&b, "\n  returned %d rows: too many, narrow the conditions\n", attempt.Count)
		case core.OutcomeTooFew:
			b.WriteString("\n  returned 0 rows: too narrow, broaden the conditions\n")
		case core.OutcomeExecutionError:
			b.WriteString("\n  caused an execution error: malformed or unsafe\n")
		default:
			b.WriteString("\n")
		}
	}
	return b.String()
}

// buildBatchScorePrompt renders the coarse scoring prompt for one batch.
func buildBatchScorePrompt(query string, batch []*core.CorpusDocument) string {
	var b strings.Builder
	for i, doc := range batch {
		fmt.Fprintf(&b, "%d. Title: %s\n   Summary: %s\n", i+1, doc.Title, truncate(doc.Summary, summaryExcerptLen))
	}
	return fmt.Sprintf(batchScorePromptTemplate, query, b.String(), len(batch))
}

// buildDeepScorePrompt renders the full-content scoring prompt for one document.
func buildDeepScorePrompt(query string, doc *core.CorpusDocument) string {
	return fmt.Sprintf(deepScorePromptTemplate, query, doc.Title, truncate(doc.Content, contentExcerptLen))
}

// truncate bounds text to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
