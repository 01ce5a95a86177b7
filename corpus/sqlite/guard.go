package sqlite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kaiserguy/ai-questions-sub000/corpus"
)

// The store re-checks predicates before executing them. The engine's
// validator runs first, but predicates originate from a language model and
// the store is the last line of defense.
var forbiddenVerbs = regexp.MustCompile(
	`(?i)\b(insert|update|delete|drop|alter|create|truncate|replace|attach|detach|pragma|vacuum|reindex)\b`)

// fromList captures the span between FROM and the next clause keyword
// without crossing parentheses. A comma in that span is a comma-separated
// table list, an implicit cross join onto a second table.
var fromList = regexp.MustCompile(
	`(?is)\bfrom\s+([^()]+?)(?:\bwhere\b|\bgroup\b|\border\b|\blimit\b|\bhaving\b|\bjoin\b|\bon\b|\)|$)`)

// guardReadOnly rejects any predicate that is not a single read-only SELECT.
func guardReadOnly(predicate string) error {
	trimmed := strings.TrimSpace(predicate)
	if trimmed == "" {
		return fmt.Errorf("%w: empty predicate", corpus.ErrNotReadOnly)
	}
	if !strings.HasPrefix(strings.ToLower(trimmed), "select") {
		return fmt.Errorf("%w: predicate must be a SELECT statement", corpus.ErrNotReadOnly)
	}
	if strings.Contains(trimmed, ";") {
		return fmt.Errorf("%w: statement chaining is not allowed", corpus.ErrNotReadOnly)
	}
	if strings.Contains(trimmed, "--") || strings.Contains(trimmed, "/*") || strings.Contains(trimmed, "*/") {
		return fmt.Errorf("%w: comment tokens are not allowed", corpus.ErrNotReadOnly)
	}
	if loc := forbiddenVerbs.FindString(trimmed); loc != "" {
		return fmt.Errorf("%w: forbidden keyword %q", corpus.ErrNotReadOnly, strings.ToLower(loc))
	}
	for _, match := range fromList.FindAllStringSubmatch(trimmed, -1) {
		if strings.Contains(match[1], ",") {
			return fmt.Errorf("%w: comma-separated table list is not allowed", corpus.ErrNotReadOnly)
		}
	}
	return nil
}
