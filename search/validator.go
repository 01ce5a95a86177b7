package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kaiserguy/ai-questions-sub000/core"
)

// SafePredicate is a predicate that passed validation. The zero value is not
// safe; instances are only produced by ValidatePredicate.
type SafePredicate struct {
	text string
}

// Text returns the validated predicate text.
func (p SafePredicate) Text() string {
	return p.text
}

// corpusCollection is the only collection a predicate may read from.
const corpusCollection = "articles"

var (
	mutationVerbs = regexp.MustCompile(
		`(?i)\b(insert|update|delete|drop|alter|create|truncate|replace|attach|detach|pragma|vacuum|reindex)\b`)
	setCombinators = regexp.MustCompile(`(?i)\b(union|intersect|except)\b`)
	readTargets    = regexp.MustCompile(`(?i)\b(?:from|join)\s+([a-zA-Z_][a-zA-Z0-9_]*)`)

	// fromTableList captures everything between FROM and the next clause
	// keyword (or closing paren), without crossing parentheses. A comma in
	// that span is a comma-separated table list, which readTargets alone
	// cannot see past its first identifier.
	fromTableList = regexp.MustCompile(
		`(?is)\bfrom\s+([^()]+?)(?:\bwhere\b|\bgroup\b|\border\b|\blimit\b|\bhaving\b|\bjoin\b|\bon\b|\)|$)`)
)

// ValidatePredicate checks that an oracle-generated predicate is a safe,
// read-only retrieval expression over the corpus collection.
//
// Validation rules (all must hold):
//   - single SELECT statement, no statement chaining
//   - no mutation or schema verbs anywhere in the text
//   - no SQL comment tokens
//   - no set combinators (UNION/INTERSECT/EXCEPT) usable for query splicing
//   - every FROM/JOIN target is the articles collection
//   - no comma-separated table lists (implicit cross joins)
//
// Validation is pure and deterministic: the same text always produces the
// same outcome, and a rejected predicate is never executed, not even
// partially. Rejections wrap core.ErrPredicateRejected with the reason.
func ValidatePredicate(text string) (SafePredicate, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return SafePredicate{}, fmt.Errorf("%w: empty predicate", core.ErrPredicateRejected)
	}

	if !strings.HasPrefix(strings.ToLower(trimmed), "select") {
		return SafePredicate{}, fmt.Errorf("%w: not a SELECT statement", core.ErrPredicateRejected)
	}

	if strings.Contains(trimmed, ";") {
		return SafePredicate{}, fmt.Errorf("%w: statement chaining is not allowed", core.ErrPredicateRejected)
	}

	if strings.Contains(trimmed, "--") || strings.Contains(trimmed, "/*") || strings.Contains(trimmed, "*/") {
		return SafePredicate{}, fmt.Errorf("%w: comment tokens are not allowed", core.ErrPredicateRejected)
	}

	if verb := mutationVerbs.FindString(trimmed); verb != "" {
		return SafePredicate{}, fmt.Errorf("%w: forbidden keyword %q", core.ErrPredicateRejected, strings.ToLower(verb))
	}

	if comb := setCombinators.FindString(trimmed); comb != "" {
		return SafePredicate{}, fmt.Errorf("%w: set combinator %q is not allowed", core.ErrPredicateRejected, strings.ToLower(comb))
	}

	for _, match := range readTargets.FindAllStringSubmatch(trimmed, -1) {
		if !strings.EqualFold(match[1], corpusCollection) {
			return SafePredicate{}, fmt.Errorf("%w: references collection %q, only %q is allowed",
				core.ErrPredicateRejected, match[1], corpusCollection)
		}
	}

	// Comma-separated table lists are implicit cross joins; readTargets only
	// checks the first identifier after FROM, so ban the comma outright.
	for _, match := range fromTableList.FindAllStringSubmatch(trimmed, -1) {
		if strings.Contains(match[1], ",") {
			return SafePredicate{}, fmt.Errorf("%w: multiple collections in FROM clause",
				core.ErrPredicateRejected)
		}
	}

	return SafePredicate{text: trimmed}, nil
}
