package search

import (
	"regexp"
	"strconv"
	"strings"
)

// All raw oracle text funnels through parseResponse. Control flow elsewhere
// only ever sees typed parse results, never the untrusted text itself.

// parsedKind tags the shape recognized in an oracle response.
type parsedKind int

const (
	parsedUnparseable parsedKind = iota
	parsedPredicate
	parsedScoreArray
	parsedSingleScore
)

// parsedResponse is the typed result of parsing one oracle response.
type parsedResponse struct {
	kind      parsedKind
	predicate string
	scores    []int
	score     int
}

var (
	codeFence    = regexp.MustCompile("(?s)```[a-zA-Z]*\n?(.*?)```")
	bracketArray = regexp.MustCompile(`\[([^\[\]]*)\]`)
	firstInteger = regexp.MustCompile(`-?\d+`)
)

// stripFormatting removes markdown code fences, a leading language tag, and
// trailing statement terminators from oracle output.
func stripFormatting(s string) string {
	s = strings.TrimSpace(s)

	// Prefer the content of the first code fence if one is present; models
	// often wrap the answer and add prose around it.
	if m := codeFence.FindStringSubmatch(s); m != nil {
		s = m[1]
	} else {
		s = strings.TrimPrefix(s, "```sql")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}

// parseResponse classifies raw oracle text into one of the typed shapes the
// engine understands. Anything unrecognized is tagged unparseable; no caller
// treats that as an error worth crashing over.
func parseResponse(raw string) parsedResponse {
	text := stripFormatting(raw)
	if text == "" {
		return parsedResponse{kind: parsedUnparseable}
	}

	// Predicates are checked first: SQL can legally contain brackets and
	// digits, and must not be misread as a score payload.
	if strings.HasPrefix(strings.ToLower(text), "select") {
		return parsedResponse{kind: parsedPredicate, predicate: text}
	}

	if m := bracketArray.FindStringSubmatch(text); m != nil {
		if scores, ok := parseIntList(m[1]); ok {
			return parsedResponse{kind: parsedScoreArray, scores: scores}
		}
	}

	// A single integer anywhere in the remaining text counts as a score;
	// models tend to answer "Score: 85" despite being asked for bare digits.
	if m := firstInteger.FindString(text); m != "" {
		if score, err := strconv.Atoi(m); err == nil {
			return parsedResponse{kind: parsedSingleScore, score: score}
		}
	}

	return parsedResponse{kind: parsedUnparseable}
}

// parseIntList parses a comma-separated list of integers.
// Returns false if any element is not an integer or the list is empty.
func parseIntList(s string) ([]int, bool) {
	parts := strings.Split(s, ",")
	scores := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, false
		}
		scores = append(scores, n)
	}
	if len(scores) == 0 {
		return nil, false
	}
	return scores, true
}
