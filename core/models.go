package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for corpus documents.
// It is generated from document content using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// CorpusDocument represents a single document in the corpus.
// The search engine only ever holds read-only copies; the corpus store owns
// the canonical rows. Partial rows (title/summary projections) leave Content empty.
type CorpusDocument struct {
	Id         ID
	Title      string
	Summary    string
	Content    string
	Categories []string
	WordCount  int
}

// ScoreSource identifies how a document's relevance score was produced.
type ScoreSource int

const (
	// ScoreSourceBatch is a coarse score from batch scoring on title and summary.
	ScoreSourceBatch ScoreSource = iota + 1
	// ScoreSourceFallback is a keyword-overlap score used when the oracle
	// response for a batch was unusable.
	ScoreSourceFallback
	// ScoreSourceDeep is a refined score from full-content re-scoring.
	ScoreSourceDeep
)

// String returns a human-readable name for the score source.
func (s ScoreSource) String() string {
	switch s {
	case ScoreSourceBatch:
		return "batch"
	case ScoreSourceFallback:
		return "fallback"
	case ScoreSourceDeep:
		return "deep"
	default:
		return "unknown"
	}
}

// ScoredDocument pairs a corpus document with a relevance score in [0,100].
type ScoredDocument struct {
	Document *CorpusDocument
	Score    int
	Source   ScoreSource
}

// AttemptOutcome classifies the result of one predicate refinement attempt.
type AttemptOutcome int

const (
	// OutcomeAccepted means the predicate matched an acceptable number of rows.
	OutcomeAccepted AttemptOutcome = iota + 1
	// OutcomeTooMany means the predicate matched more rows than the budget allows.
	OutcomeTooMany
	// OutcomeTooFew means the predicate matched zero rows.
	OutcomeTooFew
	// OutcomeExecutionError means the predicate was rejected or failed to execute.
	OutcomeExecutionError
)

// RefinementAttempt records one candidate predicate and why it was or was not
// accepted. Attempts are fed back into subsequent oracle prompts so the oracle
// can see what it already tried and diverge.
type RefinementAttempt struct {
	Predicate string
	Outcome   AttemptOutcome
	Count     int // Matched row count for OutcomeTooMany; zero otherwise
}

// SearchBudget bounds every loop in a search session.
// A budget is immutable for the lifetime of the session that holds it.
type SearchBudget struct {
	// MaxRefinementAttempts is the maximum number of candidate predicates
	// the refinement controller will request from the oracle.
	MaxRefinementAttempts int

	// MaxResultCardinality is the largest row count a predicate may match
	// and still be accepted.
	MaxResultCardinality int

	// BatchSize is the number of documents scored per oracle call during
	// batch scoring.
	BatchSize int

	// MaxResults is the number of top candidates kept for deep re-scoring
	// and returned to the caller.
	MaxResults int
}

// DefaultBudget returns the standard per-session search budget.
func DefaultBudget() SearchBudget {
	return SearchBudget{
		MaxRefinementAttempts: 5,
		MaxResultCardinality:  100,
		BatchSize:             10,
		MaxResults:            10,
	}
}

// Result is the final output of one search request: documents ordered by
// descending relevance score. Reason carries a human-readable diagnostic
// when Documents is empty or partial (attempts exhausted, cancelled).
type Result struct {
	Documents []*ScoredDocument
	Reason    string
}
