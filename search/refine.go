package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kaiserguy/ai-questions-sub000/ai"
	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/kaiserguy/ai-questions-sub000/corpus"
)

// maxFeedbackHistory bounds the trailing window of failed attempts included
// in predicate prompts, which keeps prompt size bounded no matter how large
// the attempt budget is.
const maxFeedbackHistory = 5

// refiner drives the generate-check-retry loop that turns a user query into
// an accepted corpus predicate and its candidate rows.
type refiner struct {
	oracle ai.Oracle
	store  corpus.Store
	budget core.SearchBudget
	logger *slog.Logger

	// onAccepted, if set, is called once when a predicate is accepted,
	// before the full row fetch executes.
	onAccepted func(predicate string, rows, attempts int)
}

// refine loops up to MaxRefinementAttempts times asking the oracle for a
// candidate predicate, validating it, and classifying its cardinality.
// On acceptance it executes the predicate and returns the candidate rows as
// title+summary partial documents.
//
// Returns core.ErrNoRelevantDocuments when attempts are exhausted, the
// context error on cancellation, and core.ErrCorpusExecution only when the
// store fails executing an already-accepted predicate.
func (r *refiner) refine(ctx context.Context, query string) ([]*core.CorpusDocument, error) {
	var history []core.RefinementAttempt

	for attempt := 1; attempt <= r.budget.MaxRefinementAttempts; attempt++ {
		// No new oracle call once cancellation is requested.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prompt := buildPredicatePrompt(query, tailWindow(history, maxFeedbackHistory))
		raw, err := r.oracle.Complete(ctx, prompt)
		if err != nil {
			r.logger.Warn("oracle unavailable during refinement", "attempt", attempt, "err", err)
			history = r.record(history, "", core.OutcomeExecutionError, 0)
			continue
		}

		parsed := parseResponse(raw)
		if parsed.kind != parsedPredicate {
			r.logger.Warn("oracle response is not a predicate", "attempt", attempt)
			history = r.record(history, stripFormatting(raw), core.OutcomeExecutionError, 0)
			continue
		}

		predicate, err := ValidatePredicate(parsed.predicate)
		if err != nil {
			// Rejected predicates are never executed; the rejection is fed
			// back to the oracle as a failed attempt.
			r.logger.Warn("predicate rejected", "attempt", attempt, "err", err)
			history = r.record(history, parsed.predicate, core.OutcomeExecutionError, 0)
			continue
		}

		count, err := r.store.CountMatching(ctx, predicate.Text())
		if err != nil {
			r.logger.Warn("count evaluation failed", "attempt", attempt, "err", err)
			history = r.record(history, predicate.Text(), core.OutcomeExecutionError, 0)
			continue
		}

		switch {
		case count == 0:
			r.logger.Debug("predicate matched nothing", "attempt", attempt)
			history = r.record(history, predicate.Text(), core.OutcomeTooFew, 0)
			continue
		case count > r.budget.MaxResultCardinality:
			r.logger.Debug("predicate too broad", "attempt", attempt, "rows", count)
			history = r.record(history, predicate.Text(), core.OutcomeTooMany, count)
			continue
		}

		// Accepted: execute the full predicate. A store failure here is
		// fatal for the session, unlike failures on candidate predicates.
		if r.onAccepted != nil {
			r.onAccepted(predicate.Text(), count, attempt)
		}
		docs, err := r.store.FetchMatching(ctx, predicate.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrCorpusExecution, err)
		}
		r.logger.Info("predicate accepted", "attempt", attempt, "rows", len(docs))
		return docs, nil
	}

	r.logger.Info("refinement attempts exhausted", "attempts", r.budget.MaxRefinementAttempts)
	return nil, core.ErrNoRelevantDocuments
}

// record appends an attempt to the history. Attempts without a usable
// predicate text, such as oracle outages, get a placeholder so the feedback
// lines in later prompts never go blank.
func (r *refiner) record(history []core.RefinementAttempt, predicate string, outcome core.AttemptOutcome, count int) []core.RefinementAttempt {
	if predicate == "" {
		predicate = "(no response)"
	}
	return append(history, core.RefinementAttempt{
		Predicate: predicate,
		Outcome:   outcome,
		Count:     count,
	})
}

// tailWindow returns the most recent n attempts.
func tailWindow(history []core.RefinementAttempt, n int) []core.RefinementAttempt {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
