// Copyright 2025 Kaiser Guy
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/kaiserguy/ai-questions-sub000/ai"
	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/kaiserguy/ai-questions-sub000/corpus"
	"github.com/panjf2000/ants/v2"
)

// SessionState identifies the phase a search session is in.
type SessionState int

const (
	// StateIdle means Run has not been called yet.
	StateIdle SessionState = iota
	// StateRefining means the session is negotiating a predicate with the oracle.
	StateRefining
	// StateExecuting means an accepted predicate is being executed against the corpus.
	StateExecuting
	// StateBatchScoring means candidate documents are being coarse-scored.
	StateBatchScoring
	// StateSelecting means the top candidates are being selected.
	StateSelecting
	// StateDeepScoring means the top candidates are being re-scored on full content.
	StateDeepScoring
	// StateDone means the session finished and produced a result.
	StateDone
	// StateCancelled means the session was cancelled and returned a partial result.
	StateCancelled
	// StateFailed means the session could not produce any result.
	StateFailed
)

// String returns a human-readable name for the state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRefining:
		return "refining"
	case StateExecuting:
		return "executing"
	case StateBatchScoring:
		return "batch_scoring"
	case StateSelecting:
		return "selecting"
	case StateDeepScoring:
		return "deep_scoring"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// terminal reports whether the state is an end state.
func (s SessionState) terminal() bool {
	return s == StateDone || s == StateCancelled || s == StateFailed
}

// Session executes one search request from query to ranked result.
//
// A session is single-use: Run may be called exactly once, and a second call
// returns ErrSessionConsumed. Cancel may be called from any goroutine at any
// time; a cancelled session stops requesting new oracle work, lets in-flight
// calls finish, and returns whatever it scored so far.
type Session struct {
	id     string
	store  corpus.Store
	oracle ai.Oracle
	budget core.SearchBudget

	pool     *ants.Pool
	ownsPool bool
	poolSize int

	monitor SearchMonitor
	logger  *slog.Logger

	mu      sync.Mutex
	state   SessionState
	started bool

	cancelled atomic.Bool
	cancel    context.CancelFunc
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithBudget overrides the default search budget.
func WithBudget(budget core.SearchBudget) SessionOption {
	return func(s *Session) {
		s.budget = budget
	}
}

// WithMonitor sets a monitor to observe search progress.
func WithMonitor(monitor SearchMonitor) SessionOption {
	return func(s *Session) {
		if monitor != nil {
			s.monitor = monitor
		}
	}
}

// WithLogger sets the logger used by the session and its scorers.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPool sets a shared worker pool for scoring calls. Without this option
// the session creates its own pool for the duration of Run.
func WithPool(pool *ants.Pool) SessionOption {
	return func(s *Session) {
		if pool != nil {
			s.pool = pool
		}
	}
}

// WithPoolSize sets the size of the session-owned worker pool. Ignored when
// a shared pool is provided via WithPool.
func WithPoolSize(size int) SessionOption {
	return func(s *Session) {
		if size > 0 {
			s.poolSize = size
		}
	}
}

// defaultPoolSize bounds concurrent oracle calls when no shared pool is given.
const defaultPoolSize = 4

// NewSession creates a single-use search session over the given corpus store
// and oracle.
func NewSession(store corpus.Store, oracle ai.Oracle, opts ...SessionOption) (*Session, error) {
	if store == nil {
		return nil, ErrCorpusStoreRequired
	}
	if oracle == nil {
		return nil, ErrOracleRequired
	}

	s := &Session{
		id:       uuid.NewString(),
		store:    store,
		oracle:   oracle,
		budget:   core.DefaultBudget(),
		poolSize: defaultPoolSize,
		monitor:  &noopMonitor{},
		logger:   slog.Default(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := core.ValidateBudget(s.budget); err != nil {
		return nil, err
	}

	s.logger = s.logger.With("component", "search", "session", s.id)
	return s, nil
}

// Id returns the session's correlation identifier.
func (s *Session) Id() string {
	return s.id
}

// State returns the session's current phase.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cancel requests cooperative cancellation. Safe to call from any goroutine,
// at any time, any number of times. After Cancel the session dispatches no
// new oracle work; calls already in flight run to completion.
func (s *Session) Cancel() {
	if s.cancelled.CompareAndSwap(false, true) {
		s.logger.Info("cancellation requested")
	}
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Run executes the full search: predicate refinement, candidate execution,
// batch scoring, top-K selection, and deep re-scoring.
//
// A session that exhausts its refinement budget returns an empty Result with
// a Reason and a nil error. A cancelled session returns whatever it scored
// so far, sorted, with a nil error. Run returns a non-nil error only for
// misuse (consumed or busy session) and for corpus failures on an accepted
// predicate.
func (s *Session) Run(ctx context.Context, query string) (*core.Result, error) {
	s.mu.Lock()
	if s.started {
		var err error
		if s.state.terminal() {
			err = ErrSessionConsumed
		} else {
			err = ErrSearchInProgress
		}
		s.mu.Unlock()
		return nil, err
	}
	s.started = true
	s.state = StateRefining
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	if s.cancelled.Load() {
		cancel()
	}

	pool := s.pool
	if pool == nil {
		var err error
		pool, err = ants.NewPool(s.poolSize)
		if err != nil {
			s.setState(StateFailed)
			return nil, fmt.Errorf("creating worker pool: %w", err)
		}
		defer pool.Release()
	}

	s.logger.Info("search started", "query", query)
	s.monitor.Start(query)

	// Phase 1+2: refine a predicate and execute it. The refiner reports
	// acceptance through the callback, which marks the execution phase.
	ref := &refiner{
		oracle: s.oracle,
		store:  s.store,
		budget: s.budget,
		logger: s.logger,
		onAccepted: func(predicate string, rows, attempts int) {
			s.setState(StateExecuting)
			s.monitor.PredicateAccepted(predicate, rows, attempts)
		},
	}
	candidates, err := ref.refine(ctx, query)
	if err != nil {
		return s.finishEarly(err)
	}
	if ctx.Err() != nil {
		return s.finish(StateCancelled, nil, "search cancelled before scoring")
	}

	// Phase 3: coarse scoring in concurrent batches.
	s.setState(StateBatchScoring)
	s.monitor.BatchScoringStarted(len(candidates), len(partition(candidates, s.budget.BatchSize)))
	scorer := &batchScorer{oracle: s.oracle, pool: pool, logger: s.logger}
	scored := scorer.scoreAll(ctx, candidates, query, s.budget.BatchSize)
	s.monitor.AfterBatchScoring(scored)

	// Phase 4: keep the best MaxResults candidates.
	s.setState(StateSelecting)
	topK := SelectTopK(scored, s.budget.MaxResults)
	s.monitor.AfterSelection(topK)
	if ctx.Err() != nil {
		return s.finish(StateCancelled, topK, "search cancelled before deep scoring")
	}

	// Phase 5: re-score the finalists on full content.
	s.setState(StateDeepScoring)
	s.monitor.DeepScoringStarted(len(topK))
	deep := &deepScorer{oracle: s.oracle, store: s.store, pool: pool, logger: s.logger}
	rescored := deep.rescore(ctx, topK, query)
	s.monitor.AfterDeepScoring(rescored)

	if ctx.Err() != nil {
		return s.finish(StateCancelled, rescored, "search cancelled during deep scoring")
	}
	return s.finish(StateDone, rescored, "")
}

// finishEarly maps refinement errors to their terminal outcome. Budget
// exhaustion and cancellation are outcomes, not errors; corpus failures on
// an accepted predicate are real errors.
func (s *Session) finishEarly(err error) (*core.Result, error) {
	switch {
	case errors.Is(err, core.ErrNoRelevantDocuments):
		return s.finish(StateFailed, nil, "no relevant documents found within the attempt budget")
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return s.finish(StateCancelled, nil, "search cancelled during refinement")
	default:
		s.setState(StateFailed)
		s.logger.Error("search failed", "err", err)
		result := &core.Result{Reason: err.Error()}
		s.monitor.Finish(result)
		return nil, err
	}
}

// finish transitions to a terminal state and builds the final result.
func (s *Session) finish(state SessionState, docs []*core.ScoredDocument, reason string) (*core.Result, error) {
	s.setState(state)
	result := &core.Result{Documents: docs, Reason: reason}
	s.logger.Info("search finished", "state", state.String(), "documents", len(docs))
	s.monitor.Finish(result)
	return result, nil
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
