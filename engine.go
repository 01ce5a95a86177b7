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


package aiquestions

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/kaiserguy/ai-questions-sub000/ai"
	"github.com/kaiserguy/ai-questions-sub000/ai/openai"
	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/kaiserguy/ai-questions-sub000/corpus"
	"github.com/kaiserguy/ai-questions-sub000/corpus/sqlite"
	"github.com/kaiserguy/ai-questions-sub000/ingestion"
	"github.com/kaiserguy/ai-questions-sub000/search"
)

// Engine bundles a corpus store, an oracle, and a worker pool behind one
// handle. Sessions created from an engine share the pool; the engine itself
// is safe for concurrent use.
type Engine struct {
	store  *sqlite.Store
	oracle ai.Oracle
	pool   *ants.Pool
	budget core.SearchBudget
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	oracle   ai.Oracle
	budget   core.SearchBudget
	poolSize int
	logger   *slog.Logger
}

// WithAIConfig sets the oracle endpoint configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithOracle injects a prebuilt oracle, bypassing the endpoint configuration.
func WithOracle(oracle ai.Oracle) EngineOption {
	return func(o *engineOptions) {
		if oracle != nil {
			o.oracle = oracle
		}
	}
}

// WithSearchBudget sets the budget applied to every session the engine creates.
func WithSearchBudget(budget core.SearchBudget) EngineOption {
	return func(o *engineOptions) {
		o.budget = budget
	}
}

// WithPoolSize sets the shared worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) EngineOption {
	return func(o *engineOptions) {
		if size >= 1 {
			o.poolSize = size
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewEngine opens the corpus database at dbPath and wires up the oracle and
// worker pool. Close must be called when done.
func NewEngine(dbPath string, opts ...EngineOption) (*Engine, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		budget:   core.DefaultBudget(),
		poolSize: poolSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := sqlite.OpenWriter(dbPath)
	if err != nil {
		return nil, err
	}

	oracle := options.oracle
	if oracle == nil {
		oracle, err = openai.NewOracle(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	pool, err := ants.NewPool(options.poolSize)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Engine{
		store:  store,
		oracle: oracle,
		pool:   pool,
		budget: options.budget,
		logger: options.logger,
	}, nil
}

// Close releases the worker pool and closes the corpus store.
func (e *Engine) Close() error {
	e.pool.Release()
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing corpus store", "err", err)
		return err
	}
	return nil
}

// Store returns the underlying corpus store.
func (e *Engine) Store() corpus.Store {
	return e.store
}

// NewSession creates a fresh single-use search session.
func (e *Engine) NewSession(opts ...search.SessionOption) (*search.Session, error) {
	base := []search.SessionOption{
		search.WithBudget(e.budget),
		search.WithPool(e.pool),
		search.WithLogger(e.logger),
	}
	return search.NewSession(e.store, e.oracle, append(base, opts...)...)
}

// Search runs one query on a fresh session and returns the ranked result.
func (e *Engine) Search(ctx context.Context, query string, opts ...search.SessionOption) (*core.Result, error) {
	session, err := e.NewSession(opts...)
	if err != nil {
		return nil, err
	}
	return session.Run(ctx, query)
}

// NewIngestionPipeline creates a pipeline that writes into the engine's corpus.
func (e *Engine) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	base := []ingestion.Option{ingestion.WithLogger(e.logger)}
	return ingestion.NewPipeline(e.store, append(base, opts...)...)
}

// Stats returns corpus-wide statistics.
func (e *Engine) Stats(ctx context.Context) (*corpus.Stats, error) {
	return e.store.Stats(ctx)
}
