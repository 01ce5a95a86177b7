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


package core

import "errors"

// Domain errors
var (
	// ErrInvalidBudget indicates a SearchBudget failed validation.
	ErrInvalidBudget = errors.New("invalid search budget")

	// ErrInvalidDocument indicates a CorpusDocument failed validation.
	ErrInvalidDocument = errors.New("invalid corpus document")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrPredicateRejected indicates the validator refused an oracle-generated
	// predicate. Recovered locally by the refinement controller; it only
	// surfaces when all attempts are exhausted.
	ErrPredicateRejected = errors.New("predicate rejected")

	// ErrCorpusExecution indicates the corpus store failed while executing an
	// accepted predicate. Fatal for the session.
	ErrCorpusExecution = errors.New("corpus execution error")

	// ErrNoRelevantDocuments indicates refinement attempts were exhausted
	// without an accepted predicate. Callers should present an empty result,
	// not a crash.
	ErrNoRelevantDocuments = errors.New("no relevant documents found")
)
