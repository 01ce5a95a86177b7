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


// Package corpus provides the read-only corpus store abstraction.
//
// This package defines the Store interface that decouples the search engine
// from the backing database. The engine executes oracle-generated SQL
// predicates through the store in two shapes: count-only evaluation for
// cardinality feedback, and a title+summary projection for accepted
// predicates. Full document content is fetched by ID only for the top
// candidates of a search.
//
// Implementations must enforce read-only execution themselves: upstream
// predicate validation exists, but the store is the last line of defense and
// must not assume its callers validated anything.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return the Store interface
// to enforce abstraction:
//
//	store, err := sqlite.OpenStore(path)  // returns corpus.Store
//
// The sqlite package additionally exposes a concrete writer type for
// ingestion, which is deliberately kept off this interface: the engine can
// only ever read.
package corpus
