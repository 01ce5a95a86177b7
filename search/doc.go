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


// Package search implements oracle-driven search over a static corpus.
//
// A Session runs one query through five phases: predicate refinement (the
// oracle proposes SQL predicates, validated and checked against a cardinality
// budget, with failure feedback folded into the next prompt), execution of
// the accepted predicate, concurrent batch scoring of candidates on title and
// summary, top-K selection, and deep re-scoring of the finalists on full
// content. Every oracle response is parsed defensively; unusable responses
// degrade to keyword scoring rather than failing the search.
//
// Sessions are single-use and support cooperative cancellation at phase and
// dispatch boundaries: in-flight oracle calls finish, no new ones start, and
// the caller receives whatever was scored so far.
package search
