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


// Package sqlite implements the corpus store on SQLite.
//
// The corpus lives in a single articles table (id, title, summary, content,
// categories, word_count). Oracle-generated predicates are executed by
// wrapping them in subqueries: a COUNT(*) wrapper for cardinality checks and
// an id/title/summary projection wrapper for accepted predicates. Every
// predicate passes a read-only guard before execution, regardless of what
// validation happened upstream.
//
// Writes happen only through the concrete Store type's AddDocuments method,
// used by the ingestion pipeline. The corpus.Store interface the search
// engine consumes has no write operations at all.
package sqlite
