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


package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaiserguy/ai-questions-sub000/core"
)

// AddDocuments inserts or replaces documents in the corpus.
// Documents with Id zero get a content-hash ID derived from the title, so
// reingesting the same dump produces the same identities. Word counts are
// computed when absent. Returns the number of documents written.
//
// This is the ingestion write path; it is deliberately not part of the
// corpus.Store interface, which the search engine consumes read-only.
func (s *Store) AddDocuments(ctx context.Context, docs ...*core.CorpusDocument) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO articles (id, title, summary, content, categories, word_count)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, doc := range docs {
		if err := core.ValidateDocument(doc); err != nil {
			return written, err
		}

		// Derived fields stay local so the caller's documents are not mutated.
		id := doc.Id
		if id == 0 {
			id = core.IDFromContent(doc.Title)
		}
		wordCount := doc.WordCount
		if wordCount == 0 {
			wordCount = len(strings.Fields(doc.Content))
		}

		categories := doc.Categories
		if categories == nil {
			categories = []string{}
		}
		rawCategories, err := json.Marshal(categories)
		if err != nil {
			return written, fmt.Errorf("add documents: %w", err)
		}

		if _, err := stmt.ExecContext(ctx,
			int64(id), doc.Title, doc.Summary, doc.Content,
			string(rawCategories), wordCount); err != nil {
			return written, fmt.Errorf("add documents: %w", err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}
	return written, nil
}
