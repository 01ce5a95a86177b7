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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/kaiserguy/ai-questions-sub000/corpus"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id          INTEGER PRIMARY KEY,
	title       TEXT NOT NULL UNIQUE,
	summary     TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL,
	categories  TEXT NOT NULL DEFAULT '[]',
	word_count  INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(title);
`

// Store is a SQLite-backed corpus store.
// Reads are safe for concurrent use. The search engine only ever reads;
// the write path lives on the concrete type (AddDocuments) and is used by
// the ingestion pipeline alone.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ corpus.Store = (*Store)(nil)

// newStore opens the database and runs migrations, returning the concrete type.
func newStore(dsn, path string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open corpus db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{
		db:     db,
		path:   path,
		logger: slog.Default().With("component", "sqlite-store"),
	}, nil
}

// OpenStore opens a SQLite corpus database at the given path, creating the
// schema if needed.
//
// Returns corpus.Store interface to enforce abstraction. Use OpenWriter to
// obtain the concrete type for ingestion.
func OpenStore(path string) (corpus.Store, error) {
	return newStore(path, path)
}

// OpenWriter opens the same database as OpenStore but returns the concrete
// type, exposing the write path for ingestion.
func OpenWriter(path string) (*Store, error) {
	return newStore(path, path)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CountMatching executes a count-only evaluation of the predicate.
// The predicate is wrapped in a counting subquery so no rows are materialized.
func (s *Store) CountMatching(ctx context.Context, predicate string) (int, error) {
	if err := guardReadOnly(predicate); err != nil {
		return 0, err
	}

	var count int
	query := "SELECT COUNT(*) FROM (" + predicate + ")"
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count matching: %w", err)
	}
	return count, nil
}

// FetchMatching executes the predicate and returns the matching rows as
// partial documents (Id, Title, Summary only).
func (s *Store) FetchMatching(ctx context.Context, predicate string) ([]*core.CorpusDocument, error) {
	if err := guardReadOnly(predicate); err != nil {
		return nil, err
	}

	// The predicate is required to project id, title, summary; wrapping keeps
	// any trailing clauses the oracle added (ORDER BY, LIMIT) intact.
	query := "SELECT id, title, summary FROM (" + predicate + ")"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch matching: %w", err)
	}
	defer rows.Close()

	var docs []*core.CorpusDocument
	for rows.Next() {
		var id int64
		var title, summary string
		if err := rows.Scan(&id, &title, &summary); err != nil {
			return nil, fmt.Errorf("fetch matching: %w", err)
		}
		docs = append(docs, &core.CorpusDocument{
			Id:      core.ID(id),
			Title:   title,
			Summary: summary,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch matching: %w", err)
	}
	return docs, nil
}

// FetchFullById retrieves a complete document, content included.
func (s *Store) FetchFullById(ctx context.Context, id core.ID) (*core.CorpusDocument, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, summary, content, categories, word_count FROM articles WHERE id = ?",
		int64(id))
	return scanDocument(row)
}

// FetchFullByTitle retrieves a complete document by exact title.
func (s *Store) FetchFullByTitle(ctx context.Context, title string) (*core.CorpusDocument, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, summary, content, categories, word_count FROM articles WHERE title = ?",
		title)
	return scanDocument(row)
}

// FetchByCategory returns up to limit documents tagged with the given
// category, ordered by title.
func (s *Store) FetchByCategory(ctx context.Context, category string, limit int) ([]*core.CorpusDocument, error) {
	if limit <= 0 {
		limit = 10
	}

	// Categories are stored as a JSON array of strings, so matching the
	// quoted form finds exact tags rather than substrings of longer names.
	pattern := `%"` + category + `"%`
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, summary, categories FROM articles
		WHERE categories LIKE ?
		ORDER BY title
		LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch by category: %w", err)
	}
	defer rows.Close()

	var docs []*core.CorpusDocument
	for rows.Next() {
		var id int64
		var title, summary, rawCategories string
		if err := rows.Scan(&id, &title, &summary, &rawCategories); err != nil {
			return nil, fmt.Errorf("fetch by category: %w", err)
		}
		var categories []string
		if err := json.Unmarshal([]byte(rawCategories), &categories); err != nil {
			categories = nil
		}
		docs = append(docs, &core.CorpusDocument{
			Id:         core.ID(id),
			Title:      title,
			Summary:    summary,
			Categories: categories,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch by category: %w", err)
	}
	return docs, nil
}

// DocumentCount returns the total number of documents in the corpus.
func (s *Store) DocumentCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return 0, fmt.Errorf("document count: %w", err)
	}
	return count, nil
}

// Stats returns corpus-wide statistics.
func (s *Store) Stats(ctx context.Context) (*corpus.Stats, error) {
	stats := &corpus.Stats{}

	row := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(word_count), 0),
			COALESCE(AVG(word_count), 0),
			COALESCE(MIN(word_count), 0),
			COALESCE(MAX(word_count), 0)
		FROM articles`)
	if err := row.Scan(&stats.TotalDocuments, &stats.TotalWords, &stats.AvgWordsPerDoc,
		&stats.MinWords, &stats.MaxWords); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	// Distinct category count across the JSON-encoded category lists.
	rows, err := s.db.QueryContext(ctx,
		"SELECT categories FROM articles WHERE categories != '[]'")
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		var categories []string
		if err := json.Unmarshal([]byte(raw), &categories); err != nil {
			// Malformed category rows don't invalidate the rest of the stats.
			s.logger.Warn("skipping malformed categories row", "err", err)
			continue
		}
		for _, c := range categories {
			seen[c] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats.TotalCategories = len(seen)

	if s.path != "" {
		if info, err := os.Stat(s.path); err == nil {
			stats.SizeBytes = info.Size()
		}
	}

	return stats, nil
}

// scanDocument scans a full article row into a CorpusDocument.
func scanDocument(row *sql.Row) (*core.CorpusDocument, error) {
	var id int64
	var title, summary, content, rawCategories string
	var wordCount int

	err := row.Scan(&id, &title, &summary, &content, &rawCategories, &wordCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, corpus.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}

	var categories []string
	if rawCategories != "" {
		if err := json.Unmarshal([]byte(rawCategories), &categories); err != nil {
			categories = nil
		}
	}

	return &core.CorpusDocument{
		Id:         core.ID(id),
		Title:      title,
		Summary:    summary,
		Content:    content,
		Categories: categories,
		WordCount:  wordCount,
	}, nil
}
