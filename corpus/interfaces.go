package corpus

import (
	"context"

	"github.com/kaiserguy/ai-questions-sub000/core"
)

// Store provides read-only access to the document corpus.
// Implementations must be thread-safe and support concurrent reads; the
// search engine never writes through this interface.
//
// Predicates passed to CountMatching and FetchMatching are SQL SELECT
// statements over the articles collection. Implementations must reject any
// predicate that is not read-only, independent of upstream validation.
type Store interface {
	// CountMatching executes a count-only evaluation of the predicate.
	// Returns the number of rows the predicate matches without
	// materializing them.
	CountMatching(ctx context.Context, predicate string) (int, error)

	// FetchMatching executes the predicate and returns matching rows as
	// partial documents carrying only Id, Title, and Summary. Full content
	// is deferred to FetchFullById.
	FetchMatching(ctx context.Context, predicate string) ([]*core.CorpusDocument, error)

	// FetchFullById retrieves a complete document, content included.
	// Returns ErrNotFound if no document has the given ID.
	FetchFullById(ctx context.Context, id core.ID) (*core.CorpusDocument, error)

	// FetchFullByTitle retrieves a complete document by exact title.
	// Returns ErrNotFound if no document has the given title.
	FetchFullByTitle(ctx context.Context, title string) (*core.CorpusDocument, error)

	// FetchByCategory returns up to limit documents tagged with the given
	// category, ordered by title. Rows are partial documents with their
	// category lists attached; content is not loaded.
	FetchByCategory(ctx context.Context, category string, limit int) ([]*core.CorpusDocument, error)

	// DocumentCount returns the total number of documents in the corpus.
	DocumentCount(ctx context.Context) (int, error)

	// Stats returns corpus-wide statistics.
	Stats(ctx context.Context) (*Stats, error)

	// Close closes the store and releases resources.
	Close() error
}

// Stats describes the corpus contents.
type Stats struct {
	TotalDocuments  int
	TotalWords      int64
	AvgWordsPerDoc  float64
	MinWords        int
	MaxWords        int
	TotalCategories int
	SizeBytes       int64
}
