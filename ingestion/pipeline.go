package ingestion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/kaiserguy/ai-questions-sub000/core"
)

// defaultBatchSize is the number of articles written per transaction.
const defaultBatchSize = 500

// DocumentWriter is the write-side corpus surface the pipeline needs.
// *sqlite.Store satisfies it.
type DocumentWriter interface {
	AddDocuments(ctx context.Context, docs ...*core.CorpusDocument) (int, error)
}

// Report summarizes one ingestion run.
type Report struct {
	Ingested int
	Skipped  int
	Elapsed  time.Duration
}

// Pipeline reads article dumps and writes them to the corpus in batches.
type Pipeline struct {
	writer    DocumentWriter
	batchSize int
	tracker   *ProgressTracker
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBatchSize sets the number of articles written per transaction.
// Default is 500.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) {
		if size >= 1 {
			p.batchSize = size
		}
	}
}

// WithProgress attaches a progress tracker to the run.
func WithProgress(tracker *ProgressTracker) Option {
	return func(p *Pipeline) {
		p.tracker = tracker
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates an ingestion pipeline writing to the given corpus.
func NewPipeline(writer DocumentWriter, opts ...Option) (*Pipeline, error) {
	if writer == nil {
		return nil, ErrWriterRequired
	}

	p := &Pipeline{
		writer:    writer,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "ingestion")
	return p, nil
}

// Run ingests every record from the dump stream. Malformed lines and
// documents that fail validation are logged, counted as skipped, and do not
// stop the run. A write failure or context cancellation stops the run and
// returns the error alongside a report of what was ingested so far.
func (p *Pipeline) Run(ctx context.Context, dump io.Reader) (*Report, error) {
	start := time.Now()
	if p.tracker != nil {
		p.tracker.Start()
		defer p.tracker.Finish()
	}

	reader := NewReader(dump)
	report := &Report{}
	batch := make([]*core.CorpusDocument, 0, p.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := p.writer.AddDocuments(ctx, batch...)
		if err != nil {
			return err
		}
		report.Ingested += n
		if p.tracker != nil {
			p.tracker.Increment(n)
		}
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(start)
			return report, err
		}

		doc, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, ErrMalformedRecord) {
				p.logger.Warn("skipping malformed record", "err", err)
				report.Skipped++
				continue
			}
			report.Elapsed = time.Since(start)
			return report, err
		}

		if err := core.ValidateDocument(doc); err != nil {
			p.logger.Warn("skipping invalid document", "title", doc.Title, "err", err)
			report.Skipped++
			continue
		}

		batch = append(batch, doc)
		if len(batch) >= p.batchSize {
			if err := flush(); err != nil {
				report.Elapsed = time.Since(start)
				return report, err
			}
		}
	}

	if err := flush(); err != nil {
		report.Elapsed = time.Since(start)
		return report, err
	}

	report.Elapsed = time.Since(start)
	p.logger.Info("ingestion complete",
		"ingested", report.Ingested, "skipped", report.Skipped, "elapsed", report.Elapsed)
	return report, nil
}
