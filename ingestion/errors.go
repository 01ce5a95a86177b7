package ingestion

import "errors"

var (
	// ErrWriterRequired is returned when a corpus writer is not provided.
	ErrWriterRequired = errors.New("corpus writer required")

	// ErrMalformedRecord is returned by the reader for a line that is not a
	// valid JSON article record.
	ErrMalformedRecord = errors.New("malformed article record")
)
