package ingestion

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kaiserguy/ai-questions-sub000/core"
)

// maxRecordBytes bounds a single dump line. Full-length articles run to a
// few hundred kilobytes; anything past this is a corrupt dump.
const maxRecordBytes = 16 * 1024 * 1024

// articleRecord is the wire shape of one dump line. Text is accepted as an
// alias for Content because both appear in the wild.
type articleRecord struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Content    string   `json:"content"`
	Text       string   `json:"text"`
	Categories []string `json:"categories"`
}

// Reader decodes newline-delimited JSON article records from a dump stream.
// Blank lines are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a dump reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxRecordBytes)
	return &Reader{scanner: scanner}
}

// Next returns the next article in the dump, io.EOF at the end of the
// stream, or an error wrapping ErrMalformedRecord for an undecodable line.
// The reader stays usable after a malformed line; callers may skip and
// continue.
func (r *Reader) Next() (*core.CorpusDocument, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}

		var rec articleRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, r.line, err)
		}

		content := rec.Content
		if content == "" {
			content = rec.Text
		}
		categories := rec.Categories
		if categories == nil {
			categories = []string{}
		}
		return &core.CorpusDocument{
			Title:      strings.TrimSpace(rec.Title),
			Summary:    strings.TrimSpace(rec.Summary),
			Content:    content,
			Categories: categories,
		}, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, r.line+1, err)
	}
	return nil, io.EOF
}

// Line returns the number of the last line consumed, for diagnostics.
func (r *Reader) Line() int {
	return r.line
}
