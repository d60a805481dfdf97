// Package ingestion reads already-decoded resume text for scoring.
//
// Binary formats (PDF, DOC, DOCX) must be converted to text upstream; input
// that does not look like text is rejected instead of being scored.
package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// DefaultMaxBytes is the size limit applied when callers pass maxBytes <= 0.
const DefaultMaxBytes int64 = 1 << 20

var (
	// ErrNotText indicates the input contains NUL bytes or invalid UTF-8.
	ErrNotText = errors.New("input is not plain UTF-8 text; extract text before scoring")
	// ErrTooLarge indicates the input exceeds the size limit.
	ErrTooLarge = errors.New("input exceeds size limit")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a decoded resume and its provenance.
type Document struct {
	Text     string
	Metadata *Metadata
}

// Read consumes r and returns its contents as a Document. source names the
// input in metadata (a path, "stdin", "request"). The text is returned as
// is apart from a leading byte order mark; it is not cleaned or normalized.
func Read(r io.Reader, source string, maxBytes int64) (*Document, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	// Read one byte past the limit to detect oversize input.
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%s: %w (%d bytes)", source, ErrTooLarge, maxBytes)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: %w", source, ErrNotText)
	}

	text := string(data)
	return &Document{
		Text:     text,
		Metadata: NewMetadata(text, source),
	}, nil
}

// ReadFile reads a text file from disk.
func ReadFile(path string, maxBytes int64) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path, maxBytes)
}
