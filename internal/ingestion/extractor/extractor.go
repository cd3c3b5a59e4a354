// Package extractor normalizes uploaded vendor documents to a single raw
// text string ready for chunking and embedding.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// UnsupportedFormatError reports an upload in a binary format the service
// cannot read. The HTTP layer maps it to 415.
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q (%s): only plain text and markdown uploads are accepted", e.Extension, e.Filename)
}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract converts uploaded bytes to text. Text and markdown pass through
// with line endings normalized; any other extension is treated as text too,
// except known binary formats which are rejected outright. Bytes that are
// not valid UTF-8 are dropped rather than failing the upload.
func (e *Extractor) Extract(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf", ".docx", ".doc", ".xlsx", ".pptx":
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}

	text := strings.ToValidUTF8(string(data), "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(text), nil
}
