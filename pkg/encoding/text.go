// Package encoding normalizes the text encoding of mesh source files.
package encoding

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader returns a reader that yields UTF-8 text from r.
// A leading UTF-8 or UTF-16 byte order mark selects the source encoding and
// is dropped; input without a BOM is read as UTF-8. Invalid UTF-8 sequences
// are replaced with U+FFFD.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
