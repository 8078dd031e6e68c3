// Package phptoken tokenizes PHP source into a lossless token stream and
// exposes it as a read-only File with precomputed bracket and scope maps.
package phptoken

import "errors"

// ErrUnbalanced is returned when brackets in the source do not pair up.
var ErrUnbalanced = errors.New("unbalanced brackets")

// Token is a classified span of the source.
// Tokens are contiguous and cover the whole file.
type Token struct {
	// Kind classifies the token.
	Kind Kind

	// Text is the raw source slice.
	Text string

	// Index is the position of the token in the file's token sequence.
	Index int

	// Offset is the byte offset where the token starts.
	Offset int

	// Line is the 1-based line of the first byte.
	Line int

	// Column is the 1-based byte column of the first byte.
	Column int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Len returns the token length in bytes.
func (t Token) Len() int {
	return len(t.Text)
}
