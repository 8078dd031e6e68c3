package lint

import "github.com/yaklabco/phpsniff/pkg/phptoken"

// Tokenizer turns raw source into a linked token stream.
//
// Implementations must be deterministic for a given (path, content, opts)
// and must not mutate content. An error means the file cannot be linted.
type Tokenizer interface {
	Tokenize(path string, content []byte, opts phptoken.Options) (*phptoken.File, error)
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(path string, content []byte, opts phptoken.Options) (*phptoken.File, error)

// Tokenize calls f.
func (f TokenizerFunc) Tokenize(path string, content []byte, opts phptoken.Options) (*phptoken.File, error) {
	return f(path, content, opts)
}

// PHPTokenizer is the built-in PHP tokenizer.
//
//nolint:gochecknoglobals // Stateless adapter.
var PHPTokenizer Tokenizer = TokenizerFunc(phptoken.Tokenize)
