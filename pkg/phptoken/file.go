package phptoken

// File is an immutable, tokenized view of one PHP source file.
//
// All lookups are by token index. A File is safe for concurrent readers.
type File struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full source.
	Content []byte

	tokens []Token

	// partner maps a bracket token to its matching bracket, -1 otherwise.
	partner []int

	// scopeOpener and scopeCloser map a scope owner (function, closure,
	// class, interface, trait) to its curly brackets, -1 otherwise.
	scopeOpener []int
	scopeCloser []int

	// nested holds the enclosing open parentheses of each token, outermost
	// first. Consecutive tokens share backing arrays; never mutate.
	nested [][]int

	lineStarts []int
	eol        string
}

// Tokens returns the token sequence. Callers must not modify it.
func (f *File) Tokens() []Token {
	return f.tokens
}

// Len returns the number of tokens.
func (f *File) Len() int {
	return len(f.tokens)
}

// Token returns the token at index i. It panics if i is out of range.
func (f *File) Token(i int) Token {
	return f.tokens[i]
}

// Kind returns the kind at index i, or Unknown when i is out of range.
func (f *File) Kind(i int) Kind {
	if i < 0 || i >= len(f.tokens) {
		return Unknown
	}
	return f.tokens[i].Kind
}

// EOL returns the line ending used by the file ("\n" when none was seen).
func (f *File) EOL() string {
	return f.eol
}

// FindPrevious walks backward from index from down to limit (inclusive) and
// returns the first token whose kind is in kinds, or, with exclude set, the
// first token whose kind is not in kinds.
func (f *File) FindPrevious(kinds KindSet, from, limit int, exclude bool) (int, bool) {
	if from >= len(f.tokens) {
		from = len(f.tokens) - 1
	}
	if limit < 0 {
		limit = 0
	}
	for i := from; i >= limit; i-- {
		if kinds.Has(f.tokens[i].Kind) != exclude {
			return i, true
		}
	}
	return 0, false
}

// FindNext walks forward from index from up to limit (exclusive) and returns
// the first token whose kind is in kinds, or, with exclude set, the first
// token whose kind is not in kinds.
func (f *File) FindNext(kinds KindSet, from, limit int, exclude bool) (int, bool) {
	if limit > len(f.tokens) {
		limit = len(f.tokens)
	}
	if from < 0 {
		from = 0
	}
	for i := from; i < limit; i++ {
		if kinds.Has(f.tokens[i].Kind) != exclude {
			return i, true
		}
	}
	return 0, false
}

// Partner returns the matching bracket of a bracket token.
func (f *File) Partner(i int) (int, bool) {
	if i < 0 || i >= len(f.partner) || f.partner[i] < 0 {
		return 0, false
	}
	return f.partner[i], true
}

// ParenCloser returns the matching close parenthesis of an open parenthesis.
func (f *File) ParenCloser(i int) (int, bool) {
	if f.Kind(i) != OpenParenthesis {
		return 0, false
	}
	return f.Partner(i)
}

// ScopeOpener returns the opening curly bracket of the scope owned by i.
func (f *File) ScopeOpener(i int) (int, bool) {
	if i < 0 || i >= len(f.scopeOpener) || f.scopeOpener[i] < 0 {
		return 0, false
	}
	return f.scopeOpener[i], true
}

// ScopeCloser returns the closing curly bracket of the scope owned by i.
func (f *File) ScopeCloser(i int) (int, bool) {
	if i < 0 || i >= len(f.scopeCloser) || f.scopeCloser[i] < 0 {
		return 0, false
	}
	return f.scopeCloser[i], true
}

// NestedParens returns the open parentheses enclosing token i, outermost
// first. The returned slice must not be modified.
func (f *File) NestedParens(i int) []int {
	if i < 0 || i >= len(f.nested) {
		return nil
	}
	return f.nested[i]
}

// InnermostParen returns the open parenthesis directly enclosing token i.
func (f *File) InnermostParen(i int) (int, bool) {
	stack := f.NestedParens(i)
	if len(stack) == 0 {
		return 0, false
	}
	return stack[len(stack)-1], true
}

// LineCount returns the number of lines in the content.
func (f *File) LineCount() int {
	return len(f.lineStarts)
}

// Line returns the text of the 1-based line n without its line ending.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	end := len(f.Content)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n]
	}
	if end > start && f.Content[end-1] == '\n' {
		end--
	}
	if end > start && f.Content[end-1] == '\r' {
		end--
	}
	return string(f.Content[start:end])
}
