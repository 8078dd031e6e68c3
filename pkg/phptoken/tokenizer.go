package phptoken

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Options control tokenization.
type Options struct {
	// StartInPHP treats the content as PHP code from the first byte,
	// as if it were preceded by "<?php". Used for fenced snippets.
	StartInPHP bool
}

// Tokenize splits content into tokens and links brackets and scopes.
// It returns ErrUnbalanced (wrapped) if brackets do not pair up.
func Tokenize(path string, content []byte, opts Options) (*File, error) {
	s := &scanner{
		src:   content,
		line:  1,
		col:   1,
		inPHP: opts.StartInPHP,
	}
	s.run()

	file := &File{
		Path:       path,
		Content:    content,
		tokens:     s.tokens,
		lineStarts: lineStarts(content),
		eol:        s.eol,
	}
	if file.eol == "" {
		file.eol = "\n"
	}

	markClosures(file.tokens)

	if err := link(file); err != nil {
		return nil, err
	}
	return file, nil
}

// scanner is a single-use lexer over one source buffer.
type scanner struct {
	src    []byte
	pos    int
	line   int
	col    int
	inPHP  bool
	eol    string
	tokens []Token

	// lastCode is the kind of the most recent non-empty token.
	lastCode Kind
}

func (s *scanner) run() {
	for s.pos < len(s.src) {
		if !s.inPHP {
			s.scanInline()
			continue
		}
		s.scanCode()
	}
}

// emit appends a token spanning [s.pos, end) and advances past it.
func (s *scanner) emit(kind Kind, end int) {
	text := string(s.src[s.pos:end])
	s.tokens = append(s.tokens, Token{
		Kind:   kind,
		Text:   text,
		Index:  len(s.tokens),
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	})
	for i := range len(text) {
		if text[i] == '\n' {
			if s.eol == "" {
				s.eol = "\n"
				if i > 0 && text[i-1] == '\r' {
					s.eol = "\r\n"
				}
			}
			s.line++
			s.col = 1
			continue
		}
		s.col++
	}
	s.pos = end
	if !kind.IsEmpty() {
		s.lastCode = kind
	}
}

func (s *scanner) peek(offset int) byte {
	if s.pos+offset < len(s.src) {
		return s.src[s.pos+offset]
	}
	return 0
}

func (s *scanner) hasPrefix(prefix string) bool {
	return bytes.HasPrefix(s.src[s.pos:], []byte(prefix))
}

// scanInline consumes text up to and including the next open tag.
func (s *scanner) scanInline() {
	rest := s.src[s.pos:]
	for i := 0; i+1 < len(rest); i++ {
		if rest[i] != '<' || rest[i+1] != '?' {
			continue
		}
		tagLen, kind := openTagAt(rest[i:])
		if tagLen == 0 {
			continue
		}
		if i > 0 {
			s.emit(InlineHTML, s.pos+i)
		}
		s.emit(kind, s.pos+tagLen)
		s.inPHP = true
		return
	}
	s.emit(InlineHTML, len(s.src))
}

// openTagAt reports the length and kind of an open tag at the start of b.
// The "<?php" tag absorbs one following whitespace character.
func openTagAt(b []byte) (int, Kind) {
	if bytes.HasPrefix(b, []byte("<?=")) {
		return 3, OpenTagWithEcho
	}
	if len(b) < 5 || !strings.EqualFold(string(b[:5]), "<?php") {
		return 0, Unknown
	}
	if len(b) == 5 {
		return 5, OpenTag
	}
	switch b[5] {
	case ' ', '\t', '\n':
		return 6, OpenTag
	case '\r':
		if len(b) > 6 && b[6] == '\n' {
			return 7, OpenTag
		}
		return 6, OpenTag
	default:
		return 0, Unknown
	}
}

//nolint:cyclop,funlen // One dispatch over the first byte.
func (s *scanner) scanCode() {
	c := s.src[s.pos]

	switch {
	case isSpace(c):
		s.emit(Whitespace, s.scanWhitespace())
	case c == '$':
		if isIdentStart(s.peek(1)) {
			s.emit(Variable, s.scanIdent(s.pos+1))
			return
		}
		s.emit(Operator, s.pos+1)
	case isIdentStart(c):
		end := s.scanIdent(s.pos)
		s.emit(s.classifyWord(string(s.src[s.pos:end])), end)
	case isDigit(c) || (c == '.' && isDigit(s.peek(1))):
		s.emit(Number, s.scanNumber())
	case c == '\'':
		s.emit(ConstantString, s.scanQuoted('\''))
	case c == '"':
		s.emit(DoubleQuotedString, s.scanQuoted('"'))
	case c == '`':
		s.emit(ShellExec, s.scanQuoted('`'))
	case c == '#':
		if s.peek(1) == '[' {
			s.emit(Attribute, s.pos+2)
			return
		}
		s.emit(Comment, s.scanLineComment())
	case c == '/' && s.peek(1) == '/':
		s.emit(Comment, s.scanLineComment())
	case c == '/' && s.peek(1) == '*':
		s.scanBlockComment()
	case c == '?' && s.peek(1) == '>':
		s.scanCloseTag()
	case c == '?' && s.hasPrefix("?->"):
		s.emit(ObjectOperator, s.pos+3)
	case c == '<' && s.hasPrefix("<<<"):
		if end := s.scanHeredoc(); end > 0 {
			s.emit(Heredoc, end)
			return
		}
		s.scanOperator()
	case c == '(':
		if end := s.scanCast(); end > 0 {
			s.emit(Cast, end)
			return
		}
		s.emit(OpenParenthesis, s.pos+1)
	case c == ')':
		s.emit(CloseParenthesis, s.pos+1)
	case c == '[':
		s.emit(OpenSquareBracket, s.pos+1)
	case c == ']':
		s.emit(CloseSquareBracket, s.pos+1)
	case c == '{':
		s.emit(OpenCurlyBracket, s.pos+1)
	case c == '}':
		s.emit(CloseCurlyBracket, s.pos+1)
	case c == ',':
		s.emit(Comma, s.pos+1)
	case c == ';':
		s.emit(Semicolon, s.pos+1)
	case c == ':':
		if s.peek(1) == ':' {
			s.emit(DoubleColon, s.pos+2)
			return
		}
		s.emit(Colon, s.pos+1)
	case c == '\\':
		s.emit(NsSeparator, s.pos+1)
	default:
		s.scanOperator()
	}
}

// classifyWord maps an identifier to a kind. Member and function names are
// always plain strings, even when they spell a reserved word.
func (s *scanner) classifyWord(word string) Kind {
	switch s.lastCode {
	case ObjectOperator, DoubleColon, Function:
		return String
	default:
		return lookupKeyword(word)
	}
}

// scanWhitespace returns the end of a whitespace run that contains at most
// one line ending, which is its last byte.
func (s *scanner) scanWhitespace() int {
	end := s.pos
	for end < len(s.src) && isSpace(s.src[end]) {
		if s.src[end] == '\n' {
			return end + 1
		}
		end++
	}
	return end
}

func (s *scanner) scanIdent(from int) int {
	end := from
	for end < len(s.src) && isIdentChar(s.src[end]) {
		end++
	}
	return end
}

func (s *scanner) scanNumber() int {
	end := s.pos
	src := s.src

	if src[end] == '0' && end+1 < len(src) {
		switch src[end+1] | 0x20 {
		case 'x', 'b', 'o':
			end += 2
			for end < len(src) && (isHexDigit(src[end]) || src[end] == '_') {
				end++
			}
			return end
		}
	}

	for end < len(src) && (isDigit(src[end]) || src[end] == '_') {
		end++
	}
	if end < len(src) && src[end] == '.' && end+1 < len(src) && isDigit(src[end+1]) {
		end++
		for end < len(src) && (isDigit(src[end]) || src[end] == '_') {
			end++
		}
	}
	if end < len(src) && src[end]|0x20 == 'e' {
		exp := end + 1
		if exp < len(src) && (src[exp] == '+' || src[exp] == '-') {
			exp++
		}
		if exp < len(src) && isDigit(src[exp]) {
			end = exp
			for end < len(src) && isDigit(src[end]) {
				end++
			}
		}
	}
	return end
}

// scanQuoted returns the end of a quoted literal starting at s.pos.
// Unterminated literals run to the end of input.
func (s *scanner) scanQuoted(quote byte) int {
	return skipQuoted(s.src, s.pos, quote)
}

// skipQuoted skips a literal opened by quote at start. Inside double quotes
// and backticks, "{$" interpolations may themselves contain quoted strings.
func skipQuoted(src []byte, start int, quote byte) int {
	i := start + 1
	for i < len(src) {
		switch c := src[i]; {
		case c == '\\':
			i += 2
		case c == quote:
			return i + 1
		case quote != '\'' && c == '{' && i+1 < len(src) && src[i+1] == '$':
			i = skipInterpolation(src, i)
		default:
			i++
		}
	}
	return len(src)
}

func skipInterpolation(src []byte, start int) int {
	depth := 0
	i := start
	for i < len(src) {
		switch c := src[i]; c {
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
			if depth == 0 {
				return i
			}
		case '\'', '"':
			i = skipQuoted(src, i, c)
		default:
			i++
		}
	}
	return len(src)
}

// scanLineComment ends before the line ending or a close tag.
func (s *scanner) scanLineComment() int {
	end := s.pos
	for end < len(s.src) {
		c := s.src[end]
		if c == '\n' || c == '\r' {
			break
		}
		if c == '?' && end+1 < len(s.src) && s.src[end+1] == '>' {
			break
		}
		end++
	}
	return end
}

func (s *scanner) scanBlockComment() {
	kind := Comment
	if s.hasPrefix("/**") && isSpace(s.peek(3)) {
		kind = DocComment
	}
	idx := bytes.Index(s.src[s.pos+2:], []byte("*/"))
	if idx < 0 {
		s.emit(kind, len(s.src))
		return
	}
	s.emit(kind, s.pos+2+idx+2)
}

// scanCloseTag emits "?>" with one directly following line ending.
func (s *scanner) scanCloseTag() {
	end := s.pos + 2
	switch {
	case bytes.HasPrefix(s.src[end:], []byte("\r\n")):
		end += 2
	case end < len(s.src) && s.src[end] == '\n':
		end++
	}
	s.emit(CloseTag, end)
	s.inPHP = false
}

// scanHeredoc returns the end of a heredoc or nowdoc, or 0 if the input at
// s.pos is not one.
func (s *scanner) scanHeredoc() int {
	i := s.pos + 3
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	var quote byte
	if i < len(s.src) && (s.src[i] == '\'' || s.src[i] == '"') {
		quote = s.src[i]
		i++
	}
	if i >= len(s.src) || !isIdentStart(s.src[i]) {
		return 0
	}
	labelEnd := s.scanIdent(i)
	label := s.src[i:labelEnd]
	i = labelEnd
	if quote != 0 {
		if i >= len(s.src) || s.src[i] != quote {
			return 0
		}
		i++
	}
	if i < len(s.src) && s.src[i] == '\r' {
		i++
	}
	if i >= len(s.src) || s.src[i] != '\n' {
		return 0
	}
	i++

	for i < len(s.src) {
		lineEnd := bytes.IndexByte(s.src[i:], '\n')
		if lineEnd < 0 {
			lineEnd = len(s.src)
		} else {
			lineEnd += i
		}
		body := i
		for body < lineEnd && (s.src[body] == ' ' || s.src[body] == '\t') {
			body++
		}
		after := body + len(label)
		if bytes.HasPrefix(s.src[body:lineEnd], label) &&
			(after >= len(s.src) || !isIdentChar(s.src[after])) {
			return after
		}
		i = lineEnd + 1
	}
	return len(s.src)
}

// scanCast returns the end of a cast such as "( int )", or 0.
func (s *scanner) scanCast() int {
	i := s.pos + 1
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	start := i
	for i < len(s.src) && isLetter(s.src[i]) {
		i++
	}
	if !castTypes[strings.ToLower(string(s.src[start:i]))] {
		return 0
	}
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	if i >= len(s.src) || s.src[i] != ')' {
		return 0
	}
	return i + 1
}

func (s *scanner) scanOperator() {
	for _, op := range operators {
		if s.hasPrefix(op) {
			s.emit(operatorKind(op), s.pos+len(op))
			return
		}
	}
	c := s.src[s.pos]
	if strings.IndexByte("=&+-*/%!<>|^~?@.", c) >= 0 {
		s.emit(operatorKind(string(c)), s.pos+1)
		return
	}
	s.emit(Unknown, s.pos+1)
}

// markClosures re-kinds a function keyword that is followed, past empty
// tokens and a by-reference marker, by an open parenthesis.
func markClosures(tokens []Token) {
	for i := range tokens {
		if tokens[i].Kind != Function {
			continue
		}
		for j := i + 1; j < len(tokens); j++ {
			kind := tokens[j].Kind
			if kind.IsEmpty() || kind == BitwiseAnd {
				continue
			}
			if kind == OpenParenthesis {
				tokens[i].Kind = Closure
			}
			break
		}
	}
}

// link pairs brackets, records enclosing parentheses, and resolves scopes.
func link(file *File) error {
	tokens := file.tokens
	count := len(tokens)

	file.partner = make([]int, count)
	file.scopeOpener = make([]int, count)
	file.scopeCloser = make([]int, count)
	file.nested = make([][]int, count)
	for i := range count {
		file.partner[i] = -1
		file.scopeOpener[i] = -1
		file.scopeCloser[i] = -1
	}

	var open []int
	var parens []int
	for i, tok := range tokens {
		switch tok.Kind {
		case OpenParenthesis, OpenSquareBracket, OpenCurlyBracket, Attribute:
			if tok.Kind == OpenParenthesis {
				file.nested[i] = parens
				parens = append(slices.Clip(parens), i)
			} else {
				file.nested[i] = parens
			}
			open = append(open, i)
			continue
		case CloseParenthesis, CloseSquareBracket, CloseCurlyBracket:
			if len(open) == 0 || !closes(tokens[open[len(open)-1]].Kind, tok.Kind) {
				return fmt.Errorf("%w: unexpected %q at line %d column %d",
					ErrUnbalanced, tok.Text, tok.Line, tok.Column)
			}
			opener := open[len(open)-1]
			open = open[:len(open)-1]
			file.partner[opener] = i
			file.partner[i] = opener
			if tok.Kind == CloseParenthesis {
				parens = parens[:len(parens)-1]
			}
		}
		file.nested[i] = parens
	}
	if len(open) > 0 {
		tok := tokens[open[len(open)-1]]
		return fmt.Errorf("%w: unclosed %q at line %d column %d",
			ErrUnbalanced, tok.Text, tok.Line, tok.Column)
	}

	for i, tok := range tokens {
		switch tok.Kind {
		case Function, Closure, Class, Interface, Trait:
			resolveScope(file, i)
		}
	}
	return nil
}

func closes(opener, closer Kind) bool {
	switch closer {
	case CloseParenthesis:
		return opener == OpenParenthesis
	case CloseSquareBracket:
		return opener == OpenSquareBracket || opener == Attribute
	case CloseCurlyBracket:
		return opener == OpenCurlyBracket
	default:
		return false
	}
}

// resolveScope finds the body of the scope owner at i. Parenthesized
// sections (parameters, use lists, constructor arguments) are skipped;
// a semicolon first means the owner has no body.
func resolveScope(file *File, owner int) {
	for j := owner + 1; j < len(file.tokens); j++ {
		switch file.tokens[j].Kind {
		case OpenParenthesis, OpenSquareBracket, Attribute:
			j = file.partner[j]
		case OpenCurlyBracket:
			file.scopeOpener[owner] = j
			file.scopeCloser[owner] = file.partner[j]
			return
		case Semicolon, CloseParenthesis, CloseCurlyBracket, CloseSquareBracket:
			return
		}
	}
}

func lineStarts(content []byte) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f')
}

func isLetter(c byte) bool {
	return c|0x20 >= 'a' && c|0x20 <= 'z'
}

func isIdentStart(c byte) bool {
	return isLetter(c) || c == '_' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
