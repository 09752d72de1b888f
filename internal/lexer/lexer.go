// Package lexer implements the Royal lexical scanner.
// It turns raw source text into a flat list of line-annotated lexemes;
// statement grouping happens later in the parsetree package.
package lexer

import "strings"

// Lexeme is the smallest chunk of source the scanner emits: an identifier,
// a number, a string or character literal (quotes preserved), a symbol, or
// a comment when comment inclusion is requested.
type Lexeme struct {
	Text string `json:"text"`
	Line int    `json:"line"`
}

// Scanner walks source text byte by byte and accumulates lexemes.
type Scanner struct {
	input           string
	position        int
	line            int
	includeComments bool

	lexemes []Lexeme

	// identifier/number accumulator
	buffer     strings.Builder
	bufferLine int
}

// New creates a scanner for the given source text. Comments are dropped
// unless includeComments is set.
func New(input string, includeComments bool) *Scanner {
	return &Scanner{
		input:           input,
		line:            1,
		includeComments: includeComments,
	}
}

// Scan is a convenience wrapper that scans input in one call.
func Scan(input string, includeComments bool) []Lexeme {
	return New(input, includeComments).Scan()
}

// Scan consumes the entire input and returns the lexemes in source order.
func (s *Scanner) Scan() []Lexeme {
	for s.position < len(s.input) {
		ch := s.input[s.position]

		switch {
		case ch == '\r':
			// Stray carriage returns outside literals are dropped.
			s.flush()
			s.position++
		case ch == '\n':
			s.flush()
			s.line++
			s.position++
		case ch == ' ' || ch == '\t':
			s.flush()
			s.position++
		case ch == '"':
			s.flush()
			s.scanString('"')
		case ch == '\'':
			s.flush()
			s.scanString('\'')
		case ch == '/' && s.peek() == '/':
			s.flush()
			s.scanLineComment()
		case ch == '/' && s.peek() == '*':
			s.flush()
			s.scanBlockComment()
		case ch == '.':
			// The dot stays glued to identifiers so qualified names such as
			// a.b survive as one lexeme. The one exception is a dot right
			// after a closing parenthesis, which must stand alone so that
			// method chains like f().g() can be recognized.
			if s.buffer.Len() == 0 && s.lastLexemeIs(")") {
				s.emit(".", s.line)
				s.position++
			} else {
				s.accumulate(ch)
			}
		case isSymbolChar(ch):
			s.flush()
			s.scanSymbol()
		default:
			s.accumulate(ch)
		}
	}
	s.flush()

	return s.lexemes
}

// scanSymbol emits one symbol lexeme, joining two adjacent symbol characters
// into a compound symbol (==, <=, >>, ||, &&, ^^, !!, ...) unless either
// character is a structural bracket or comma.
func (s *Scanner) scanSymbol() {
	ch := s.input[s.position]
	next := s.peek()

	if isSymbolChar(next) && !isStructural(ch) && !isStructural(next) {
		s.emit(string(ch)+string(next), s.line)
		s.position += 2

		return
	}

	s.emit(string(ch), s.line)
	s.position++
}

// scanString reads a quoted literal, keeping the surrounding quotes. A
// backslash escapes the following character so the literal continues past
// embedded quotes. Newlines inside the literal still advance the line
// counter; the lexeme keeps the line its opening quote was seen on.
func (s *Scanner) scanString(quote byte) {
	startLine := s.line

	var literal strings.Builder

	literal.WriteByte(quote)
	s.position++

	for s.position < len(s.input) {
		ch := s.input[s.position]

		if ch == '\\' && s.position+1 < len(s.input) {
			if s.input[s.position+1] == '\n' {
				s.line++
			}

			literal.WriteByte(ch)
			literal.WriteByte(s.input[s.position+1])
			s.position += 2

			continue
		}

		if ch == '\n' {
			s.line++
		}

		literal.WriteByte(ch)
		s.position++

		if ch == quote {
			break
		}
	}

	s.emit(literal.String(), startLine)
}

// scanLineComment reads to the end of the line, excluding the newline.
func (s *Scanner) scanLineComment() {
	start := s.position
	startLine := s.line

	for s.position < len(s.input) && s.input[s.position] != '\n' {
		s.position++
	}

	if s.includeComments {
		s.emit(s.input[start:s.position], startLine)
	}
}

// scanBlockComment reads a /* ... */ comment, tracking line breaks.
func (s *Scanner) scanBlockComment() {
	start := s.position
	startLine := s.line

	s.position += 2 // consume /*

	for s.position < len(s.input) {
		if s.input[s.position] == '*' && s.peek() == '/' {
			s.position += 2

			break
		}

		if s.input[s.position] == '\n' {
			s.line++
		}

		s.position++
	}

	if s.includeComments {
		s.emit(s.input[start:s.position], startLine)
	}
}

// accumulate appends one identifier/number character to the buffer.
func (s *Scanner) accumulate(ch byte) {
	if s.buffer.Len() == 0 {
		s.bufferLine = s.line
	}

	s.buffer.WriteByte(ch)
	s.position++
}

// flush emits the buffered identifier/number lexeme, if any.
func (s *Scanner) flush() {
	if s.buffer.Len() == 0 {
		return
	}

	s.emit(s.buffer.String(), s.bufferLine)
	s.buffer.Reset()
}

func (s *Scanner) emit(text string, line int) {
	s.lexemes = append(s.lexemes, Lexeme{Text: text, Line: line})
}

func (s *Scanner) peek() byte {
	if s.position+1 >= len(s.input) {
		return 0
	}

	return s.input[s.position+1]
}

func (s *Scanner) lastLexemeIs(text string) bool {
	if len(s.lexemes) == 0 {
		return false
	}

	return s.lexemes[len(s.lexemes)-1].Text == text
}

// isSymbolChar reports whether ch terminates identifier accumulation and is
// emitted as a symbol. The dot is deliberately absent; it is handled by the
// scanner itself because its treatment depends on context.
func isSymbolChar(ch byte) bool {
	switch ch {
	case '(', ')', '{', '}', '[', ']', ';', ',', ':',
		'=', '+', '-', '*', '/', '%', '^', '<', '>',
		'|', '&', '!', '~', '@', '?', '#':
		return true
	}

	return false
}

// isStructural reports whether ch never participates in a compound symbol.
func isStructural(ch byte) bool {
	switch ch {
	case '(', ')', '{', '}', ']', ',':
		return true
	}

	return false
}
