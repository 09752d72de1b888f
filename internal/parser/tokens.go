package parser

import (
	"strings"

	"github.com/royal-lang/rl/internal/lexer"
)

// keywords are the reserved words of the language. Reserved words are not
// valid declaration names.
var keywords = map[string]bool{
	"module": true, "import": true, "include": true, "internal": true,
	"alias": true, "this": true, "shared": true, "fn": true,
	"struct": true, "ref": true, "interface": true, "template": true,
	"traits": true, "static": true, "var": true, "enum": true,
	"return": true, "if": true, "else": true, "switch": true,
	"case": true, "default": true, "final": true, "for": true,
	"foreach": true, "while": true, "do": true, "break": true,
	"continue": true, "public": true, "private": true, "protected": true,
	"package": true, "immutable": true, "const": true, "mut": true,
	"ptr": true, "void": true, "true": true, "false": true,
}

// isIdentifier reports whether text has the shape of an identifier: a
// leading letter or underscore followed by letters, digits or underscores.
// Qualified names with embedded dots do not pass; use isQualifiedIdentifier.
func isIdentifier(text string) bool {
	if text == "" {
		return false
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		switch {
		case ch == '_':
		case 'a' <= ch && ch <= 'z':
		case 'A' <= ch && ch <= 'Z':
		case '0' <= ch && ch <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// isValidName reports whether text can name a declaration: identifier shape
// and not a reserved word.
func isValidName(text string) bool {
	return isIdentifier(text) && !keywords[text]
}

// isQualifiedIdentifier reports whether text is a dot-joined sequence of
// identifiers, as in std.io.
func isQualifiedIdentifier(text string) bool {
	if text == "" {
		return false
	}

	for _, segment := range strings.Split(text, ".") {
		if !isIdentifier(segment) {
			return false
		}
	}

	return true
}

// isSymbolToken reports whether text consists entirely of symbol characters.
func isSymbolToken(text string) bool {
	if text == "" {
		return false
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == '_' || ch == '.' ||
			'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' ||
			'0' <= ch && ch <= '9' {
			return false
		}
	}

	return true
}

// isUnsignedInteger reports whether text is a plain unsigned decimal literal.
func isUnsignedInteger(text string) bool {
	if text == "" {
		return false
	}

	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}

	return true
}

// isStringLiteral reports whether text is a double-quoted string lexeme.
func isStringLiteral(text string) bool {
	return len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"'
}

// texts flattens lexemes to their surface strings.
func texts(tokens []lexer.Lexeme) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		out[i] = token.Text
	}

	return out
}

// stripTerminator drops a trailing ';' lexeme if present and reports
// whether one was there.
func stripTerminator(tokens []lexer.Lexeme) ([]lexer.Lexeme, bool) {
	if len(tokens) > 0 && tokens[len(tokens)-1].Text == ";" {
		return tokens[:len(tokens)-1], true
	}

	return tokens, false
}

// splitTopLevel splits tokens on the separator at bracket depth zero.
// Parentheses and square brackets both contribute to the depth.
func splitTopLevel(tokens []lexer.Lexeme, separator string) [][]lexer.Lexeme {
	var (
		parts   [][]lexer.Lexeme
		current []lexer.Lexeme
		depth   int
	)

	for _, token := range tokens {
		switch token.Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		}

		if depth == 0 && token.Text == separator {
			parts = append(parts, current)
			current = nil

			continue
		}

		current = append(current, token)
	}

	parts = append(parts, current)

	return parts
}

// lineOf returns the line of the first token, or fallback when empty.
func lineOf(tokens []lexer.Lexeme, fallback int) int {
	if len(tokens) > 0 {
		return tokens[0].Line
	}

	return fallback
}
