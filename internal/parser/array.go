package parser

import (
	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/lexer"
)

// parseArrayLiteral parses a bracketed literal such as [1, 2, 3] or
// ["a": 1, "b": 2]. A ':' seen before the first ',' marks the literal as
// associative, in which case every entry must be exactly one key token and
// one value token. Returns nil after reporting on malformed literals.
func parseArrayLiteral(ctx *Context, tokens []lexer.Lexeme) *ast.ArrayLiteral {
	line := lineOf(tokens, 0)

	if len(tokens) < 2 || tokens[0].Text != "[" || tokens[len(tokens)-1].Text != "]" {
		ctx.report(line, "Missing ']' from array declaration.")

		return nil
	}

	literal := &ast.ArrayLiteral{Line: line}

	inner := tokens[1 : len(tokens)-1]
	if len(inner) == 0 {
		return literal
	}

	literal.IsAssociative = isAssociativeLiteral(inner)

	for _, entry := range splitTopLevel(inner, ",") {
		if len(entry) == 0 {
			ctx.report(line, "Missing value in array declaration.")

			return nil
		}

		if !literal.IsAssociative {
			literal.Values = append(literal.Values, texts(entry))

			continue
		}

		halves := splitTopLevel(entry, ":")
		if len(halves) != 2 || len(halves[0]) != 1 || len(halves[1]) != 1 {
			ctx.report(lineOf(entry, line), "Invalid entry in associative array. An entry must be a key and a value.")

			return nil
		}

		literal.Values = append(literal.Values, []string{halves[0][0].Text, halves[1][0].Text})
	}

	return literal
}

// isAssociativeLiteral reports whether a ':' appears before the first ','
// at bracket depth zero of the literal's inner tokens.
func isAssociativeLiteral(inner []lexer.Lexeme) bool {
	depth := 0

	for _, token := range inner {
		switch token.Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		case ",":
			if depth == 0 {
				return false
			}
		case ":":
			if depth == 0 {
				return true
			}
		}
	}

	return false
}
