package parser

import (
	"strings"

	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/lexer"
)

// parseFunctionCall parses a call statement or sub-expression of the form
// name(args), name(template)(args), or a dot-joined chain of calls. With
// requireTerminator the token run must end with ';' (statement position);
// nested calls inside expressions relax the end check.
//
// A qualified head such as a.b is represented as a degenerate root call for
// the first segment with the remaining segments opening the chain; every
// further `).`-joined call is appended to the root's chain as well.
func parseFunctionCall(ctx *Context, tokens []lexer.Lexeme, requireTerminator bool) *ast.FunctionCall {
	line := lineOf(tokens, 0)

	tokens, hadTerminator := stripTerminator(tokens)
	if requireTerminator && !hadTerminator {
		ctx.report(line, "Missing ';' from function call.")

		return nil
	}

	if len(tokens) == 0 {
		ctx.report(line, "Missing identifier for function call.")

		return nil
	}

	head := tokens[0]
	if !isQualifiedIdentifier(head.Text) {
		ctx.reportf(head.Line, "Invalid identifier '%s' for function call.", head.Text)

		return nil
	}

	segments := strings.Split(head.Text, ".")

	root := &ast.FunctionCall{Line: head.Line, Identifier: segments[0]}
	target := root

	for _, segment := range segments[1:] {
		target = &ast.FunctionCall{Line: head.Line, Identifier: segment}
		root.Chain = append(root.Chain, target)
	}

	if len(tokens) < 2 || tokens[1].Text != "(" {
		ctx.report(head.Line, "Missing '(' from function call.")

		return nil
	}

	arguments, next, ok := parseCallArguments(ctx, tokens, 1)
	if !ok {
		return nil
	}

	if next < len(tokens) && tokens[next].Text == "(" {
		// The first group was the template boundary; the second carries the
		// value arguments. A third group has no meaning.
		target.TemplateArguments = argumentTexts(arguments)

		arguments, next, ok = parseCallArguments(ctx, tokens, next)
		if !ok {
			return nil
		}

		if next < len(tokens) && tokens[next].Text == "(" {
			ctx.report(tokens[next].Line, "Only one template argument list is allowed per function call.")

			return nil
		}
	}

	target.Arguments = arguments

	if next < len(tokens) && tokens[next].Text == "." {
		rest := tokens[next+1:]

		chained := parseFunctionCall(ctx, rest, false)
		if chained == nil {
			return nil
		}

		root.Chain = append(root.Chain, chained)
		root.Chain = append(root.Chain, chained.Chain...)
		chained.Chain = nil

		return root
	}

	if next != len(tokens) {
		ctx.reportf(tokens[next].Line, "Unexpected '%s' after function call.", tokens[next].Text)

		return nil
	}

	return root
}

// parseCallArguments consumes one parenthesized argument group starting at
// the '(' at open. Arguments split on top-level commas; a '[' absorbs its
// bracketed tokens into a single atomic parameter that is also parsed as an
// array literal. Returns the arguments and the index just past the ')'.
func parseCallArguments(ctx *Context, tokens []lexer.Lexeme, open int) ([]*ast.CallArgument, int, bool) {
	var (
		arguments []*ast.CallArgument
		current   []lexer.Lexeme
	)

	appendArgument := func() bool {
		if len(current) == 0 {
			ctx.report(lineOf(tokens, 0), "Missing argument from function call.")

			return false
		}

		argument := &ast.CallArgument{Tokens: texts(current)}

		if current[0].Text == "[" {
			array := parseArrayLiteral(ctx, current)
			if array == nil {
				return false
			}

			argument.Array = array
		}

		arguments = append(arguments, argument)
		current = nil

		return true
	}

	depth := 1
	i := open + 1

	for i < len(tokens) {
		token := tokens[i]

		switch token.Text {
		case "(":
			depth++

			current = append(current, token)
		case ")":
			depth--

			if depth == 0 {
				if len(current) > 0 || len(arguments) > 0 {
					if !appendArgument() {
						return nil, 0, false
					}
				}

				return arguments, i + 1, true
			}

			current = append(current, token)
		case "[":
			end, ok := matchBracket(tokens, i)
			if !ok {
				ctx.report(token.Line, "Missing ']' from array declaration.")

				return nil, 0, false
			}

			current = append(current, tokens[i:end+1]...)
			i = end
		case ",":
			if depth == 1 {
				if !appendArgument() {
					return nil, 0, false
				}
			} else {
				current = append(current, token)
			}
		default:
			current = append(current, token)
		}

		i++
	}

	ctx.report(lineOf(tokens, 0), "Missing ')' from function call.")

	return nil, 0, false
}

// matchBracket returns the index of the ']' matching the '[' at start.
func matchBracket(tokens []lexer.Lexeme, start int) (int, bool) {
	depth := 0

	for i := start; i < len(tokens); i++ {
		switch tokens[i].Text {
		case "[":
			depth++
		case "]":
			depth--

			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

// argumentTexts flattens parsed arguments back to their surface strings for
// use as template arguments.
func argumentTexts(arguments []*ast.CallArgument) []string {
	out := make([]string, len(arguments))
	for i, argument := range arguments {
		out[i] = strings.Join(argument.Tokens, " ")
	}

	return out
}
