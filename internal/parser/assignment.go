package parser

import (
	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/lexer"
)

// assignmentOperators are the operators that can join the two sides of an
// assignment statement. The unary ++ and -- take no right-hand side.
var assignmentOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"%=": true, "^=": true, ":=": true, "~=": true, "|=": true,
	"@=": true, "++": true, "--": true,
}

// parseAssignment parses `left op right;` statements, including the unary
// increment and decrement forms. The right-hand side is additionally parsed
// as an expression. Returns nil after reporting on malformed input.
func parseAssignment(ctx *Context, tokens []lexer.Lexeme) *ast.AssignmentExpression {
	line := lineOf(tokens, 0)

	tokens, _ = stripTerminator(tokens)
	if len(tokens) == 0 {
		ctx.report(line, "Missing assignment.")

		return nil
	}

	operatorIndex := -1
	depth := 0

	for i, token := range tokens {
		switch token.Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		}

		if depth == 0 && assignmentOperators[token.Text] {
			operatorIndex = i

			break
		}
	}

	if operatorIndex < 0 {
		ctx.report(line, "Missing operator from assignment.")

		return nil
	}

	if operatorIndex == 0 {
		ctx.report(line, "Missing left-hand side from assignment.")

		return nil
	}

	assignment := &ast.AssignmentExpression{
		Line:     line,
		LeftHand: texts(tokens[:operatorIndex]),
		Operator: tokens[operatorIndex].Text,
	}

	rest := tokens[operatorIndex+1:]

	if assignment.Operator == "++" || assignment.Operator == "--" {
		if len(rest) > 0 {
			ctx.reportf(line, "Unexpected tokens after unary '%s'.", assignment.Operator)

			return nil
		}

		return assignment
	}

	if len(rest) == 0 {
		ctx.report(line, "Missing right-hand side from assignment.")

		return nil
	}

	assignment.RightHand = texts(rest)

	expression := parseExpression(ctx, rest, false)
	if expression == nil {
		return nil
	}

	assignment.RightHandExpression = expression

	return assignment
}
