package parser

import "github.com/royal-lang/rl/internal/ast"

// operatorInfo describes one operator in a precedence table. Higher
// precedence binds tighter.
type operatorInfo struct {
	precedence       int
	rightAssociative bool
}

// mathematicalOperators is the precedence table for mathematical mode.
var mathematicalOperators = map[string]operatorInfo{
	"+":  {precedence: 1},
	"-":  {precedence: 1},
	"*":  {precedence: 2},
	"/":  {precedence: 2},
	"%":  {precedence: 2},
	"^":  {precedence: 3, rightAssociative: true},
	"<<": {precedence: 3, rightAssociative: true},
	">>": {precedence: 3, rightAssociative: true},
	"|":  {precedence: 3, rightAssociative: true},
	"~":  {precedence: 3, rightAssociative: true},
	"&":  {precedence: 3, rightAssociative: true},
	"^^": {precedence: 3, rightAssociative: true},
}

// booleanOperators is the precedence table for boolean mode. The tilde is
// concatenation here and the only left-associative entry.
var booleanOperators = map[string]operatorInfo{
	"||": {precedence: 1, rightAssociative: true},
	"&&": {precedence: 2, rightAssociative: true},
	"~":  {precedence: 3},
	">":  {precedence: 4, rightAssociative: true},
	">=": {precedence: 4, rightAssociative: true},
	"<=": {precedence: 4, rightAssociative: true},
	"<":  {precedence: 4, rightAssociative: true},
	"!=": {precedence: 4, rightAssociative: true},
	"!":  {precedence: 4, rightAssociative: true},
	"!!": {precedence: 4, rightAssociative: true},
	"==": {precedence: 4, rightAssociative: true},
}

// validateExpression runs a shunting-yard pass over the expression's tokens
// purely to confirm operator well-formedness in the expression's mode. The
// resulting postfix sequence is discarded; only the diagnostics matter.
// Every operator that does not belong to the active mode's table yields one
// illegal-symbol diagnostic.
func validateExpression(ctx *Context, expression *ast.Expression) bool {
	operators := booleanOperators
	if expression.IsMathematical {
		operators = mathematicalOperators
	}

	ok := true

	var stack []string

	for _, token := range expression.Tokens {
		if token.IsFunctionCall() {
			continue // calls reduce to synthetic operands
		}

		text := token.Text

		switch {
		case text == "(":
			stack = append(stack, text)
		case text == ")":
			matched := false

			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if top == "(" {
					matched = true

					break
				}
			}

			if !matched {
				ctx.report(token.Line, "Missing '(' from expression.")

				ok = false
			}
		case isSymbolToken(text):
			info, known := operators[text]
			if !known {
				ctx.reportf(token.Line, "Illegal symbol '%s' found in expression.", text)

				ok = false

				continue
			}

			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top == "(" {
					break
				}

				topInfo := operators[top]
				if topInfo.precedence > info.precedence ||
					(topInfo.precedence == info.precedence && !info.rightAssociative) {
					stack = stack[:len(stack)-1]

					continue
				}

				break
			}

			stack = append(stack, text)
		default:
			// operand; nothing to validate
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top == "(" {
			ctx.report(expression.Line, "Missing ')' from expression.")

			ok = false
		}
	}

	return ok
}
