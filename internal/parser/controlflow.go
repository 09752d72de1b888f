package parser

import (
	"strings"

	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/lexer"
	"github.com/royal-lang/rl/internal/parsetree"
)

// parseIf parses `if <expr> { body }` with the condition forced boolean.
func parseIf(ctx *Context, node *parsetree.Node) *ast.ScopeItem {
	line := node.Line()

	condition := parseExpression(ctx, node.Statement[1:], true)
	if condition == nil {
		return nil
	}

	body, ok := parseScope(ctx, node)
	if !ok {
		return nil
	}

	return &ast.ScopeItem{Node: &ast.IfStatement{Line: line, Condition: condition, Body: body}}
}

// parseElse parses a bare `else { body }` or recurses for `else if ...`.
func parseElse(ctx *Context, node *parsetree.Node) *ast.ScopeItem {
	statement := node.Statement
	line := node.Line()

	if len(statement) >= 2 && statement[1].Text == "if" {
		item := parseIf(ctx, &parsetree.Node{
			Statement: statement[1:],
			Children:  node.Children,
		})
		if item == nil {
			return nil
		}

		return &ast.ScopeItem{Node: &ast.ElseStatement{
			Line: line,
			If:   item.Node.(*ast.IfStatement),
		}}
	}

	if len(statement) != 1 {
		ctx.report(line, "Invalid else statement.")

		return nil
	}

	body, ok := parseScope(ctx, node)
	if !ok {
		return nil
	}

	return &ast.ScopeItem{Node: &ast.ElseStatement{Line: line, Body: body}}
}

// parseSwitch parses `switch <expr> { arms }`. Each arm statement (case,
// default or final) must be followed by a scoped body, parsed with a break
// handler installed.
func parseSwitch(ctx *Context, node *parsetree.Node) *ast.ScopeItem {
	line := node.Line()

	condition := parseExpression(ctx, node.Statement[1:], true)
	if condition == nil {
		return nil
	}

	children := node.Children

	if len(children) < 2 || !children[0].IsSentinel() || !children[len(children)-1].IsSentinel() {
		ctx.report(line, "Missing scope from switch declaration.")

		return nil
	}

	switchStatement := &ast.SwitchStatement{Line: line, Condition: condition}

	for i := 1; i < len(children)-1; i++ {
		child := children[i]
		statement, _ := stripTerminator(child.Statement)

		if len(statement) == 0 {
			ctx.report(child.Line(), "Invalid statement in switch declaration.")

			return nil
		}

		var arm *ast.SwitchCase

		switch statement[0].Text {
		case "case":
			arm = parseSwitchCaseValues(ctx, statement)
			if arm == nil {
				return nil
			}

			switchStatement.Cases = append(switchStatement.Cases, arm)
		case "default":
			if switchStatement.Default != nil {
				ctx.report(child.Line(), "Only one default statement is allowed per switch.")

				return nil
			}

			arm = &ast.SwitchCase{Line: child.Line()}
			switchStatement.Default = arm
		case "final":
			if switchStatement.Final != nil {
				ctx.report(child.Line(), "Only one final statement is allowed per switch.")

				return nil
			}

			arm = &ast.SwitchCase{Line: child.Line()}
			switchStatement.Final = arm
		default:
			ctx.reportf(child.Line(), "Invalid statement '%s' in switch declaration.", statement[0].Text)

			return nil
		}

		i++

		if i >= len(children)-1 || len(children[i].Statement) != 0 || len(children[i].Children) == 0 {
			ctx.report(child.Line(), "Missing scope for case statement.")

			return nil
		}

		ctx.pushHandler("break")

		body, ok := parseScope(ctx, children[i])

		ctx.popHandler("break")

		if !ok {
			return nil
		}

		arm.Body = body
	}

	return &ast.ScopeItem{Node: switchStatement}
}

// parseSwitchCaseValues parses the values of a case arm: a comma-separated
// literal list or an inclusive-low, exclusive-high `a .. b` range.
func parseSwitchCaseValues(ctx *Context, statement []lexer.Lexeme) *ast.SwitchCase {
	line := lineOf(statement, 0)
	values := statement[1:]

	if len(values) == 0 {
		ctx.report(line, "Missing value from case statement.")

		return nil
	}

	arm := &ast.SwitchCase{Line: line}

	if low, high, isRange := splitRange(values); isRange {
		if low == "" || high == "" {
			ctx.report(line, "Invalid range for case statement.")

			return nil
		}

		arm.IsRange = true
		arm.Values = []string{low, high}

		return arm
	}

	for _, value := range splitTopLevel(values, ",") {
		if len(value) == 0 {
			ctx.report(line, "Missing value from case statement.")

			return nil
		}

		arm.Values = append(arm.Values, strings.Join(texts(value), ""))
	}

	return arm
}

// parseFor parses `for init, cond, post { body }`: a variable initializer,
// a forced-boolean condition and a post assignment, with break and continue
// handlers installed around the body.
func parseFor(ctx *Context, node *parsetree.Node) *ast.ScopeItem {
	line := node.Line()

	parts := splitTopLevel(node.Statement[1:], ",")
	if len(parts) != 3 {
		ctx.report(line, "Invalid amount of arguments for for statement.")

		return nil
	}

	initTokens := parts[0]
	if len(initTokens) > 0 && initTokens[0].Text == "var" {
		initTokens = initTokens[1:]
	}

	init := parseVariableBody(ctx, initTokens, lineOf(parts[0], line))
	if init == nil {
		return nil
	}

	condition := parseExpression(ctx, parts[1], true)
	if condition == nil {
		return nil
	}

	post := parseAssignment(ctx, parts[2])
	if post == nil {
		return nil
	}

	body, ok := parseLoopBody(ctx, node)
	if !ok {
		return nil
	}

	return &ast.ScopeItem{Node: &ast.ForLoop{
		Line:      line,
		Init:      init,
		Condition: condition,
		Post:      post,
		Body:      body,
	}}
}

// parseForeach parses `foreach index [, index2], range-or-collection
// { body }` where the last part is either a collection name or an
// `a .. b` range.
func parseForeach(ctx *Context, node *parsetree.Node) *ast.ScopeItem {
	line := node.Line()

	parts := splitTopLevel(node.Statement[1:], ",")
	if len(parts) < 2 || len(parts) > 3 {
		ctx.report(line, "Invalid amount of arguments for foreach statement.")

		return nil
	}

	loop := &ast.ForeachLoop{Line: line}

	for i, indexPart := range parts[:len(parts)-1] {
		if len(indexPart) != 1 || !isValidName(indexPart[0].Text) {
			ctx.report(lineOf(indexPart, line), "Invalid index name for foreach statement.")

			return nil
		}

		if i == 0 {
			loop.Index = indexPart[0].Text
		} else {
			loop.SecondIndex = indexPart[0].Text
		}
	}

	source := parts[len(parts)-1]
	if len(source) == 0 {
		ctx.report(line, "Missing collection from foreach statement.")

		return nil
	}

	if low, high, isRange := splitRange(source); isRange {
		if low == "" || high == "" {
			ctx.report(line, "Invalid range for foreach statement.")

			return nil
		}

		loop.IsRange = true
		loop.RangeLow = low
		loop.RangeHigh = high
	} else {
		if len(source) != 1 {
			ctx.report(lineOf(source, line), "Invalid collection for foreach statement.")

			return nil
		}

		loop.Source = source[0].Text
	}

	body, ok := parseLoopBody(ctx, node)
	if !ok {
		return nil
	}

	loop.Body = body

	return &ast.ScopeItem{Node: loop}
}

// parseWhile parses `while <expr> { body }`, or combines a cached do body
// with `while <expr>;` into a do-while.
func parseWhile(ctx *Context, node *parsetree.Node) *ast.ScopeItem {
	line := node.Line()

	if ctx.pendingDo != nil && len(node.Children) == 0 {
		pending := ctx.pendingDo
		ctx.pendingDo = nil

		condition := parseExpression(ctx, node.Statement[1:], true)
		if condition == nil {
			return nil
		}

		return &ast.ScopeItem{Node: &ast.WhileLoop{
			Line:      pending.line,
			Condition: condition,
			IsDo:      true,
			Body:      pending.body,
		}}
	}

	condition := parseExpression(ctx, node.Statement[1:], true)
	if condition == nil {
		return nil
	}

	body, ok := parseLoopBody(ctx, node)
	if !ok {
		return nil
	}

	return &ast.ScopeItem{Node: &ast.WhileLoop{Line: line, Condition: condition, Body: body}}
}

// parseDo parses the `do { body }` half of a do-while. The body is parsed
// immediately and cached; the next while statement at the same scope level
// consumes it.
func parseDo(ctx *Context, node *parsetree.Node) *ast.ScopeItem {
	line := node.Line()

	if len(node.Children) == 0 {
		ctx.report(line, "Missing scope from do-while declaration.")

		return nil
	}

	body, ok := parseLoopBody(ctx, node)
	if !ok {
		return nil
	}

	ctx.pendingDo = &pendingDo{line: line, body: body}

	return nil
}

// parseLoopBody parses a loop body with break and continue handlers
// installed for its duration.
func parseLoopBody(ctx *Context, node *parsetree.Node) ([]*ast.ScopeItem, bool) {
	ctx.pushHandler("break")
	ctx.pushHandler("continue")

	body, ok := parseScope(ctx, node)

	ctx.popHandler("continue")
	ctx.popHandler("break")

	return body, ok
}

// splitRange recognizes the `a .. b` range form, including the glued
// spelling `a..b` the scanner can produce when no spaces surround the dots.
func splitRange(tokens []lexer.Lexeme) (string, string, bool) {
	for i, token := range tokens {
		if token.Text == ".." {
			return strings.Join(texts(tokens[:i]), ""), strings.Join(texts(tokens[i+1:]), ""), true
		}
	}

	if len(tokens) == 1 && !isStringLiteral(tokens[0].Text) && strings.Contains(tokens[0].Text, "..") {
		parts := strings.SplitN(tokens[0].Text, "..", 2)

		return parts[0], parts[1], true
	}

	return "", "", false
}
