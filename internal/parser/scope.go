package parser

import (
	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/lexer"
	"github.com/royal-lang/rl/internal/parsetree"
)

// scopeStateKeywords maps bare scope-state statements to the state they set
// on their item. Each keyword is only legal while a handler for it is
// installed by an enclosing control-flow parser.
var scopeStateKeywords = map[string]ast.ScopeState{
	"break":    ast.StateBreak,
	"continue": ast.StateContinue,
	"end":      ast.StateEnd,
}

// parseScope parses a brace-delimited body: a node whose first child is a
// '{' sentinel and whose last child is a '}' sentinel. Inner children are
// classified and dispatched to the matching statement parser; a do body
// left unconsumed by a while at this level is reported here.
func parseScope(ctx *Context, node *parsetree.Node) ([]*ast.ScopeItem, bool) {
	children := node.Children

	if len(children) == 0 || !children[0].IsSentinel() || children[0].Statement[0].Text != "{" {
		ctx.report(node.Line(), "Missing '{' from scope declaration.")

		return nil, false
	}

	last := children[len(children)-1]
	if len(children) < 2 || !last.IsSentinel() || last.Statement[0].Text != "}" {
		ctx.report(node.Line(), "Missing '}' from scope declaration.")

		return nil, false
	}

	entryDo := ctx.pendingDo

	var items []*ast.ScopeItem

	for _, child := range children[1 : len(children)-1] {
		if item := parseScopeItem(ctx, child); item != nil {
			items = append(items, item)
		}
	}

	if ctx.pendingDo != nil && ctx.pendingDo != entryDo {
		ctx.report(ctx.pendingDo.line, "Missing while statement from do-while declaration.")
	}

	ctx.pendingDo = entryDo

	return items, true
}

// parseScopeItem parses one statement or nested block inside a scope.
// It returns nil when the child produced no item, either because it failed
// (diagnostics are already registered) or because it only fed parser state,
// like a do body waiting for its while.
func parseScopeItem(ctx *Context, child *parsetree.Node) *ast.ScopeItem {
	statement := child.Statement
	line := child.Line()

	switch Classify(statement) {
	case ProductionReturn:
		returnStatement := &ast.ReturnStatement{Line: line}

		if rest, _ := stripTerminator(statement[1:]); len(rest) > 0 {
			expression := parseExpression(ctx, rest, false)
			if expression == nil {
				return nil
			}

			returnStatement.Expression = expression
		}

		return &ast.ScopeItem{State: ast.StateReturn, Node: returnStatement}
	case ProductionVariable:
		variable := parseVariable(ctx, child)
		if variable == nil {
			return nil
		}

		return &ast.ScopeItem{Node: variable}
	case ProductionIf:
		return parseIf(ctx, child)
	case ProductionElse:
		return parseElse(ctx, child)
	case ProductionSwitch:
		return parseSwitch(ctx, child)
	case ProductionFor:
		return parseFor(ctx, child)
	case ProductionForeach:
		return parseForeach(ctx, child)
	case ProductionWhile:
		return parseWhile(ctx, child)
	case ProductionDo:
		return parseDo(ctx, child)
	case ProductionEmpty:
		if len(child.Children) == 0 {
			return nil
		}

		items, ok := parseScope(ctx, child)
		if !ok {
			return nil
		}

		return &ast.ScopeItem{Node: &ast.Scope{Line: line, Items: items}}
	default:
		return parseScopeFallback(ctx, child)
	}
}

// parseScopeFallback handles everything the classifier has no tag for:
// scope-state keywords, then a function-call probe, then an assignment
// probe. The probes run speculatively; their queued faults are flushed only
// when both fail, and a generic diagnostic covers the case where neither
// probe got far enough to queue anything.
func parseScopeFallback(ctx *Context, child *parsetree.Node) *ast.ScopeItem {
	statement := child.Statement
	line := child.Line()

	if len(statement) > 0 {
		if state, isState := scopeStateKeywords[statement[0].Text]; isState {
			if bare, _ := stripTerminator(statement); len(bare) == 1 {
				if !ctx.handlerActive(statement[0].Text) {
					ctx.reportf(line, "'%s' is not allowed in this scope.", statement[0].Text)

					return nil
				}

				return &ast.ScopeItem{State: state}
			}
		}
	}

	wasSpeculative := ctx.speculative
	ctx.speculative = true

	var item *ast.ScopeItem

	if looksLikeCall(statement) {
		if call := parseFunctionCall(ctx, statement, true); call != nil {
			item = &ast.ScopeItem{Node: call}
		}
	}

	if item == nil {
		if assignment := parseAssignment(ctx, statement); assignment != nil {
			item = &ast.ScopeItem{Node: assignment}
		}
	}

	ctx.speculative = wasSpeculative

	if item == nil {
		if !ctx.Diag.FlushQueued() {
			ctx.report(line, "Invalid declaration.")
		}

		return nil
	}

	ctx.Diag.ClearQueued()

	return item
}

// looksLikeCall reports whether a statement opens like a function call:
// an identifier immediately followed by '('. The call probe runs first for
// such statements, with the assignment probe as fallback; everything else
// goes straight to the assignment probe.
func looksLikeCall(statement []lexer.Lexeme) bool {
	return len(statement) >= 2 &&
		isQualifiedIdentifier(statement[0].Text) &&
		statement[1].Text == "("
}
