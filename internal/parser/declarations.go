package parser

import (
	"strings"

	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/lexer"
	"github.com/royal-lang/rl/internal/parsetree"
)

// parseImport parses `import name;` or `import name : member, member;`.
func parseImport(ctx *Context, node *parsetree.Node) *ast.Import {
	tokens, _ := stripTerminator(node.Statement)
	line := lineOf(tokens, 0)

	if len(tokens) < 2 {
		ctx.report(line, "Missing name from import statement.")

		return nil
	}

	name := tokens[1]
	if !isQualifiedIdentifier(name.Text) || keywords[name.Text] {
		ctx.reportf(name.Line, "Invalid name '%s' for import statement.", name.Text)

		return nil
	}

	imported := &ast.Import{Line: line, Module: name.Text}

	if len(tokens) == 2 {
		return imported
	}

	if tokens[2].Text != ":" {
		ctx.reportf(tokens[2].Line, "Expected ':' but found '%s' in import statement.", tokens[2].Text)

		return nil
	}

	for _, member := range splitTopLevel(tokens[3:], ",") {
		if len(member) != 1 || !isValidName(member[0].Text) {
			ctx.report(lineOf(member, line), "Invalid member name in import statement.")

			return nil
		}

		imported.Members = append(imported.Members, member[0].Text)
	}

	if len(imported.Members) == 0 {
		ctx.report(line, "Missing members from selective import statement.")

		return nil
	}

	return imported
}

// parseInclude parses `include "path";`. The path must be a double-quoted
// string; it is stored with the quotes stripped.
func parseInclude(ctx *Context, node *parsetree.Node) *ast.Include {
	tokens, _ := stripTerminator(node.Statement)
	line := lineOf(tokens, 0)

	if len(tokens) < 2 {
		ctx.report(line, "Missing path from include statement.")

		return nil
	}

	if len(tokens) > 2 {
		ctx.report(line, "Invalid amount of arguments for include statement.")

		return nil
	}

	path := tokens[1]
	if !isStringLiteral(path.Text) {
		ctx.report(path.Line, "The include path must be a double-quoted string.")

		return nil
	}

	return &ast.Include{Line: line, Path: path.Text[1 : len(path.Text)-1]}
}

// parseAttributeStatement parses a bare keyword attribute `public:` or a
// constructor-call attribute `@Name(args):` and buffers it for the next
// declaration to claim.
func parseAttributeStatement(ctx *Context, node *parsetree.Node) {
	tokens := node.Statement
	line := lineOf(tokens, 0)

	if len(tokens) < 2 || tokens[len(tokens)-1].Text != ":" {
		ctx.report(line, "Missing ':' from attribute declaration.")

		return
	}

	body := tokens[:len(tokens)-1]

	if body[0].Text != "@" {
		if len(body) != 1 {
			ctx.report(line, "Invalid amount of arguments for attribute declaration.")

			return
		}

		ctx.bufferAttribute(&ast.Attribute{Line: line, Keyword: body[0].Text})

		return
	}

	ctor := parseFunctionCall(ctx, body[1:], false)
	if ctor == nil {
		return
	}

	ctx.bufferAttribute(&ast.Attribute{Line: line, Ctor: ctor})
}

// parseVariable parses a `var [type] name [= expression];` statement.
func parseVariable(ctx *Context, node *parsetree.Node) *ast.Variable {
	tokens := node.Statement
	line := lineOf(tokens, 0)

	if len(tokens) < 2 {
		ctx.report(line, "Missing name from variable declaration.")

		return nil
	}

	return parseVariableBody(ctx, tokens[1:], line)
}

// parseVariableBody parses `[type] name [= expression];` without the leading
// keyword; enum members reuse it directly.
func parseVariableBody(ctx *Context, tokens []lexer.Lexeme, line int) *ast.Variable {
	tokens, _ = stripTerminator(tokens)
	if len(tokens) == 0 {
		ctx.report(line, "Missing name from variable declaration.")

		return nil
	}

	left := tokens
	var right []lexer.Lexeme

	depth := 0

	for i, token := range tokens {
		switch token.Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		}

		if depth == 0 && token.Text == "=" {
			left = tokens[:i]
			right = tokens[i+1:]

			break
		}
	}

	if len(left) == 0 {
		ctx.report(line, "Missing name from variable declaration.")

		return nil
	}

	name := left[len(left)-1]
	if !isValidName(name.Text) {
		ctx.reportf(name.Line, "Invalid name '%s' for variable declaration.", name.Text)

		return nil
	}

	variable := &ast.Variable{
		Line:       line,
		Name:       name.Text,
		Attributes: ctx.takeAttributes(),
	}

	if typeTokens := left[:len(left)-1]; len(typeTokens) > 0 {
		variable.Type = parseTypeTokens(ctx, typeTokens, name.Text, line)
		if variable.Type == nil {
			return nil
		}
	}

	if right != nil {
		if len(right) == 0 {
			ctx.report(line, "Missing expression from variable declaration.")

			return nil
		}

		expression := parseExpression(ctx, right, false)
		if expression == nil {
			return nil
		}

		variable.Expression = expression
	}

	return variable
}

// parseAlias parses `alias name [(params)] = rhs;` where the right-hand
// side is an expression or, failing that, a type expression. The expression
// probe runs speculatively so its faults can be dropped when the type
// branch is committed to instead.
func parseAlias(ctx *Context, node *parsetree.Node) *ast.Alias {
	tokens, _ := stripTerminator(node.Statement)
	line := lineOf(tokens, 0)

	if len(tokens) < 2 {
		ctx.report(line, "Missing name from alias declaration.")

		return nil
	}

	name := tokens[1]
	if !isValidName(name.Text) {
		ctx.reportf(name.Line, "Invalid name '%s' for alias declaration.", name.Text)

		return nil
	}

	alias := &ast.Alias{
		Line:       line,
		Name:       name.Text,
		Attributes: ctx.takeAttributes(),
	}

	rest := tokens[2:]

	if len(rest) > 0 && rest[0].Text == "(" {
		end := -1
		depth := 0

		for i, token := range rest {
			switch token.Text {
			case "(":
				depth++
			case ")":
				depth--

				if depth == 0 {
					end = i
				}
			}

			if end >= 0 {
				break
			}
		}

		if end < 0 {
			ctx.report(line, "Missing ')' from alias declaration.")

			return nil
		}

		for _, parameter := range splitTopLevel(rest[1:end], ",") {
			if len(parameter) == 0 {
				ctx.report(line, "Missing parameter from alias declaration.")

				return nil
			}

			alias.Parameters = append(alias.Parameters, strings.Join(texts(parameter), " "))
		}

		rest = rest[end+1:]
	}

	if len(rest) == 0 || rest[0].Text != "=" {
		ctx.report(line, "Missing '=' from alias declaration.")

		return nil
	}

	rhs := rest[1:]
	if len(rhs) == 0 {
		ctx.report(line, "Missing right-hand side from alias declaration.")

		return nil
	}

	wasSpeculative := ctx.speculative
	ctx.speculative = true

	expression := parseExpression(ctx, rhs, false)
	if expression != nil && !ctx.Diag.HasQueued() {
		ctx.speculative = wasSpeculative

		alias.Expression = expression

		return alias
	}

	ctx.Diag.ClearQueued()

	aliasType := parseTypeTokens(ctx, rhs, name.Text, line)

	ctx.speculative = wasSpeculative

	if aliasType == nil || ctx.Diag.HasQueued() {
		if !ctx.Diag.FlushQueued() {
			ctx.report(line, "Invalid right-hand side for alias declaration.")
		}

		return nil
	}

	alias.Type = aliasType

	return alias
}

// parseEnum parses the single-item form `enum name [: type] = expr;` and the
// block form `enum name [: type] { member = expr; ... }`. Every member is
// parsed as a variable.
func parseEnum(ctx *Context, node *parsetree.Node) *ast.Enum {
	tokens, _ := stripTerminator(node.Statement)
	line := lineOf(tokens, 0)

	if len(tokens) < 2 {
		ctx.report(line, "Missing name from enum declaration.")

		return nil
	}

	name := tokens[1]
	if !isValidName(name.Text) {
		ctx.reportf(name.Line, "Invalid name '%s' for enum declaration.", name.Text)

		return nil
	}

	enum := &ast.Enum{
		Line:       line,
		Name:       name.Text,
		Attributes: ctx.takeAttributes(),
	}

	rest := tokens[2:]

	if len(rest) > 0 && rest[0].Text == ":" {
		end := len(rest)

		for i, token := range rest {
			if token.Text == "=" {
				end = i

				break
			}
		}

		enum.BaseType = parseTypeTokens(ctx, rest[1:end], name.Text, line)
		if enum.BaseType == nil {
			return nil
		}

		rest = rest[end:]
	}

	if len(node.Children) > 0 {
		if len(rest) > 0 {
			ctx.report(line, "Unexpected tokens before enum body.")

			return nil
		}

		return parseEnumBody(ctx, node, enum)
	}

	if len(rest) == 0 || rest[0].Text != "=" {
		ctx.report(line, "Missing '=' from enum declaration.")

		return nil
	}

	expression := parseExpression(ctx, rest[1:], false)
	if expression == nil {
		return nil
	}

	enum.Members = append(enum.Members, &ast.Variable{
		Line:       line,
		Name:       name.Text,
		Expression: expression,
	})

	return enum
}

// parseEnumBody parses the members of a block-form enum.
func parseEnumBody(ctx *Context, node *parsetree.Node, enum *ast.Enum) *ast.Enum {
	children := node.Children

	if len(children) < 2 || !children[0].IsSentinel() || !children[len(children)-1].IsSentinel() {
		ctx.report(enum.Line, "Missing scope from enum declaration.")

		return nil
	}

	for _, child := range children[1 : len(children)-1] {
		member := parseVariableBody(ctx, child.Statement, child.Line())
		if member == nil {
			continue
		}

		enum.Members = append(enum.Members, member)
	}

	return enum
}

// parseFunction parses a function header with up to two parameter lists and
// an optional body. With internal set the statement is an `internal fn`
// forward declaration and may not carry a body.
func parseFunction(ctx *Context, node *parsetree.Node, internal bool) *ast.Function {
	tokens, hadTerminator := stripTerminator(node.Statement)
	line := lineOf(tokens, 0)

	if internal {
		if len(tokens) < 2 || tokens[1].Text != "fn" {
			ctx.report(line, "Expected 'fn' after 'internal'.")

			return nil
		}

		tokens = tokens[1:]
	}

	// drop the leading fn keyword
	tokens = tokens[1:]

	open := -1

	for i, token := range tokens {
		if token.Text == "(" {
			open = i

			break
		}
	}

	if open <= 0 {
		ctx.report(line, "Missing '(' from function declaration.")

		return nil
	}

	name := tokens[open-1]
	if !isValidName(name.Text) {
		ctx.reportf(name.Line, "Invalid name '%s' for function declaration.", name.Text)

		return nil
	}

	function := &ast.Function{
		Line:       line,
		Name:       name.Text,
		ReturnType: ast.Void(line),
		Attributes: ctx.takeAttributes(),
	}

	if typeTokens := tokens[:open-1]; len(typeTokens) > 0 {
		function.ReturnType = parseTypeTokens(ctx, typeTokens, name.Text, line)
		if function.ReturnType == nil {
			return nil
		}
	}

	parameters, next, ok := parseParameterList(ctx, tokens, open)
	if !ok {
		return nil
	}

	if next < len(tokens) && tokens[next].Text == "(" {
		// Two lists: the first held the template parameters.
		function.TemplateParameters = parameters

		parameters, next, ok = parseParameterList(ctx, tokens, next)
		if !ok {
			return nil
		}
	}

	function.Parameters = parameters

	if next != len(tokens) {
		ctx.reportf(tokens[next].Line, "Unexpected '%s' after function declaration.", tokens[next].Text)

		return nil
	}

	if internal {
		if len(node.Children) > 0 {
			ctx.report(line, "An internal function cannot have a body.")

			return nil
		}

		return function
	}

	if len(node.Children) > 0 {
		body, ok := parseScope(ctx, node)
		if !ok {
			return nil
		}

		function.Body = body
		function.HasBody = true

		return function
	}

	if !hadTerminator {
		ctx.report(line, "Missing ';' from function declaration.")

		return nil
	}

	return function
}

// parseParameterList consumes one parenthesized `type name` list starting at
// the '(' at open and returns the parameters and the index past the ')'.
func parseParameterList(ctx *Context, tokens []lexer.Lexeme, open int) ([]*ast.Parameter, int, bool) {
	depth := 0
	end := -1

	for i := open; i < len(tokens); i++ {
		switch tokens[i].Text {
		case "(":
			depth++
		case ")":
			depth--

			if depth == 0 {
				end = i
			}
		}

		if end >= 0 {
			break
		}
	}

	if end < 0 {
		ctx.report(lineOf(tokens, 0), "Missing ')' from function declaration.")

		return nil, 0, false
	}

	inner := tokens[open+1 : end]
	if len(inner) == 0 {
		return nil, end + 1, true
	}

	var parameters []*ast.Parameter

	for _, part := range splitTopLevel(inner, ",") {
		if len(part) == 0 {
			ctx.report(lineOf(tokens, 0), "Missing parameter from function declaration.")

			return nil, 0, false
		}

		name := part[len(part)-1]
		if !isValidName(name.Text) {
			ctx.reportf(name.Line, "Invalid name '%s' for parameter.", name.Text)

			return nil, 0, false
		}

		parameter := &ast.Parameter{Line: name.Line, Name: name.Text}

		if typeTokens := part[:len(part)-1]; len(typeTokens) > 0 {
			parameter.Type = parseTypeTokens(ctx, typeTokens, name.Text, name.Line)
			if parameter.Type == nil {
				return nil, 0, false
			}
		} else {
			ctx.reportf(name.Line, "Missing type for parameter '%s'.", name.Text)

			return nil, 0, false
		}

		parameters = append(parameters, parameter)
	}

	return parameters, end + 1, true
}
