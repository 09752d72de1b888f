package parser

import (
	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/parsetree"
)

// ParseModule walks the token tree of one source file and builds its module
// AST. The parser continues past failed top-level constructs so one pass
// surfaces as many diagnostics as possible; the caller decides whether the
// result is usable by checking the engine's error state.
func ParseModule(ctx *Context, root *parsetree.Node) *ast.Module {
	module := &ast.Module{Source: ctx.Source}

	for _, child := range root.Children {
		switch Classify(child.Statement) {
		case ProductionEmpty:
			// blank statement at the top level; nothing to do
		case ProductionModule:
			parseModuleStatement(ctx, module, child)
		case ProductionImport:
			if imported := parseImport(ctx, child); imported != nil {
				module.Imports = append(module.Imports, imported)
			}
		case ProductionInclude:
			if included := parseInclude(ctx, child); included != nil {
				module.Includes = append(module.Includes, included)
			}
		case ProductionAttribute:
			parseAttributeStatement(ctx, child)
		case ProductionAlias:
			if alias := parseAlias(ctx, child); alias != nil {
				module.Aliases = append(module.Aliases, alias)
			}
		case ProductionVariable:
			if variable := parseVariable(ctx, child); variable != nil {
				module.Variables = append(module.Variables, variable)
			}
		case ProductionEnum:
			if enum := parseEnum(ctx, child); enum != nil {
				module.Enums = append(module.Enums, enum)
			}
		case ProductionFunction:
			if function := parseFunction(ctx, child, false); function != nil {
				module.Functions = append(module.Functions, function)
			}
		case ProductionInternal:
			if function := parseFunction(ctx, child, true); function != nil {
				module.InternalFunctions = append(module.InternalFunctions, function)
			}
		default:
			ctx.report(child.Line(), "Invalid declaration.")
		}
	}

	return module
}

// parseModuleStatement parses `module <name>;`, of which a file may have
// exactly one. Attributes buffered ahead of it attach to the module.
func parseModuleStatement(ctx *Context, module *ast.Module, node *parsetree.Node) {
	tokens, _ := stripTerminator(node.Statement)
	line := lineOf(tokens, 0)

	if module.Name != "" {
		ctx.report(line, "Only one module statement is allowed per module.")

		return
	}

	if len(tokens) < 2 {
		ctx.report(line, "Missing name from module statement.")

		return
	}

	if len(tokens) > 2 {
		ctx.report(line, "Invalid amount of arguments for module statement.")

		return
	}

	name := tokens[1]
	if !isQualifiedIdentifier(name.Text) || keywords[name.Text] {
		ctx.reportf(name.Line, "Invalid name '%s' for module statement.", name.Text)

		return
	}

	module.Name = name.Text
	module.Line = line
	module.Attributes = ctx.takeAttributes()
}
