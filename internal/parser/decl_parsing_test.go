package parser

import (
	"strings"
	"testing"

	"github.com/royal-lang/rl/internal/ast"
)

func TestImportStatements(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\nimport std;\nimport std.io : writeln, writefln;")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	if len(module.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(module.Imports))
	}

	if module.Imports[0].Module != "std" || len(module.Imports[0].Members) != 0 {
		t.Errorf("first import wrong: %+v", module.Imports[0])
	}

	second := module.Imports[1]
	if second.Module != "std.io" {
		t.Errorf("second import module wrong: %q", second.Module)
	}

	if len(second.Members) != 2 || second.Members[0] != "writeln" || second.Members[1] != "writefln" {
		t.Errorf("selective members wrong: %v", second.Members)
	}
}

func TestIncludeStatement(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\ninclude \"stdio.h\";")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	if len(module.Includes) != 1 {
		t.Fatalf("expected 1 include, got %d", len(module.Includes))
	}

	if module.Includes[0].Path != "stdio.h" {
		t.Errorf("include path wrong. expected=%q, got=%q", "stdio.h", module.Includes[0].Path)
	}
}

func TestIncludeRequiresDoubleQuotes(t *testing.T) {
	_, engine, out := compileSource(t, "module main;\ninclude 'stdio.h';")

	if !engine.HasErrors() {
		t.Fatal("expected diagnostics")
	}

	if !strings.Contains(out.String(), "The include path must be a double-quoted string.") {
		t.Errorf("diagnostic wrong:\n%s", out.String())
	}
}

func TestKeywordAttributeBuffering(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\npublic:\nvar x = 1;\nvar y = 2;")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	if len(module.Variables) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(module.Variables))
	}

	first := module.Variables[0]
	if len(first.Attributes) != 1 || first.Attributes[0].Keyword != "public" {
		t.Errorf("first variable should claim the attribute, got %v", first.Attributes)
	}

	if len(module.Variables[1].Attributes) != 0 {
		t.Errorf("attributes must only be claimed once, got %v", module.Variables[1].Attributes)
	}
}

func TestConstructorAttribute(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\n@Inline(true):\nfn main() { writeln(\"x\"); }")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	function := module.Functions[0]
	if len(function.Attributes) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(function.Attributes))
	}

	ctor := function.Attributes[0].Ctor
	if ctor == nil || ctor.Identifier != "Inline" {
		t.Errorf("constructor attribute wrong: %v", function.Attributes[0])
	}

	if len(ctor.Arguments) != 1 || ctor.Arguments[0].Tokens[0] != "true" {
		t.Errorf("constructor arguments wrong: %v", ctor.Arguments)
	}
}

func TestAliasExpression(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\nalias Sum = 1 + 2;")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	alias := module.Aliases[0]
	if alias.Name != "Sum" {
		t.Errorf("alias name wrong: %q", alias.Name)
	}

	if alias.Expression == nil || !alias.Expression.IsMathematical {
		t.Errorf("alias should bind an expression, got %v", alias.Expression)
	}

	if alias.Type != nil {
		t.Errorf("alias should not bind a type, got %v", alias.Type)
	}
}

func TestAliasTypeFallback(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\nalias IntPtr = ptr:int;")

	if engine.HasErrors() {
		t.Fatalf("the expression probe must not surface diagnostics:\n%s", out.String())
	}

	alias := module.Aliases[0]
	if alias.Type == nil || !alias.Type.IsPointer || alias.Type.Base != "int" {
		t.Errorf("alias should bind a pointer type, got %v", alias.Type)
	}
}

func TestAliasWithParameters(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\nalias Twice(x) = x + x;")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	alias := module.Aliases[0]
	if len(alias.Parameters) != 1 || alias.Parameters[0] != "x" {
		t.Errorf("alias parameters wrong: %v", alias.Parameters)
	}
}

func TestSingleItemEnum(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\nenum MAX = 100;")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	enum := module.Enums[0]
	if enum.Name != "MAX" {
		t.Errorf("enum name wrong: %q", enum.Name)
	}

	if len(enum.Members) != 1 || enum.Members[0].Expression == nil {
		t.Errorf("single-item enum members wrong: %v", enum.Members)
	}
}

func TestBlockEnum(t *testing.T) {
	source := `module main;
enum Color : int {
	red = 1;
	green = 2;
	blue = 3;
}`

	module, engine, out := compileSource(t, source)

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	enum := module.Enums[0]
	if enum.BaseType == nil || enum.BaseType.Base != "int" {
		t.Errorf("enum base type wrong: %v", enum.BaseType)
	}

	if len(enum.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(enum.Members))
	}

	names := []string{"red", "green", "blue"}
	for i, member := range enum.Members {
		if member.Name != names[i] {
			t.Errorf("member %d name wrong. expected=%q, got=%q", i, names[i], member.Name)
		}

		if member.Expression == nil {
			t.Errorf("member %q has no expression", member.Name)
		}
	}
}

func TestFunctionWithParameters(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\nfn int add(int a, int b) { return a + b; }")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	function := module.Functions[0]
	if function.Name != "add" {
		t.Errorf("function name wrong: %q", function.Name)
	}

	if function.ReturnType.Base != "int" {
		t.Errorf("return type wrong: %v", function.ReturnType)
	}

	if len(function.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(function.Parameters))
	}

	for i, name := range []string{"a", "b"} {
		parameter := function.Parameters[i]
		if parameter.Name != name || parameter.Type.Base != "int" {
			t.Errorf("parameter %d wrong: %+v", i, parameter)
		}
	}
}

func TestFunctionWithTemplateParameters(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\nfn T max(T t)(T a, T b) { return a; }")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	function := module.Functions[0]
	if len(function.TemplateParameters) != 1 || function.TemplateParameters[0].Name != "t" {
		t.Errorf("template parameters wrong: %v", function.TemplateParameters)
	}

	if len(function.Parameters) != 2 {
		t.Errorf("value parameters wrong: %v", function.Parameters)
	}
}

func TestInternalFunction(t *testing.T) {
	module, engine, out := compileSource(t, "module main;\ninternal fn int abs(int x);")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	if len(module.InternalFunctions) != 1 {
		t.Fatalf("expected 1 internal function, got %d", len(module.InternalFunctions))
	}

	function := module.InternalFunctions[0]
	if function.Name != "abs" || function.HasBody {
		t.Errorf("internal function wrong: %+v", function)
	}
}

func TestVariableWithComplexTypes(t *testing.T) {
	tests := []struct {
		source string
		kind   ast.TypeKind
	}{
		{"module main;\nvar int x = 1;", ast.TypeScalar},
		{"module main;\nvar int[] xs;", ast.TypeDynamicArray},
		{"module main;\nvar int[4] xs;", ast.TypeStaticArray},
		{"module main;\nvar int[string] map;", ast.TypeAssociativeArray},
	}

	for _, tt := range tests {
		module, engine, out := compileSource(t, tt.source)
		if engine.HasErrors() {
			t.Fatalf("source %q - unexpected diagnostics:\n%s", tt.source, out.String())
		}

		if len(module.Variables) != 1 {
			t.Fatalf("source %q - expected 1 variable, got %d", tt.source, len(module.Variables))
		}

		if got := module.Variables[0].Type.Kind; got != tt.kind {
			t.Errorf("source %q - kind wrong. expected=%s, got=%s", tt.source, tt.kind, got)
		}
	}
}

func TestModuleAttributes(t *testing.T) {
	module, engine, out := compileSource(t, "private:\nmodule main;")

	if engine.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}

	if len(module.Attributes) != 1 || module.Attributes[0].Keyword != "private" {
		t.Errorf("module attributes wrong: %v", module.Attributes)
	}
}
