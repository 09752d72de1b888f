package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/diag"
	"github.com/royal-lang/rl/internal/lexer"
)

// parseCall runs the function-call parser over a statement.
func parseCall(t *testing.T, source string) (*ast.FunctionCall, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	ctx := NewContext(diag.NewEngine(&out), "main.rl")

	return parseFunctionCall(ctx, lexer.Scan(source, false), true), &out
}

func TestSimpleCall(t *testing.T) {
	call, out := parseCall(t, `writeln("Hello", 42);`)
	if call == nil {
		t.Fatalf("parse failed:\n%s", out.String())
	}

	if call.Identifier != "writeln" {
		t.Errorf("identifier wrong: %q", call.Identifier)
	}

	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}

	if call.Arguments[0].Tokens[0] != `"Hello"` || call.Arguments[1].Tokens[0] != "42" {
		t.Errorf("arguments wrong: %v", call.Arguments)
	}
}

func TestCallWithoutArguments(t *testing.T) {
	call, out := parseCall(t, "flush();")
	if call == nil {
		t.Fatalf("parse failed:\n%s", out.String())
	}

	if len(call.Arguments) != 0 {
		t.Errorf("expected no arguments, got %v", call.Arguments)
	}
}

func TestTemplateCall(t *testing.T) {
	call, out := parseCall(t, "max(int)(1, 2);")
	if call == nil {
		t.Fatalf("parse failed:\n%s", out.String())
	}

	if len(call.TemplateArguments) != 1 || call.TemplateArguments[0] != "int" {
		t.Errorf("template arguments wrong: %v", call.TemplateArguments)
	}

	if len(call.Arguments) != 2 {
		t.Errorf("value arguments wrong: %v", call.Arguments)
	}
}

func TestThirdParenthesisGroupIsRejected(t *testing.T) {
	call, out := parseCall(t, "max(int)(1, 2)(3);")
	if call != nil {
		t.Fatal("expected failure")
	}

	if !strings.Contains(out.String(), "Only one template argument list is allowed per function call.") {
		t.Errorf("diagnostic wrong:\n%s", out.String())
	}
}

func TestArrayLiteralArgument(t *testing.T) {
	call, out := parseCall(t, "sum([1, 2, 3], 4);")
	if call == nil {
		t.Fatalf("parse failed:\n%s", out.String())
	}

	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}

	array := call.Arguments[0].Array
	if array == nil || len(array.Values) != 3 {
		t.Errorf("array argument wrong: %v", call.Arguments[0])
	}

	if call.Arguments[1].Array != nil || call.Arguments[1].Tokens[0] != "4" {
		t.Errorf("second argument wrong: %v", call.Arguments[1])
	}
}

func TestNestedCallArgument(t *testing.T) {
	call, out := parseCall(t, "f(g(1), 2);")
	if call == nil {
		t.Fatalf("parse failed:\n%s", out.String())
	}

	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}

	if strings.Join(call.Arguments[0].Tokens, "") != "g(1)" {
		t.Errorf("nested argument tokens wrong: %v", call.Arguments[0].Tokens)
	}
}

func TestQualifiedHeadOpensChain(t *testing.T) {
	call, out := parseCall(t, "console.write(1);")
	if call == nil {
		t.Fatalf("parse failed:\n%s", out.String())
	}

	if call.Identifier != "console" {
		t.Errorf("root identifier wrong: %q", call.Identifier)
	}

	if len(call.Chain) != 1 || call.Chain[0].Identifier != "write" {
		t.Fatalf("chain wrong: %v", call.Chain)
	}

	if len(call.Chain[0].Arguments) != 1 {
		t.Errorf("chained call arguments wrong: %v", call.Chain[0].Arguments)
	}
}

func TestCallFailures(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"writeln(1)", "Missing ';' from function call."},
		{"writeln(1;", "Missing ')' from function call."},
		{"writeln(1,);", "Missing argument from function call."},
		{"123(1);", "Invalid identifier '123' for function call."},
	}

	for _, tt := range tests {
		call, out := parseCall(t, tt.source)
		if call != nil {
			t.Errorf("source %q - expected failure", tt.source)

			continue
		}

		if !strings.Contains(out.String(), tt.expected) {
			t.Errorf("source %q - diagnostic wrong. expected %q in:\n%s", tt.source, tt.expected, out.String())
		}
	}
}
