package parser

import (
	"testing"

	"github.com/royal-lang/rl/internal/lexer"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		expected Production
	}{
		{"module main;", ProductionModule},
		{"import std;", ProductionImport},
		{"include \"stdio.h\";", ProductionInclude},
		{"internal fn f();", ProductionInternal},
		{"alias T = int;", ProductionAlias},
		{"this();", ProductionThis},
		{"static this()", ProductionStaticThis},
		{"shared static this()", ProductionStaticThis},
		{"fn main()", ProductionFunction},
		{"struct Point", ProductionStruct},
		{"ref struct Point", ProductionStruct},
		{"interface Writer", ProductionInterface},
		{"template T", ProductionTemplate},
		{"traits T", ProductionTraits},
		{"static if x", ProductionStaticIf},
		{"static else", ProductionStaticElse},
		{"var x = 1;", ProductionVariable},
		{"enum Color", ProductionEnum},
		{"public:", ProductionAttribute},
		{"private:", ProductionAttribute},
		{"protected:", ProductionAttribute},
		{"package:", ProductionAttribute},
		{"static:", ProductionAttribute},
		{"immutable:", ProductionAttribute},
		{"const:", ProductionAttribute},
		{"mut:", ProductionAttribute},
		{"@Ctor(1):", ProductionAttribute},
		{"return x;", ProductionReturn},
		{"if x == 1", ProductionIf},
		{"else", ProductionElse},
		{"switch x", ProductionSwitch},
		{"for var i = 0, i < 1, i++", ProductionFor},
		{"foreach i, list", ProductionForeach},
		{"while x", ProductionWhile},
		{"do", ProductionDo},
		{"writeln();", ProductionUnknown},
		{"123;", ProductionUnknown},
	}

	for _, tt := range tests {
		got := Classify(lexer.Scan(tt.input, false))
		if got != tt.expected {
			t.Errorf("input %q - production wrong. expected=%s, got=%s", tt.input, tt.expected, got)
		}
	}
}

func TestClassifyEmpty(t *testing.T) {
	if got := Classify(nil); got != ProductionEmpty {
		t.Errorf("empty statement - production wrong. expected=EMPTY, got=%s", got)
	}
}
