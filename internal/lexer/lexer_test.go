package lexer

import "testing"

func TestBasicLexemes(t *testing.T) {
	input := `module main;
fn main() {
	writeln("Hello");
}`

	tests := []struct {
		expectedText string
		expectedLine int
	}{
		{"module", 1},
		{"main", 1},
		{";", 1},
		{"fn", 2},
		{"main", 2},
		{"(", 2},
		{")", 2},
		{"{", 2},
		{"writeln", 3},
		{"(", 3},
		{`"Hello"`, 3},
		{")", 3},
		{";", 3},
		{"}", 4},
	}

	lexemes := Scan(input, false)

	if len(lexemes) != len(tests) {
		t.Fatalf("lexeme count wrong. expected=%d, got=%d (%v)", len(tests), len(lexemes), lexemes)
	}

	for i, tt := range tests {
		if lexemes[i].Text != tt.expectedText {
			t.Fatalf("lexemes[%d] - text wrong. expected=%q, got=%q", i, tt.expectedText, lexemes[i].Text)
		}

		if lexemes[i].Line != tt.expectedLine {
			t.Fatalf("lexemes[%d] - line wrong. expected=%d, got=%d", i, tt.expectedLine, lexemes[i].Line)
		}
	}
}

func TestCompoundSymbols(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"a == b", []string{"a", "==", "b"}},
		{"a <= b", []string{"a", "<=", "b"}},
		{"a >> b", []string{"a", ">>", "b"}},
		{"a || b", []string{"a", "||", "b"}},
		{"a && b", []string{"a", "&&", "b"}},
		{"a ^^ b", []string{"a", "^^", "b"}},
		{"a !! b", []string{"a", "!!", "b"}},
		{"i++", []string{"i", "++"}},
		{"a := b", []string{"a", ":=", "b"}},
		// structural brackets and the comma never join a compound symbol
		{"f();", []string{"f", "(", ")", ";"}},
		{"a[]", []string{"a", "[", "]"}},
		{"f(a,b)", []string{"f", "(", "a", ",", "b", ")"}},
		{"!(a)", []string{"!", "(", "a", ")"}},
	}

	for _, tt := range tests {
		lexemes := Scan(tt.input, false)

		if len(lexemes) != len(tt.expected) {
			t.Fatalf("input %q - lexeme count wrong. expected=%d, got=%d (%v)",
				tt.input, len(tt.expected), len(lexemes), lexemes)
		}

		for i, expected := range tt.expected {
			if lexemes[i].Text != expected {
				t.Errorf("input %q - lexemes[%d] wrong. expected=%q, got=%q",
					tt.input, i, expected, lexemes[i].Text)
			}
		}
	}
}

func TestDotHandling(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		// dots stay glued to identifiers
		{"a.b", []string{"a.b"}},
		{"std.io", []string{"std.io"}},
		{"1.5", []string{"1.5"}},
		// a dot directly after ')' stands alone to expose call chains
		{"a.b().c()", []string{"a.b", "(", ")", ".", "c", "(", ")"}},
		{"f().g()", []string{"f", "(", ")", ".", "g", "(", ")"}},
	}

	for _, tt := range tests {
		lexemes := Scan(tt.input, false)

		if len(lexemes) != len(tt.expected) {
			t.Fatalf("input %q - lexeme count wrong. expected=%d, got=%d (%v)",
				tt.input, len(tt.expected), len(lexemes), lexemes)
		}

		for i, expected := range tt.expected {
			if lexemes[i].Text != expected {
				t.Errorf("input %q - lexemes[%d] wrong. expected=%q, got=%q",
					tt.input, i, expected, lexemes[i].Text)
			}
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, `"hello"`},
		{`"he said \"hi\""`, `"he said \"hi\""`},
		{`'c'`, `'c'`},
		{`'\n'`, `'\n'`},
	}

	for _, tt := range tests {
		lexemes := Scan(tt.input, false)

		if len(lexemes) != 1 {
			t.Fatalf("input %q - expected one lexeme, got %d (%v)", tt.input, len(lexemes), lexemes)
		}

		if lexemes[0].Text != tt.expected {
			t.Errorf("input %q - literal wrong. expected=%q, got=%q", tt.input, tt.expected, lexemes[0].Text)
		}
	}
}

func TestComments(t *testing.T) {
	input := "a // line comment\nb /* block\ncomment */ c"

	withoutComments := Scan(input, false)
	expected := []string{"a", "b", "c"}

	if len(withoutComments) != len(expected) {
		t.Fatalf("expected %d lexemes without comments, got %d (%v)", len(expected), len(withoutComments), withoutComments)
	}

	for i, text := range expected {
		if withoutComments[i].Text != text {
			t.Errorf("lexemes[%d] wrong. expected=%q, got=%q", i, text, withoutComments[i].Text)
		}
	}

	// block comments still advance the line counter
	if withoutComments[2].Line != 3 {
		t.Errorf("lexeme after block comment - line wrong. expected=3, got=%d", withoutComments[2].Line)
	}

	withComments := Scan(input, true)
	if len(withComments) != 5 {
		t.Fatalf("expected 5 lexemes with comments, got %d (%v)", len(withComments), withComments)
	}

	if withComments[1].Text != "// line comment" {
		t.Errorf("line comment wrong. got=%q", withComments[1].Text)
	}

	if withComments[3].Text != "/* block\ncomment */" {
		t.Errorf("block comment wrong. got=%q", withComments[3].Text)
	}
}

func TestCarriageReturns(t *testing.T) {
	lexemes := Scan("a\r\nb\r\n", false)

	if len(lexemes) != 2 {
		t.Fatalf("expected 2 lexemes, got %d (%v)", len(lexemes), lexemes)
	}

	if lexemes[0].Line != 1 || lexemes[1].Line != 2 {
		t.Errorf("lines wrong. got %d and %d", lexemes[0].Line, lexemes[1].Line)
	}
}

func TestLineNumbersStayInRange(t *testing.T) {
	input := "module main;\nfn main() {\n\tvar x = 1;\n\tif x == 1 {\n\t\twriteln(\"one\");\n\t}\n}\n"
	lineCount := 8

	for _, lexeme := range Scan(input, false) {
		if lexeme.Line < 1 || lexeme.Line > lineCount {
			t.Errorf("lexeme %q - line %d out of range [1, %d]", lexeme.Text, lexeme.Line, lineCount)
		}
	}
}
