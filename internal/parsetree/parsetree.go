// Package parsetree builds the intermediate token tree between the lexer and
// the parser. Lexemes are grouped into statements split on ';' and into
// brace-delimited scopes, producing a hierarchy the parsers can walk without
// re-scanning for statement boundaries.
package parsetree

import (
	"strings"

	"github.com/royal-lang/rl/internal/lexer"
)

// Node is one entry in the token tree. A node either holds the flat lexemes
// of a single statement (terminated by ';'), or it is a scope header whose
// children open with a '{' sentinel and close with a '}' sentinel, or it is
// one of those sentinels itself.
type Node struct {
	Statement []lexer.Lexeme `json:"statement"`
	Children  []*Node        `json:"children,omitempty"`
}

// IsSentinel reports whether the node is a lone '{' or '}' delimiter.
func (n *Node) IsSentinel() bool {
	return len(n.Statement) == 1 &&
		(n.Statement[0].Text == "{" || n.Statement[0].Text == "}")
}

// Line returns the line of the node's first lexeme, or the line of the first
// child for header nodes with an empty statement.
func (n *Node) Line() int {
	if len(n.Statement) > 0 {
		return n.Statement[0].Line
	}

	if len(n.Children) > 0 {
		return n.Children[0].Line()
	}

	return 0
}

// attributeKeywords are the bare keywords the grouper folds into a single
// attribute statement when directly followed by ':'.
var attributeKeywords = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"package":   true,
	"static":    true,
	"immutable": true,
	"const":     true,
	"mut":       true,
}

// Group consumes lexemes left to right and returns the root of the token
// tree. Scope nesting is tracked with an explicit stack of open parents
// rather than parent back-pointers.
func Group(lexemes []lexer.Lexeme) *Node {
	root := &Node{}
	stack := []*Node{root}

	var accumulator []lexer.Lexeme

	// Defensive string absorption: a lone '"' lexeme should not normally
	// reach the grouper, but if one does, everything up to the closing
	// quote is folded back into a single string lexeme.
	absorbing := false

	var absorbed strings.Builder

	absorbedLine := 0

	parent := func() *Node { return stack[len(stack)-1] }

	for i := 0; i < len(lexemes); i++ {
		current := lexemes[i]

		if absorbing {
			if current.Text == "\"" {
				accumulator = append(accumulator, lexer.Lexeme{
					Text: "\"" + absorbed.String() + "\"",
					Line: absorbedLine,
				})
				absorbed.Reset()

				absorbing = false
			} else {
				absorbed.WriteString(current.Text)
			}

			continue
		}

		switch current.Text {
		case ";":
			accumulator = append(accumulator, current)
			parent().Children = append(parent().Children, &Node{Statement: accumulator})
			accumulator = nil
		case "{":
			header := &Node{Statement: accumulator}
			accumulator = nil

			header.Children = append(header.Children, &Node{
				Statement: []lexer.Lexeme{current},
			})
			parent().Children = append(parent().Children, header)
			stack = append(stack, header)
		case "}":
			parent().Children = append(parent().Children, &Node{
				Statement: []lexer.Lexeme{current},
			})

			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case "\"":
			absorbing = true
			absorbedLine = current.Line
		default:
			// Attribute statements are not ';'-terminated: a bare keyword
			// or an @Ctor(...) group followed by ':' closes the statement
			// at the colon.
			if i+1 < len(lexemes) && lexemes[i+1].Text == ":" && isAttributeStart(accumulator, current) {
				accumulator = append(accumulator, current, lexemes[i+1])
				parent().Children = append(parent().Children, &Node{Statement: accumulator})
				accumulator = nil
				i++

				continue
			}

			accumulator = append(accumulator, current)
		}
	}

	return root
}

// isAttributeStart reports whether a trailing ':' would terminate an
// attribute statement: the current lexeme is an attribute keyword beginning
// its own statement, or the running statement started with '@'.
func isAttributeStart(accumulator []lexer.Lexeme, current lexer.Lexeme) bool {
	if len(accumulator) == 0 {
		return attributeKeywords[current.Text]
	}

	return accumulator[0].Text == "@"
}
