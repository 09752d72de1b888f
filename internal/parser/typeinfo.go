package parser

import (
	"strconv"

	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/lexer"
)

// mutabilityKeywords maps the mutability keywords to their attribute.
var mutabilityKeywords = map[string]ast.TypeMutability{
	"immutable": ast.MutabilityImmutable,
	"const":     ast.MutabilityConst,
	"mut":       ast.MutabilityMut,
}

// parseTypeTokens parses a composite type spread such as ptr:int[10]:const.
// The spread arrives pre-split on ':', '[' and ']' by the lexer; colons are
// discarded here, brackets are kept as markers. The walk accumulates type
// entries left to right, pushing the current entry whenever a new base or a
// ptr prefix begins another one, and the close-out step decides between the
// scalar, pointer, dynamic array, static array and associative array forms.
//
// Returns nil after reporting when the spread is malformed.
func parseTypeTokens(ctx *Context, tokens []lexer.Lexeme, name string, line int) *ast.TypeInfo {
	var (
		entries       []ast.TypeEntry
		current       ast.TypeEntry
		currentActive bool
	)

	ok := true
	inArray := false
	sawArray := false
	afterArray := false
	sizeSet := false

	var size uint64

	outerMutability := ast.MutabilityNone

	push := func() {
		if currentActive {
			entries = append(entries, current)
			current = ast.TypeEntry{}
			currentActive = false
		}
	}

	for _, token := range tokens {
		text := token.Text

		if text == ":" {
			continue
		}

		if mutability, isMutability := mutabilityKeywords[text]; isMutability {
			switch {
			case afterArray:
				if outerMutability != ast.MutabilityNone {
					ctx.reportf(token.Line, "Unknown post-type attribute '%s'.", text)

					ok = false

					continue
				}

				outerMutability = mutability
			case current.Base == "":
				ctx.report(token.Line, "Mutability attribute must be set after the type.")

				ok = false
			default:
				current.Mutability = mutability
			}

			continue
		}

		switch {
		case text == "ptr":
			if afterArray {
				ctx.reportf(token.Line, "Unknown post-type attribute '%s'.", text)

				ok = false

				continue
			}

			if current.IsPointer {
				ctx.report(token.Line, "A type can only have one pointer.")

				ok = false

				continue
			}

			if current.Base != "" {
				push()
			}

			current.IsPointer = true
			currentActive = true
		case text == "[":
			if inArray || sawArray {
				ctx.report(token.Line, "A type can only have one size.")

				ok = false

				continue
			}

			inArray = true
			sawArray = true

			push()
		case text == "]":
			if !inArray {
				ctx.report(token.Line, "Unexpected ']' in type declaration.")

				ok = false

				continue
			}

			inArray = false
			afterArray = true

			push()
		case inArray && isUnsignedInteger(text):
			if sizeSet {
				ctx.report(token.Line, "A type can only have one size.")

				ok = false

				continue
			}

			value, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				ctx.report(token.Line, "Invalid size for type. The size must be an unsigned integer.")

				ok = false

				continue
			}

			size = value
			sizeSet = true
		case inArray && looksNumeric(text):
			ctx.report(token.Line, "Invalid size for type. The size must be an unsigned integer.")

			ok = false
		default:
			if afterArray {
				ctx.reportf(token.Line, "Unknown post-type attribute '%s'.", text)

				ok = false

				continue
			}

			if current.Base != "" {
				push()
			}

			current.Base = text
			currentActive = true
		}
	}

	if inArray {
		ctx.report(line, "Missing ']' from type declaration.")

		ok = false
	}

	push()

	if len(entries) == 0 {
		ctx.report(line, "Missing type.")

		return nil
	}

	if (!sawArray && len(entries) > 1) || len(entries) > 2 {
		ctx.report(line, "Too many types in type declaration.")

		ok = false
	}

	if !ok {
		return nil
	}

	info := &ast.TypeInfo{
		Name:    name,
		Line:    line,
		Entries: entries,
	}

	switch {
	case !sawArray:
		entry := entries[0]
		info.Kind = ast.TypeScalar
		info.IsPointer = entry.IsPointer
		info.Base = entry.Base
		info.Mutability = entry.Mutability
	case len(entries) == 1:
		entry := entries[0]
		info.IsPointer = entry.IsPointer
		info.Base = entry.Base
		info.Mutability = entry.Mutability

		if sizeSet {
			info.Kind = ast.TypeStaticArray
			info.Size = size
		} else {
			info.Kind = ast.TypeDynamicArray
		}
	default:
		// An array form with two entries is an associative array; the
		// dynamic/static flags do not apply.
		info.Kind = ast.TypeAssociativeArray
		info.IsPointer = entries[0].IsPointer
		info.Base = entries[0].Base
		info.Mutability = entries[0].Mutability
	}

	if outerMutability != ast.MutabilityNone {
		info.Mutability = outerMutability
	}

	return info
}

// looksNumeric reports whether text starts like a numeric literal without
// being a plain unsigned integer.
func looksNumeric(text string) bool {
	if text == "" {
		return false
	}

	first := text[0]

	return first == '-' || first == '+' || ('0' <= first && first <= '9') || first == '.'
}
