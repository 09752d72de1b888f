package ast

import "fmt"

// TypeMutability is the mutability attribute of a type or type entry.
type TypeMutability int

const (
	MutabilityNone TypeMutability = iota
	MutabilityImmutable
	MutabilityConst
	MutabilityMut
)

// String returns the source keyword for the mutability.
func (m TypeMutability) String() string {
	switch m {
	case MutabilityImmutable:
		return "immutable"
	case MutabilityConst:
		return "const"
	case MutabilityMut:
		return "mut"
	default:
		return ""
	}
}

// TypeKind discriminates the composite forms a type expression can take.
type TypeKind int

const (
	TypeScalar TypeKind = iota
	TypeDynamicArray
	TypeStaticArray
	TypeAssociativeArray
)

// String returns a readable name for the kind.
func (k TypeKind) String() string {
	switch k {
	case TypeScalar:
		return "scalar"
	case TypeDynamicArray:
		return "dynamic array"
	case TypeStaticArray:
		return "static array"
	case TypeAssociativeArray:
		return "associative array"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TypeEntry is one base type of a composite type expression, with its own
// pointer prefix and mutability.
type TypeEntry struct {
	IsPointer  bool
	Base       string
	Mutability TypeMutability
}

// TypeInfo is a fully parsed type expression attached to a declaration.
// For associative arrays Entries holds exactly two entries, the value type
// first and the key type second.
type TypeInfo struct {
	Name       string
	Line       int
	Kind       TypeKind
	IsPointer  bool
	Base       string
	Size       uint64
	Mutability TypeMutability
	Entries    []TypeEntry
}

// Void is the implicit return type of functions declared without one.
func Void(line int) *TypeInfo {
	return &TypeInfo{Line: line, Kind: TypeScalar, Base: "void"}
}

// String renders the type in a compact diagnostic-friendly form.
func (t *TypeInfo) String() string {
	prefix := ""
	if t.IsPointer {
		prefix = "ptr:"
	}

	switch t.Kind {
	case TypeDynamicArray:
		return fmt.Sprintf("%s%s[]", prefix, t.Base)
	case TypeStaticArray:
		return fmt.Sprintf("%s%s[%d]", prefix, t.Base, t.Size)
	case TypeAssociativeArray:
		if len(t.Entries) == 2 {
			return fmt.Sprintf("%s%s[%s]", prefix, t.Entries[0].Base, t.Entries[1].Base)
		}

		return prefix + t.Base + "[?]"
	default:
		return prefix + t.Base
	}
}
