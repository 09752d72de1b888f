package parser

import "github.com/royal-lang/rl/internal/lexer"

// Production tags the grammar production a statement's leading lexemes
// select. The classifier looks at the first lexeme, or the first two or
// three for multi-word keys.
type Production int

const (
	ProductionUnknown Production = iota
	ProductionEmpty
	ProductionModule
	ProductionImport
	ProductionInclude
	ProductionInternal
	ProductionAlias
	ProductionThis
	ProductionStaticThis
	ProductionFunction
	ProductionStruct
	ProductionInterface
	ProductionTemplate
	ProductionTraits
	ProductionStaticIf
	ProductionStaticElse
	ProductionVariable
	ProductionEnum
	ProductionAttribute
	ProductionReturn
	ProductionIf
	ProductionElse
	ProductionSwitch
	ProductionFor
	ProductionForeach
	ProductionWhile
	ProductionDo
)

var productionNames = map[Production]string{
	ProductionUnknown:    "UNKNOWN",
	ProductionEmpty:      "EMPTY",
	ProductionModule:     "MODULE",
	ProductionImport:     "IMPORT",
	ProductionInclude:    "INCLUDE",
	ProductionInternal:   "INTERNAL",
	ProductionAlias:      "ALIAS",
	ProductionThis:       "THIS",
	ProductionStaticThis: "STATIC_THIS",
	ProductionFunction:   "FUNCTION",
	ProductionStruct:     "STRUCT",
	ProductionInterface:  "INTERFACE",
	ProductionTemplate:   "TEMPLATE",
	ProductionTraits:     "TRAITS",
	ProductionStaticIf:   "STATIC_IF",
	ProductionStaticElse: "STATIC_ELSE",
	ProductionVariable:   "VARIABLE",
	ProductionEnum:       "ENUM",
	ProductionAttribute:  "ATTRIBUTE",
	ProductionReturn:     "RETURN",
	ProductionIf:         "IF",
	ProductionElse:       "ELSE",
	ProductionSwitch:     "SWITCH",
	ProductionFor:        "FOR",
	ProductionForeach:    "FOREACH",
	ProductionWhile:      "WHILE",
	ProductionDo:         "DO",
}

// String returns the production tag name.
func (p Production) String() string {
	if name, ok := productionNames[p]; ok {
		return name
	}

	return "UNKNOWN"
}

// singleWordProductions maps a leading keyword to its production.
var singleWordProductions = map[string]Production{
	"module":    ProductionModule,
	"import":    ProductionImport,
	"include":   ProductionInclude,
	"internal":  ProductionInternal,
	"alias":     ProductionAlias,
	"this":      ProductionThis,
	"fn":        ProductionFunction,
	"struct":    ProductionStruct,
	"interface": ProductionInterface,
	"template":  ProductionTemplate,
	"traits":    ProductionTraits,
	"var":       ProductionVariable,
	"enum":      ProductionEnum,
	"return":    ProductionReturn,
	"if":        ProductionIf,
	"else":      ProductionElse,
	"switch":    ProductionSwitch,
	"for":       ProductionFor,
	"foreach":   ProductionForeach,
	"while":     ProductionWhile,
	"do":        ProductionDo,
}

// doubleWordProductions maps the concatenation of the first two lexemes.
var doubleWordProductions = map[string]Production{
	"staticthis": ProductionStaticThis,
	"staticif":   ProductionStaticIf,
	"staticelse": ProductionStaticElse,
	"refstruct":  ProductionStruct,
}

// attributeLeads are the leading lexemes that mark an attribute statement.
var attributeLeads = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"package":   true,
	"static":    true,
	"immutable": true,
	"const":     true,
	"mut":       true,
	"@":         true,
}

// Classify maps the leading lexemes of a statement to a production tag.
func Classify(statement []lexer.Lexeme) Production {
	if len(statement) == 0 {
		return ProductionEmpty
	}

	if len(statement) >= 3 &&
		statement[0].Text == "shared" &&
		statement[1].Text == "static" &&
		statement[2].Text == "this" {
		return ProductionStaticThis
	}

	if len(statement) >= 2 {
		if production, ok := doubleWordProductions[statement[0].Text+statement[1].Text]; ok {
			return production
		}
	}

	if production, ok := singleWordProductions[statement[0].Text]; ok {
		return production
	}

	if attributeLeads[statement[0].Text] {
		return ProductionAttribute
	}

	return ProductionUnknown
}
