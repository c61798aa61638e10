package info

// Kind identifies the flavour of a type declaration
type Kind int

const (
	KindClass Kind = iota
	KindInterface
)

func (k Kind) String() string {
	if k == KindInterface {
		return "interface"
	}
	return "class"
}

// Type represents a named (or anonymous) type declaration
type Type struct {
	Name     string    // Simple name, empty for anonymous classes
	Kind     Kind      // Class or interface
	IsPublic bool      // Whether the type carries the public modifier
	Local    bool      // Declared inside executable code (method, initializer) or anonymous
	Fields   []*Field  // Field declarations in body order
	Types    []*Type   // Member types followed by local/anonymous types found in bodies
	Location *Location // Location of the type in the source code
}

// Field represents a single field declaration statement, which may bind several variables
type Field struct {
	TypeName    string      // Declared type as written, unresolved
	IsPublic    bool        // public modifier present
	IsStatic    bool        // static modifier present
	IsFinal     bool        // final modifier present
	Variables   []*Variable // One entry per declarator
	Location    *Location   // Location of the declaration
	InInterface bool        // Declared directly in an interface body
}

// Variable represents one declarator of a field declaration
type Variable struct {
	Name        string
	Initializer *Expression // nil when the declarator has no initializer
	Location    *Location
}

// ExpressionKind classifies an initializer expression
type ExpressionKind int

const (
	ExpressionOther ExpressionKind = iota
	ExpressionStringLiteral
	ExpressionTextBlock
	ExpressionMethodCall
	ExpressionBinary
	ExpressionReference
)

var expressionKindNames = map[ExpressionKind]string{
	ExpressionOther:         "expression",
	ExpressionStringLiteral: "string literal",
	ExpressionTextBlock:     "text block",
	ExpressionMethodCall:    "method call",
	ExpressionBinary:        "binary expression",
	ExpressionReference:     "reference",
}

func (k ExpressionKind) String() string {
	return expressionKindNames[k]
}

// Expression represents an initializer expression
type Expression struct {
	Kind  ExpressionKind
	Text  string // Source text of the expression
	Value string // Literal value without delimiters, only set for string literals
}

// Location represents a byte range within a source file
type Location struct {
	Start int
	End   int
	Line  int // 1-based line of Start
}
