// Package parser builds the unbound query AST from source text. It validates
// structure only (clause order, list shapes, literal forms); field and entity
// names are accepted syntactically and resolved later against a schema.
package parser

import (
	"strconv"

	"github.com/Exotik850/quick-oxibooks-sql/token"
)

// Operator is a condition operator. String returns the wire form: symbolic
// operators render as written, word operators render uppercase.
type Operator int

const (
	OpEQ Operator = iota
	OpLike
	OpGT
	OpLT
	OpGTE
	OpLTE
	OpIn
)

func (op Operator) String() string {
	switch op {
	case OpEQ:
		return "="
	case OpLike:
		return "LIKE"
	case OpGT:
		return ">"
	case OpLT:
		return "<"
	case OpGTE:
		return ">="
	case OpLTE:
		return "<="
	case OpIn:
		return "IN"
	}
	return "?"
}

// Direction is a sort direction. The zero value is ascending.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Ident is a field or entity name as written in the source.
type Ident struct {
	Name string
	Pos  token.Position
}

// LitKind discriminates literal values.
type LitKind int

const (
	LitString LitKind = iota
	LitInt
	LitFloat
	LitBool
)

// Literal is a parsed literal value. Exactly one of Str, Int, Float, Bool is
// meaningful, selected by Kind.
type Literal struct {
	Kind  LitKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Pos   token.Position
}

// Display returns the literal's canonical text, the form the serializer
// would emit before quoting. Floats use the shortest representation that
// round-trips, so 1000.0 displays as 1000.
func (l Literal) Display() string {
	switch l.Kind {
	case LitString:
		return l.Str
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitFloat:
		return strconv.FormatFloat(l.Float, 'f', -1, 64)
	case LitBool:
		return strconv.FormatBool(l.Bool)
	}
	return ""
}

// ValueSource is the value side of a condition before binding: a literal, an
// external variable reference, or a parenthesized literal list.
type ValueSource interface {
	valueSource()
}

// Scalar is a single literal value.
type Scalar struct {
	Lit Literal
}

// Variable is a reference to an externally supplied value. Under the in
// operator it resolves to a sequence, otherwise to a single value.
type Variable struct {
	Name string
	Pos  token.Position
}

// Tuple is a parenthesized literal list, valid only under the in operator.
type Tuple struct {
	Items []Literal
	Pos   token.Position
}

func (Scalar) valueSource()   {}
func (Variable) valueSource() {}
func (Tuple) valueSource()    {}

// Condition is one predicate of the where clause.
type Condition struct {
	Field Ident
	Op    Operator
	Value ValueSource
}

// OrderItem is one sort key of the order by clause.
type OrderItem struct {
	Field Ident
	Dir   Direction
}

// SelectStatement is the unbound query. A nil Fields slice means the source
// selected *. Limit and Offset are nil when the clause was omitted.
type SelectStatement struct {
	Entity  Ident
	Fields  []Ident
	Where   []Condition
	OrderBy []OrderItem
	Limit   *int64
	Offset  *int64
}
