package qbsql

import (
	"context"

	"github.com/Exotik850/quick-oxibooks-sql/parser"
)

// Operator is re-exported so callers can build and inspect conditions
// without importing the parser package.
type Operator = parser.Operator

// Condition operators.
const (
	OpEQ   = parser.OpEQ
	OpLike = parser.OpLike
	OpGT   = parser.OpGT
	OpLT   = parser.OpLT
	OpGTE  = parser.OpGTE
	OpLTE  = parser.OpLTE
	OpIn   = parser.OpIn
)

// Direction is re-exported for order-by construction and inspection.
type Direction = parser.Direction

// Sort directions.
const (
	Asc  = parser.Asc
	Desc = parser.Desc
)

// Condition is one bound predicate of a query's where clause. Values are
// rendered but unquoted; the serializer quotes them unless Bare is set.
// Scalar operators carry exactly one value, in carries one or more.
type Condition struct {
	Field  string
	Op     Operator
	Values []string
	Bare   bool
}

// Order is one bound sort key.
type Order struct {
	Field string
	Dir   Direction
}

// Query is a bound query: entity and fields resolved to wire names, values
// validated and rendered. The zero value is not usable; queries come from
// Compile, a Compiler, or a Builder.
type Query struct {
	entity  string
	fields  []string
	conds   []Condition
	orderBy []Order
	limit   *int64
	offset  *int64
}

// Entity returns the entity name the query selects from.
func (q *Query) Entity() string {
	return q.entity
}

// Fields returns the selected field wire names in source order, or nil when
// the query selects *.
func (q *Query) Fields() []string {
	if q.fields == nil {
		return nil
	}
	out := make([]string, len(q.fields))
	copy(out, q.fields)
	return out
}

// Conditions returns the bound where predicates in source order.
func (q *Query) Conditions() []Condition {
	out := make([]Condition, len(q.conds))
	for i, c := range q.conds {
		vals := make([]string, len(c.Values))
		copy(vals, c.Values)
		c.Values = vals
		out[i] = c
	}
	return out
}

// OrderBy returns the bound sort keys in source order.
func (q *Query) OrderBy() []Order {
	out := make([]Order, len(q.orderBy))
	copy(out, q.orderBy)
	return out
}

// Limit returns the limit value and whether one was set.
func (q *Query) Limit() (int64, bool) {
	if q.limit == nil {
		return 0, false
	}
	return *q.limit, true
}

// Offset returns the offset value and whether one was set.
func (q *Query) Offset() (int64, bool) {
	if q.offset == nil {
		return 0, false
	}
	return *q.offset, true
}

// Transport submits a serialized query to a backing API and returns decoded
// rows. Implementations own authentication, paging and response decoding;
// the compiler hands over the query string and entity type unchanged.
type Transport interface {
	Execute(ctx context.Context, query, entity string) ([]map[string]any, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, query, entity string) ([]map[string]any, error)

var _ Transport = TransportFunc(nil)

// Execute calls f(ctx, query, entity).
func (f TransportFunc) Execute(ctx context.Context, query, entity string) ([]map[string]any, error) {
	return f(ctx, query, entity)
}

// Execute serializes the query and submits it over t, returning the rows as
// the transport decoded them. Transport failures are wrapped in an ExecError
// carrying the entity; there are no retries and no interpretation of the
// results.
func (q *Query) Execute(ctx context.Context, t Transport) ([]map[string]any, error) {
	if t == nil {
		return nil, NewConfigError("nil transport", nil)
	}
	rows, err := t.Execute(ctx, q.String(), q.entity)
	if err != nil {
		return nil, NewExecError(q.entity, err)
	}
	return rows, nil
}
