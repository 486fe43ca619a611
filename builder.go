package qbsql

import (
	"fmt"

	"github.com/Exotik850/quick-oxibooks-sql/parser"
)

// Builder assembles a query programmatically. It shares the binder and
// serializer with compiled source text, so schema validation, value
// rendering and quoting behave identically. Methods accumulate clauses and
// defer errors; Build reports the first one.
//
//	q, err := qbsql.NewBuilder("Customer").
//		Select("display_name", "balance").
//		Where("balance", qbsql.OpGTE, 1000).
//		WhereIn("id", 1, 2, 3).
//		OrderBy("display_name", qbsql.Asc).
//		Limit(10).
//		Build(qbsql.WithSchema(reg))
type Builder struct {
	stmt parser.SelectStatement
	vals Vars
	err  error
}

// NewBuilder starts a query against the named entity. Without a Select call
// the query selects *.
func NewBuilder(entity string) *Builder {
	b := &Builder{vals: Vars{}}
	if entity == "" {
		return b.fail(NewConfigError("entity cannot be empty", nil))
	}
	b.stmt.Entity = parser.Ident{Name: entity}
	return b
}

// Select adds fields to the select list by their source names.
func (b *Builder) Select(fields ...string) *Builder {
	for _, f := range fields {
		b.stmt.Fields = append(b.stmt.Fields, parser.Ident{Name: f})
	}
	return b
}

// Where adds a condition comparing field against a Go value. The value is
// rendered by the binder under the field's declared kind, so ints, floats,
// strings, bools and time.Time all work where the schema allows them.
func (b *Builder) Where(field string, op Operator, value any) *Builder {
	if op == OpIn {
		if seq, ok := asSequence(value); ok && len(seq) == 0 {
			return b.fail(NewEmptyInListError(field))
		}
	}
	return b.where(field, op, b.bindValue(value))
}

// WhereIn adds an in condition over the given values. At least one value is
// required.
func (b *Builder) WhereIn(field string, values ...any) *Builder {
	if len(values) == 0 {
		return b.fail(NewEmptyInListError(field))
	}
	return b.where(field, OpIn, b.bindValue(values))
}

// WhereVar adds a condition whose value resolves at Build time from the
// resolver supplied in the options, under the given variable name.
func (b *Builder) WhereVar(field string, op Operator, name string) *Builder {
	return b.where(field, op, parser.Variable{Name: name})
}

// OrderBy adds a sort key.
func (b *Builder) OrderBy(field string, dir Direction) *Builder {
	b.stmt.OrderBy = append(b.stmt.OrderBy, parser.OrderItem{
		Field: parser.Ident{Name: field},
		Dir:   dir,
	})
	return b
}

// Limit caps the result count.
func (b *Builder) Limit(n int64) *Builder {
	if n < 0 {
		return b.fail(NewConfigError("limit cannot be negative", nil))
	}
	b.stmt.Limit = &n
	return b
}

// Offset skips the first n results.
func (b *Builder) Offset(n int64) *Builder {
	if n < 0 {
		return b.fail(NewConfigError("offset cannot be negative", nil))
	}
	b.stmt.Offset = &n
	return b
}

// Build binds the accumulated query against the schema in opts, reporting
// any deferred construction error first.
func (b *Builder) Build(opts ...Option) (*Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	cfg := &Config{}
	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}
	if cfg.Schema == nil {
		return nil, NewConfigError("no schema configured", nil)
	}
	r := cfg.Resolver
	if len(b.vals) > 0 {
		r = chainResolver{first: b.vals, second: cfg.Resolver}
	}
	stmt := b.stmt
	return bind(&stmt, cfg.Schema, r)
}

// BuildString builds and serializes in one step.
func (b *Builder) BuildString(opts ...Option) (string, error) {
	q, err := b.Build(opts...)
	if err != nil {
		return "", err
	}
	return q.String(), nil
}

func (b *Builder) where(field string, op Operator, v parser.ValueSource) *Builder {
	b.stmt.Where = append(b.stmt.Where, parser.Condition{
		Field: parser.Ident{Name: field},
		Op:    op,
		Value: v,
	})
	return b
}

// bindValue stores a Go value under a synthetic variable name and returns a
// reference to it. Synthetic names start with $, which the grammar cannot
// produce, so they never collide with Build-time variables.
func (b *Builder) bindValue(v any) parser.Variable {
	name := fmt.Sprintf("$%d", len(b.vals))
	b.vals[name] = v
	return parser.Variable{Name: name}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// chainResolver consults the builder's own bindings before the caller's
// resolver. Unbound lookups fall through; other errors stop the chain.
type chainResolver struct {
	first  Resolver
	second Resolver
}

func (r chainResolver) Scalar(name string) (any, error) {
	v, err := r.first.Scalar(name)
	if err == nil {
		return v, nil
	}
	if r.second != nil && IsUnboundVariable(err) {
		return r.second.Scalar(name)
	}
	return nil, err
}

func (r chainResolver) Sequence(name string) ([]any, error) {
	v, err := r.first.Sequence(name)
	if err == nil {
		return v, nil
	}
	if r.second != nil && IsUnboundVariable(err) {
		return r.second.Sequence(name)
	}
	return nil, err
}
