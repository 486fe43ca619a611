package qbsql

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Exotik850/quick-oxibooks-sql/parser"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Schema resolves entity and field names to their wire forms.
// *schema.Registry is the standard implementation.
type Schema interface {
	// HasEntity reports whether the schema defines the named entity.
	// Matching is exact; the target API's entity names are canonical.
	HasEntity(entity string) bool

	// ResolveField resolves a source field name on the named entity.
	ResolveField(entity, name string) (field.Resolved, error)
}

// bind validates stmt against the schema, resolves variables through r and
// renders every value, producing a serializable Query. A nil r rejects all
// variable references as unbound. Binding is pure: equal inputs yield equal
// queries.
func bind(stmt *parser.SelectStatement, sc Schema, r Resolver) (*Query, error) {
	entity := stmt.Entity.Name
	if !sc.HasEntity(entity) {
		return nil, NewUnknownEntityError(entity)
	}
	q := &Query{entity: entity}
	if stmt.Fields != nil {
		q.fields = make([]string, 0, len(stmt.Fields))
		seen := make(map[string]string, len(stmt.Fields)) // wire name -> source spelling
		for _, f := range stmt.Fields {
			res, err := sc.ResolveField(entity, f.Name)
			if err != nil {
				return nil, err
			}
			if prev, ok := seen[res.Wire]; ok {
				if prev == f.Name {
					return nil, NewDuplicateFieldError(entity, f.Name)
				}
				return nil, NewDuplicateFieldErrorWithWire(entity, f.Name, res.Wire)
			}
			seen[res.Wire] = f.Name
			q.fields = append(q.fields, res.Wire)
		}
	}
	for _, c := range stmt.Where {
		bc, err := bindCondition(entity, c, sc, r)
		if err != nil {
			return nil, err
		}
		q.conds = append(q.conds, bc)
	}
	for _, o := range stmt.OrderBy {
		res, err := sc.ResolveField(entity, o.Field.Name)
		if err != nil {
			return nil, err
		}
		q.orderBy = append(q.orderBy, Order{Field: res.Wire, Dir: o.Dir})
	}
	q.limit = cloneInt64(stmt.Limit)
	q.offset = cloneInt64(stmt.Offset)
	return q, nil
}

func bindCondition(entity string, c parser.Condition, sc Schema, r Resolver) (Condition, error) {
	res, err := sc.ResolveField(entity, c.Field.Name)
	if err != nil {
		return Condition{}, err
	}
	if !operatorLegal(res.Kind, c.Op) {
		return Condition{}, NewTypeMismatchError(entity, c.Field.Name, res.Kind, "operator "+strings.ToLower(c.Op.String()))
	}
	bc := Condition{Field: res.Wire, Op: c.Op, Bare: res.Bare}
	if c.Op == parser.OpIn {
		bc.Values, err = bindSequence(entity, c.Field.Name, res, c.Value, r)
		if err != nil {
			return Condition{}, err
		}
		return bc, nil
	}
	val, err := bindScalar(entity, c.Field.Name, res, c.Value, r)
	if err != nil {
		return Condition{}, err
	}
	bc.Values = []string{val}
	return bc, nil
}

// bindSequence renders the value side of an in condition. A tuple renders
// its literals; a variable resolves through the resolver's Sequence method.
// Zero resolved values fail with EmptyInListError because an empty list can
// never serialize.
func bindSequence(entity, name string, res field.Resolved, v parser.ValueSource, r Resolver) ([]string, error) {
	switch src := v.(type) {
	case parser.Tuple:
		if len(src.Items) == 0 {
			return nil, NewEmptyInListError(name)
		}
		vals := make([]string, 0, len(src.Items))
		for _, lit := range src.Items {
			s, err := renderLiteral(entity, name, res, lit)
			if err != nil {
				return nil, err
			}
			vals = append(vals, s)
		}
		return vals, nil
	case parser.Variable:
		if r == nil {
			return nil, NewUnboundVariableError(src.Name)
		}
		seq, err := r.Sequence(src.Name)
		if err != nil {
			return nil, err
		}
		if len(seq) == 0 {
			return nil, NewEmptyInListErrorWithVariable(name, src.Name)
		}
		vals := make([]string, 0, len(seq))
		for _, item := range seq {
			s, err := renderValue(entity, name, res, item)
			if err != nil {
				return nil, err
			}
			vals = append(vals, s)
		}
		return vals, nil
	case parser.Scalar:
		s, err := renderLiteral(entity, name, res, src.Lit)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	return nil, fmt.Errorf("qbsql: unsupported value source %T", v)
}

func bindScalar(entity, name string, res field.Resolved, v parser.ValueSource, r Resolver) (string, error) {
	switch src := v.(type) {
	case parser.Scalar:
		return renderLiteral(entity, name, res, src.Lit)
	case parser.Variable:
		if r == nil {
			return "", NewUnboundVariableError(src.Name)
		}
		val, err := r.Scalar(src.Name)
		if err != nil {
			return "", err
		}
		return renderValue(entity, name, res, val)
	case parser.Tuple:
		return "", NewTypeMismatchError(entity, name, res.Kind, "list")
	}
	return "", fmt.Errorf("qbsql: unsupported value source %T", v)
}

// operatorLegal reports whether op applies to fields of the given kind.
// String fields accept every operator; numeric and date fields order and
// list but never match patterns; bool and enum fields only equate and list.
func operatorLegal(k field.Kind, op parser.Operator) bool {
	switch k {
	case field.KindString:
		return true
	case field.KindNumeric, field.KindDate:
		return op != parser.OpLike
	case field.KindBool, field.KindEnum:
		return op == parser.OpEQ || op == parser.OpIn
	}
	return false
}

// renderLiteral coerces a parsed literal for the field's kind. Numeric
// literals coerce into string fields; everything else must match.
func renderLiteral(entity, name string, res field.Resolved, lit parser.Literal) (string, error) {
	switch res.Kind {
	case field.KindString:
		switch lit.Kind {
		case parser.LitString, parser.LitInt, parser.LitFloat:
			return lit.Display(), nil
		}
	case field.KindNumeric:
		switch lit.Kind {
		case parser.LitInt, parser.LitFloat:
			return lit.Display(), nil
		}
	case field.KindBool:
		if lit.Kind == parser.LitBool {
			return lit.Display(), nil
		}
	case field.KindDate:
		// Dates pass through as written; the target API does its own
		// calendar validation.
		if lit.Kind == parser.LitString {
			return lit.Str, nil
		}
	case field.KindEnum:
		if lit.Kind == parser.LitString {
			if !slices.Contains(res.Values, lit.Str) {
				return "", NewTypeMismatchError(entity, name, res.Kind, strconv.Quote(lit.Str))
			}
			return lit.Str, nil
		}
	}
	return "", NewTypeMismatchError(entity, name, res.Kind, litKindName(lit.Kind))
}

func litKindName(k parser.LitKind) string {
	switch k {
	case parser.LitString:
		return "string"
	case parser.LitInt:
		return "int"
	case parser.LitFloat:
		return "float"
	case parser.LitBool:
		return "bool"
	}
	return "unknown"
}

// renderValue coerces a resolver-supplied Go value for the field's kind.
// Integers and floats format with the shortest representation that
// round-trips, time.Time renders as a calendar date, and fmt.Stringer is
// accepted for string fields.
func renderValue(entity, name string, res field.Resolved, v any) (string, error) {
	switch res.Kind {
	case field.KindString:
		switch x := v.(type) {
		case string:
			return x, nil
		case fmt.Stringer:
			return x.String(), nil
		}
		if s, ok := formatNumber(v); ok {
			return s, nil
		}
	case field.KindNumeric:
		if s, ok := formatNumber(v); ok {
			return s, nil
		}
	case field.KindBool:
		if b, ok := v.(bool); ok {
			return strconv.FormatBool(b), nil
		}
	case field.KindDate:
		switch x := v.(type) {
		case string:
			return x, nil
		case time.Time:
			return x.Format("2006-01-02"), nil
		}
	case field.KindEnum:
		if s, ok := v.(string); ok {
			if !slices.Contains(res.Values, s) {
				return "", NewTypeMismatchError(entity, name, res.Kind, strconv.Quote(s))
			}
			return s, nil
		}
	}
	return "", NewTypeMismatchError(entity, name, res.Kind, describeValue(v))
}

// formatNumber renders any Go integer or float type, reporting false for
// everything else.
func formatNumber(v any) (string, bool) {
	switch x := v.(type) {
	case int:
		return strconv.FormatInt(int64(x), 10), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

// describeValue names a rejected value's shape for error text.
func describeValue(v any) string {
	if v == nil {
		return "nil"
	}
	if isSequence(v) {
		return "sequence"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case time.Time:
		return "time.Time"
	case float32, float64:
		return "float"
	}
	if _, ok := formatNumber(v); ok {
		return "int"
	}
	return fmt.Sprintf("%T", v)
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	n := *p
	return &n
}
