package qbsql

import "reflect"

// Resolver supplies values for variable references at bind time. A variable
// under the in operator resolves through Sequence, any other position
// through Scalar. Implementations return an UnboundVariableError (or an
// error matching ErrUnboundVariable) for names they do not bind.
type Resolver interface {
	// Scalar returns the value bound to name for single-value use.
	Scalar(name string) (any, error)

	// Sequence returns the values bound to name for in-list use.
	Sequence(name string) ([]any, error)
}

// Vars is the map-backed Resolver for ad-hoc binding. A slice or array value
// is a sequence; any other value is a scalar. A scalar bound under the in
// operator becomes a one-element sequence.
type Vars map[string]any

var _ Resolver = Vars(nil)

// Scalar implements Resolver. Sequence values are returned as-is; the binder
// rejects them in scalar position.
func (v Vars) Scalar(name string) (any, error) {
	val, ok := v[name]
	if !ok {
		return nil, NewUnboundVariableError(name)
	}
	return val, nil
}

// Sequence implements Resolver.
func (v Vars) Sequence(name string) ([]any, error) {
	val, ok := v[name]
	if !ok {
		return nil, NewUnboundVariableError(name)
	}
	if seq, ok := asSequence(val); ok {
		return seq, nil
	}
	return []any{val}, nil
}

// asSequence expands a slice or array value into []any. Strings and nil are
// never sequences.
func asSequence(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if seq, ok := v.([]any); ok {
		out := make([]any, len(seq))
		copy(out, seq)
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// isSequence reports whether a resolved value is slice- or array-like, which
// is illegal in scalar position.
func isSequence(v any) bool {
	_, ok := asSequence(v)
	return ok
}
