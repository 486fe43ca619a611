package qbsql

import (
	"errors"
	"fmt"

	"github.com/Exotik850/quick-oxibooks-sql/lexer"
	"github.com/Exotik850/quick-oxibooks-sql/parser"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// LexError reports a tokenization failure with its source position.
type LexError = lexer.LexError

// ParseError reports a grammar violation with its source position.
type ParseError = parser.ParseError

// Standard sentinel errors for binding failures.
var (
	// ErrUnknownEntity is returned when a query names an entity the schema
	// does not define.
	ErrUnknownEntity = errors.New("qbsql: unknown entity")

	// ErrUnknownField is returned when a query names a field its entity
	// does not define.
	ErrUnknownField = errors.New("qbsql: unknown field")

	// ErrUnboundVariable is returned when a variable reference has no value
	// in the resolver.
	ErrUnboundVariable = errors.New("qbsql: unbound variable")

	// ErrTypeMismatch is returned when a bound value is not legal for the
	// declared kind of its field.
	ErrTypeMismatch = errors.New("qbsql: type mismatch")

	// ErrEmptyInList is returned when an in-list resolves to zero values.
	ErrEmptyInList = errors.New("qbsql: empty in-list")

	// ErrDuplicateField is returned when a select list requests the same
	// field more than once.
	ErrDuplicateField = errors.New("qbsql: duplicate field")
)

// IsLexError returns true if the error is a LexError.
func IsLexError(err error) bool {
	if err == nil {
		return false
	}
	var e *LexError
	return errors.As(err, &e)
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	if err == nil {
		return false
	}
	var e *ParseError
	return errors.As(err, &e)
}

// UnknownEntityError represents an error when a query names an entity the
// schema does not define.
type UnknownEntityError struct {
	entity string
}

// Error returns the error string.
func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("qbsql: unknown entity %q", e.entity)
}

// Is reports whether the target error matches UnknownEntityError.
// This allows errors.Is(err, ErrUnknownEntity) to return true.
func (e *UnknownEntityError) Is(err error) bool {
	return err == ErrUnknownEntity
}

// Entity returns the entity name that failed to resolve.
func (e *UnknownEntityError) Entity() string {
	return e.entity
}

// NewUnknownEntityError returns a new UnknownEntityError for the given
// entity name.
func NewUnknownEntityError(entity string) *UnknownEntityError {
	return &UnknownEntityError{entity: entity}
}

// IsUnknownEntity returns true if the error is an UnknownEntityError.
func IsUnknownEntity(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownEntityError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownEntity)
}

// UnknownFieldError represents an error when a query names a field its
// entity does not define.
type UnknownFieldError struct {
	entity string
	field  string
}

// Error returns the error string.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("qbsql: unknown field %q on %s", e.field, e.entity)
}

// Is reports whether the target error matches UnknownFieldError.
// This allows errors.Is(err, ErrUnknownField) to return true.
func (e *UnknownFieldError) Is(err error) bool {
	return err == ErrUnknownField
}

// Entity returns the entity the field was looked up on.
func (e *UnknownFieldError) Entity() string {
	return e.entity
}

// Field returns the field name that failed to resolve.
func (e *UnknownFieldError) Field() string {
	return e.field
}

// NewUnknownFieldError returns a new UnknownFieldError for the given entity
// and field names.
func NewUnknownFieldError(entity, field string) *UnknownFieldError {
	return &UnknownFieldError{entity: entity, field: field}
}

// IsUnknownField returns true if the error is an UnknownFieldError.
func IsUnknownField(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownFieldError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownField)
}

// UnboundVariableError represents an error when a variable reference has no
// value in the resolver.
type UnboundVariableError struct {
	name string
}

// Error returns the error string.
func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("qbsql: unbound variable %q", e.name)
}

// Is reports whether the target error matches UnboundVariableError.
// This allows errors.Is(err, ErrUnboundVariable) to return true.
func (e *UnboundVariableError) Is(err error) bool {
	return err == ErrUnboundVariable
}

// Name returns the variable name that failed to resolve.
func (e *UnboundVariableError) Name() string {
	return e.name
}

// NewUnboundVariableError returns a new UnboundVariableError for the given
// variable name.
func NewUnboundVariableError(name string) *UnboundVariableError {
	return &UnboundVariableError{name: name}
}

// IsUnboundVariable returns true if the error is an UnboundVariableError.
func IsUnboundVariable(err error) bool {
	if err == nil {
		return false
	}
	var e *UnboundVariableError
	return errors.As(err, &e) || errors.Is(err, ErrUnboundVariable)
}

// TypeMismatchError represents an error when a bound value is not legal for
// the declared kind of its field.
type TypeMismatchError struct {
	entity string
	field  string
	want   field.Kind
	got    string
}

// Error returns the error string.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("qbsql: type mismatch for %s.%s: want %s, got %s", e.entity, e.field, e.want, e.got)
}

// Is reports whether the target error matches TypeMismatchError.
// This allows errors.Is(err, ErrTypeMismatch) to return true.
func (e *TypeMismatchError) Is(err error) bool {
	return err == ErrTypeMismatch
}

// Entity returns the entity the field belongs to.
func (e *TypeMismatchError) Entity() string {
	return e.entity
}

// Field returns the field whose value was illegal.
func (e *TypeMismatchError) Field() string {
	return e.field
}

// Want returns the declared kind of the field.
func (e *TypeMismatchError) Want() field.Kind {
	return e.want
}

// Got returns a description of the value that was rejected.
func (e *TypeMismatchError) Got() string {
	return e.got
}

// NewTypeMismatchError returns a new TypeMismatchError for the given field
// and the value description that was rejected.
func NewTypeMismatchError(entity, fieldName string, want field.Kind, got string) *TypeMismatchError {
	return &TypeMismatchError{entity: entity, field: fieldName, want: want, got: got}
}

// IsTypeMismatch returns true if the error is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *TypeMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrTypeMismatch)
}

// EmptyInListError represents an error when an in-list resolves to zero
// values. Serializing an empty list is never valid, so binding fails
// instead.
type EmptyInListError struct {
	field    string
	variable string // Optional: the variable the list was bound from
}

// Error returns the error string.
func (e *EmptyInListError) Error() string {
	if e.variable != "" {
		return fmt.Sprintf("qbsql: empty in-list for field %q (variable %q)", e.field, e.variable)
	}
	return fmt.Sprintf("qbsql: empty in-list for field %q", e.field)
}

// Is reports whether the target error matches EmptyInListError.
// This allows errors.Is(err, ErrEmptyInList) to return true.
func (e *EmptyInListError) Is(err error) bool {
	return err == ErrEmptyInList
}

// Field returns the field whose in-list was empty.
func (e *EmptyInListError) Field() string {
	return e.field
}

// Variable returns the variable the list was bound from, if any.
func (e *EmptyInListError) Variable() string {
	return e.variable
}

// NewEmptyInListError returns a new EmptyInListError for the given field.
func NewEmptyInListError(fieldName string) *EmptyInListError {
	return &EmptyInListError{field: fieldName}
}

// NewEmptyInListErrorWithVariable returns a new EmptyInListError with the
// variable the list was bound from.
func NewEmptyInListErrorWithVariable(fieldName, variable string) *EmptyInListError {
	return &EmptyInListError{field: fieldName, variable: variable}
}

// IsEmptyInList returns true if the error is an EmptyInListError.
func IsEmptyInList(err error) bool {
	if err == nil {
		return false
	}
	var e *EmptyInListError
	return errors.As(err, &e) || errors.Is(err, ErrEmptyInList)
}

// DuplicateFieldError represents an error when a select list requests the
// same field more than once.
type DuplicateFieldError struct {
	entity string
	field  string
	wire   string // Optional: the shared wire name when two spellings collide
}

// Error returns the error string.
func (e *DuplicateFieldError) Error() string {
	if e.wire != "" {
		return fmt.Sprintf("qbsql: duplicate select field %q on %s (wire name %s)", e.field, e.entity, e.wire)
	}
	return fmt.Sprintf("qbsql: duplicate select field %q on %s", e.field, e.entity)
}

// Is reports whether the target error matches DuplicateFieldError.
// This allows errors.Is(err, ErrDuplicateField) to return true.
func (e *DuplicateFieldError) Is(err error) bool {
	return err == ErrDuplicateField
}

// Entity returns the entity being selected from.
func (e *DuplicateFieldError) Entity() string {
	return e.entity
}

// Field returns the duplicated field name.
func (e *DuplicateFieldError) Field() string {
	return e.field
}

// Wire returns the shared wire name, if the duplicate came from two
// spellings resolving to the same wire field.
func (e *DuplicateFieldError) Wire() string {
	return e.wire
}

// NewDuplicateFieldError returns a new DuplicateFieldError for the given
// entity and field names.
func NewDuplicateFieldError(entity, fieldName string) *DuplicateFieldError {
	return &DuplicateFieldError{entity: entity, field: fieldName}
}

// NewDuplicateFieldErrorWithWire returns a new DuplicateFieldError with the
// wire name two select fields resolved to.
func NewDuplicateFieldErrorWithWire(entity, fieldName, wire string) *DuplicateFieldError {
	return &DuplicateFieldError{entity: entity, field: fieldName, wire: wire}
}

// IsDuplicateField returns true if the error is a DuplicateFieldError.
func IsDuplicateField(err error) bool {
	if err == nil {
		return false
	}
	var e *DuplicateFieldError
	return errors.As(err, &e) || errors.Is(err, ErrDuplicateField)
}

// ConfigError represents an invalid compiler or generator configuration.
type ConfigError struct {
	msg  string
	wrap error
}

// Error returns the error string.
func (e ConfigError) Error() string {
	return fmt.Sprintf("qbsql: invalid configuration: %s", e.msg)
}

// Unwrap returns the underlying error.
func (e ConfigError) Unwrap() error {
	return e.wrap
}

// NewConfigError returns a new ConfigError with the given message.
func NewConfigError(msg string, wrap error) error {
	return ConfigError{msg: msg, wrap: wrap}
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e ConfigError
	return errors.As(err, &e)
}

// ExecError wraps a transport failure with the entity being queried.
type ExecError struct {
	Entity string // Entity type being queried
	Err    error  // Underlying transport error
}

// Error returns the error string.
func (e *ExecError) Error() string {
	return fmt.Sprintf("qbsql: executing %s query: %v", e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}

// NewExecError returns a new ExecError.
func NewExecError(entity string, err error) *ExecError {
	return &ExecError{Entity: entity, Err: err}
}

// IsExecError returns true if the error is an ExecError.
func IsExecError(err error) bool {
	if err == nil {
		return false
	}
	var e *ExecError
	return errors.As(err, &e)
}
