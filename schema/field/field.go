// Package field provides fluent builders for declaring entity fields.
//
// Field names follow the query language's convention (snake_case); the wire
// name the remote API expects is derived automatically:
//
//	field.String("display_name")   // wire: DisplayName
//	field.Numeric("balance")       // wire: Balance
//	field.Bool("active")           // wire: Active
//	field.Date("txn_date")         // wire: TxnDate
//	field.Enum("email_status").Values("EmailSent", "NotSet")
//
// A field's kind governs which operators are legal on it and how its values
// are quoted in the serialized query string.
package field

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
)

// Kind is a field's declared value category.
type Kind uint8

const (
	KindString Kind = iota
	KindNumeric
	KindBool
	KindDate
	KindEnum
)

// String returns the kind name used in diagnostics and catalog files.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumeric:
		return "numeric"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindEnum:
		return "enum"
	}
	return "invalid"
}

// ParseKind maps a catalog kind name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "string":
		return KindString, nil
	case "numeric", "number", "float", "int":
		return KindNumeric, nil
	case "bool", "boolean":
		return KindBool, nil
	case "date", "datetime":
		return KindDate, nil
	case "enum":
		return KindEnum, nil
	}
	return 0, fmt.Errorf("qbsql: unknown field kind %q", s)
}

// Descriptor is the built description of one field. Builders produce it; the
// schema registry owns it afterwards and treats it as read-only.
type Descriptor struct {
	Name   string   // query-language name, e.g. "display_name"
	Wire   string   // explicit wire name; empty derives from Name
	Kind   Kind
	Bare   bool     // render values unquoted (boolean override)
	Values []string // legal values for KindEnum
	Err    error    // builder error, surfaced when the entity is assembled
}

// WireName returns the wire name the remote API expects. Unless overridden,
// each dot-separated segment of the name is camelized independently, so
// "meta_data.create_time" becomes "MetaData.CreateTime".
func (d *Descriptor) WireName() string {
	if d.Wire != "" {
		return d.Wire
	}
	parts := strings.Split(d.Name, ".")
	for i, p := range parts {
		parts[i] = inflect.Camelize(p)
	}
	return strings.Join(parts, ".")
}

// Resolved is the binder's view of a resolved field reference.
type Resolved struct {
	Wire   string
	Kind   Kind
	Bare   bool
	Values []string
}

// Resolve returns the binder's view of the field.
func (d *Descriptor) Resolve() Resolved {
	return Resolved{Wire: d.WireName(), Kind: d.Kind, Bare: d.Bare, Values: d.Values}
}

// Builder produces a field descriptor. All field builders implement it.
type Builder interface {
	Descriptor() *Descriptor
}

type stringBuilder struct{ desc Descriptor }

// String declares a string-kind field named name.
func String(name string) *stringBuilder {
	return &stringBuilder{desc: newDesc(name, KindString)}
}

// Wire overrides the derived wire name.
func (b *stringBuilder) Wire(w string) *stringBuilder {
	b.desc.Wire = w
	return b
}

// Descriptor implements Builder.
func (b *stringBuilder) Descriptor() *Descriptor {
	d := b.desc
	return &d
}

type numericBuilder struct{ desc Descriptor }

// Numeric declares a numeric-kind field named name. Integer and floating
// literals both bind to it.
func Numeric(name string) *numericBuilder {
	return &numericBuilder{desc: newDesc(name, KindNumeric)}
}

// Wire overrides the derived wire name.
func (b *numericBuilder) Wire(w string) *numericBuilder {
	b.desc.Wire = w
	return b
}

// Descriptor implements Builder.
func (b *numericBuilder) Descriptor() *Descriptor {
	d := b.desc
	return &d
}

type boolBuilder struct{ desc Descriptor }

// Bool declares a boolean-kind field named name.
func Bool(name string) *boolBuilder {
	return &boolBuilder{desc: newDesc(name, KindBool)}
}

// Wire overrides the derived wire name.
func (b *boolBuilder) Wire(w string) *boolBuilder {
	b.desc.Wire = w
	return b
}

// Bare renders the field's values without quotes. The remote API quotes
// everything it documents; this is the per-field escape hatch for endpoints
// that reject quoted booleans.
func (b *boolBuilder) Bare() *boolBuilder {
	b.desc.Bare = true
	return b
}

// Descriptor implements Builder.
func (b *boolBuilder) Descriptor() *Descriptor {
	d := b.desc
	return &d
}

type dateBuilder struct{ desc Descriptor }

// Date declares a date-kind field named name. Values are passed through as
// written; time.Time variables render as 2006-01-02.
func Date(name string) *dateBuilder {
	return &dateBuilder{desc: newDesc(name, KindDate)}
}

// Wire overrides the derived wire name.
func (b *dateBuilder) Wire(w string) *dateBuilder {
	b.desc.Wire = w
	return b
}

// Descriptor implements Builder.
func (b *dateBuilder) Descriptor() *Descriptor {
	d := b.desc
	return &d
}

type enumBuilder struct{ desc Descriptor }

// Enum declares an enumerated field named name. Declare the legal values
// with Values; binding rejects anything else.
func Enum(name string) *enumBuilder {
	return &enumBuilder{desc: newDesc(name, KindEnum)}
}

// Wire overrides the derived wire name.
func (b *enumBuilder) Wire(w string) *enumBuilder {
	b.desc.Wire = w
	return b
}

// Values declares the legal values, in wire spelling.
func (b *enumBuilder) Values(vs ...string) *enumBuilder {
	b.desc.Values = append(b.desc.Values, vs...)
	return b
}

// Descriptor implements Builder.
func (b *enumBuilder) Descriptor() *Descriptor {
	d := b.desc
	if len(d.Values) == 0 && d.Err == nil {
		d.Err = fmt.Errorf("qbsql: enum field %q declares no values", d.Name)
	}
	return &d
}

func newDesc(name string, kind Kind) Descriptor {
	d := Descriptor{Name: name, Kind: kind}
	if name == "" {
		d.Err = errors.New("qbsql: field name cannot be empty")
	}
	return d
}
