package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// catalogFile is the YAML shape of an external entity catalog:
//
//	entities:
//	  - name: Customer
//	    fields:
//	      - name: display_name
//	        kind: string
//	      - name: active
//	        kind: bool
//	        bare: true
//	      - name: email_status
//	        kind: enum
//	        values: [EmailSent, NotSet]
type catalogFile struct {
	Entities []entitySpec `yaml:"entities"`
}

type entitySpec struct {
	Name   string      `yaml:"name"`
	Fields []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	Wire   string   `yaml:"wire,omitempty"`
	Bare   bool     `yaml:"bare,omitempty"`
	Values []string `yaml:"values,omitempty"`
}

// Load reads a YAML entity catalog into a Registry.
func Load(r io.Reader) (*Registry, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("qbsql: parse schema catalog: %w", err)
	}
	if len(file.Entities) == 0 {
		return nil, fmt.Errorf("qbsql: schema catalog declares no entities")
	}
	reg := MustRegistry()
	for _, es := range file.Entities {
		e, err := buildEntity(es)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(e); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// LoadFile reads a YAML entity catalog from disk.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("qbsql: open schema catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func buildEntity(es entitySpec) (*Entity, error) {
	builders := make([]field.Builder, 0, len(es.Fields))
	for _, fs := range es.Fields {
		kind, err := field.ParseKind(fs.Kind)
		if err != nil {
			return nil, fmt.Errorf("qbsql: entity %s field %q: %w", es.Name, fs.Name, err)
		}
		if fs.Bare && kind != field.KindBool {
			return nil, fmt.Errorf("qbsql: entity %s field %q: bare applies to bool fields only", es.Name, fs.Name)
		}
		builders = append(builders, specBuilder{fs: fs, kind: kind})
	}
	return NewEntity(es.Name, builders...)
}

// specBuilder adapts a parsed fieldSpec to the field.Builder interface so
// catalog files and hand-written builders assemble entities the same way.
type specBuilder struct {
	fs   fieldSpec
	kind field.Kind
}

// Descriptor implements field.Builder.
func (b specBuilder) Descriptor() *field.Descriptor {
	var fb field.Builder
	switch b.kind {
	case field.KindNumeric:
		fb = field.Numeric(b.fs.Name)
	case field.KindBool:
		bb := field.Bool(b.fs.Name)
		if b.fs.Bare {
			bb = bb.Bare()
		}
		fb = bb
	case field.KindDate:
		fb = field.Date(b.fs.Name)
	case field.KindEnum:
		fb = field.Enum(b.fs.Name).Values(b.fs.Values...)
	default:
		fb = field.String(b.fs.Name)
	}
	d := fb.Descriptor()
	d.Wire = b.fs.Wire
	return d
}
