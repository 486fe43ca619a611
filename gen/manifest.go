package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultManifest is the conventional manifest file name.
const DefaultManifest = "qbsql.gen.yaml"

// Manifest is the YAML build manifest:
//
//	package: queries
//	schema: catalog.yaml        # omit to use the built-in catalog
//	templates:
//	  - name: customers_over
//	    query: select display_name, balance from Customer where balance > min
//	    vars:
//	      - name: min
//	        type: float
type Manifest struct {
	Package   string     `yaml:"package"`
	Schema    string     `yaml:"schema,omitempty"`
	Templates []Template `yaml:"templates"`

	path string // manifest location on disk, anchors the schema path
}

// Template is one fixed query template.
type Template struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
	Vars  []Var  `yaml:"vars,omitempty"`
}

// Var declares one template variable and its Go-facing type.
type Var struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// VarType is a template variable's declared type.
type VarType uint8

const (
	TypeString VarType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeDate
	TypeStringList
	TypeIntList
	TypeFloatList
)

// String returns the type name used in manifests and diagnostics.
func (t VarType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeDate:
		return "date"
	case TypeStringList:
		return "[]string"
	case TypeIntList:
		return "[]int"
	case TypeFloatList:
		return "[]float"
	}
	return "invalid"
}

// ParseVarType maps a manifest type name to its VarType.
func ParseVarType(s string) (VarType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return TypeString, nil
	case "int", "integer":
		return TypeInt, nil
	case "float", "number":
		return TypeFloat, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "date":
		return TypeDate, nil
	case "[]string":
		return TypeStringList, nil
	case "[]int":
		return TypeIntList, nil
	case "[]float":
		return TypeFloatList, nil
	}
	return 0, fmt.Errorf("qbsql: unknown variable type %q", s)
}

// LoadManifest reads and checks a manifest file. Template queries are not
// compiled here; Validate does that against the active catalog.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewManifestError(path, "open", err)
	}
	defer f.Close()

	m, err := load(f, path)
	if err != nil {
		return nil, err
	}
	m.path = path
	return m, nil
}

// Load reads and checks a manifest from a reader. A relative schema path in
// the result is interpreted against the working directory.
func Load(r io.Reader) (*Manifest, error) {
	return load(r, "")
}

func load(r io.Reader, path string) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, NewManifestError(path, "parse", err)
	}
	if err := m.check(path); err != nil {
		return nil, err
	}
	return &m, nil
}

// SchemaPath returns the schema catalog location, resolved against the
// manifest's own directory when relative. Empty means the built-in catalog.
func (m *Manifest) SchemaPath() string {
	if m.Schema == "" {
		return ""
	}
	if m.path == "" || filepath.IsAbs(m.Schema) {
		return m.Schema
	}
	return filepath.Join(filepath.Dir(m.path), m.Schema)
}

// check enforces the manifest's structural rules: unique identifier-shaped
// template names, non-empty queries, and well-formed variable declarations.
func (m *Manifest) check(path string) error {
	if len(m.Templates) == 0 {
		return NewManifestError(path, "manifest declares no templates", nil)
	}
	names := make(map[string]bool, len(m.Templates))
	for _, t := range m.Templates {
		if t.Name == "" {
			return NewManifestError(path, "template name cannot be empty", nil)
		}
		if !validName(t.Name) {
			return NewManifestError(path, fmt.Sprintf("template name %q must be letters, digits, and underscores", t.Name), nil)
		}
		if t.Name == "catalog" {
			return NewManifestError(path, `template name "catalog" is reserved`, nil)
		}
		if names[t.Name] {
			return NewManifestError(path, fmt.Sprintf("template %q declared twice", t.Name), nil)
		}
		names[t.Name] = true
		if strings.TrimSpace(t.Query) == "" {
			return NewManifestError(path, fmt.Sprintf("template %q has an empty query", t.Name), nil)
		}
		vars := make(map[string]bool, len(t.Vars))
		for _, v := range t.Vars {
			if !validName(v.Name) {
				return NewManifestError(path, fmt.Sprintf("template %q declares invalid variable name %q", t.Name, v.Name), nil)
			}
			if vars[v.Name] {
				return NewManifestError(path, fmt.Sprintf("template %q declares variable %q twice", t.Name, v.Name), nil)
			}
			vars[v.Name] = true
			if _, err := ParseVarType(v.Type); err != nil {
				return NewManifestError(path, fmt.Sprintf("template %q variable %q", t.Name, v.Name), err)
			}
		}
	}
	return nil
}

// validName reports whether s is usable as a generated identifier segment:
// letters, digits, and underscores, not starting with a digit.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
