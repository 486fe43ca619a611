package gen

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	qbsql "github.com/Exotik850/quick-oxibooks-sql"
	"github.com/Exotik850/quick-oxibooks-sql/parser"
	"github.com/Exotik850/quick-oxibooks-sql/qbo"
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// DefaultHeader is the header comment stamped on generated files.
const DefaultHeader = "Code generated by qbsqlgen. DO NOT EDIT."

// Config carries the generator settings.
type Config struct {
	// Manifest is the build manifest to validate and generate from.
	Manifest *Manifest
	// Registry overrides the catalog templates are validated against. When
	// nil, the manifest's schema file is loaded, or the built-in catalog if
	// the manifest names none.
	Registry *schema.Registry
	// Package overrides the manifest's output package name.
	Package string
	// Target is the output directory for generated files.
	Target string
	// Header overrides DefaultHeader.
	Header string
	// Workers caps validation and writing parallelism. Zero means GOMAXPROCS.
	Workers int
}

// Option configures the generator.
type Option func(*Config) error

// WithManifest sets the build manifest.
func WithManifest(m *Manifest) Option {
	return func(c *Config) error {
		if m == nil {
			return NewConfigError("Manifest", nil, "manifest cannot be nil")
		}
		c.Manifest = m
		return nil
	}
}

// WithManifestFile loads the build manifest from path.
func WithManifestFile(path string) Option {
	return func(c *Config) error {
		m, err := LoadManifest(path)
		if err != nil {
			return err
		}
		c.Manifest = m
		return nil
	}
}

// WithRegistry overrides the catalog templates are validated against.
func WithRegistry(reg *schema.Registry) Option {
	return func(c *Config) error {
		if reg == nil {
			return NewConfigError("Registry", nil, "registry cannot be nil")
		}
		c.Registry = reg
		return nil
	}
}

// WithPackage overrides the output package name.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithHeader overrides the generated file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers caps validation and writing parallelism.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "worker count must be positive")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config. It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c *Config) header() string {
	if c.Header != "" {
		return c.Header
	}
	return DefaultHeader
}

// packageName resolves the output package: an explicit override wins over
// the manifest's declaration.
func (c *Config) packageName() (string, error) {
	if c.Package != "" {
		return c.Package, nil
	}
	if c.Manifest != nil && c.Manifest.Package != "" {
		return c.Manifest.Package, nil
	}
	return "", NewConfigError("Package", nil, "no output package configured")
}

// registry resolves the catalog templates bind against.
func (c *Config) registry() (*schema.Registry, error) {
	if c.Registry != nil {
		return c.Registry, nil
	}
	if path := c.Manifest.SchemaPath(); path != "" {
		return schema.LoadFile(path)
	}
	return qbo.Schemas(), nil
}

// Validate compiles every manifest template against the active catalog with
// type-representative stub variables. Templates are checked in parallel; a
// failure carries the offending template's name.
func Validate(ctx context.Context, opts ...Option) error {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return err
	}
	return validate(ctx, cfg)
}

func validate(ctx context.Context, cfg *Config) error {
	if cfg.Manifest == nil {
		return NewConfigError("Manifest", nil, "no manifest configured")
	}
	reg, err := cfg.registry()
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.workers())

	for _, tmpl := range cfg.Manifest.Templates {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return validateTemplate(tmpl, reg)
			}
		})
	}
	return eg.Wait()
}

// validateTemplate proves one template sound: it parses, references exactly
// its declared variables, and binds against the catalog with stub values.
func validateTemplate(tmpl Template, reg *schema.Registry) error {
	types := make(map[string]VarType, len(tmpl.Vars))
	for _, v := range tmpl.Vars {
		t, err := ParseVarType(v.Type)
		if err != nil {
			return NewTemplateError(tmpl.Name, "invalid variable declaration", err)
		}
		types[v.Name] = t
	}

	stmt, err := qbsql.Parse(tmpl.Query)
	if err != nil {
		return NewTemplateError(tmpl.Name, "invalid query", err)
	}

	referenced := referencedVars(stmt)
	for _, name := range referenced {
		if _, ok := types[name]; !ok {
			return NewTemplateError(tmpl.Name, fmt.Sprintf("variable %q is not declared", name), nil)
		}
	}
	if len(referenced) != len(types) {
		for _, v := range tmpl.Vars {
			if !slices.Contains(referenced, v.Name) {
				return NewTemplateError(tmpl.Name, fmt.Sprintf("variable %q is declared but unused", v.Name), nil)
			}
		}
	}

	stubs := stubVars(stmt, reg, types)
	if _, err := qbsql.Compile(tmpl.Query, qbsql.WithSchema(reg), qbsql.WithVars(stubs)); err != nil {
		return NewTemplateError(tmpl.Name, "query does not bind", err)
	}
	return nil
}

// referencedVars returns the variable names the statement references, in
// first-use order.
func referencedVars(stmt *parser.SelectStatement) []string {
	var names []string
	seen := make(map[string]bool)
	for _, cond := range stmt.Where {
		v, ok := cond.Value.(parser.Variable)
		if !ok {
			continue
		}
		if !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
	}
	return names
}

// stubVars builds type-representative values for a validation compile. A
// variable bound to an enum field stubs to the field's first legal value so
// membership checking cannot reject a sound template.
func stubVars(stmt *parser.SelectStatement, reg *schema.Registry, types map[string]VarType) qbsql.Vars {
	enums := make(map[string]string)
	for _, cond := range stmt.Where {
		v, ok := cond.Value.(parser.Variable)
		if !ok {
			continue
		}
		res, err := reg.ResolveField(stmt.Entity.Name, cond.Field.Name)
		if err != nil || res.Kind != field.KindEnum || len(res.Values) == 0 {
			continue
		}
		if _, ok := enums[v.Name]; !ok {
			enums[v.Name] = res.Values[0]
		}
	}

	stubs := make(qbsql.Vars, len(types))
	for name, t := range types {
		stubs[name] = stubValue(t, enums[name])
	}
	return stubs
}

// stubValue returns a representative value for the declared type. enum, when
// non-empty, is a legal enum value to substitute for string-shaped stubs.
func stubValue(t VarType, enum string) any {
	switch t {
	case TypeString:
		if enum != "" {
			return enum
		}
		return "sample"
	case TypeInt:
		return int64(1)
	case TypeFloat:
		return float64(1)
	case TypeBool:
		return true
	case TypeDate:
		return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	case TypeStringList:
		if enum != "" {
			return []string{enum}
		}
		return []string{"sample"}
	case TypeIntList:
		return []int64{1}
	case TypeFloatList:
		return []float64{1}
	}
	return nil
}
