package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Import paths referenced by generated code.
const (
	importRoot   = "github.com/Exotik850/quick-oxibooks-sql"
	importSchema = "github.com/Exotik850/quick-oxibooks-sql/schema"
	importQBO    = "github.com/Exotik850/quick-oxibooks-sql/qbo"
)

// Metrics tracks generation performance.
type Metrics struct {
	FilesGenerated int
	TotalBytes     int64
	Duration       time.Duration
}

// Generate validates the manifest's templates and writes one typed query
// function per template, plus the catalog file they bind against, to the
// target directory.
func Generate(ctx context.Context, opts ...Option) (*Metrics, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Manifest == nil {
		return nil, NewConfigError("Manifest", nil, "no manifest configured")
	}
	if cfg.Target == "" {
		return nil, NewConfigError("Target", nil, "no target directory configured")
	}
	pkg, err := cfg.packageName()
	if err != nil {
		return nil, err
	}
	if err := validate(ctx, cfg); err != nil {
		return nil, err
	}

	w := &writer{cfg: cfg, pkg: pkg}
	if path := cfg.Manifest.SchemaPath(); path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, NewGenerationError("", "read schema catalog", err)
		}
		w.schemaSrc = string(src)
	}
	return w.run(ctx)
}

// writer emits the generated files for one manifest.
type writer struct {
	cfg       *Config
	pkg       string
	schemaSrc string // catalog YAML to embed; empty means the built-in catalog

	mu      sync.Mutex
	metrics Metrics
}

type fileTask struct {
	name string
	file *jen.File
}

func (w *writer) run(ctx context.Context) (*Metrics, error) {
	start := time.Now()

	if err := os.MkdirAll(w.cfg.Target, 0o755); err != nil {
		return nil, NewGenerationError("", "create target directory", err)
	}

	files := []fileTask{{name: "catalog_gen.go", file: w.genCatalog()}}
	for _, tmpl := range w.cfg.Manifest.Templates {
		files = append(files, fileTask{
			name: tmpl.Name + "_gen.go",
			file: w.genTemplate(tmpl),
		})
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.cfg.workers())

	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f)
			}
		})
	}
	err := eg.Wait()

	w.mu.Lock()
	w.metrics.Duration = time.Since(start)
	m := w.metrics
	w.mu.Unlock()
	return &m, err
}

// newFile creates a Jennifer file with the header comment and the import
// names generated code refers to.
func (w *writer) newFile() *jen.File {
	f := jen.NewFile(w.pkg)
	f.HeaderComment(w.cfg.header())
	f.ImportName(importRoot, "qbsql")
	f.ImportName(importSchema, "schema")
	f.ImportName(importQBO, "qbo")
	return f
}

// genCatalog emits the Catalog variable the generated functions bind
// against: the built-in catalog, or the manifest's schema file embedded as
// source so the generated package is self-contained.
func (w *writer) genCatalog() *jen.File {
	f := w.newFile()

	f.Comment("Catalog is the entity catalog the generated queries bind against.")
	if w.schemaSrc == "" {
		f.Var().Id("Catalog").Op("=").Qual(importQBO, "Schemas").Call()
		return f
	}

	f.Var().Id("Catalog").Op("=").Id("mustCatalog").Call()

	f.Const().Id("catalogSource").Op("=").Lit(w.schemaSrc)

	f.Func().Id("mustCatalog").Params().Op("*").Qual(importSchema, "Registry").Block(
		jen.List(jen.Id("reg"), jen.Err()).Op(":=").Qual(importSchema, "Load").Call(
			jen.Qual("strings", "NewReader").Call(jen.Id("catalogSource")),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Panic(jen.Err()),
		),
		jen.Return(jen.Id("reg")),
	)
	return f
}

// genTemplate emits one typed query function. Parameters follow the
// manifest's variable declarations in order; the body compiles the embedded
// source with the parameters bound.
func (w *writer) genTemplate(tmpl Template) *jen.File {
	f := w.newFile()

	fn := inflect.Camelize(tmpl.Name)
	params := make([]jen.Code, 0, len(tmpl.Vars))
	dict := make(jen.Dict, len(tmpl.Vars))
	for _, v := range tmpl.Vars {
		vt, _ := ParseVarType(v.Type)
		params = append(params, jen.Id(paramName(v.Name)).Add(goType(vt)))
		dict[jen.Lit(v.Name)] = jen.Id(paramName(v.Name))
	}

	args := []jen.Code{
		jen.Lit(tmpl.Query),
		jen.Qual(importRoot, "WithSchema").Call(jen.Id("Catalog")),
	}
	if len(tmpl.Vars) > 0 {
		args = append(args, jen.Qual(importRoot, "WithVars").Call(
			jen.Qual(importRoot, "Vars").Values(dict),
		))
	}

	f.Commentf("%s builds the %q query.", fn, tmpl.Name)
	f.Func().Id(fn).Params(params...).Params(
		jen.Op("*").Qual(importRoot, "Query"),
		jen.Error(),
	).Block(
		jen.Return(jen.Qual(importRoot, "Compile").Call(args...)),
	)
	return f
}

// goType maps a declared variable type to its Go parameter type.
func goType(t VarType) jen.Code {
	switch t {
	case TypeInt:
		return jen.Int64()
	case TypeFloat:
		return jen.Float64()
	case TypeBool:
		return jen.Bool()
	case TypeDate:
		return jen.Qual("time", "Time")
	case TypeStringList:
		return jen.Index().String()
	case TypeIntList:
		return jen.Index().Int64()
	case TypeFloatList:
		return jen.Index().Float64()
	default:
		return jen.String()
	}
}

// paramName returns the variable's Go parameter name. Manifest variable
// names that collide with Go keywords get a trailing underscore.
func paramName(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// writeFile renders, formats, and writes one generated file.
func (w *writer) writeFile(f fileTask) error {
	var buf bytes.Buffer
	if err := f.file.Render(&buf); err != nil {
		return NewGenerationError(f.name, "render", err)
	}

	path := filepath.Join(w.cfg.Target, f.name)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return NewGenerationError(f.name, "format", err)
	}

	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError(f.name, "write", err)
	}

	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(formatted))
	w.mu.Unlock()
	return nil
}

// Summary returns a one-line description of the metrics.
func (m *Metrics) Summary() string {
	return fmt.Sprintf("generated %d files (%d bytes) in %s", m.FilesGenerated, m.TotalBytes, m.Duration)
}
