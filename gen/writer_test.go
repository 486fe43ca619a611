package gen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Exotik850/quick-oxibooks-sql/gen"
)

const widgetCatalog = `entities:
  - name: Widget
    fields:
      - name: id
        kind: numeric
      - name: label
        kind: string
`

// TestGenerate covers code generation end to end.
func TestGenerate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("builtin catalog", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := loadManifest(t, testManifest)
		metrics, err := gen.Generate(ctx, gen.WithManifest(m), gen.WithTarget(dir))
		require.NoError(t, err)
		assert.Equal(t, 4, metrics.FilesGenerated)
		assert.Greater(t, metrics.TotalBytes, int64(0))
		assert.Greater(t, metrics.Duration, time.Duration(0))
		assert.Contains(t, metrics.Summary(), "generated 4 files")

		g := goldie.New(t,
			goldie.WithFixtureDir("testdata/golden"),
			goldie.WithNameSuffix(".golden"),
		)
		outputs := []struct {
			golden string
			file   string
		}{
			{"builtin_catalog", "catalog_gen.go"},
			{"active_customers", "active_customers_gen.go"},
			{"customers_over", "customers_over_gen.go"},
			{"customers_by_ids", "customers_by_ids_gen.go"},
		}
		for _, out := range outputs {
			content, err := os.ReadFile(filepath.Join(dir, out.file))
			require.NoError(t, err)
			g.Assert(t, out.golden, content)
		}
	})

	t.Run("embedded catalog", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(widgetCatalog), 0o644))
		manifest := `package: queries
schema: catalog.yaml
templates:
  - name: widgets_by_ids
    query: select label from Widget where id in ids
    vars:
      - name: ids
        type: "[]int"
`
		manifestPath := filepath.Join(dir, "qbsql.gen.yaml")
		require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

		out := filepath.Join(dir, "queries")
		metrics, err := gen.Generate(ctx, gen.WithManifestFile(manifestPath), gen.WithTarget(out))
		require.NoError(t, err)
		assert.Equal(t, 2, metrics.FilesGenerated)

		catalog, err := os.ReadFile(filepath.Join(out, "catalog_gen.go"))
		require.NoError(t, err)
		assert.Contains(t, string(catalog), "catalogSource")
		assert.Contains(t, string(catalog), "schema.Load")
		assert.Contains(t, string(catalog), "strings.NewReader")
		assert.Contains(t, string(catalog), "Widget")

		fn, err := os.ReadFile(filepath.Join(out, "widgets_by_ids_gen.go"))
		require.NoError(t, err)
		assert.Contains(t, string(fn), "func WidgetsByIds(ids []int64) (*qbsql.Query, error)")
	})

	t.Run("date parameter", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := loadManifest(t, `
package: queries
templates:
  - name: invoices_since
    query: select * from Invoice where txn_date > since
    vars:
      - name: since
        type: date
`)
		_, err := gen.Generate(ctx, gen.WithManifest(m), gen.WithTarget(dir))
		require.NoError(t, err)

		fn, err := os.ReadFile(filepath.Join(dir, "invoices_since_gen.go"))
		require.NoError(t, err)
		assert.Contains(t, string(fn), "func InvoicesSince(since time.Time) (*qbsql.Query, error)")
		assert.Contains(t, string(fn), `"time"`)
	})

	t.Run("package override", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := loadManifest(t, testManifest)
		_, err := gen.Generate(ctx, gen.WithManifest(m), gen.WithTarget(dir), gen.WithPackage("other"))
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, "catalog_gen.go"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "package other")
	})

	t.Run("custom header", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := loadManifest(t, testManifest)
		_, err := gen.Generate(ctx, gen.WithManifest(m), gen.WithTarget(dir),
			gen.WithHeader("Code generated by billing-pipeline. DO NOT EDIT."))
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, "catalog_gen.go"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "// Code generated by billing-pipeline. DO NOT EDIT.")
	})

	t.Run("keyword variable names are sanitized", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := loadManifest(t, `
package: queries
templates:
  - name: items_of_type
    query: select * from Item where type = type
    vars:
      - name: type
        type: string
`)
		_, err := gen.Generate(ctx, gen.WithManifest(m), gen.WithTarget(dir))
		require.NoError(t, err)

		fn, err := os.ReadFile(filepath.Join(dir, "items_of_type_gen.go"))
		require.NoError(t, err)
		assert.Contains(t, string(fn), "func ItemsOfType(type_ string) (*qbsql.Query, error)")
		assert.Contains(t, string(fn), `"type": type_`)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := loadManifest(t, `
package: queries
templates:
  - name: broken
    query: select nickname from Customer
`)
		_, err := gen.Generate(ctx, gen.WithManifest(m), gen.WithTarget(dir))
		require.Error(t, err)
		assert.True(t, gen.IsTemplateError(err))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()

		m := loadManifest(t, testManifest)
		_, err := gen.Generate(ctx, gen.WithManifest(m))
		require.Error(t, err)
		assert.True(t, gen.IsConfigError(err))
	})

	t.Run("missing package", func(t *testing.T) {
		t.Parallel()

		m := loadManifest(t, `
templates:
  - name: a
    query: select * from Customer
`)
		_, err := gen.Generate(ctx, gen.WithManifest(m), gen.WithTarget(t.TempDir()))
		require.Error(t, err)
		assert.True(t, gen.IsConfigError(err))
		assert.Contains(t, err.Error(), "no output package configured")
	})
}
