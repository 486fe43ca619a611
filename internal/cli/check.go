package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Exotik850/quick-oxibooks-sql/gen"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Manifest string
	Schema   string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the templates in a build manifest",
		Long: `Check every template in the build manifest: each query must parse,
reference exactly its declared variables, and bind against the catalog.
Failures are reported per template.`,
		Example: `  # Check the default manifest
  qbsql check

  # Check a specific manifest against a custom catalog
  qbsql check --manifest queries.yaml --schema catalog.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Manifest, "manifest", "", "build manifest path (default: "+gen.DefaultManifest+")")
	f.StringVar(&opts.Schema, "schema", "", "entity catalog YAML overriding the manifest's")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cfg := opts.config()

	path := resolveString(opts.Manifest, cfg.Manifest, gen.DefaultManifest)
	m, err := gen.LoadManifest(path)
	if err != nil {
		return ConfigError("loading manifest", err)
	}

	reg, err := loadCatalog(resolveString(opts.Schema, cfg.Schema, m.SchemaPath()))
	if err != nil {
		return ConfigError("loading catalog", err)
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, tmpl := range m.Templates {
		// Templates are checked one at a time so every failure is
		// reported, not just the first.
		one := &gen.Manifest{Templates: []gen.Template{tmpl}}
		err := gen.Validate(cmd.Context(), gen.WithManifest(one), gen.WithRegistry(reg))
		if err != nil {
			failed++
			fmt.Fprintf(out, "✗ %s: %s\n", tmpl.Name, templateFailure(err))
			continue
		}
		if !opts.Quiet {
			fmt.Fprintf(out, "✓ %s\n", tmpl.Name)
		}
	}

	if failed > 0 {
		return ValidationError(fmt.Sprintf("%d of %d templates failed", failed, len(m.Templates)), nil)
	}
	if !opts.Quiet {
		fmt.Fprintf(out, "%d template(s) valid\n", len(m.Templates))
	}
	return nil
}

// templateFailure renders a validation error without repeating the template
// name the caller already prints.
func templateFailure(err error) string {
	var te *gen.TemplateError
	if !errors.As(err, &te) {
		return err.Error()
	}
	if te.Cause != nil {
		return fmt.Sprintf("%s: %v", te.Message, te.Cause)
	}
	return te.Message
}
