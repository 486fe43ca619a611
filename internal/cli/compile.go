package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	qbsql "github.com/Exotik850/quick-oxibooks-sql"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Schema string
	Vars   []string
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [query]",
		Short: "Compile a query to its wire form",
		Long: `Compile a query against the entity catalog and print the query string
the QuickBooks Online API accepts. The query is read from the argument,
or from stdin when no argument is given.`,
		Example: `  # Compile a literal query
  qbsql compile "select * from Customer where balance > 100"

  # Bind variables with typed values
  qbsql compile "select * from Invoice where total > min" --var min=250.5

  # Sequences become in-lists
  qbsql compile "select * from Customer where id in ids" --var ids=1,2,3

  # Compile against a custom catalog
  qbsql compile --schema catalog.yaml "select * from Widget"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Schema, "schema", "", "entity catalog YAML (default: built-in QuickBooks catalog)")
	f.StringArrayVar(&opts.Vars, "var", nil, "bind a variable as name=value (repeatable)")

	return cmd
}

func runCompile(cmd *cobra.Command, opts *CompileOptions, args []string) error {
	src, err := querySource(cmd, args)
	if err != nil {
		return err
	}

	reg, err := loadCatalog(resolveString(opts.Schema, opts.config().Schema))
	if err != nil {
		return ConfigError("loading catalog", err)
	}

	vars, err := ParseVarFlags(opts.Vars)
	if err != nil {
		return ConfigError("parsing variables", err)
	}

	compileOpts := []qbsql.Option{qbsql.WithSchema(reg)}
	if vars != nil {
		compileOpts = append(compileOpts, qbsql.WithVars(vars))
	}

	out, err := qbsql.CompileString(src, compileOpts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// querySource returns the query text from the argument or stdin.
func querySource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		src := strings.TrimSpace(args[0])
		if src == "" {
			return "", GeneralError("query is empty", nil)
		}
		return src, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", GeneralError("reading stdin", err)
	}
	src := strings.TrimSpace(string(data))
	if src == "" {
		return "", GeneralError("no query given: pass one as an argument or on stdin", nil)
	}
	return src, nil
}
