package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Exotik850/quick-oxibooks-sql/schema"
)

// EntitiesOptions holds flags for the entities command.
type EntitiesOptions struct {
	*RootOptions
	Schema string
}

// NewEntitiesCommand creates the entities command.
func NewEntitiesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EntitiesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "entities [entity]",
		Short: "List the catalog's entities and fields",
		Long: `List every entity in the active catalog. With an entity name, list that
entity's fields with their kinds and wire names.`,
		Example: `  # List all entities
  qbsql entities

  # Show one entity's fields
  qbsql entities Customer`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntities(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "entity catalog YAML (default: built-in QuickBooks catalog)")

	return cmd
}

func runEntities(cmd *cobra.Command, opts *EntitiesOptions, args []string) error {
	reg, err := loadCatalog(resolveString(opts.Schema, opts.config().Schema))
	if err != nil {
		return ConfigError("loading catalog", err)
	}

	if len(args) == 1 {
		ent, ok := reg.Entity(args[0])
		if !ok {
			return GeneralError(fmt.Sprintf("unknown entity %q", args[0]), nil)
		}
		return printEntity(cmd, ent)
	}

	out := cmd.OutOrStdout()
	for _, ent := range reg.Entities() {
		fmt.Fprintf(out, "%s (%d fields)\n", ent.Name(), len(ent.Fields()))
	}
	return nil
}

// printEntity lists one entity's fields in declaration order.
func printEntity(cmd *cobra.Command, ent *schema.Entity) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tKIND\tWIRE")
	for _, d := range ent.Fields() {
		kind := d.Kind.String()
		if len(d.Values) > 0 {
			kind = fmt.Sprintf("enum(%s)", strings.Join(d.Values, "|"))
		}
		wire := d.WireName()
		if d.Bare {
			wire += " (bare)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, kind, wire)
	}
	return w.Flush()
}
