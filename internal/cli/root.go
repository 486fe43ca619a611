package cli

import (
	"github.com/spf13/cobra"

	"github.com/Exotik850/quick-oxibooks-sql/qbo"
	"github.com/Exotik850/quick-oxibooks-sql/schema"
)

// RootOptions holds global flags and the configuration shared by all
// commands.
type RootOptions struct {
	ConfigFile string
	Quiet      bool

	// Set during PersistentPreRunE.
	Config     *Config
	ConfigPath string
}

// config returns the loaded configuration. Commands constructed without the
// root (as tests do) run against an empty one.
func (o *RootOptions) config() *Config {
	if o.Config == nil {
		return &Config{}
	}
	return o.Config
}

// NewRootCommand creates the root command for the qbsql CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "qbsql",
		Short: "Compile SQL-style queries into QuickBooks Online query strings",
		Long: `qbsql compiles a SQL-flavored query language into the query strings the
QuickBooks Online data service accepts.

Queries are checked against an entity catalog before anything reaches the
wire: unknown entities and fields, operators a field's type does not
support, and enum values outside the legal set all fail at compile time.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip config loading for help and completion
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			var err error
			opts.Config, opts.ConfigPath, err = LoadConfig(opts.ConfigFile)
			if err != nil {
				return ConfigError("loading configuration", err)
			}

			return nil
		},
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: auto-discover qbsql.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress non-error output")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewEntitiesCommand(opts))

	return cmd
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveInt returns the first positive int from the provided values.
func resolveInt(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// loadCatalog loads an entity catalog from path, or the built-in QuickBooks
// catalog when path is empty.
func loadCatalog(path string) (*schema.Registry, error) {
	if path == "" {
		return qbo.Schemas(), nil
	}
	return schema.LoadFile(path)
}
