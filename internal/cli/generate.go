package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Exotik850/quick-oxibooks-sql/gen"
)

// debounceInterval coalesces the event bursts editors emit on save.
const debounceInterval = 250 * time.Millisecond

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Manifest string
	Target   string
	Package  string
	Header   string
	Workers  int
	Watch    bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate query builder functions from a build manifest",
		Long: `Generate a Go package of query builder functions from the build manifest.
Every template is validated before anything is written. With --watch the
generator re-runs whenever the manifest or its catalog changes.`,
		Example: `  # Generate into the queries directory
  qbsql generate --target internal/queries

  # Re-generate on every manifest change
  qbsql generate --target internal/queries --watch`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Manifest, "manifest", "", "build manifest path (default: "+gen.DefaultManifest+")")
	f.StringVarP(&opts.Target, "target", "o", "", "output directory for generated files")
	f.StringVar(&opts.Package, "package", "", "output package name (default: the manifest's)")
	f.StringVar(&opts.Header, "header", "", "header comment for generated files")
	f.IntVar(&opts.Workers, "workers", 0, "parallel workers (default: GOMAXPROCS)")
	f.BoolVarP(&opts.Watch, "watch", "w", false, "re-generate when the manifest or catalog changes")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cfg := opts.config()

	manifest := resolveString(opts.Manifest, cfg.Manifest, gen.DefaultManifest)
	target := resolveString(opts.Target, cfg.Generate.Target)
	if target == "" {
		return ConfigError("--target is required", nil)
	}

	run := func(ctx context.Context) error {
		genOpts := []gen.Option{
			gen.WithManifestFile(manifest),
			gen.WithTarget(target),
		}
		if pkg := resolveString(opts.Package, cfg.Generate.Package); pkg != "" {
			genOpts = append(genOpts, gen.WithPackage(pkg))
		}
		if header := resolveString(opts.Header, cfg.Generate.Header); header != "" {
			genOpts = append(genOpts, gen.WithHeader(header))
		}
		if workers := resolveInt(opts.Workers, cfg.Generate.Workers); workers > 0 {
			genOpts = append(genOpts, gen.WithWorkers(workers))
		}

		metrics, err := gen.Generate(ctx, genOpts...)
		if err != nil {
			return err
		}
		if !opts.Quiet {
			fmt.Fprintln(cmd.OutOrStdout(), metrics.Summary())
		}
		return nil
	}

	if !opts.Watch {
		return run(cmd.Context())
	}
	return watchAndRun(cmd, opts, manifest, run)
}

// watchAndRun re-runs generation whenever the manifest or the catalog it
// names changes on disk. A failed run keeps the watch alive so fixing the
// file triggers a clean re-run.
func watchAndRun(cmd *cobra.Command, opts *GenerateOptions, manifestPath string, run func(context.Context) error) error {
	ctx := cmd.Context()
	errOut := cmd.ErrOrStderr()

	report := func(err error) {
		if err != nil {
			fmt.Fprintln(errOut, "Error:", err)
		}
	}
	report(run(ctx))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return GeneralError("starting watcher", err)
	}
	defer watcher.Close()

	files := watchTargets(manifestPath)
	for _, dir := range watchDirs(files) {
		if err := watcher.Add(dir); err != nil {
			return GeneralError(fmt.Sprintf("watching %s", dir), err)
		}
	}

	if !opts.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", strings.Join(files, ", "))
	}

	debounce := time.NewTimer(debounceInterval)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watchedEvent(ev, files) {
				continue
			}
			debounce.Reset(debounceInterval)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(errOut, "watch error:", err)
		case <-debounce.C:
			report(run(ctx))
		}
	}
}

// watchTargets returns the files whose changes trigger a re-run: the
// manifest, plus the catalog it names when the manifest currently loads.
func watchTargets(manifestPath string) []string {
	files := []string{manifestPath}
	if m, err := gen.LoadManifest(manifestPath); err == nil {
		if schemaPath := m.SchemaPath(); schemaPath != "" {
			files = append(files, schemaPath)
		}
	}
	return files
}

// watchDirs returns the unique parent directories of the watched files.
// Directories are watched rather than the files themselves so the watch
// survives the delete-and-rename dance editors save with.
func watchDirs(files []string) []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, f := range files {
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// watchedEvent reports whether the event touches a watched file with an
// operation that changes content.
func watchedEvent(ev fsnotify.Event, files []string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	for _, f := range files {
		if filepath.Clean(ev.Name) == filepath.Clean(f) {
			return true
		}
	}
	return false
}
