// Command qbsql compiles SQL-style queries into QuickBooks Online query
// strings and generates typed query packages from build manifests.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Exotik850/quick-oxibooks-sql/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		// Interrupting a watch is a clean stop, not a failure.
		if errors.Is(err, context.Canceled) {
			os.Exit(cli.ExitSuccess)
		}
		stop()
		cli.ExitWithError(err)
	}
}
