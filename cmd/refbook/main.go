// Command refbook serves the reference book lookup API and carries the
// operational subcommands around it:
//
//	refbook serve                      run the HTTP API
//	refbook migrate [up|down|status]   apply or inspect schema migrations
//	refbook seed --file refbooks.yaml  load refbooks from a YAML fixture
//	refbook version                    print build information
//
// Configuration is read from CONFIG_PATH (or ./config.yaml) and the
// environment. Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
