// Command bikestats prints the bike-sharing dashboard report for a day
// table and an optional hour table.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hupe1980/bikestats/cmd/bikestats/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := command.NewApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "bikestats:", err)
		stop()
		os.Exit(1)
	}
}
