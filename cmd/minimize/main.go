// Package main provides the minimize CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/born-ml/minimize/cmd/minimize/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.RootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
