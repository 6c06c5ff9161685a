package main

import (
	"context"
	"os"
	"os/signal"
	_ "time/tzdata"

	"github.com/fatih/color"

	"github.com/feelio/feelio-backend/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.New(version, nil).ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
