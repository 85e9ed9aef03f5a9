// Package main is the rotationtool command itself.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	rotationcli "go.viam.com/rotationtool/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := rotationcli.NewApp(os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		//nolint:gocritic
		log.Fatal(err)
	}
}
