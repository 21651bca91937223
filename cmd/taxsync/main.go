// Package main provides the entry point for the taxsync CLI tool.
package main

import (
	"context"
	"os"

	"github.com/adtaxonomy/taxsync/cmd/taxsync/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancel in-flight downloads on SIGINT/SIGTERM. Partially written
	// output files are accepted; final artifacts are renamed into place
	// atomically.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
