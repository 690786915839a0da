// Package main provides the entry point for the ZedID application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sundacoder/ZedID/internal/http"
)

func main() {
	cmd := &cli.Command{
		Name:     "zedid",
		Usage:    "Identity dashboard and AI policy generator for Zero Trust platforms",
		Version:  http.Version,
		Commands: getCommands(http.Version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
