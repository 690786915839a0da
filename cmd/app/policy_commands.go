package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sundacoder/ZedID/cmd/app/commands"
	"github.com/sundacoder/ZedID/internal/app"
	"github.com/sundacoder/ZedID/internal/config"
)

func getPolicyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "validate-policy",
			Usage: "Validate a YAML or JSON policy document",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"f"},
					Required: true,
					Usage:    "Path to the policy document, or '-' for stdin",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: "text",
					Usage: "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				path := cmd.String("file")
				reader, closeReader, err := openInput(path)
				if err != nil {
					return err
				}
				defer closeReader()

				return commands.RunValidatePolicy(
					ctx,
					container.Logger(),
					reader,
					commands.DefaultIO().Writer,
					path,
					cmd.String("format"),
				)
			},
		},
	}
}

// openInput opens path for reading, with "-" meaning stdin.
func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return commands.DefaultIO().Reader, func() {}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return file, func() { _ = file.Close() }, nil
}
