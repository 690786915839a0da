package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/sundacoder/ZedID/cmd/app/commands"
	"github.com/sundacoder/ZedID/internal/app"
	"github.com/sundacoder/ZedID/internal/config"
	identityDomain "github.com/sundacoder/ZedID/internal/identity/domain"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "mint-token",
			Usage: "Issue a bearer token offline with the configured signing secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Identity name",
				},
				&cli.StringFlag{
					Name:    "namespace",
					Aliases: []string{"ns"},
					Value:   "default",
					Usage:   "Identity namespace",
				},
				&cli.StringFlag{
					Name:    "kind",
					Aliases: []string{"k"},
					Value:   string(identityDomain.KindWorkload),
					Usage:   "Identity kind: human, workload, ai_agent or service_account",
				},
				&cli.IntFlag{
					Name:  "ttl-minutes",
					Value: identityDomain.DefaultTokenTTLMinutes,
					Usage: "Token lifetime in minutes",
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

				tokenService, err := container.TokenService()
				if err != nil {
					return err
				}

				return commands.RunMintToken(
					ctx,
					tokenService,
					container.Logger(),
					commands.DefaultIO().Writer,
					cfg.TrustDomain,
					identityDomain.CreateIdentityInput{
						Kind:      identityDomain.Kind(cmd.String("kind")),
						Name:      cmd.String("name"),
						Namespace: cmd.String("namespace"),
					},
					int(cmd.Int("ttl-minutes")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-token",
			Usage: "Validate a bearer token and print its claims",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Bearer token to verify",
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

				tokenService, err := container.TokenService()
				if err != nil {
					return err
				}

				return commands.RunVerifyToken(
					ctx,
					tokenService,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-signing-key",
			Usage: "Generate a random token signing secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "Wrap the secret with this gocloud.dev/secrets key (e.g. base64key://..., hashivault://...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateSigningKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
