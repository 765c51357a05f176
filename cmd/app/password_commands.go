package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/securepassword/cmd/app/commands"
	"github.com/allisson/securepassword/internal/app"
	"github.com/allisson/securepassword/internal/config"
)

// newCLIContainer builds a container for one-shot commands. Metrics are
// disabled because no metrics server runs for them.
func newCLIContainer() (*app.Container, *config.Config) {
	cfg := config.Load()
	cfg.MetricsEnabled = false
	return app.NewContainer(cfg), cfg
}

func getPasswordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "hash",
			Usage: "Hash a password with the configured algorithm and pepper",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password to hash (read from stdin when omitted)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, _ := newCLIContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				passwordUseCase, err := container.PasswordUseCase()
				if err != nil {
					return err
				}

				return commands.RunHash(
					ctx,
					passwordUseCase,
					container.Logger(),
					cmd.String("password"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "verify",
			Usage: "Verify a password against a stored hash",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password to verify (read from stdin when omitted)",
				},
				&cli.StringFlag{
					Name:     "hash",
					Required: true,
					Usage:    "Stored hash",
				},
				&cli.IntFlag{
					Name:  "wait-ms",
					Usage: "Minimum verification duration in milliseconds (overrides VERIFY_WAIT_MICROSECONDS)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, cfg := newCLIContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				if cmd.IsSet("wait-ms") {
					cfg.VerifyWait = time.Duration(max(cmd.Int("wait-ms"), 0)) * time.Millisecond
				}

				passwordUseCase, err := container.PasswordUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerify(
					ctx,
					passwordUseCase,
					container.Logger(),
					cmd.String("password"),
					cmd.String("hash"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "needs-rehash",
			Usage: "Check whether a stored hash matches the configured algorithm and options",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password used to build the replacement hash (read from stdin when omitted)",
				},
				&cli.StringFlag{
					Name:     "hash",
					Required: true,
					Usage:    "Stored hash",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, _ := newCLIContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				passwordUseCase, err := container.PasswordUseCase()
				if err != nil {
					return err
				}

				return commands.RunNeedsRehash(
					ctx,
					passwordUseCase,
					container.Logger(),
					cmd.String("password"),
					cmd.String("hash"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "hash-info",
			Usage: "Show the algorithm and options encoded in a hash",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "hash",
					Required: true,
					Usage:    "Stored hash",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, _ := newCLIContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				passwordUseCase, err := container.PasswordUseCase()
				if err != nil {
					return err
				}

				return commands.RunHashInfo(
					ctx,
					passwordUseCase,
					cmd.String("hash"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
