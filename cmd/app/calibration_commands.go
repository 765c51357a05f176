package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/securepassword/cmd/app/commands"
)

func getCalibrationCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "optimal-bcrypt-cost",
			Usage: "Find the lowest bcrypt cost slower than a minimum duration on this machine",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Sample password to hash (defaults to 'test')",
				},
				&cli.IntFlag{
					Name:  "min-ms",
					Value: 0,
					Usage: "Minimum hashing duration in milliseconds (0 uses CALIBRATION_MIN_MS)",
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

				return commands.RunOptimalBcryptCost(
					ctx,
					passwordUseCase,
					container.Logger(),
					cmd.String("password"),
					cmd.Int("min-ms"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "benchmark-cost",
			Usage: "Find the first bcrypt cost above a starting cost that is slower than 350ms",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Sample password to hash (defaults to 'test')",
				},
				&cli.IntFlag{
					Name:  "cost",
					Value: 0,
					Usage: "Starting cost (0 uses 12)",
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

				return commands.RunBenchmarkCost(
					ctx,
					passwordUseCase,
					container.Logger(),
					cmd.String("password"),
					cmd.Int("cost"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
