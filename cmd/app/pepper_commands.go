package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/securepassword/cmd/app/commands"
)

func getPepperCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-pepper",
			Usage: "Generate a random pepper for PEPPER_SECRET",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Value:   commands.DefaultPepperLength,
					Usage:   "Pepper length in bytes before hex encoding",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGeneratePepper(
					cmd.Int("length"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "encrypt-pepper",
			Usage: "Encrypt a pepper the way the service stores it in memory",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "secret",
					Aliases: []string{"s"},
					Usage:   "Pepper to encrypt (read from stdin when omitted)",
				},
				&cli.StringFlag{
					Name:    "cipher",
					Aliases: []string{"c"},
					Value:   "openssl",
					Usage:   "Cipher: 'openssl' (AES-256-CBC) or 'sodium' (XSalsa20-Poly1305)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, _ := newCLIContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunEncryptPepper(
					container.AdapterManager(),
					container.Logger(),
					cmd.String("secret"),
					cmd.String("cipher"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
