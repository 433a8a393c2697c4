package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/demands/cmd/app/commands"
	"github.com/allisson/demands/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the local API server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, config.Load(), version)
			},
		},
		{
			Name:  "create-key",
			Usage: "Generate a store key to use as the key override",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateKey(commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
	}
}
