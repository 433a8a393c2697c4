package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/allisson/demands/cmd/app/commands"
	recordUseCase "github.com/allisson/demands/internal/record/usecase"
)

func fileFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"o"},
		Required: true,
		Usage:    usage,
	}
}

func getTransferCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "export",
			Usage: "Export records to a plaintext delimited file",
			Flags: append([]cli.Flag{fileFlag("Destination file"), formatFlag()}, listFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecords(ctx, func(useCase recordUseCase.RecordUseCase, logger *slog.Logger) error {
					return commands.RunExportRecords(
						ctx,
						useCase,
						logger,
						commands.DefaultIO().Writer,
						cmd.String("file"),
						listOptionsFromCommand(cmd),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "import",
			Usage: "Replace every record with the rows of an exported file",
			Flags: []cli.Flag{fileFlag("Exported file to import"), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecords(ctx, func(useCase recordUseCase.RecordUseCase, _ *slog.Logger) error {
					return commands.RunImportRecords(
						ctx,
						useCase,
						commands.DefaultIO().Writer,
						cmd.String("file"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "backup",
			Usage: "Write an encrypted backup of every record",
			Flags: []cli.Flag{
				fileFlag("Backup file"),
				&cli.StringFlag{
					Name:  "payload",
					Usage: "JSON object stored with the backup",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecords(ctx, func(useCase recordUseCase.RecordUseCase, _ *slog.Logger) error {
					return commands.RunBackup(
						ctx,
						useCase,
						commands.DefaultIO().Writer,
						cmd.String("file"),
						cmd.String("payload"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "restore",
			Usage: "Replace every record with the content of an encrypted backup",
			Flags: []cli.Flag{fileFlag("Backup file"), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecords(ctx, func(useCase recordUseCase.RecordUseCase, _ *slog.Logger) error {
					return commands.RunRestore(
						ctx,
						useCase,
						commands.DefaultIO().Writer,
						cmd.String("file"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
