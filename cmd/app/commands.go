package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/allisson/demands/internal/app"
	"github.com/allisson/demands/internal/config"
	recordUseCase "github.com/allisson/demands/internal/record/usecase"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getRecordCommands()...)
	cmds = append(cmds, getTransferCommands()...)
	return cmds
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// withRecords opens the record store from the environment configuration and hands it
// to run. The container is shut down afterwards, dropping the cached key.
func withRecords(
	ctx context.Context,
	run func(useCase recordUseCase.RecordUseCase, logger *slog.Logger) error,
) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	useCase, err := container.RecordUseCase()
	if err != nil {
		return err
	}
	return run(useCase, container.Logger())
}
