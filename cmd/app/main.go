// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	apperrors "github.com/allisson/demands/internal/errors"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:     "demands",
		Usage:    "Encrypted work item tracker",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(apperrors.ExitCode(err))
	}
}
