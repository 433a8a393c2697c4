package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/demands/cmd/app/commands"
	recordDomain "github.com/allisson/demands/internal/record/domain"
	recordUseCase "github.com/allisson/demands/internal/record/usecase"
)

// fieldFlag binds a CLI flag to one record field.
type fieldFlag struct {
	name  string
	usage string
	field func(f *recordDomain.Fields) **string
}

var fieldFlags = []fieldFlag{
	{"urgent", "Urgent flag (Yes or No)", func(f *recordDomain.Fields) **string { return &f.Urgent }},
	{"status", "Status (Not-started, In-progress, On-hold, Needs-review, Completed, Cancelled)", func(f *recordDomain.Fields) **string { return &f.Status }},
	{"priority", "Priority (High, Medium, Low)", func(f *recordDomain.Fields) **string { return &f.Priority }},
	{"registered-on", "Registration date (YYYY-MM-DD)", func(f *recordDomain.Fields) **string { return &f.RegisteredOn }},
	{"deadline", "Deadlines (YYYY-MM-DD), separated by commas or semicolons", func(f *recordDomain.Fields) **string { return &f.Deadline }},
	{"completed-on", "Completion date (YYYY-MM-DD)", func(f *recordDomain.Fields) **string { return &f.CompletedOn }},
	{"project", "Project name", func(f *recordDomain.Fields) **string { return &f.Project }},
	{"description", "Description", func(f *recordDomain.Fields) **string { return &f.Description }},
	{"tracker-id", "External tracker id", func(f *recordDomain.Fields) **string { return &f.TrackerID }},
	{"percent", "Percent complete (0, 25, 50, 75, 100 or 0..1)", func(f *recordDomain.Fields) **string { return &f.Percent }},
	{"owner", "Owner", func(f *recordDomain.Fields) **string { return &f.Owner }},
	{"report", "Include in report (Yes or No)", func(f *recordDomain.Fields) **string { return &f.Report }},
	{"name", "Requester name", func(f *recordDomain.Fields) **string { return &f.Name }},
	{"team-role", "Requester team or role", func(f *recordDomain.Fields) **string { return &f.TeamRole }},
}

func recordFieldFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(fieldFlags))
	for _, ff := range fieldFlags {
		flags = append(flags, &cli.StringFlag{Name: ff.name, Usage: ff.usage})
	}
	return flags
}

// fieldsFromCommand collects the field flags given on the command line. Flags left out
// stay nil so updates keep the stored value.
func fieldsFromCommand(cmd *cli.Command) recordDomain.Fields {
	var fields recordDomain.Fields
	for _, ff := range fieldFlags {
		if !cmd.IsSet(ff.name) {
			continue
		}
		value := cmd.String(ff.name)
		*ff.field(&fields) = &value
	}
	return fields
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "filter",
			Value: "all",
			Usage: "Records to include: all, pending, completed or cancelled",
		},
		&cli.StringFlag{
			Name:  "due",
			Usage: "Only records with a deadline on this date (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:  "completed-from",
			Usage: "Only completed records finished on or after this date (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:  "completed-to",
			Usage: "Only completed records finished on or before this date (YYYY-MM-DD)",
		},
	}
}

func listOptionsFromCommand(cmd *cli.Command) commands.ListOptions {
	opts := commands.ListOptions{
		Due:           cmd.String("due"),
		CompletedFrom: cmd.String("completed-from"),
		CompletedTo:   cmd.String("completed-to"),
	}
	if cmd.IsSet("filter") {
		opts.Filter = cmd.String("filter")
	}
	return opts
}

func getRecordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add",
			Usage: "Add a record",
			Flags: append(recordFieldFlags(), formatFlag()),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecords(ctx, func(useCase recordUseCase.RecordUseCase, logger *slog.Logger) error {
					return commands.RunAddRecord(
						ctx,
						useCase,
						logger,
						commands.DefaultIO().Writer,
						fieldsFromCommand(cmd),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "update",
			Usage: "Change fields of a record",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Required: true, Usage: "Record id"},
				formatFlag(),
			}, recordFieldFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecords(ctx, func(useCase recordUseCase.RecordUseCase, logger *slog.Logger) error {
					return commands.RunUpdateRecord(
						ctx,
						useCase,
						logger,
						commands.DefaultIO().Writer,
						cmd.String("id"),
						fieldsFromCommand(cmd),
						time.Now(),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "get",
			Usage: "Show a record",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Required: true, Usage: "Record id"},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecords(ctx, func(useCase recordUseCase.RecordUseCase, _ *slog.Logger) error {
					return commands.RunGetRecord(
						ctx,
						useCase,
						commands.DefaultIO().Writer,
						cmd.String("id"),
						time.Now(),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "delete",
			Usage: "Delete a record by id or by its line in the list output",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Usage: "Record id"},
				&cli.IntFlag{Name: "line", Aliases: []string{"l"}, Usage: "1-based line in the list output"},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecords(ctx, func(useCase recordUseCase.RecordUseCase, logger *slog.Logger) error {
					return commands.RunDeleteRecord(
						ctx,
						useCase,
						logger,
						commands.DefaultIO().Writer,
						cmd.String("id"),
						int(cmd.Int("line")),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "list",
			Usage: "List records in display order",
			Flags: append(listFlags(), formatFlag()),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecords(ctx, func(useCase recordUseCase.RecordUseCase, _ *slog.Logger) error {
					return commands.RunListRecords(
						ctx,
						useCase,
						commands.DefaultIO().Writer,
						listOptionsFromCommand(cmd),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
