// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/allisson/demands/internal/app"
	apperrors "github.com/allisson/demands/internal/errors"
	"github.com/allisson/demands/internal/record/http/dto"
)

// Output formats accepted by the --format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// validateFormat rejects output formats other than text and json.
func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	default:
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid format: %s (valid options: text, json)", format)
	}
}

// parseRecordID parses a record id given on the command line.
func parseRecordID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid record id: %s", value)
	}
	return id, nil
}

// writeJSON writes v as indented JSON for machine consumption.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// writeRecordText writes every field of a record, one per line.
func writeRecordText(w io.Writer, r dto.RecordResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"ID", r.ID},
		{"Urgent", r.Urgent},
		{"Status", r.Status},
		{"Timing", r.Timing},
		{"Priority", r.Priority},
		{"Registered On", r.RegisteredOn},
		{"Deadline", strings.Join(r.Deadlines, ", ")},
		{"Completed On", r.CompletedOn},
		{"Project", r.Project},
		{"Description", r.Description},
		{"Tracker ID", r.TrackerID},
		{"Percent Complete", r.Percent},
		{"Owner", r.Owner},
		{"Report", r.Report},
		{"Name", r.Name},
		{"Team/Role", r.TeamRole},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

// writeListText writes one line per record in display order.
func writeListText(w io.Writer, list dto.ListRecordsResponse) error {
	if len(list.Data) == 0 {
		_, err := fmt.Fprintln(w, "No records found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tURGENT\tSTATUS\tTIMING\tPRIORITY\tDEADLINE\tPROJECT\tDESCRIPTION\tPERCENT\tOWNER")
	for _, r := range list.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Sequence, r.ID, r.Urgent, r.Status, r.Timing, r.Priority,
			strings.Join(r.Deadlines, ", "), r.Project, r.Description, r.Percent, r.Owner,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d record(s)\n", len(list.Data))
	return err
}
