package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	apperrors "github.com/allisson/demands/internal/errors"
	recordDomain "github.com/allisson/demands/internal/record/domain"
	"github.com/allisson/demands/internal/record/http/dto"
	recordUseCase "github.com/allisson/demands/internal/record/usecase"
	customValidation "github.com/allisson/demands/internal/validation"
)

// RunAddRecord validates and stores a new record and prints its id.
func RunAddRecord(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	logger *slog.Logger,
	writer io.Writer,
	fields recordDomain.Fields,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	id, err := useCase.Add(ctx, fields)
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	logger.Info("record added", slog.String("id", id.String()))

	if format == FormatJSON {
		return writeJSON(writer, dto.CreateRecordResponse{ID: id.String()})
	}
	_, err = fmt.Fprintf(writer, "Record created: %s\n", id)
	return err
}

// RunUpdateRecord applies the supplied fields to an existing record and prints the
// result. Fields left out keep their value.
func RunUpdateRecord(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	logger *slog.Logger,
	writer io.Writer,
	idStr string,
	changes recordDomain.Fields,
	today time.Time,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	id, err := parseRecordID(idStr)
	if err != nil {
		return err
	}
	if changes.IsEmpty() {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "at least one field must be changed")
	}

	record, err := useCase.Update(ctx, id, changes)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	logger.Info("record updated", slog.String("id", id.String()))

	return writeRecord(writer, dto.MapRecordToResponse(record, recordDomain.DateOf(today)), format)
}

// RunGetRecord prints a single record.
func RunGetRecord(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	writer io.Writer,
	idStr string,
	today time.Time,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	id, err := parseRecordID(idStr)
	if err != nil {
		return err
	}

	record, err := useCase.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	return writeRecord(writer, dto.MapRecordToResponse(record, recordDomain.DateOf(today)), format)
}

// RunDeleteRecord deletes a record by id or by its line in the list output. Exactly
// one of idStr and line must be given. Completed records are never deleted.
func RunDeleteRecord(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	logger *slog.Logger,
	writer io.Writer,
	idStr string,
	line int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if (idStr == "") == (line == 0) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "exactly one of --id or --line is required")
	}

	var (
		target  string
		deleted bool
		err     error
	)
	if idStr != "" {
		target = idStr
		deleted, err = deleteByID(ctx, useCase, idStr)
	} else {
		if line < 0 {
			return apperrors.Wrapf(apperrors.ErrInvalidInput, "line must be a positive number, got: %d", line)
		}
		target = fmt.Sprintf("line %d", line)
		deleted, err = useCase.DeleteByLine(ctx, line)
	}
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if !deleted {
		return apperrors.Wrapf(apperrors.ErrConflict, "no record deleted at %s (unknown or completed)", target)
	}

	logger.Info("record deleted", slog.String("target", target))

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"deleted": true, "target": target})
	}
	_, err = fmt.Fprintf(writer, "Record deleted: %s\n", target)
	return err
}

func deleteByID(ctx context.Context, useCase recordUseCase.RecordUseCase, idStr string) (bool, error) {
	id, err := parseRecordID(idStr)
	if err != nil {
		return false, err
	}
	record, err := useCase.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if record.IsCompleted() {
		return false, recordDomain.ErrRecordCompleted
	}
	return useCase.Delete(ctx, id)
}

// ListOptions selects which records RunListRecords prints. Due takes precedence over
// the completion range, which takes precedence over Filter.
type ListOptions struct {
	Filter        string
	Due           string
	CompletedFrom string
	CompletedTo   string
}

// RunListRecords prints records in display order.
func RunListRecords(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	writer io.Writer,
	opts ListOptions,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	views, err := selectViews(ctx, useCase, opts)
	if err != nil {
		return err
	}

	list := dto.MapViewsToListResponse(views)
	if format == FormatJSON {
		return writeJSON(writer, list)
	}
	return writeListText(writer, list)
}

// selectViews validates opts the same way the list endpoint does and runs the
// matching projection.
func selectViews(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	opts ListOptions,
) ([]recordDomain.View, error) {
	query := dto.ListRecordsQuery{
		Filter:        opts.Filter,
		Due:           opts.Due,
		CompletedFrom: opts.CompletedFrom,
		CompletedTo:   opts.CompletedTo,
	}
	if err := query.Validate(); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	switch {
	case query.Due != "":
		due, _ := recordDomain.ParseDate(query.Due)
		return useCase.DueOn(ctx, due), nil
	case query.CompletedFrom != "":
		from, _ := recordDomain.ParseDate(query.CompletedFrom)
		to, _ := recordDomain.ParseDate(query.CompletedTo)
		return useCase.CompletedBetween(ctx, from, to), nil
	case query.Filter == dto.FilterPending:
		return useCase.Pending(ctx), nil
	case query.Filter == dto.FilterCompleted:
		return useCase.Completed(ctx), nil
	case query.Filter == dto.FilterCancelled:
		return useCase.Cancelled(ctx), nil
	default:
		return useCase.View(ctx), nil
	}
}

func writeRecord(w io.Writer, r dto.RecordResponse, format string) error {
	if format == FormatJSON {
		return writeJSON(w, r)
	}
	return writeRecordText(w, r)
}
