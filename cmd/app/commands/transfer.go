package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	apperrors "github.com/allisson/demands/internal/errors"
	recordUseCase "github.com/allisson/demands/internal/record/usecase"
)

// RunExportRecords writes records to a plaintext delimited file. With zero options the
// whole list is exported, otherwise only the selected projection.
func RunExportRecords(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	logger *slog.Logger,
	writer io.Writer,
	path string,
	opts ListOptions,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if path == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "--file is required")
	}

	var (
		count int
		err   error
	)
	if opts == (ListOptions{}) {
		count, err = useCase.ExportAll(ctx, path)
	} else {
		views, selectErr := selectViews(ctx, useCase, opts)
		if selectErr != nil {
			return selectErr
		}
		count, err = useCase.Export(ctx, path, views)
	}
	if err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}

	logger.Info("records exported", slog.String("path", path), slog.Int("count", count))

	return writeTransferResult(writer, format, "Exported", path, count)
}

// RunImportRecords replaces every record with the rows of an exported file. Nothing
// changes unless every row is valid.
func RunImportRecords(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	writer io.Writer,
	path string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if path == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "--file is required")
	}

	count, err := useCase.Import(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to import records: %w", err)
	}

	return writeTransferResult(writer, format, "Imported", path, count)
}

// RunBackup writes an encrypted backup of every record. payload is an optional JSON
// object stored alongside the records and handed back by RunRestore.
func RunBackup(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	writer io.Writer,
	path string,
	payload string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if path == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "--file is required")
	}
	if payload != "" && !json.Valid([]byte(payload)) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "--payload must be valid JSON")
	}

	count, err := useCase.ExportBackup(ctx, path, json.RawMessage(payload))
	if err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	return writeTransferResult(writer, format, "Backed up", path, count)
}

// RunRestore replaces every record with the content of an encrypted backup and prints
// the payload stored with it.
func RunRestore(
	ctx context.Context,
	useCase recordUseCase.RecordUseCase,
	writer io.Writer,
	path string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if path == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "--file is required")
	}

	payload, err := useCase.ImportBackup(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"path": path, "payload": payload})
	}
	_, err = fmt.Fprintf(writer, "Restored backup from %s\nPayload: %s\n", path, payload)
	return err
}

func writeTransferResult(w io.Writer, format, verb, path string, count int) error {
	if format == FormatJSON {
		return writeJSON(w, map[string]any{"path": path, "count": count})
	}
	_, err := fmt.Fprintf(w, "%s %d record(s): %s\n", verb, count, path)
	return err
}
