package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
	apperrors "github.com/allisson/demands/internal/errors"
	recordDomain "github.com/allisson/demands/internal/record/domain"
	recordService "github.com/allisson/demands/internal/record/service"
)

// recordStore implements the RecordUseCase interface.
type recordStore struct {
	repo        RecordRepository
	sealed      SealedStore
	plain       PlainStore
	validator   *recordService.RecordValidator
	exportCodec *recordService.ExportCodec
	backupCodec *recordService.BackupCodec
	clock       func() time.Time
	logger      *slog.Logger

	records []recordDomain.Record
}

// Load reads the data file, repairs ids, validates every row and persists the result.
func (s *recordStore) Load(ctx context.Context) error {
	rows, kind, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	records := make([]recordDomain.Record, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	repaired := 0

	for _, row := range rows {
		id, err := uuid.Parse(strings.TrimSpace(row.ID))
		if _, dup := seen[id]; err != nil || id == uuid.Nil || dup {
			if row.ID != "" {
				s.logger.Warn("replacing invalid record id",
					slog.Int("line", row.Line),
					slog.String("id", row.ID),
				)
			}
			id = uuid.Must(uuid.NewV7())
			repaired++
		}
		seen[id] = struct{}{}

		record, err := s.validator.Build(id, row.Fields)
		if err != nil {
			return apperrors.Wrap(recordDomain.NewLineError(row.Line, err), "data file")
		}
		records = append(records, record)
	}

	if err := s.repo.Save(ctx, records); err != nil {
		return err
	}
	s.records = records

	s.logger.Info("records loaded",
		slog.Int("count", len(records)),
		slog.Int("repaired_ids", repaired),
		slog.Bool("upgraded_legacy_plaintext", kind == cryptoDomain.LegacyPlaintext),
	)
	return nil
}

// Add validates fields, assigns a new id and persists the new record.
func (s *recordStore) Add(ctx context.Context, fields recordDomain.Fields) (uuid.UUID, error) {
	record, err := s.validator.Build(uuid.Must(uuid.NewV7()), fields)
	if err != nil {
		return uuid.Nil, err
	}

	next := append(slices.Clone(s.records), record)
	if err := s.commit(ctx, next); err != nil {
		return uuid.Nil, err
	}

	s.logger.Debug("record added", slog.String("id", record.ID.String()))
	return record.ID, nil
}

// Update merges changes onto the record and persists the re-validated result.
func (s *recordStore) Update(
	ctx context.Context,
	id uuid.UUID,
	changes recordDomain.Fields,
) (recordDomain.Record, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return recordDomain.Record{}, recordDomain.ErrRecordNotFound
	}

	record, err := s.validator.Merge(s.records[idx], changes)
	if err != nil {
		return recordDomain.Record{}, err
	}

	next := slices.Clone(s.records)
	next[idx] = record
	if err := s.commit(ctx, next); err != nil {
		return recordDomain.Record{}, err
	}

	s.logger.Debug("record updated", slog.String("id", id.String()))
	return record.Clone(), nil
}

// Get returns a copy of the record with the given id.
func (s *recordStore) Get(ctx context.Context, id uuid.UUID) (recordDomain.Record, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return recordDomain.Record{}, recordDomain.ErrRecordNotFound
	}
	return s.records[idx].Clone(), nil
}

// Delete removes the record unless it is unknown or Completed.
func (s *recordStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	if s.records[idx].IsCompleted() {
		s.logger.Warn("refusing to delete completed record", slog.String("id", id.String()))
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.records), idx, idx+1)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.logger.Debug("record deleted", slog.String("id", id.String()))
	return true, nil
}

// DeleteByLine deletes the record shown at 1-based position line of View.
func (s *recordStore) DeleteByLine(ctx context.Context, line int) (bool, error) {
	views := s.View(ctx)
	if line < 1 || line > len(views) {
		return false, nil
	}
	return s.Delete(ctx, views[line-1].ID)
}

// View returns the display projection of every record, ordered by priority,
// registration date and id.
func (s *recordStore) View(ctx context.Context) []recordDomain.View {
	today := recordDomain.DateOf(s.clock())
	views := make([]recordDomain.View, 0, len(s.records))
	for i, r := range s.records {
		views = append(views, recordDomain.NewView(r, i+1, today))
	}
	slices.SortStableFunc(views, recordDomain.CompareViews)
	return views
}

// Pending returns the views of records that are neither Completed nor Cancelled.
func (s *recordStore) Pending(ctx context.Context) []recordDomain.View {
	return s.filter(ctx, func(r recordDomain.Record) bool {
		return !r.Status.IsClosed()
	})
}

// DueOn returns the pending views that have day among their deadlines.
func (s *recordStore) DueOn(ctx context.Context, day time.Time) []recordDomain.View {
	d := recordDomain.DateOf(day)
	return s.filter(ctx, func(r recordDomain.Record) bool {
		return !r.Status.IsClosed() && r.HasDeadline(d)
	})
}

// Completed returns the views of Completed records.
func (s *recordStore) Completed(ctx context.Context) []recordDomain.View {
	return s.filter(ctx, func(r recordDomain.Record) bool {
		return r.Status == recordDomain.StatusCompleted
	})
}

// CompletedBetween returns the views of records completed within [start, end].
func (s *recordStore) CompletedBetween(ctx context.Context, start, end time.Time) []recordDomain.View {
	from, to := recordDomain.DateOf(start), recordDomain.DateOf(end)
	return s.filter(ctx, func(r recordDomain.Record) bool {
		return r.Status == recordDomain.StatusCompleted &&
			r.HasCompletionDate() &&
			!r.CompletedOn.Before(from) &&
			!r.CompletedOn.After(to)
	})
}

// Cancelled returns the views of Cancelled records.
func (s *recordStore) Cancelled(ctx context.Context) []recordDomain.View {
	return s.filter(ctx, func(r recordDomain.Record) bool {
		return r.Status == recordDomain.StatusCancelled
	})
}

// Export writes views to a plaintext bulk file and returns the number of rows.
func (s *recordStore) Export(ctx context.Context, path string, views []recordDomain.View) (int, error) {
	data, err := s.exportCodec.Encode(views)
	if err != nil {
		return 0, err
	}
	if err := s.plain.Write(ctx, path, data); err != nil {
		return 0, err
	}
	return len(views), nil
}

// ExportAll exports the whole current view.
func (s *recordStore) ExportAll(ctx context.Context, path string) (int, error) {
	return s.Export(ctx, path, s.View(ctx))
}

// Import replaces every record with the rows of an exported file.
func (s *recordStore) Import(ctx context.Context, path string) (int, error) {
	data, err := s.plain.Read(ctx, path)
	if err != nil {
		return 0, err
	}

	rows, err := s.exportCodec.Decode(data)
	if err != nil {
		return 0, err
	}

	records, err := s.buildAll(rows)
	if err != nil {
		return 0, err
	}
	if err := s.commit(ctx, records); err != nil {
		return 0, err
	}

	s.logger.Info("records imported", slog.String("path", path), slog.Int("count", len(records)))
	return len(records), nil
}

// ExportBackup writes an encrypted backup and returns the number of records in it.
func (s *recordStore) ExportBackup(ctx context.Context, path string, payload json.RawMessage) (int, error) {
	plaintext, err := s.backupCodec.Encode(s.records, payload)
	if err != nil {
		return 0, err
	}
	defer cryptoDomain.Zero(plaintext)

	if err := s.sealed.Write(ctx, path, plaintext); err != nil {
		return 0, err
	}

	s.logger.Info("backup exported", slog.String("path", path), slog.Int("count", len(s.records)))
	return len(s.records), nil
}

// ImportBackup restores every record from an encrypted backup and returns its payload.
func (s *recordStore) ImportBackup(ctx context.Context, path string) (json.RawMessage, error) {
	sealed, err := s.sealed.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	rows, payload, err := s.backupCodec.Decode(sealed.Data)
	if err != nil {
		return nil, err
	}

	records, err := s.buildAll(rows)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, records); err != nil {
		return nil, err
	}

	s.logger.Info("backup restored",
		slog.String("path", path),
		slog.Int("count", len(records)),
		slog.String("format", sealed.Kind.String()),
	)
	return payload, nil
}

// buildAll validates rows into records with fresh ids. The first invalid row aborts.
func (s *recordStore) buildAll(rows []recordDomain.Row) ([]recordDomain.Record, error) {
	records := make([]recordDomain.Record, 0, len(rows))
	for _, row := range rows {
		record, err := s.validator.Build(uuid.Must(uuid.NewV7()), row.Fields)
		if err != nil {
			return nil, recordDomain.NewLineError(row.Line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// commit persists next and only then makes it the in-memory state.
func (s *recordStore) commit(ctx context.Context, next []recordDomain.Record) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.records = next
	return nil
}

func (s *recordStore) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.records, func(r recordDomain.Record) bool {
		return r.ID == id
	})
}

func (s *recordStore) filter(ctx context.Context, keep func(recordDomain.Record) bool) []recordDomain.View {
	views := s.View(ctx)
	return slices.DeleteFunc(views, func(v recordDomain.View) bool {
		return !keep(v.Record)
	})
}

// NewRecordStore creates the record store and loads the data file.
func NewRecordStore(
	ctx context.Context,
	repo RecordRepository,
	sealed SealedStore,
	plain PlainStore,
	validator *recordService.RecordValidator,
	exportCodec *recordService.ExportCodec,
	backupCodec *recordService.BackupCodec,
	clock func() time.Time,
	logger *slog.Logger,
) (RecordUseCase, error) {
	s := &recordStore{
		repo:        repo,
		sealed:      sealed,
		plain:       plain,
		validator:   validator,
		exportCodec: exportCodec,
		backupCodec: backupCodec,
		clock:       clock,
		logger:      logger,
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
