package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/demands/internal/metrics"
	recordDomain "github.com/allisson/demands/internal/record/domain"
)

const metricsDomain = "records"

// recordUseCaseWithMetrics decorates RecordUseCase with metrics instrumentation.
type recordUseCaseWithMetrics struct {
	next    RecordUseCase
	metrics metrics.BusinessMetrics
}

// NewRecordUseCaseWithMetrics wraps a RecordUseCase with metrics recording.
func NewRecordUseCaseWithMetrics(useCase RecordUseCase, m metrics.BusinessMetrics) RecordUseCase {
	return &recordUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *recordUseCaseWithMetrics) observe(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	r.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	r.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Load records metrics for data file loads.
func (r *recordUseCaseWithMetrics) Load(ctx context.Context) error {
	start := time.Now()
	err := r.next.Load(ctx)
	r.observe(ctx, "record_load", start, err)
	return err
}

// Add records metrics for record creation.
func (r *recordUseCaseWithMetrics) Add(ctx context.Context, fields recordDomain.Fields) (uuid.UUID, error) {
	start := time.Now()
	id, err := r.next.Add(ctx, fields)
	r.observe(ctx, "record_add", start, err)
	return id, err
}

// Update records metrics for record updates.
func (r *recordUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	changes recordDomain.Fields,
) (recordDomain.Record, error) {
	start := time.Now()
	record, err := r.next.Update(ctx, id, changes)
	r.observe(ctx, "record_update", start, err)
	return record, err
}

// Get records metrics for record retrieval.
func (r *recordUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (recordDomain.Record, error) {
	start := time.Now()
	record, err := r.next.Get(ctx, id)
	r.observe(ctx, "record_get", start, err)
	return record, err
}

// Delete records metrics for record deletion. A refused delete counts as an error.
func (r *recordUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	start := time.Now()
	deleted, err := r.next.Delete(ctx, id)
	r.observe(ctx, "record_delete", start, refused(deleted, err))
	return deleted, err
}

// DeleteByLine records metrics for deletion by display line.
func (r *recordUseCaseWithMetrics) DeleteByLine(ctx context.Context, line int) (bool, error) {
	start := time.Now()
	deleted, err := r.next.DeleteByLine(ctx, line)
	r.observe(ctx, "record_delete_line", start, refused(deleted, err))
	return deleted, err
}

func (r *recordUseCaseWithMetrics) View(ctx context.Context) []recordDomain.View {
	start := time.Now()
	views := r.next.View(ctx)
	r.observe(ctx, "record_view", start, nil)
	return views
}

func (r *recordUseCaseWithMetrics) Pending(ctx context.Context) []recordDomain.View {
	start := time.Now()
	views := r.next.Pending(ctx)
	r.observe(ctx, "record_view_pending", start, nil)
	return views
}

func (r *recordUseCaseWithMetrics) DueOn(ctx context.Context, day time.Time) []recordDomain.View {
	start := time.Now()
	views := r.next.DueOn(ctx, day)
	r.observe(ctx, "record_view_due", start, nil)
	return views
}

func (r *recordUseCaseWithMetrics) Completed(ctx context.Context) []recordDomain.View {
	start := time.Now()
	views := r.next.Completed(ctx)
	r.observe(ctx, "record_view_completed", start, nil)
	return views
}

func (r *recordUseCaseWithMetrics) CompletedBetween(
	ctx context.Context,
	from, to time.Time,
) []recordDomain.View {
	start := time.Now()
	views := r.next.CompletedBetween(ctx, from, to)
	r.observe(ctx, "record_view_completed_between", start, nil)
	return views
}

func (r *recordUseCaseWithMetrics) Cancelled(ctx context.Context) []recordDomain.View {
	start := time.Now()
	views := r.next.Cancelled(ctx)
	r.observe(ctx, "record_view_cancelled", start, nil)
	return views
}

// Export records metrics for bulk exports of a selection.
func (r *recordUseCaseWithMetrics) Export(
	ctx context.Context,
	path string,
	views []recordDomain.View,
) (int, error) {
	start := time.Now()
	n, err := r.next.Export(ctx, path, views)
	r.observe(ctx, "record_export", start, err)
	return n, err
}

// ExportAll records metrics for bulk exports of the whole view.
func (r *recordUseCaseWithMetrics) ExportAll(ctx context.Context, path string) (int, error) {
	start := time.Now()
	n, err := r.next.ExportAll(ctx, path)
	r.observe(ctx, "record_export_all", start, err)
	return n, err
}

// Import records metrics for bulk imports.
func (r *recordUseCaseWithMetrics) Import(ctx context.Context, path string) (int, error) {
	start := time.Now()
	n, err := r.next.Import(ctx, path)
	r.observe(ctx, "record_import", start, err)
	return n, err
}

// ExportBackup records metrics for encrypted backups.
func (r *recordUseCaseWithMetrics) ExportBackup(
	ctx context.Context,
	path string,
	payload json.RawMessage,
) (int, error) {
	start := time.Now()
	n, err := r.next.ExportBackup(ctx, path, payload)
	r.observe(ctx, "record_backup", start, err)
	return n, err
}

// ImportBackup records metrics for backup restores.
func (r *recordUseCaseWithMetrics) ImportBackup(ctx context.Context, path string) (json.RawMessage, error) {
	start := time.Now()
	payload, err := r.next.ImportBackup(ctx, path)
	r.observe(ctx, "record_restore", start, err)
	return payload, err
}

var errDeleteRefused = recordDomain.ErrRecordCompleted

func refused(deleted bool, err error) error {
	if err != nil {
		return err
	}
	if !deleted {
		return errDeleteRefused
	}
	return nil
}
