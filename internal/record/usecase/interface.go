// Package usecase defines the interfaces and the implementation of the record store:
// loading and repairing the data file, validated mutations, the ordered view and its
// projections, bulk export/import and encrypted backup/restore.
package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
	recordDomain "github.com/allisson/demands/internal/record/domain"
)

// RecordRepository defines the persistence of the whole record table.
type RecordRepository interface {
	Load(ctx context.Context) ([]recordDomain.Row, cryptoDomain.PayloadKind, error)
	Save(ctx context.Context, records []recordDomain.Record) error
}

// SealedStore reads and writes files wrapped in the authenticated envelope.
type SealedStore interface {
	Read(ctx context.Context, path string) (cryptoDomain.Payload, error)
	Write(ctx context.Context, path string, plaintext []byte) error
}

// PlainStore reads and writes unencrypted files.
type PlainStore interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
}

// RecordUseCase defines the record store operations.
//
// The store keeps the full dataset in memory and persists it in full after every
// mutation. It is not safe for concurrent use; callers serialize access.
type RecordUseCase interface {
	// Load reads the data file, repairs ids, validates every row and persists the result.
	Load(ctx context.Context) error
	Add(ctx context.Context, fields recordDomain.Fields) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, changes recordDomain.Fields) (recordDomain.Record, error)
	Get(ctx context.Context, id uuid.UUID) (recordDomain.Record, error)
	// Delete removes a record. It returns false without changes when the record is
	// unknown or Completed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// DeleteByLine deletes the record at 1-based position line of View.
	DeleteByLine(ctx context.Context, line int) (bool, error)

	View(ctx context.Context) []recordDomain.View
	Pending(ctx context.Context) []recordDomain.View
	DueOn(ctx context.Context, day time.Time) []recordDomain.View
	Completed(ctx context.Context) []recordDomain.View
	CompletedBetween(ctx context.Context, start, end time.Time) []recordDomain.View
	Cancelled(ctx context.Context) []recordDomain.View

	Export(ctx context.Context, path string, views []recordDomain.View) (int, error)
	ExportAll(ctx context.Context, path string) (int, error)
	// Import replaces every record with the rows of an exported file. Nothing changes
	// unless every row is valid.
	Import(ctx context.Context, path string) (int, error)

	// ExportBackup writes an encrypted backup holding every record and payload.
	ExportBackup(ctx context.Context, path string, payload json.RawMessage) (int, error)
	// ImportBackup replaces every record with the backup content and returns the
	// opaque payload stored with it.
	ImportBackup(ctx context.Context, path string) (json.RawMessage, error)
}
