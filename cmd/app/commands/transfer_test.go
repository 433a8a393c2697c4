package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
	apperrors "github.com/allisson/demands/internal/errors"
	recordDomain "github.com/allisson/demands/internal/record/domain"
	recordMocks "github.com/allisson/demands/internal/record/usecase/mocks"
)

func TestRunExportRecords(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("everything", func(t *testing.T) {
		mockUseCase := recordMocks.NewMockRecordUseCase(t)
		mockUseCase.On("ExportAll", ctx, "out.csv").Return(3, nil)

		var out bytes.Buffer
		err := RunExportRecords(ctx, mockUseCase, logger, &out, "out.csv", ListOptions{}, "text")

		require.NoError(t, err)
		assert.Equal(t, "Exported 3 record(s): out.csv\n", out.String())
	})

	t.Run("selected-projection", func(t *testing.T) {
		views := []recordDomain.View{
			recordDomain.NewView(sampleRecord(recordDomain.StatusInProgress), 2, today),
		}
		mockUseCase := recordMocks.NewMockRecordUseCase(t)
		mockUseCase.On("Pending", ctx).Return(views)
		mockUseCase.On("Export", ctx, "pending.csv", views).Return(1, nil)

		var out bytes.Buffer
		err := RunExportRecords(ctx, mockUseCase, logger, &out, "pending.csv", ListOptions{Filter: "pending"}, "json")

		require.NoError(t, err)
		assert.Contains(t, out.String(), `"count": 1`)
	})

	t.Run("missing-file", func(t *testing.T) {
		mockUseCase := recordMocks.NewMockRecordUseCase(t)

		err := RunExportRecords(ctx, mockUseCase, logger, &bytes.Buffer{}, "", ListOptions{}, "text")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestRunImportRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockUseCase := recordMocks.NewMockRecordUseCase(t)
		mockUseCase.On("Import", ctx, "in.csv").Return(2, nil)

		var out bytes.Buffer
		err := RunImportRecords(ctx, mockUseCase, &out, "in.csv", "text")

		require.NoError(t, err)
		assert.Equal(t, "Imported 2 record(s): in.csv\n", out.String())
	})

	t.Run("invalid-row-keeps-line", func(t *testing.T) {
		rowErr := recordDomain.NewLineError(4, recordDomain.ErrInvalidDate)
		mockUseCase := recordMocks.NewMockRecordUseCase(t)
		mockUseCase.On("Import", ctx, "in.csv").Return(0, rowErr)

		err := RunImportRecords(ctx, mockUseCase, &bytes.Buffer{}, "in.csv", "text")

		require.Error(t, err)
		var lineErr *recordDomain.LineError
		require.ErrorAs(t, err, &lineErr)
		assert.Equal(t, 4, lineErr.Line)
	})
}

func TestRunBackup(t *testing.T) {
	ctx := context.Background()

	t.Run("with-payload", func(t *testing.T) {
		payload := `{"team":["ana","rui"]}`
		mockUseCase := recordMocks.NewMockRecordUseCase(t)
		mockUseCase.On("ExportBackup", ctx, "backup.enc", json.RawMessage(payload)).Return(5, nil)

		var out bytes.Buffer
		err := RunBackup(ctx, mockUseCase, &out, "backup.enc", payload, "text")

		require.NoError(t, err)
		assert.Equal(t, "Backed up 5 record(s): backup.enc\n", out.String())
	})

	t.Run("without-payload", func(t *testing.T) {
		mockUseCase := recordMocks.NewMockRecordUseCase(t)
		mockUseCase.On("ExportBackup", ctx, "backup.enc", json.RawMessage("")).Return(0, nil)

		err := RunBackup(ctx, mockUseCase, &bytes.Buffer{}, "backup.enc", "", "json")

		require.NoError(t, err)
	})

	t.Run("invalid-payload", func(t *testing.T) {
		mockUseCase := recordMocks.NewMockRecordUseCase(t)

		err := RunBackup(ctx, mockUseCase, &bytes.Buffer{}, "backup.enc", "{team", "text")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "--payload must be valid JSON")
	})
}

func TestRunRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("prints-payload", func(t *testing.T) {
		mockUseCase := recordMocks.NewMockRecordUseCase(t)
		mockUseCase.On("ImportBackup", ctx, "backup.enc").Return(json.RawMessage(`{"team":[]}`), nil)

		var out bytes.Buffer
		err := RunRestore(ctx, mockUseCase, &out, "backup.enc", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Restored backup from backup.enc")
		assert.Contains(t, out.String(), `Payload: {"team":[]}`)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := recordMocks.NewMockRecordUseCase(t)
		mockUseCase.On("ImportBackup", ctx, "backup.enc").Return(json.RawMessage(`{"team":[]}`), nil)

		var out bytes.Buffer
		err := RunRestore(ctx, mockUseCase, &out, "backup.enc", "json")

		require.NoError(t, err)
		var resp struct {
			Path    string          `json:"path"`
			Payload json.RawMessage `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
		assert.Equal(t, "backup.enc", resp.Path)
		assert.JSONEq(t, `{"team":[]}`, string(resp.Payload))
	})

	t.Run("tampered-backup", func(t *testing.T) {
		mockUseCase := recordMocks.NewMockRecordUseCase(t)
		mockUseCase.On("ImportBackup", ctx, "backup.enc").Return(nil, cryptoDomain.ErrTagMismatch)

		err := RunRestore(ctx, mockUseCase, &bytes.Buffer{}, "backup.enc", "text")

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrIntegrity)
	})
}
