package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	recordDomain "github.com/allisson/demands/internal/record/domain"
)

// BackupVersion is written to the metadata row of every backup.
const BackupVersion = 1

// Backup sections.
const (
	SectionMetadata    = "metadata"
	SectionTeamControl = "team_control"
	SectionDemand      = "demand"
)

var backupHeader = []string{"section", "payload"}

// emptyPayload is the opaque payload used when none is given or found.
var emptyPayload = json.RawMessage(`{}`)

type backupMetadata struct {
	Version int `json:"version"`
}

// BackupCodec reads and writes the backup plaintext: a ';' separated two column table
// (section, payload) holding one metadata row, one team_control row with an opaque
// JSON object and one demand row per record, each payload a JSON object.
type BackupCodec struct{}

// NewBackupCodec creates a BackupCodec.
func NewBackupCodec() *BackupCodec {
	return &BackupCodec{}
}

// Encode writes records and the opaque payload. An empty payload is stored as {}.
// The output starts with a UTF-8 BOM.
func (c *BackupCodec) Encode(records []recordDomain.Record, payload json.RawMessage) ([]byte, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = emptyPayload
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", recordDomain.ErrInvalidBackup)
	}

	metadata, err := marshalJSON(backupMetadata{Version: BackupVersion})
	if err != nil {
		return nil, err
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		return nil, fmt.Errorf("failed to compact payload: %w", err)
	}

	rows := [][]string{
		{SectionMetadata, metadata},
		{SectionTeamControl, compact.String()},
	}
	for _, r := range records {
		demand, err := marshalJSON(r.Columns())
		if err != nil {
			return nil, err
		}
		rows = append(rows, []string{SectionDemand, demand})
	}

	data, err := writeTable(DataDelimiter, backupHeader, rows)
	if err != nil {
		return nil, err
	}
	return append(slices.Clone(utf8BOM), data...), nil
}

// Decode parses the backup plaintext into demand rows and the opaque payload. A
// team_control payload that is not a JSON object is ignored and unknown sections are
// skipped.
func (c *BackupCodec) Decode(data []byte) ([]recordDomain.Row, json.RawMessage, error) {
	header, records, err := readTable(data, DataDelimiter)
	if err != nil {
		return nil, nil, err
	}
	if !slices.Equal(header, backupHeader) {
		return nil, nil, fmt.Errorf("%w: unexpected header", recordDomain.ErrInvalidBackup)
	}

	payload := json.RawMessage(`{}`)
	var rows []recordDomain.Row

	for i, record := range records {
		line := i + 2
		columns := zipColumns(header, record)
		section := strings.ToLower(strings.TrimSpace(columns["section"]))
		raw := []byte(columns["payload"])
		if len(bytes.TrimSpace(raw)) == 0 {
			raw = emptyPayload
		}

		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, nil, recordDomain.NewLineError(line, fmt.Errorf("%w: malformed JSON", recordDomain.ErrInvalidBackup))
		}

		switch section {
		case SectionMetadata:
			var meta backupMetadata
			if obj, ok := value.(map[string]any); ok && obj["version"] != nil {
				if err := json.Unmarshal(raw, &meta); err != nil || meta.Version != BackupVersion {
					return nil, nil, recordDomain.NewLineError(line, fmt.Errorf("%w: unsupported version", recordDomain.ErrInvalidBackup))
				}
			}

		case SectionTeamControl:
			if _, ok := value.(map[string]any); ok {
				payload = json.RawMessage(slices.Clone(raw))
			}

		case SectionDemand:
			obj, ok := value.(map[string]any)
			if !ok {
				return nil, nil, recordDomain.NewLineError(line, fmt.Errorf("%w: demand is not an object", recordDomain.ErrInvalidBackup))
			}
			columns, err := stringColumns(obj)
			if err != nil {
				return nil, nil, recordDomain.NewLineError(line, err)
			}
			rows = append(rows, recordDomain.Row{
				Line:   line,
				ID:     columns[recordDomain.ColumnID],
				Fields: recordDomain.FieldsFromColumns(columns),
			})
		}
	}

	return rows, payload, nil
}

func stringColumns(obj map[string]any) (map[string]string, error) {
	columns := make(map[string]string, len(obj))
	for k, v := range obj {
		switch s := v.(type) {
		case string:
			columns[k] = s
		case nil:
			columns[k] = ""
		default:
			return nil, fmt.Errorf("%w: column %q is not a string", recordDomain.ErrInvalidBackup, k)
		}
	}
	return columns, nil
}

func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
