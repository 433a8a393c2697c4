package service

import (
	"slices"
	"strconv"

	recordDomain "github.com/allisson/demands/internal/record/domain"
)

// ExportCodec reads and writes the plaintext bulk format meant for spreadsheet tools:
// a UTF-8 BOM, the ExportColumns header and one row per view, with the deadline list
// flattened to one comma separated line.
type ExportCodec struct {
	delimiter rune
}

// NewExportCodec creates an ExportCodec using delimiter between columns.
func NewExportCodec(delimiter rune) *ExportCodec {
	return &ExportCodec{delimiter: delimiter}
}

// Encode writes views in the given order.
func (c *ExportCodec) Encode(views []recordDomain.View) ([]byte, error) {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			strconv.Itoa(v.Sequence),
			v.Urgent,
			v.Status,
			v.Timing.String(),
			v.Priority,
			v.RegisteredOn,
			recordDomain.FormatDeadlines(v.Record.Deadlines, ","),
			v.CompletedOn,
			v.Project,
			v.Description,
			v.TrackerID,
			v.Percent,
			v.Owner,
			v.Report,
			v.Name,
			v.TeamRole,
		})
	}

	data, err := writeTable(c.delimiter, recordDomain.ExportColumns, rows)
	if err != nil {
		return nil, err
	}
	return append(slices.Clone(utf8BOM), data...), nil
}

// Decode parses an exported file. The header must match ExportColumns exactly, in
// order; the display-only ID and Timing columns are ignored.
func (c *ExportCodec) Decode(data []byte) ([]recordDomain.Row, error) {
	header, records, err := readTable(data, c.delimiter)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, recordDomain.ExportColumns) {
		return nil, recordDomain.ErrHeaderMismatch
	}

	rows := make([]recordDomain.Row, 0, len(records))
	for i, record := range records {
		rows = append(rows, recordDomain.Row{
			Line:   i + 2,
			Fields: recordDomain.FieldsFromColumns(zipColumns(header, record)),
		})
	}
	return rows, nil
}
