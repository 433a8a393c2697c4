package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	apperrors "github.com/allisson/demands/internal/errors"
	recordDomain "github.com/allisson/demands/internal/record/domain"
)

// DataDelimiter separates columns in the data file and in the backup plaintext.
const DataDelimiter = ';'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TableCodec reads and writes the data file plaintext: a ';' separated table with a
// header row and one row per record, in DataColumns order.
type TableCodec struct{}

// NewTableCodec creates a TableCodec.
func NewTableCodec() *TableCodec {
	return &TableCodec{}
}

// Encode writes the header and one row per record.
func (c *TableCodec) Encode(records []recordDomain.Record) ([]byte, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		columns := r.Columns()
		row := make([]string, len(recordDomain.DataColumns))
		for i, name := range recordDomain.DataColumns {
			row[i] = columns[name]
		}
		rows = append(rows, row)
	}
	return writeTable(DataDelimiter, recordDomain.DataColumns, rows)
}

// Decode parses the data file plaintext. Columns are matched by header name, so files
// written with another column order or with legacy column names still load. Empty
// input yields no rows.
func (c *TableCodec) Decode(data []byte) ([]recordDomain.Row, error) {
	header, records, err := readTable(data, DataDelimiter)
	if err != nil {
		return nil, err
	}

	rows := make([]recordDomain.Row, 0, len(records))
	for i, record := range records {
		columns := zipColumns(header, record)
		rows = append(rows, recordDomain.Row{
			Line:   i + 2,
			ID:     columns[recordDomain.ColumnID],
			Fields: recordDomain.FieldsFromColumns(columns),
		})
	}
	return rows, nil
}

func writeTable(delimiter rune, header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}

	return buf.Bytes(), nil
}

// readTable parses delimited text, dropping a leading UTF-8 BOM. Rows may be shorter
// or longer than the header. A malformed row fails with a LineError.
func readTable(data []byte, delimiter rune) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.Comma = delimiter
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, recordDomain.NewLineError(1, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()))
	}

	var records [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, recordDomain.NewLineError(len(records)+2, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()))
		}
		records = append(records, record)
	}

	return slices.Clone(header), records, nil
}

func zipColumns(header, record []string) map[string]string {
	columns := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(record) {
			columns[name] = record[i]
		} else {
			columns[name] = ""
		}
	}
	return columns
}
