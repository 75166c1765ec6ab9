// Package ingest turns raw bank CSV exports into canonical
// transactions: it repairs encodings, identifies date/amount/description
// columns across inconsistent layouts, classifies each row, and
// deduplicates against previously imported records.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a decoded CSV export with its header row split off.
type Table struct {
	Headers  []string
	Rows     [][]string
	Encoding string
}

// ReadTable decodes and parses a CSV export. Rows may have ragged
// field counts; missing cells read as empty.
func ReadTable(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("reading input: %w", err)
	}

	text, encName, err := DecodeText(data)
	if err != nil {
		return Table{}, err
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return Table{Encoding: encName}, nil
	}

	// Excel-style exports prepend a UTF-8 BOM; it survives decoding as
	// U+FEFF glued to the first header.
	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	return Table{
		Headers:  headers,
		Rows:     records[1:],
		Encoding: encName,
	}, nil
}

// cell returns the value at column idx of a row, or "" when the row is
// too short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
