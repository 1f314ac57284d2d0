package tabular

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
)

// ErrNoSheets is returned when a workbook contains no sheets.
var ErrNoSheets = errors.New("workbook contains no sheets")

// ReadSpreadsheet parses XLSX bytes into a Table. Only the first sheet is
// read; rows are streamed rather than loaded wholesale.
func ReadSpreadsheet(data []byte, hasHeader bool) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	iter, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	defer iter.Close()

	var records [][]string
	width := 0
	for iter.Next() {
		record, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("reading sheet row: %w", err)
		}
		if len(record) > width {
			width = len(record)
		}
		records = append(records, record)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterating sheet rows: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	var headers []string
	if hasHeader {
		headers = make([]string, len(records[0]))
		for i, h := range records[0] {
			headers[i] = strings.TrimSpace(h)
		}
		records = records[1:]
	} else {
		headers = syntheticHeaders(width)
	}

	rows := make([]model.ImportedRow, 0, len(records))
	for _, record := range records {
		row := make(model.ImportedRow, len(record))
		for i, value := range record {
			if i < len(headers) && headers[i] != "" {
				row[headers[i]] = model.TextCell(value)
			}
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}, nil
}
