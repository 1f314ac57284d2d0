package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
)

// ErrEmptyTable is returned when a file contains no rows at all.
var ErrEmptyTable = errors.New("table contains no rows")

// Table is the common output of both readers: column labels in source
// order plus one ImportedRow per data row.
type Table struct {
	Headers []string
	Rows    []model.ImportedRow
}

func newCSVReader(in io.Reader, delimiter rune) *csv.Reader {
	r := csv.NewReader(in)
	r.Comma = delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r
}

// ReadDelimited parses CSV/TSV bytes into a Table. The delimiter is
// sniffed from the first non-empty line. A reader-level failure is
// returned as-is; the caller treats it as a file-level error because row
// boundaries cannot be recovered after corruption.
func ReadDelimited(data []byte, hasHeader bool) (*Table, error) {
	data = NormalizeBytes(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyTable
	}
	delimiter := DetectDelimiter(firstNonEmptyLine(data))

	if hasHeader {
		return readWithHeader(data, delimiter)
	}
	return readHeaderless(data, delimiter)
}

func readWithHeader(data []byte, delimiter rune) (*Table, error) {
	headerReader := newCSVReader(bytes.NewReader(data), delimiter)
	headers, err := headerReader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	// Configure gocsv
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return newCSVReader(in, delimiter)
	})

	records, err := gocsv.CSVToMaps(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading delimited rows: %w", err)
	}

	rows := make([]model.ImportedRow, 0, len(records))
	for _, record := range records {
		row := make(model.ImportedRow, len(record))
		for key, value := range record {
			row[strings.TrimSpace(key)] = model.TextCell(value)
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}, nil
}

func readHeaderless(data []byte, delimiter rune) (*Table, error) {
	reader := newCSVReader(bytes.NewReader(data), delimiter)
	var records [][]string
	width := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading delimited rows: %w", err)
		}
		if len(record) > width {
			width = len(record)
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	headers := syntheticHeaders(width)
	rows := make([]model.ImportedRow, 0, len(records))
	for _, record := range records {
		row := make(model.ImportedRow, len(record))
		for i, value := range record {
			row[headers[i]] = model.TextCell(value)
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}, nil
}

func syntheticHeaders(width int) []string {
	headers := make([]string, width)
	for i := range headers {
		headers[i] = fmt.Sprintf("Col%d", i+1)
	}
	return headers
}
