package sheets

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// headerScanRows bounds how far ReadLedger looks for a header row.
const headerScanRows = 20

// ParseCSV reads a CSV export, tolerating ragged rows and stray quotes.
// Cells are trimmed.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// TrimHeader drops everything up to and including the header row, located as
// the first row within the scan window mentioning both a model and a serial
// number column, and removes blank rows. Rows are returned unchanged when no
// header is found.
func TrimHeader(rows [][]string) [][]string {
	header := -1
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		if isHeader(rows[i]) {
			header = i
			break
		}
	}
	if header < 0 {
		return rows
	}
	out := make([][]string, 0, len(rows)-header-1)
	for _, row := range rows[header+1:] {
		if !isBlank(row) {
			out = append(out, row)
		}
	}
	return out
}

func isHeader(row []string) bool {
	text := strings.ToLower(strings.Join(row, " "))
	return strings.Contains(text, "model") && (strings.Contains(text, "s/n") || strings.Contains(text, "serial"))
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ReadLedger parses a CSV ledger body and strips its header block.
func ReadLedger(body []byte) ([][]string, error) {
	rows, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return TrimHeader(rows), nil
}
