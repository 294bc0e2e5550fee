// Package dataset loads entity records from CSV and JSON files.
package dataset

import (
	"encoding/csv"
	"fmt"
)

// Row maps column names to cell values. CSV cells are strings; JSON cells
// keep their decoded type.
type Row map[string]any

// LoadCSV reads a CSV file and returns rows as maps of column to value.
// The first row is treated as headers (column names).
func LoadCSV(path string) ([]Row, error) {
	f, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	rows := make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// SelectRange returns rows in the given range [start, end] (1-based, inclusive).
// Row 1 is the first data row (after headers).
func SelectRange(rows []Row, start, end int) ([]Row, error) {
	if start < 1 {
		return nil, fmt.Errorf("range start must be >= 1, got %d", start)
	}
	if end < start {
		return nil, fmt.Errorf("range end (%d) must be >= start (%d)", end, start)
	}

	// Clamp end to available rows
	if end > len(rows) {
		end = len(rows)
	}

	// If start is beyond available rows, return empty
	if start > len(rows) {
		return []Row{}, nil
	}

	return rows[start-1 : end], nil
}
