package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// allowedExtensions is the ingestion allow-list, compared case-insensitively.
var allowedExtensions = map[string]bool{".csv": true}

// validateFilename runs the boundary checks that precede parsing.
func validateFilename(name string) *UploadError {
	if strings.TrimSpace(name) == "" {
		return uploadErr(ErrEmptyFilename, nil)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return uploadErr(ErrUnsupportedExtension, fmt.Errorf("extension %q", ext))
	}
	return nil
}

// missingMarkers lists the field spellings treated as an explicit
// missing value, after trimming, case-insensitive.
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"nan":  true,
}

func isMissing(raw string) bool {
	return missingMarkers[strings.ToLower(strings.TrimSpace(raw))]
}

// parseCSV builds a Table from raw upload bytes. The first record is the
// header; blank header fields get Column_N fallback names and duplicates
// are suffixed so column names stay unique. Data rows are normalized to
// header width: short rows are padded with missing cells, excess fields
// are dropped. An empty input parses to a zero-column table, not an
// error; the chart selection step is what rejects it.
func parseCSV(r io.Reader, maxRows int) (*Table, *UploadError) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, uploadErr(ErrParse, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	if maxRows > 0 && len(records)-1 > maxRows {
		return nil, uploadErr(ErrParse, fmt.Errorf("too many rows (%d > %d)", len(records)-1, maxRows))
	}

	header := records[0]
	columns := make([]Column, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		// suffixes keep climbing until the name is free, so a suffixed
		// name can never collide with a later literal header
		name := h
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", h, n)
		}
		used[name] = true
		columns[i] = Column{Name: name}
	}

	rows := make([][]Cell, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]Cell, len(columns))
		for i := range columns {
			if i < len(rec) {
				raw := rec[i]
				row[i] = Cell{Raw: raw, Missing: isMissing(raw)}
			} else {
				row[i] = Cell{Missing: true}
			}
		}
		rows = append(rows, row)
	}

	t := &Table{Columns: columns, Rows: rows}
	inferColumnKinds(t)
	return t, nil
}

// inferColumnKinds records each column's kind once at parse time. A
// column counts as numeric when at least 80% of its non-missing cells
// parse as float64, and at least one does.
func inferColumnKinds(t *Table) {
	for col := range t.Columns {
		numeric, total := 0, 0
		for _, row := range t.Rows {
			cell := row[col]
			if cell.Missing {
				continue
			}
			total++
			if _, err := strconv.ParseFloat(strings.TrimSpace(cell.Raw), 64); err == nil {
				numeric++
			}
		}
		if total > 0 && float64(numeric)/float64(total) >= 0.8 {
			t.Columns[col].Kind = KindNumeric
		} else {
			t.Columns[col].Kind = KindText
		}
	}
}

// numericValues collects the parseable non-missing values of one column,
// in row order.
func numericValues(t *Table, col int) []float64 {
	var values []float64
	for _, row := range t.Rows {
		cell := row[col]
		if cell.Missing {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell.Raw), 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}
