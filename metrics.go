package main

import (
	"fmt"
	"strings"
)

// computeMetrics is a pure function over the table: deterministic for
// the same contents and row order, and it never mutates its input.
// Zero-row and zero-column tables are valid inputs.
func computeMetrics(t *Table) MetricsReport {
	report := MetricsReport{
		TotalRows:    len(t.Rows),
		TotalColumns: len(t.Columns),
	}

	for _, row := range t.Rows {
		for _, cell := range row {
			if cell.Missing {
				report.MissingValues++
			}
		}
	}

	// Hash-based fingerprints keep duplicate detection linear. The first
	// occurrence of any duplicate set is not counted; rows compare by
	// full contents, missing markers included.
	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		fp := rowFingerprint(row)
		if seen[fp] {
			report.DuplicateRows++
		} else {
			seen[fp] = true
		}
	}

	return report
}

// rowFingerprint encodes a row so that two rows collide exactly when
// they are value-for-value equal. Missing cells map to a single marker
// whatever their raw spelling; non-missing cells are length-prefixed so
// field contents cannot forge a separator.
func rowFingerprint(row []Cell) string {
	var b strings.Builder
	for _, cell := range row {
		if cell.Missing {
			b.WriteString("m;")
			continue
		}
		fmt.Fprintf(&b, "%d:%s;", len(cell.Raw), cell.Raw)
	}
	return b.String()
}

// selectChartColumn picks the histogram subject: the first column in the
// table's declared order. A zero-column table has no subject and yields
// the empty-table error, which callers surface as a page notice rather
// than a fault.
func selectChartColumn(t *Table) (string, *UploadError) {
	if len(t.Columns) == 0 {
		return "", uploadErr(ErrEmptyTable, nil)
	}
	return t.Columns[0].Name, nil
}
