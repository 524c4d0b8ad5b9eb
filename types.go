package main

import "time"

// ColumnKind is decided once at parse time and recorded on the column,
// so metrics and charting never re-infer types.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
)

func (k ColumnKind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

type Column struct {
	Name string
	Kind ColumnKind
}

// Cell holds the raw field text plus an explicit missing marker.
// Missing cells compare equal to each other regardless of raw spelling.
type Cell struct {
	Raw     string
	Missing bool
}

// Table is the request-scoped tabular structure built from one upload.
// Invariants: column names are unique and every row has exactly
// len(Columns) cells. It is discarded when the request ends.
type Table struct {
	Columns []Column
	Rows    [][]Cell
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// MetricsReport is the four-entry summary for one table.
type MetricsReport struct {
	MissingValues int `json:"missing_values"`
	DuplicateRows int `json:"duplicate_rows"`
	TotalRows     int `json:"total_rows"`
	TotalColumns  int `json:"total_columns"`
}

// ChartSpec names the column chosen for the histogram and the table
// it summarizes.
type ChartSpec struct {
	Table  *Table
	Column string
}

type UploadInfo struct {
	FileName   string
	FileSize   int64
	UploadTime time.Time
}

// uploadPage feeds the upload form template; Error carries the single
// user-facing message when validation or parsing fails.
type uploadPage struct {
	Error string
}

// reportPage feeds the results template.
type reportPage struct {
	FileName    string
	FileSize    string
	Timestamp   string
	Report      MetricsReport
	Columns     []Column
	ChartColumn string
	ChartPNG    string // base64 PNG, empty when no chart was rendered
	ChartNotice string // shown instead of the chart when empty
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
