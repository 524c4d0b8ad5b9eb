package main

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	histogramBins   = 10
	maxCategoryBars = 12
)

// renderHistogram turns a ChartSpec into PNG bytes. Numeric columns get
// equal-width bins over the observed value range; text columns get
// per-value frequency bars capped to the most frequent values. A nil
// byte slice with nil error means there was nothing to plot.
func renderHistogram(spec ChartSpec) ([]byte, error) {
	col := -1
	for i, c := range spec.Table.Columns {
		if c.Name == spec.Column {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("column %q not in table", spec.Column)
	}

	var bars []chart.Value
	if spec.Table.Columns[col].Kind == KindNumeric {
		bars = numericBars(spec.Table, col)
	} else {
		bars = categoryBars(spec.Table, col)
	}
	if len(bars) == 0 {
		return nil, nil
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("Histogram of %s", spec.Column),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		Width:      640,
		Height:     360,
		BarWidth:   barWidthFor(len(bars)),
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return buf.Bytes(), nil
}

// numericBars bins the column's parseable values into equal-width
// buckets. A constant column collapses to a single bar.
func numericBars(t *Table, col int) []chart.Value {
	values := numericValues(t, col)
	if len(values) == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []chart.Value{{Value: float64(len(values)), Label: fmt.Sprintf("%.4g", lo)}}
	}

	width := (hi - lo) / histogramBins
	counts := make([]int, histogramBins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= histogramBins {
			// the maximum lands in the last bucket
			idx = histogramBins - 1
		}
		counts[idx]++
	}

	bars := make([]chart.Value, histogramBins)
	for i, n := range counts {
		bars[i] = chart.Value{
			Value: float64(n),
			Label: fmt.Sprintf("%.4g", lo+width*float64(i)),
		}
	}
	return bars
}

// categoryBars counts occurrences of each distinct value, most frequent
// first, ties broken by label.
func categoryBars(t *Table, col int) []chart.Value {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		cell := row[col]
		if cell.Missing {
			continue
		}
		counts[strings.TrimSpace(cell.Raw)]++
	}
	if len(counts) == 0 {
		return nil
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	if len(labels) > maxCategoryBars {
		labels = labels[:maxCategoryBars]
	}

	bars := make([]chart.Value, len(labels))
	for i, label := range labels {
		bars[i] = chart.Value{Value: float64(counts[label]), Label: label}
	}
	return bars
}

func barWidthFor(n int) int {
	w := 560 / n
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}
