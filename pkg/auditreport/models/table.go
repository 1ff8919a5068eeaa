package models

import "strings"

// SummaryMarker marks a total row in a financial table.
const SummaryMarker = "合计"

// TableCell is a display-ready table cell.
type TableCell struct {
	// Text is the formatted cell text.
	Text string `json:"text"`
	// Numeric is true when Text was rendered from a number.
	Numeric bool `json:"numeric,omitempty"`
}

// TableBlock is a rectangular grid of formatted cells. Row 0 is the header.
type TableBlock struct {
	Rows [][]TableCell `json:"rows"`
}

// Columns returns the uniform column count of the block.
func (t TableBlock) Columns() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// IsSummaryRow reports whether row i contains the summary marker in any cell.
func (t TableBlock) IsSummaryRow(i int) bool {
	if i < 0 || i >= len(t.Rows) {
		return false
	}
	for _, c := range t.Rows[i] {
		if strings.Contains(c.Text, SummaryMarker) {
			return true
		}
	}
	return false
}

// Texts returns the block as plain strings.
func (t TableBlock) Texts() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.Text
		}
	}
	return out
}
