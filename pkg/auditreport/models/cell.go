// Package models defines data structures shared by the report pipeline.
package models

import (
	"strconv"
	"time"
)

// CellKind identifies the type of a cell's cached value.
type CellKind int

const (
	// CellEmpty is a cell with no value.
	CellEmpty CellKind = iota
	// CellText is a string cell (shared, inline or formula string).
	CellText
	// CellNumber is a numeric cell whose number format is not a date.
	CellNumber
	// CellDate is a numeric cell rendered with a date number format.
	CellDate
	// CellBool is a boolean cell.
	CellBool
)

// Cell is a single typed cell value.
type Cell struct {
	// Kind is the value type.
	Kind CellKind `json:"kind"`
	// Text is the raw text of the cell (for numbers, the raw serial string).
	Text string `json:"text,omitempty"`
	// Number is set for CellNumber and CellDate.
	Number float64 `json:"number,omitempty"`
	// Time is set for CellDate.
	Time time.Time `json:"time,omitempty"`
	// Bool is set for CellBool.
	Bool bool `json:"bool,omitempty"`
}

// IsEmpty reports whether the cell has no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the cell's value as plain text.
func (c Cell) String() string {
	switch c.Kind {
	case CellEmpty:
		return ""
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Time.Format("2006-01-02")
	case CellBool:
		return strconv.FormatBool(c.Bool)
	}
	return c.Text
}
