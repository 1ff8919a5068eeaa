package parser

import "errors"

// ErrSourceNotFound indicates an input workbook does not exist.
var ErrSourceNotFound = errors.New("source not found")

// ErrUnsupportedFormat indicates an input workbook cannot be parsed.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// ErrSheetNotFound indicates a required sheet is missing from a workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrMalformedValue indicates a cell that should hold a number or date does not parse.
var ErrMalformedValue = errors.New("malformed value")

// ErrNoSummaryRow indicates a table has no balance-bearing summary row.
var ErrNoSummaryRow = errors.New("no summary row")
