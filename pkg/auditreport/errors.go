package auditreport

import (
	"errors"
	"fmt"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/docx"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/parser"
)

// ErrSourceNotFound indicates an input file does not exist.
var ErrSourceNotFound = parser.ErrSourceNotFound

// ErrUnsupportedFormat indicates an input file cannot be parsed.
var ErrUnsupportedFormat = parser.ErrUnsupportedFormat

// ErrSheetNotFound indicates a required sheet is missing.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrMalformedValue indicates a cell that should hold a number or date does not parse.
var ErrMalformedValue = parser.ErrMalformedValue

// ErrNoSummaryRow indicates a subject table has no 合计 row to read the balance from.
var ErrNoSummaryRow = parser.ErrNoSummaryRow

// ErrAnchorNotFound indicates a section marker is missing from the template.
var ErrAnchorNotFound = docx.ErrAnchorNotFound

// ErrTemplateNotFound indicates no template is registered for a selection.
var ErrTemplateNotFound = errors.New("未找到对应的报告模板")

// ErrInvalidSelection indicates the template, report type or format is missing.
var ErrInvalidSelection = errors.New("请完成所有选择")

// ExtractionError represents a failure reading one component of a sheet.
type ExtractionError struct {
	SheetName string
	Component string // "subjects", "basic_info", "table", "balance"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
