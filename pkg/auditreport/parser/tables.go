package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/models"
)

// TableOrigin is the 0-based position where subject tables start (row 3, column C).
var TableOrigin = struct{ Row, Col int }{Row: 2, Col: 2}

// EndingBalanceHeader marks the ending-balance column in a table header.
const EndingBalanceHeader = "期末金额"

// ExtractTableData reads a subject sheet's table block and formats it for display.
// Numbers get thousands separators and two decimals; empty cells become "".
func ExtractTableData(wb *models.Workbook, sheetName string) (models.TableBlock, error) {
	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		return models.TableBlock{}, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheetName, wb.BookName)
	}

	maxRow, maxCol := findDataBounds(sheet.Rows, TableOrigin.Row, TableOrigin.Col)
	if maxRow < 0 {
		return models.TableBlock{}, nil
	}

	var tb models.TableBlock
	for row := TableOrigin.Row; row <= maxRow; row++ {
		cells := make([]models.TableCell, 0, maxCol-TableOrigin.Col+1)
		for col := TableOrigin.Col; col <= maxCol; col++ {
			cells = append(cells, formatCell(sheet.Cell(row, col)))
		}
		tb.Rows = append(tb.Rows, cells)
	}
	return tb, nil
}

func formatCell(c models.Cell) models.TableCell {
	switch c.Kind {
	case models.CellEmpty:
		return models.TableCell{}
	case models.CellNumber:
		return models.TableCell{Text: FormatAmount(c.Number), Numeric: true}
	}
	return models.TableCell{Text: c.String()}
}

// findDataBounds finds the last non-empty row and column at or after the origin.
// It returns -1, -1 when the region is empty.
func findDataBounds(rows [][]models.Cell, minRow, minCol int) (maxRow, maxCol int) {
	maxRow, maxCol = -1, -1
	for rowIdx := minRow; rowIdx < len(rows); rowIdx++ {
		for colIdx := minCol; colIdx < len(rows[rowIdx]); colIdx++ {
			if rows[rowIdx][colIdx].IsEmpty() {
				continue
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	return
}

// Balance returns the ending balance held in the table's summary row.
func Balance(tb models.TableBlock) (decimal.Decimal, error) {
	if len(tb.Rows) <= 1 {
		return decimal.Zero, ErrNoSummaryRow
	}
	header := tb.Rows[0]
	last := tb.Rows[len(tb.Rows)-1]
	if len(header) == 0 || len(last) == 0 {
		return decimal.Zero, ErrNoSummaryRow
	}
	if !strings.Contains(last[0].Text, models.SummaryMarker) ||
		!strings.Contains(header[len(header)-1].Text, EndingBalanceHeader) {
		return decimal.Zero, ErrNoSummaryRow
	}
	d, err := ParseAmount(last[len(last)-1].Text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: balance %q", err, last[len(last)-1].Text)
	}
	return d, nil
}

// CalculateBalance formats the table's ending balance, or "0.00" when the
// table has no parseable summary row.
func CalculateBalance(tb models.TableBlock) string {
	d, err := Balance(tb)
	if err != nil {
		return "0.00"
	}
	return FormatDecimal(d)
}
