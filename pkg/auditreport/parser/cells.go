package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells reads a sheet as a grid of typed cells.
// Trailing empty cells of each row are not stored.
func ExtractCells(f *excelize.File, sheetName string) ([][]models.Cell, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	dates := make(map[int]bool) // style index -> date format
	result := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cells[colIdx], err = typedCell(f, sheetName, cellName, raw, dates)
			if err != nil {
				return nil, err
			}
		}
		result[rowIdx] = cells
	}
	return result, nil
}

func typedCell(f *excelize.File, sheetName, cellName, raw string, dates map[int]bool) (models.Cell, error) {
	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return models.Cell{}, err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return models.Cell{Kind: models.CellBool, Text: raw, Bool: raw == "1" || strings.EqualFold(raw, "true")}, nil
	case excelize.CellTypeDate:
		if t, ok := parseISOTime(raw); ok {
			return models.Cell{Kind: models.CellDate, Text: raw, Time: t}, nil
		}
		return models.Cell{Kind: models.CellText, Text: raw}, nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, ok := parseNumber(raw)
		if !ok {
			return models.Cell{Kind: models.CellText, Text: raw}, nil
		}
		isDate, err := hasDateFormat(f, sheetName, cellName, dates)
		if err != nil {
			return models.Cell{}, err
		}
		if isDate {
			t, err := excelize.ExcelDateToTime(n, false)
			if err == nil {
				return models.Cell{Kind: models.CellDate, Text: raw, Number: n, Time: t}, nil
			}
		}
		return models.Cell{Kind: models.CellNumber, Text: raw, Number: n}, nil
	}
	return models.Cell{Kind: models.CellText, Text: raw}, nil
}

// hasDateFormat reports whether the cell's number format renders a date.
func hasDateFormat(f *excelize.File, sheetName, cellName string, cache map[int]bool) (bool, error) {
	idx, err := f.GetCellStyle(sheetName, cellName)
	if err != nil {
		return false, err
	}
	if v, ok := cache[idx]; ok {
		return v, nil
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		return false, err
	}
	isDate := false
	if style != nil {
		isDate = isBuiltInDateFormat(style.NumFmt) ||
			(style.CustomNumFmt != nil && isDateFormatCode(*style.CustomNumFmt))
	}
	cache[idx] = isDate
	return isDate, nil
}

// isBuiltInDateFormat reports whether a built-in number format id is a date format,
// including the CJK date formats.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains date tokens
// outside quoted literals and brackets.
func isDateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case r == 'y' || r == 'd' || r == 'm':
			return true
		}
	}
	return false
}

// parseNumber attempts to parse a raw cell value as a number.
func parseNumber(s string) (float64, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return 0, false
}

func parseISOTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
