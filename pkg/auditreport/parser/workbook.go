// Package parser reads workbooks and derives report data from them.
package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook opens a spreadsheet and loads every sheet as typed cells.
// Cells hold cached values; formulas are never evaluated.
func ReadWorkbook(path string) (*models.Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, path, err)
	}
	defer f.Close()

	wb := &models.Workbook{
		BookName: filepath.Base(path),
		Sheets:   make(map[string]*models.Sheet),
	}
	for _, name := range f.GetSheetList() {
		rows, err := ExtractCells(f, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: sheet %q: %v", ErrUnsupportedFormat, path, name, err)
		}
		wb.SheetNames = append(wb.SheetNames, name)
		wb.Sheets[name] = &models.Sheet{Name: name, Rows: rows}
	}
	return wb, nil
}
