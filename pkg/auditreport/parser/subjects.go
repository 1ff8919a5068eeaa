package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/models"
)

// DirectoryLayout locates the subject flags in the directory sheet.
type DirectoryLayout struct {
	Sheet      string
	NameColumn int
	FlagColumn int
	FlagValue  string
}

// DefaultDirectoryLayout returns the layout of the standard notes workbook.
func DefaultDirectoryLayout() DirectoryLayout {
	return DirectoryLayout{
		Sheet:      "目录",
		NameColumn: 1,
		FlagColumn: 3,
		FlagValue:  "是",
	}
}

// ExtractSubjects returns the subject names flagged for inclusion, in row order.
// Scanning starts at the second row.
func ExtractSubjects(wb *models.Workbook, layout DirectoryLayout) ([]string, error) {
	sheet, ok := wb.Sheet(layout.Sheet)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, layout.Sheet, wb.BookName)
	}

	var subjects []string
	for row := 1; row < len(sheet.Rows); row++ {
		if strings.TrimSpace(sheet.Cell(row, layout.FlagColumn).String()) != layout.FlagValue {
			continue
		}
		name := strings.TrimSpace(sheet.Cell(row, layout.NameColumn).String())
		if name == "" {
			continue
		}
		subjects = append(subjects, name)
	}
	return subjects, nil
}
