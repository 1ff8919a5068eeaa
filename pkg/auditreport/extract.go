package auditreport

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/models"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/parser"
	"go.uber.org/zap"
)

// SubjectTable is one subject's formatted table with its ending balance.
type SubjectTable struct {
	Name     string            `json:"name"`
	Table    models.TableBlock `json:"table"`
	Balance  string            `json:"balance"`
	Sentence string            `json:"sentence"`
}

// ReportData is everything read from the workbooks for one export.
type ReportData struct {
	Subjects     []string            `json:"subjects"`
	Replacements models.Replacements `json:"replacements"`
	Tables       []SubjectTable      `json:"tables"`
}

// BalanceSentence composes the narrative sentence placed before a subject table.
func BalanceSentence(periodEnd, subject, balance string) string {
	return fmt.Sprintf("截止%s,公司%s账面余额为%s元。", periodEnd, subject, balance)
}

// Prepare reads the data and basic-info workbooks. Subjects that are excluded
// or have no sheet are skipped with a warning; unreadable balances fall back
// to 0.00.
func (a *Assembler) Prepare(ctx context.Context) (*ReportData, error) {
	wb, err := parser.ReadWorkbook(a.cfg.Paths.DataWorkbook)
	if err != nil {
		return nil, err
	}

	subjects, err := parser.ExtractSubjects(wb, a.cfg.DirectoryLayout())
	if err != nil {
		return nil, NewExtractionError(a.cfg.Workbook.DirectorySheet, "subjects", err)
	}
	a.logger.Debug("subjects extracted", zap.Strings("subjects", subjects))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infoPath := a.cfg.BasicInfoPath()
	var replacements models.Replacements
	if infoPath == a.cfg.Paths.DataWorkbook {
		sheet, ok := wb.Sheet(a.cfg.Workbook.BasicInfoSheet)
		if !ok {
			return nil, NewExtractionError(a.cfg.Workbook.BasicInfoSheet, "basic_info",
				fmt.Errorf("%w: %q in %s", ErrSheetNotFound, a.cfg.Workbook.BasicInfoSheet, wb.BookName))
		}
		replacements = parser.KeyValuesFromSheet(sheet)
	} else {
		replacements, err = parser.ExtractKeyValue(infoPath, a.cfg.Workbook.BasicInfoSheet)
		if err != nil {
			if errors.Is(err, ErrSheetNotFound) {
				return nil, NewExtractionError(a.cfg.Workbook.BasicInfoSheet, "basic_info", err)
			}
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := &ReportData{
		Subjects:     subjects,
		Replacements: replacements,
	}
	periodEnd := replacements[models.KeyPeriodEnd]
	for _, name := range subjects {
		if a.cfg.Excluded(name) {
			a.logger.Debug("subject excluded", zap.String("subject", name))
			continue
		}
		tb, err := parser.ExtractTableData(wb, name)
		if err != nil {
			a.logger.Warn("subject skipped", zap.String("subject", name), zap.Error(err))
			continue
		}

		balance := "0.00"
		if d, err := parser.Balance(tb); err != nil {
			a.logger.Warn("balance defaulted to 0.00",
				zap.Error(NewExtractionError(name, "balance", err)))
		} else {
			balance = parser.FormatDecimal(d)
		}

		data.Tables = append(data.Tables, SubjectTable{
			Name:     name,
			Table:    tb,
			Balance:  balance,
			Sentence: BalanceSentence(periodEnd, name, balance),
		})
	}
	return data, nil
}
