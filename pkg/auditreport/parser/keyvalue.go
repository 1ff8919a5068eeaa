package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/models"
)

// ExtractKeyValue reads the label/value pairs of a basic-info sheet.
func ExtractKeyValue(path, sheetName string) (models.Replacements, error) {
	wb, err := ReadWorkbook(path)
	if err != nil {
		return nil, err
	}
	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheetName, wb.BookName)
	}
	return KeyValuesFromSheet(sheet), nil
}

// KeyValuesFromSheet builds the replacement map from a basic-info sheet.
// Rows start at the second row; column 0 is the label and column 1 the value.
func KeyValuesFromSheet(sheet *models.Sheet) models.Replacements {
	r := make(models.Replacements)
	for row := 1; row < len(sheet.Rows); row++ {
		key := normalizeKey(sheet.Cell(row, 0).String())
		value := normalizeValue(key, sheet.Cell(row, 1), r)
		if key == "" || value == "" {
			continue
		}
		r[key] = value
	}

	if d, ok := r[models.KeyAuditReportDate]; ok {
		if cn, err := ChineseDate(d); err == nil {
			r[models.KeyReportDate] = cn
		}
	}
	r[models.KeyCompanyInfo] = composeCompanyInfo(r)
	return r
}

func normalizeKey(s string) string {
	key := strings.TrimSpace(s)
	if canonical, ok := models.LegacyKeys[key]; ok {
		return canonical
	}
	return key
}

// normalizeValue renders a cell for the replacement map. Period-end dates
// also set the report year in r.
func normalizeValue(key string, c models.Cell, r models.Replacements) string {
	switch c.Kind {
	case models.CellEmpty:
		return ""
	case models.CellDate:
		iso := c.Time.Format("2006-01-02")
		if key == models.KeyPeriodEnd {
			r[models.KeyReportYear] = fmt.Sprintf("%d年", c.Time.Year())
		}
		return iso
	case models.CellNumber:
		return FixedTwo(c.Number)
	}
	return strings.TrimSpace(c.String())
}

// composeCompanyInfo joins the company sub-fields as "label：value" parts.
// Missing fields keep their label.
func composeCompanyInfo(r models.Replacements) string {
	parts := make([]string, len(models.CompanyInfoFields))
	for i, field := range models.CompanyInfoFields {
		parts[i] = field + "：" + r[field]
		if i == len(models.CompanyInfoFields)-1 {
			parts[i] += "。"
		}
	}
	return strings.Join(parts, models.CompositeDelimiter)
}
