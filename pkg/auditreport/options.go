// Package auditreport assembles audit reports from notes workbooks and
// Word templates.
package auditreport

import (
	"fmt"
	"strings"
)

// Format represents the export format.
type Format string

const (
	// FormatWord saves the merged .docx document.
	FormatWord Format = "Word"
	// FormatPDF saves the merged document and hands it to the PDF converter.
	FormatPDF Format = "PDF"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatPDF, FormatWord}

// ParseFormat converts a user selection into a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q (must be PDF or Word)", s)
}

// Options selects the report to export.
type Options struct {
	// TemplateKey is the template variant, e.g. "高新" or "普通".
	TemplateKey string
	// ReportType is the report type, e.g. "年报".
	ReportType string
	// Format is the export format.
	Format Format
}

// Validate checks that every selection was made.
func (o Options) Validate() error {
	if strings.TrimSpace(o.TemplateKey) == "" || strings.TrimSpace(o.ReportType) == "" || o.Format == "" {
		return ErrInvalidSelection
	}
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	return nil
}
