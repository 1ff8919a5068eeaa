package auditreport

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Converter turns a saved .docx file into a PDF.
type Converter interface {
	Convert(ctx context.Context, docxPath string) (string, error)
}

// NoopConverter leaves conversion to an external tool and returns the .docx path.
type NoopConverter struct {
	Logger *zap.Logger
}

// Convert logs that conversion was skipped.
func (c NoopConverter) Convert(_ context.Context, docxPath string) (string, error) {
	if c.Logger != nil {
		c.Logger.Info("PDF conversion not configured, keeping Word output", zap.String("path", docxPath))
	}
	return docxPath, nil
}

// CommandConverter runs an external converter such as
// "soffice --headless --convert-to pdf --outdir {outdir} {input}".
// The PDF is expected next to the input with a .pdf extension.
type CommandConverter struct {
	Command string
	Args    []string
}

// Convert runs the command and returns the PDF path.
func (c CommandConverter) Convert(ctx context.Context, docxPath string) (string, error) {
	outDir := filepath.Dir(docxPath)
	args := make([]string, 0, len(c.Args)+1)
	hasInput := false
	for _, a := range c.Args {
		if strings.Contains(a, "{input}") {
			hasInput = true
		}
		a = strings.ReplaceAll(a, "{input}", docxPath)
		a = strings.ReplaceAll(a, "{outdir}", outDir)
		args = append(args, a)
	}
	if !hasInput {
		args = append(args, docxPath)
	}

	out, err := exec.CommandContext(ctx, c.Command, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pdf conversion failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSuffix(docxPath, filepath.Ext(docxPath)) + ".pdf", nil
}
