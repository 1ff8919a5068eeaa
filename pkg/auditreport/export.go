package auditreport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/config"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/docx"
	"go.uber.org/zap"
)

// Assembler exports reports for one configuration. It holds no per-export
// state and may be reused.
type Assembler struct {
	cfg       *config.Config
	logger    *zap.Logger
	converter Converter
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithConverter sets the PDF converter.
func WithConverter(c Converter) Option {
	return func(a *Assembler) {
		if c != nil {
			a.converter = c
		}
	}
}

// New creates an Assembler. Without WithConverter, a CommandConverter is used
// when cfg.PDF.Command is set and a NoopConverter otherwise.
func New(cfg *config.Config, opts ...Option) *Assembler {
	a := &Assembler{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.converter == nil {
		if cfg.PDF.Command != "" {
			a.converter = CommandConverter{Command: cfg.PDF.Command, Args: cfg.PDF.Args}
		} else {
			a.converter = NoopConverter{Logger: a.logger}
		}
	}
	return a
}

// ExportReport builds the report selected by opts and returns the path of the
// written file.
func (a *Assembler) ExportReport(ctx context.Context, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	templatePath, ok := a.cfg.TemplatePath(opts.TemplateKey, opts.ReportType)
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, opts.TemplateKey, opts.ReportType)
	}
	if _, err := os.Stat(templatePath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, templatePath)
	}

	log := a.logger.With(
		zap.String("template", opts.TemplateKey),
		zap.String("report_type", opts.ReportType),
		zap.String("format", string(opts.Format)),
	)

	data, err := a.Prepare(ctx)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := docx.Open(templatePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	st := a.cfg.Document.Style
	start, end := a.cfg.Document.SectionStart, a.cfg.Document.SectionEnd
	if removed, err := doc.ClearBetween(start, end); err != nil {
		log.Warn("section span not cleared", zap.String("start", start), zap.String("end", end), zap.Error(err))
	} else {
		log.Debug("section span cleared", zap.Int("removed", removed))
	}

	sections := make([]docx.Section, 0, len(data.Tables))
	for _, t := range data.Tables {
		sections = append(sections, docx.Section{
			Title:    t.Name,
			Sentence: docx.Sentence(t.Sentence, st),
			Table:    docx.BuildTable(t.Table, st),
		})
	}
	if n, err := doc.InsertSections(start, end, sections, st); err != nil {
		if !errors.Is(err, ErrAnchorNotFound) {
			return "", err
		}
		log.Warn("sections not inserted", zap.Error(err))
	} else {
		log.Info("sections inserted", zap.Int("count", n))
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	replaced := doc.ReplaceAll(docx.NewReplacer(data.Replacements, a.cfg.MatchMode(), st))
	log.Info("placeholders replaced", zap.Int("count", replaced))

	output := a.cfg.Paths.Output
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := doc.Save(output); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	log.Info("report saved", zap.String("path", output))

	if opts.Format != FormatPDF {
		return output, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	pdf, err := a.converter.Convert(ctx, output)
	if err != nil {
		return "", err
	}
	return pdf, nil
}
