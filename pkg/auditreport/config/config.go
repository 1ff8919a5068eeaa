// Package config provides configuration loading for report generation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/docx"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/parser"
	"gopkg.in/yaml.v3"
)

// Config is the complete report generation configuration.
type Config struct {
	Paths     PathsConfig    `yaml:"paths"`
	Templates []Template     `yaml:"templates"`
	Workbook  WorkbookConfig `yaml:"workbook"`
	Document  DocumentConfig `yaml:"document"`
	PDF       PDFConfig      `yaml:"pdf"`
	Log       LogConfig      `yaml:"log"`
}

// PathsConfig locates input workbooks and the output document.
type PathsConfig struct {
	// DataWorkbook holds the directory sheet and one sheet per subject.
	DataWorkbook string `yaml:"data_workbook"`
	// BasicInfoWorkbook holds the basic-info sheet. Empty means DataWorkbook.
	BasicInfoWorkbook string `yaml:"basic_info_workbook"`
	// Output is the generated document path.
	Output string `yaml:"output"`
}

// Template registers a template document for a template variant and report type.
type Template struct {
	Template   string `yaml:"template"`
	ReportType string `yaml:"report_type"`
	Path       string `yaml:"path"`
}

// WorkbookConfig describes the fixed workbook layout. Column indexes are 0-based.
type WorkbookConfig struct {
	DirectorySheet string   `yaml:"directory_sheet"`
	NameColumn     int      `yaml:"name_column"`
	FlagColumn     int      `yaml:"flag_column"`
	FlagValue      string   `yaml:"flag_value"`
	BasicInfoSheet string   `yaml:"basic_info_sheet"`
	ExcludedSheets []string `yaml:"excluded_sheets"`
}

// DocumentConfig describes the template markers and generated formatting.
type DocumentConfig struct {
	SectionStart string `yaml:"section_start"`
	SectionEnd   string `yaml:"section_end"`
	// MatchMode is "logical" (default) or "runs".
	MatchMode string     `yaml:"match_mode"`
	Style     docx.Style `yaml:"style"`
}

// PDFConfig configures the external PDF converter. An empty Command disables
// conversion.
type PDFConfig struct {
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	ErrorLog   string `yaml:"error_log"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DefaultConfig returns a Config with the standard layout.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DataWorkbook:      "附注.xlsm",
			BasicInfoWorkbook: "基本信息.xlsx",
			Output:            "更新后的目标文档.docx",
		},
		Templates: []Template{
			{Template: "高新", ReportType: "年报", Path: "templates/企业会计准则年审报告模板高新.docx"},
			{Template: "普通", ReportType: "年报", Path: "templates/企业会计准则年审报告模板普通.docx"},
		},
		Workbook: WorkbookConfig{
			DirectorySheet: "目录",
			NameColumn:     1,
			FlagColumn:     3,
			FlagValue:      "是",
			BasicInfoSheet: "基本信息",
			ExcludedSheets: []string{"目录", "基本信息"},
		},
		Document: DocumentConfig{
			SectionStart: "财务报表项目注释",
			SectionEnd:   "关联方及关联交易",
			MatchMode:    "logical",
			Style:        docx.DefaultStyle(),
		},
		Log: LogConfig{
			Level:      "info",
			ErrorLog:   "error.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Paths.DataWorkbook == "" {
		errs = append(errs, errors.New("paths.data_workbook is required"))
	}
	if c.Paths.Output == "" {
		errs = append(errs, errors.New("paths.output is required"))
	}
	if len(c.Templates) == 0 {
		errs = append(errs, errors.New("at least one template is required"))
	}
	for i, t := range c.Templates {
		if t.Template == "" || t.ReportType == "" || t.Path == "" {
			errs = append(errs, fmt.Errorf("templates[%d]: template, report_type and path are required", i))
		}
	}
	if c.Workbook.DirectorySheet == "" || c.Workbook.BasicInfoSheet == "" {
		errs = append(errs, errors.New("workbook.directory_sheet and workbook.basic_info_sheet are required"))
	}
	if c.Workbook.NameColumn < 0 || c.Workbook.FlagColumn < 0 {
		errs = append(errs, errors.New("workbook columns must not be negative"))
	}
	if c.Document.SectionStart == "" || c.Document.SectionEnd == "" {
		errs = append(errs, errors.New("document.section_start and document.section_end are required"))
	}
	if _, ok := docx.ParseMatchMode(c.Document.MatchMode); !ok {
		errs = append(errs, fmt.Errorf("document.match_mode %q must be logical or runs", c.Document.MatchMode))
	}
	return errors.Join(errs...)
}

// TemplatePath returns the template registered for a template variant and report type.
func (c *Config) TemplatePath(template, reportType string) (string, bool) {
	for _, t := range c.Templates {
		if t.Template == template && t.ReportType == reportType {
			return t.Path, true
		}
	}
	return "", false
}

// BasicInfoPath returns the basic-info workbook path.
func (c *Config) BasicInfoPath() string {
	if c.Paths.BasicInfoWorkbook == "" {
		return c.Paths.DataWorkbook
	}
	return c.Paths.BasicInfoWorkbook
}

// DirectoryLayout returns the directory sheet layout.
func (c *Config) DirectoryLayout() parser.DirectoryLayout {
	return parser.DirectoryLayout{
		Sheet:      c.Workbook.DirectorySheet,
		NameColumn: c.Workbook.NameColumn,
		FlagColumn: c.Workbook.FlagColumn,
		FlagValue:  c.Workbook.FlagValue,
	}
}

// MatchMode returns the configured placeholder matching mode.
func (c *Config) MatchMode() docx.MatchMode {
	m, _ := docx.ParseMatchMode(c.Document.MatchMode)
	return m
}

// Excluded reports whether a sheet never gets a generated section.
func (c *Config) Excluded(sheet string) bool {
	for _, s := range c.Workbook.ExcludedSheets {
		if s == sheet {
			return true
		}
	}
	return false
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
