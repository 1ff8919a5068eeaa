package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/docx"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	path, ok := cfg.TemplatePath("高新", "年报")
	require.True(t, ok)
	assert.Contains(t, path, "高新")

	_, ok = cfg.TemplatePath("高新", "季报")
	assert.False(t, ok)

	layout := cfg.DirectoryLayout()
	assert.Equal(t, "目录", layout.Sheet)
	assert.Equal(t, 1, layout.NameColumn)
	assert.Equal(t, 3, layout.FlagColumn)
	assert.Equal(t, "是", layout.FlagValue)

	assert.True(t, cfg.Excluded("目录"))
	assert.False(t, cfg.Excluded("货币资金"))
	assert.Equal(t, docx.MatchLogical, cfg.MatchMode())
}

func TestBasicInfoPathFallsBackToDataWorkbook(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "基本信息.xlsx", cfg.BasicInfoPath())

	cfg.Paths.BasicInfoWorkbook = ""
	assert.Equal(t, cfg.Paths.DataWorkbook, cfg.BasicInfoPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing data workbook", func(c *Config) { c.Paths.DataWorkbook = "" }, "paths.data_workbook"},
		{"missing output", func(c *Config) { c.Paths.Output = "" }, "paths.output"},
		{"no templates", func(c *Config) { c.Templates = nil }, "at least one template"},
		{"incomplete template", func(c *Config) { c.Templates[1].Path = "" }, "templates[1]"},
		{"negative column", func(c *Config) { c.Workbook.FlagColumn = -1 }, "must not be negative"},
		{"missing marker", func(c *Config) { c.Document.SectionEnd = "" }, "document.section_start"},
		{"bad match mode", func(c *Config) { c.Document.MatchMode = "fuzzy" }, "match_mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auditreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
paths:
  data_workbook: data/附注.xlsm
  output: out/报告.docx
templates:
  - template: 普通
    report_type: 年报
    path: t.docx
document:
  match_mode: runs
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data/附注.xlsm", cfg.Paths.DataWorkbook)
	assert.Equal(t, "基本信息.xlsx", cfg.Paths.BasicInfoWorkbook)
	require.Len(t, cfg.Templates, 1)
	assert.Equal(t, "t.docx", cfg.Templates[0].Path)
	assert.Equal(t, docx.MatchRuns, cfg.MatchMode())
	assert.Equal(t, "财务报表项目注释", cfg.Document.SectionStart)
	assert.Equal(t, "宋体", cfg.Document.Style.SerifFont)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: [unclosed"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "auditreport.yaml")
	cfg := DefaultConfig()
	cfg.PDF.Command = "soffice"
	cfg.PDF.Args = []string{"--headless", "--convert-to", "pdf", "--outdir", "{outdir}", "{input}"}
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
