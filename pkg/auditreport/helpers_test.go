package auditreport

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/config"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/docx"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, sheets map[string][][]interface{}, order ...string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func para(texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, t := range texts {
		fmt.Fprintf(&b, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, t)
	}
	b.WriteString("</w:p>")
	return b.String()
}

func writeTemplate(t *testing.T, path, body string) {
	t.Helper()

	files := []struct{ name, data string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `<w:sectPr/></w:body></w:document>`},
	}

	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

// fixture writes a data workbook, a basic-info workbook and a template into a
// temp directory and returns a config pointing at them.
func fixture(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	dataPath := filepath.Join(dir, "附注.xlsx")
	writeWorkbook(t, dataPath, map[string][][]interface{}{
		"目录": {
			{"序号", "科目", "页码", "是否披露"},
			{1, "货币资金", 1, "是"},
			{2, "应收账款", 2, "是"},
			{3, "存货", 3, "否"},
			{4, "固定资产", 4, "是"},
			{5, "基本信息", 5, "是"},
		},
		"货币资金": {
			{"货币资金"},
			{"单位：元"},
			{nil, nil, "项目", "期初金额", "期末金额"},
			{nil, nil, "库存现金", 100, 234.5},
			{nil, nil, "银行存款", 900, 1000},
			{nil, nil, "合计", 1000, 1234.5},
		},
		"应收账款": {
			{"应收账款"},
			{nil},
			{nil, nil, "客户", "期末金额"},
			{nil, nil, "甲公司", 300},
		},
		"存货": {
			{"存货"},
		},
	}, "目录", "货币资金", "应收账款", "存货")

	infoPath := filepath.Join(dir, "基本信息.xlsx")
	writeWorkbook(t, infoPath, map[string][][]interface{}{
		"基本信息": {
			{"项目", "内容"},
			{"审计报告编号", "审-2024-018"},
			{"报表截止日", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
			{"审计报告日", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)},
			{"企业名称", "示例科技有限公司"},
		},
	}, "基本信息")

	templatePath := filepath.Join(dir, "模板.docx")
	writeTemplate(t, templatePath,
		para("报告编号：«", "报告编号", "»")+
			para("«报告", "年度»财务报表")+
			para("五、财务报表项目注释")+
			para("旧科目")+
			para("旧说明")+
			para("六、关联方及关联交易")+
			para("«企业信息»")+
			para("报告日期：«报告日期»"))

	cfg := config.DefaultConfig()
	cfg.Paths.DataWorkbook = dataPath
	cfg.Paths.BasicInfoWorkbook = infoPath
	cfg.Paths.Output = filepath.Join(dir, "out", "报告.docx")
	cfg.Templates = []config.Template{{Template: "高新", ReportType: "年报", Path: templatePath}}
	return cfg
}

func bodyTexts(t *testing.T, path string) []string {
	t.Helper()
	doc, err := docx.Open(path)
	require.NoError(t, err)

	var out []string
	for _, n := range doc.Body.Children {
		switch {
		case n.Is("w:p"):
			out = append(out, docx.ParagraphText(n))
		case n.Is("w:tbl"):
			out = append(out, "<table>")
		}
	}
	return out
}
