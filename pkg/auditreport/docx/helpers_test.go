package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// para builds a paragraph with one run per text.
func para(texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, t := range texts {
		fmt.Fprintf(&b, `<w:r><w:rPr><w:rFonts w:eastAsia="宋体"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r>`, t)
	}
	b.WriteString("</w:p>")
	return b.String()
}

func table(cells ...string) string {
	var b strings.Builder
	b.WriteString("<w:tbl><w:tr>")
	for _, c := range cells {
		fmt.Fprintf(&b, "<w:tc>%s</w:tc>", c)
	}
	b.WriteString("</w:tr></w:tbl>")
	return b.String()
}

// packageBytes builds a minimal .docx package with one header part.
func packageBytes(t *testing.T, body, header string) []byte {
	t.Helper()

	files := []struct{ name, data string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
			`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:body>` + body +
			`<w:sectPr><w:headerReference w:type="default" r:id="rId1"/></w:sectPr></w:body></w:document>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="` + relTypeHeader + `" Target="header1.xml"/>` +
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com" TargetMode="External"/>` +
			`</Relationships>`},
		{"word/header1.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:hdr xmlns:w="` + nsW + `">` + header + `</w:hdr>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newDoc(t *testing.T, body, header string) *Document {
	t.Helper()
	data := packageBytes(t, body, header)
	doc, err := Read(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return doc
}

func paragraphTexts(d *Document) []string {
	var out []string
	for _, n := range d.Body.Children {
		switch {
		case n.Is("w:p"):
			out = append(out, ParagraphText(n))
		case n.Is("w:tbl"):
			out = append(out, "<table>")
		}
	}
	return out
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
