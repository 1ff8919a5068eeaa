package docx

import (
	"strconv"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/models"
)

// Style controls the formatting of generated paragraphs and tables.
type Style struct {
	// SerifFont is used for text (宋体).
	SerifFont string `yaml:"serif_font"`
	// NumericFont is used for numeric table cells.
	NumericFont string `yaml:"numeric_font"`
	// TableFontSize is the table font size in points.
	TableFontSize float64 `yaml:"table_font_size"`
	// BodyFontSize is the font size of headings and sentences in points.
	BodyFontSize float64 `yaml:"body_font_size"`
	// OuterBorderSize is the top/bottom border width in eighths of a point.
	OuterBorderSize int `yaml:"outer_border_size"`
	// InnerBorderSize is the inside border width in eighths of a point.
	InnerBorderSize int `yaml:"inner_border_size"`
	// TableWidth is the total table width in points.
	TableWidth float64 `yaml:"table_width"`
	// LineSpacing is the exact line spacing of sentences in points.
	LineSpacing float64 `yaml:"line_spacing"`
	// FirstLineChars is the first-line indent in hundredths of a character.
	FirstLineChars int `yaml:"first_line_chars"`
	// HeadingFormat formats a section heading from its number and title.
	HeadingFormat string `yaml:"heading_format"`
}

// DefaultStyle returns the standard audit report formatting.
func DefaultStyle() Style {
	return Style{
		SerifFont:       "宋体",
		NumericFont:     "Arial Narrow",
		TableFontSize:   10,
		BodyFontSize:    12,
		OuterBorderSize: 12,
		InnerBorderSize: 4,
		TableWidth:      415,
		LineSpacing:     20,
		FirstLineChars:  200,
		HeadingFormat:   "%d、%s",
	}
}

type runFormat struct {
	font string
	size float64
	bold bool
}

func runProperties(f runFormat) *Node {
	rPr := NewElement("w:rPr")
	rPr.Append(NewElement("w:rFonts",
		"w:ascii", f.font,
		"w:hAnsi", f.font,
		"w:eastAsia", f.font,
		"w:cs", f.font,
	))
	if f.bold {
		rPr.Append(NewElement("w:b"), NewElement("w:bCs"))
	}
	size := strconv.Itoa(HalfPoints(f.size))
	rPr.Append(
		NewElement("w:sz", "w:val", size),
		NewElement("w:szCs", "w:val", size),
	)
	return rPr
}

func newRun(text string, f runFormat) *Node {
	r := NewElement("w:r").Append(runProperties(f))
	if text != "" {
		SetRunText(r, text)
	}
	return r
}

// IndentedParagraph creates a first-line-indented paragraph. The run takes a
// copy of rPr when given.
func IndentedParagraph(text string, rPr *Node, st Style) *Node {
	pPr := NewElement("w:pPr").Append(firstLineIndent(st))
	r := NewElement("w:r")
	if rPr != nil {
		r.Append(rPr.Clone())
	}
	SetRunText(r, text)
	return NewElement("w:p").Append(pPr, r)
}

func firstLineIndent(st Style) *Node {
	return NewElement("w:ind",
		"w:firstLineChars", strconv.Itoa(st.FirstLineChars),
		"w:firstLine", strconv.Itoa(Twips(st.BodyFontSize)*st.FirstLineChars/100),
	)
}

// Sentence creates a left-aligned, first-line-indented paragraph with exact
// line spacing.
func Sentence(text string, st Style) *Node {
	pPr := NewElement("w:pPr").Append(
		NewElement("w:spacing", "w:line", strconv.Itoa(Twips(st.LineSpacing)), "w:lineRule", "exact"),
		firstLineIndent(st),
		NewElement("w:jc", "w:val", "left"),
	)
	return NewElement("w:p").Append(pPr, newRun(text, runFormat{font: st.SerifFont, size: st.BodyFontSize}))
}

// Heading creates a bold section heading paragraph kept with the next block.
func Heading(text string, st Style) *Node {
	pPr := NewElement("w:pPr").Append(NewElement("w:keepNext"))
	return NewElement("w:p").Append(pPr, newRun(text, runFormat{font: st.SerifFont, size: st.BodyFontSize, bold: true}))
}

// BuildTable creates a grid table for a formatted table block. The header row
// and summary rows are bold and centered; numeric cells use the numeric font.
func BuildTable(tb models.TableBlock, st Style) *Node {
	cols := tb.Columns()
	if cols == 0 {
		cols = 1
	}
	colWidth := strconv.Itoa(Twips(st.TableWidth) / cols)

	tbl := NewElement("w:tbl").Append(tableProperties(st))
	grid := NewElement("w:tblGrid")
	for i := 0; i < cols; i++ {
		grid.Append(NewElement("w:gridCol", "w:w", colWidth))
	}
	tbl.Append(grid)

	for i, row := range tb.Rows {
		emphasized := i == 0 || tb.IsSummaryRow(i)
		tr := NewElement("w:tr")
		if i == 0 {
			tr.Append(NewElement("w:trPr").Append(NewElement("w:tblHeader")))
		}
		for j := 0; j < cols; j++ {
			var cell models.TableCell
			if j < len(row) {
				cell = row[j]
			}
			tr.Append(tableCell(cell, emphasized, colWidth, st))
		}
		tbl.Append(tr)
	}
	return tbl
}

func tableCell(cell models.TableCell, emphasized bool, width string, st Style) *Node {
	f := runFormat{font: st.SerifFont, size: st.TableFontSize}
	pPr := NewElement("w:pPr")
	switch {
	case emphasized:
		f.bold = true
		pPr.Append(NewElement("w:jc", "w:val", "center"))
	case cell.Numeric:
		f.font = st.NumericFont
		pPr.Append(NewElement("w:jc", "w:val", "right"))
	}

	p := NewElement("w:p").Append(pPr)
	if cell.Text != "" {
		p.Append(newRun(cell.Text, f))
	}
	tcPr := NewElement("w:tcPr").Append(
		NewElement("w:tcW", "w:w", width, "w:type", "dxa"),
		NewElement("w:vAlign", "w:val", "center"),
	)
	return NewElement("w:tc").Append(tcPr, p)
}

func tableProperties(st Style) *Node {
	return NewElement("w:tblPr").Append(
		NewElement("w:tblStyle", "w:val", "TableGrid"),
		NewElement("w:tblW", "w:w", strconv.Itoa(Twips(st.TableWidth)), "w:type", "dxa"),
		NewElement("w:jc", "w:val", "center"),
		tableBorders(st),
		NewElement("w:tblLayout", "w:type", "fixed"),
	)
}

// tableBorders draws heavy top and bottom rules, no outer side borders and
// single inside lines.
func tableBorders(st Style) *Node {
	outer := strconv.Itoa(st.OuterBorderSize)
	inner := strconv.Itoa(st.InnerBorderSize)
	border := func(name, val, size string) *Node {
		if val == "none" {
			return NewElement(name, "w:val", "none", "w:sz", "0", "w:space", "0", "w:color", "auto")
		}
		return NewElement(name, "w:val", val, "w:sz", size, "w:space", "0", "w:color", "auto")
	}
	return NewElement("w:tblBorders").Append(
		border("w:top", "single", outer),
		border("w:left", "none", ""),
		border("w:bottom", "single", outer),
		border("w:right", "none", ""),
		border("w:insideH", "single", inner),
		border("w:insideV", "single", inner),
	)
}
