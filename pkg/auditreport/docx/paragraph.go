package docx

import "strings"

// ParagraphText returns the visible text of a paragraph's runs.
func ParagraphText(p *Node) string {
	var b strings.Builder
	for _, r := range Runs(p) {
		b.WriteString(RunText(r))
	}
	return b.String()
}

// Runs returns the text runs of a paragraph in document order, including runs
// wrapped in hyperlinks, insertions or smart tags. Runs of nested paragraphs
// (text boxes) are not included.
func Runs(p *Node) []*Node {
	var runs []*Node
	p.Walk(func(_, n *Node) bool {
		switch {
		case n.Is("w:r"):
			runs = append(runs, n)
			return false
		case n.Is("w:p"), n.Is("w:del"):
			return false
		}
		return true
	})
	return runs
}

// RunText returns the text of a run's w:t elements.
func RunText(r *Node) string {
	var b strings.Builder
	for _, t := range r.Elements("w:t") {
		b.WriteString(elementText(t))
	}
	return b.String()
}

func elementText(t *Node) string {
	var b strings.Builder
	for _, c := range t.Children {
		if c.Kind == TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// setElementText replaces the content of a w:t element.
func setElementText(t *Node, s string) {
	t.Children = nil
	if s != "" {
		t.Append(NewText(s))
	}
	t.SetAttr("xml:space", "preserve")
}

// SetRunText replaces the text of a run. The first w:t element receives the
// text and the other w:t elements are dropped; tabs and breaks are kept.
func SetRunText(r *Node, s string) {
	var first *Node
	kept := r.Children[:0]
	for _, c := range r.Children {
		if c.Is("w:t") {
			if first != nil {
				continue
			}
			first = c
		}
		kept = append(kept, c)
	}
	r.Children = kept

	if first == nil {
		if s == "" {
			return
		}
		first = NewElement("w:t")
		r.Append(first)
	}
	setElementText(first, s)
}

// Paragraphs returns the body-level paragraphs.
func (d *Document) Paragraphs() []*Node {
	return d.Body.Elements("w:p")
}

// Text returns the text of the body, one line per body paragraph.
func (d *Document) Text() string {
	var lines []string
	for _, p := range d.Paragraphs() {
		lines = append(lines, ParagraphText(p))
	}
	return strings.Join(lines, "\n")
}
