package docx

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ukaji3/auditreport-go/pkg/auditreport/models"
)

// Placeholder delimiters.
const (
	OpenDelim  = "«"
	CloseDelim = "»"
)

// MatchMode selects how placeholder tokens are found in a paragraph.
type MatchMode int

const (
	// MatchLogical finds tokens in the concatenated text of all runs,
	// however the runs happen to be split.
	MatchLogical MatchMode = iota
	// MatchRuns only matches tokens whose delimiters and label occupy exactly
	// three adjacent runs.
	MatchRuns
)

// ParseMatchMode converts a configuration value into a MatchMode.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "logical":
		return MatchLogical, true
	case "runs":
		return MatchRuns, true
	}
	return MatchLogical, false
}

var tokenPattern = regexp.MustCompile(OpenDelim + `([^` + OpenDelim + CloseDelim + `]*)` + CloseDelim)

// Replacer substitutes placeholder tokens in paragraphs.
type Replacer struct {
	values map[string]string
	mode   MatchMode
	style  Style
}

// NewReplacer creates a Replacer. Labels are matched with whitespace removed.
// Values containing models.CompositeDelimiter are expanded into one indented
// paragraph per part, inserted before the token's paragraph.
func NewReplacer(values map[string]string, mode MatchMode, st Style) *Replacer {
	normalized := make(map[string]string, len(values))
	for k, v := range values {
		normalized[normalizeLabel(k)] = v
	}
	return &Replacer{values: normalized, mode: mode, style: st}
}

func normalizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ReplaceAll substitutes tokens in every paragraph of the body, tables,
// headers and footers. It returns the number of tokens replaced.
func (d *Document) ReplaceAll(rp *Replacer) int {
	count := 0
	for _, root := range d.Parts() {
		type located struct{ parent, p *Node }
		var paragraphs []located
		root.Walk(func(parent, n *Node) bool {
			if n.Is("w:p") {
				paragraphs = append(paragraphs, located{parent, n})
			}
			return true
		})
		for _, l := range paragraphs {
			count += rp.ReplaceInParagraph(l.parent, l.p)
		}
	}
	return count
}

// ReplaceInParagraph substitutes tokens in p, a child of parent. It returns
// the number of tokens replaced.
func (rp *Replacer) ReplaceInParagraph(parent, p *Node) int {
	if rp.mode == MatchRuns {
		return rp.replaceRunWindows(parent, p)
	}
	return rp.replaceLogical(parent, p)
}

// textSpan locates one w:t element of a run in the concatenated paragraph text.
type textSpan struct {
	run, text  *Node
	start, end int
}

// replaceLogical matches tokens against the concatenated run text and rewrites
// only the w:t elements a token spans, so breaks and tabs between them keep
// their place. Matches are applied right to left so earlier offsets stay valid.
func (rp *Replacer) replaceLogical(parent, p *Node) int {
	var b strings.Builder
	var spans []textSpan
	for _, r := range Runs(p) {
		for _, t := range r.Elements("w:t") {
			start := b.Len()
			b.WriteString(elementText(t))
			spans = append(spans, textSpan{run: r, text: t, start: start, end: b.Len()})
		}
	}
	text := b.String()

	matches := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	var composites [][]*Node
	count := 0
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		value, ok := rp.values[normalizeLabel(text[m[2]:m[3]])]
		if !ok {
			continue
		}

		target := spanAt(spans, m[2])
		if target == nil {
			target = spanAt(spans, m[0])
		}
		if strings.Contains(value, models.CompositeDelimiter) {
			composites = append([][]*Node{rp.compositeParagraphs(value, target.run)}, composites...)
			value = ""
		}
		for _, s := range spans {
			if s.end <= m[0] || s.start >= m[1] {
				continue
			}
			t := elementText(s.text)
			from := max(m[0], s.start) - s.start
			to := min(m[1], s.end) - s.start
			replacement := ""
			if s.text == target.text {
				replacement = value
			}
			setElementText(s.text, t[:from]+replacement+t[to:])
		}
		count++
	}

	for _, paragraphs := range composites {
		parent.InsertBefore(p, paragraphs...)
	}
	return count
}

func spanAt(spans []textSpan, offset int) *textSpan {
	for i := range spans {
		if offset >= spans[i].start && offset < spans[i].end {
			return &spans[i]
		}
	}
	return nil
}

// replaceRunWindows matches run triples: an opening delimiter run, a label run
// and a closing delimiter run.
func (rp *Replacer) replaceRunWindows(parent, p *Node) int {
	runs := Runs(p)
	count := 0
	for i := 1; i+1 < len(runs); i++ {
		if strings.TrimSpace(RunText(runs[i-1])) != OpenDelim ||
			strings.TrimSpace(RunText(runs[i+1])) != CloseDelim {
			continue
		}
		value, ok := rp.values[normalizeLabel(RunText(runs[i]))]
		if !ok {
			continue
		}

		SetRunText(runs[i-1], "")
		SetRunText(runs[i+1], "")
		if strings.Contains(value, models.CompositeDelimiter) {
			parent.InsertBefore(p, rp.compositeParagraphs(value, runs[i])...)
			value = ""
		}
		SetRunText(runs[i], value)
		count++
		i++
	}
	return count
}

// compositeParagraphs builds one indented paragraph per part, styled like run.
func (rp *Replacer) compositeParagraphs(value string, run *Node) []*Node {
	parts := strings.Split(value, models.CompositeDelimiter)
	paragraphs := make([]*Node, 0, len(parts))
	for _, part := range parts {
		paragraphs = append(paragraphs, IndentedParagraph(part, run.Child("w:rPr"), rp.style))
	}
	return paragraphs
}
