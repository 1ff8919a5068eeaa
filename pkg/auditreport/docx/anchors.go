package docx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAnchorNotFound indicates a marker paragraph is missing from the body.
var ErrAnchorNotFound = errors.New("anchor not found")

// Section is a generated subject section: a numbered heading followed by a
// narrative sentence and a table.
type Section struct {
	Title    string
	Sentence *Node
	Table    *Node
}

// FindParagraph returns the index in Body.Children of the first body
// paragraph at or after from whose text contains marker, or -1.
func (d *Document) FindParagraph(marker string, from int) int {
	for i := from; i < len(d.Body.Children); i++ {
		n := d.Body.Children[i]
		if n.Is("w:p") && strings.Contains(ParagraphText(n), marker) {
			return i
		}
	}
	return -1
}

// span locates the first start paragraph and the first end paragraph after it.
func (d *Document) span(start, end string) (startNode, endNode *Node, err error) {
	i := d.FindParagraph(start, 0)
	if i < 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrAnchorNotFound, start)
	}
	j := d.FindParagraph(end, i+1)
	if j < 0 {
		return nil, nil, fmt.Errorf("%w: %q after %q", ErrAnchorNotFound, end, start)
	}
	return d.Body.Children[i], d.Body.Children[j], nil
}

// ClearBetween removes every block (paragraph or table) strictly between the
// first paragraph containing start and the next paragraph containing end.
// The marker paragraphs stay. It returns the number of blocks removed.
func (d *Document) ClearBetween(start, end string) (int, error) {
	startNode, endNode, err := d.span(start, end)
	if err != nil {
		return 0, err
	}

	i, j := d.Body.Index(startNode), d.Body.Index(endNode)
	removed := 0
	kept := make([]*Node, 0, len(d.Body.Children))
	for k, n := range d.Body.Children {
		if k > i && k < j && n.Kind == ElementNode {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	d.Body.Children = kept
	return removed, nil
}

// InsertSections inserts the sections, numbered from 1, before the end marker
// paragraph that follows the start marker. Each heading is followed by its
// sentence and table. It returns the number of sections inserted.
func (d *Document) InsertSections(start, end string, sections []Section, st Style) (int, error) {
	_, endNode, err := d.span(start, end)
	if err != nil {
		return 0, err
	}

	for n, s := range sections {
		heading := Heading(fmt.Sprintf(st.HeadingFormat, n+1, s.Title), st)
		d.Body.InsertBefore(endNode, heading)
		anchor := heading
		if s.Table != nil {
			d.Body.InsertAfter(heading, s.Table)
			anchor = s.Table
		}
		if s.Sentence != nil {
			if anchor == heading {
				d.Body.InsertAfter(heading, s.Sentence)
			} else {
				d.Body.InsertBefore(anchor, s.Sentence)
			}
		}
	}
	return len(sections), nil
}
