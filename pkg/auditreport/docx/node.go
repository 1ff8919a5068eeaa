package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// NodeKind identifies the type of a Node.
type NodeKind int

const (
	// DocumentNode is the root of a parsed part.
	DocumentNode NodeKind = iota
	// ElementNode is an XML element.
	ElementNode
	// TextNode is character data.
	TextNode
	// CommentNode is an XML comment.
	CommentNode
	// ProcInstNode is a processing instruction such as the XML declaration.
	ProcInstNode
	// DirectiveNode is a <!...> directive.
	DirectiveNode
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

// Node is a mutable XML node. Names keep their raw prefix in Name.Space
// ("w" for w:p) so parts round-trip without namespace rewriting.
type Node struct {
	Kind     NodeKind
	Name     xml.Name
	Attr     []xml.Attr
	Children []*Node
	// Data holds text for non-element nodes.
	Data string
}

// ParseXML parses a part into a node tree rooted at a DocumentNode.
func ParseXML(data []byte) (*Node, error) {
	root := &Node{Kind: DocumentNode}
	stack := []*Node{root}
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		top := stack[len(stack)-1]
		switch t := token.(type) {
		case xml.StartElement:
			n := &Node{Kind: ElementNode, Name: t.Name, Attr: append([]xml.Attr(nil), t.Attr...)}
			top.Children = append(top.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 1 || qualified(top.Name) != qualified(t.Name) {
				return nil, fmt.Errorf("unexpected end element %s", qualified(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.Children = append(top.Children, &Node{Kind: TextNode, Data: string(t)})
		case xml.Comment:
			top.Children = append(top.Children, &Node{Kind: CommentNode, Data: string(t)})
		case xml.ProcInst:
			top.Children = append(top.Children, &Node{Kind: ProcInstNode, Name: xml.Name{Local: t.Target}, Data: string(t.Inst)})
		case xml.Directive:
			top.Children = append(top.Children, &Node{Kind: DirectiveNode, Data: string(t)})
		}
	}

	if len(stack) != 1 {
		return nil, errors.New("unclosed element " + qualified(stack[len(stack)-1].Name))
	}
	return root, nil
}

// NewElement creates an element from a qualified name and attribute
// name/value pairs, e.g. NewElement("w:jc", "w:val", "center").
func NewElement(name string, attrs ...string) *Node {
	n := &Node{Kind: ElementNode, Name: parseName(name)}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.SetAttr(attrs[i], attrs[i+1])
	}
	return n
}

// NewText creates a character data node.
func NewText(s string) *Node {
	return &Node{Kind: TextNode, Data: s}
}

func parseName(name string) xml.Name {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return xml.Name{Space: name[:i], Local: name[i+1:]}
	}
	return xml.Name{Local: name}
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Is reports whether n is an element with the given qualified name.
func (n *Node) Is(name string) bool {
	return n != nil && n.Kind == ElementNode && qualified(n.Name) == name
}

// GetAttr returns the value of a qualified attribute.
func (n *Node) GetAttr(name string) (string, bool) {
	for _, a := range n.Attr {
		if qualified(a.Name) == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets a qualified attribute, replacing any existing value.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attr {
		if qualified(a.Name) == name {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xml.Attr{Name: parseName(name), Value: value})
}

// Append adds children at the end and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the first child element with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Is(name) {
			return c
		}
	}
	return nil
}

// Elements returns the child elements with the given name.
func (n *Node) Elements(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Is(name) {
			out = append(out, c)
		}
	}
	return out
}

// Index returns the position of child in n.Children, or -1.
func (n *Node) Index(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// InsertAt inserts nodes at position i of n.Children.
func (n *Node) InsertAt(i int, nodes ...*Node) {
	if i < 0 || i > len(n.Children) {
		i = len(n.Children)
	}
	children := make([]*Node, 0, len(n.Children)+len(nodes))
	children = append(children, n.Children[:i]...)
	children = append(children, nodes...)
	children = append(children, n.Children[i:]...)
	n.Children = children
}

// InsertBefore inserts nodes immediately before ref. It returns false when
// ref is not a child of n.
func (n *Node) InsertBefore(ref *Node, nodes ...*Node) bool {
	i := n.Index(ref)
	if i < 0 {
		return false
	}
	n.InsertAt(i, nodes...)
	return true
}

// InsertAfter inserts nodes immediately after ref. It returns false when
// ref is not a child of n.
func (n *Node) InsertAfter(ref *Node, nodes ...*Node) bool {
	i := n.Index(ref)
	if i < 0 {
		return false
	}
	n.InsertAt(i+1, nodes...)
	return true
}

// Remove deletes child from n.Children.
func (n *Node) Remove(child *Node) bool {
	i := n.Index(child)
	if i < 0 {
		return false
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	return true
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	c := &Node{Kind: n.Kind, Name: n.Name, Data: n.Data}
	c.Attr = append([]xml.Attr(nil), n.Attr...)
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// Find returns the first descendant element with the given name.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.Is(name) {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every descendant element depth-first with its parent.
// Returning false from fn skips the element's children.
func (n *Node) Walk(fn func(parent, child *Node) bool) {
	for _, c := range n.Children {
		if c.Kind != ElementNode {
			continue
		}
		if fn(n, c) {
			c.Walk(fn)
		}
	}
}

// Marshal serializes the node tree.
func (n *Node) Marshal() []byte {
	var buf bytes.Buffer
	n.write(&buf)
	return buf.Bytes()
}

func (n *Node) write(buf *bytes.Buffer) {
	switch n.Kind {
	case DocumentNode:
		for _, c := range n.Children {
			c.write(buf)
		}
	case TextNode:
		textEscaper.WriteString(buf, n.Data)
	case CommentNode:
		buf.WriteString("<!--")
		buf.WriteString(n.Data)
		buf.WriteString("-->")
	case ProcInstNode:
		buf.WriteString("<?")
		buf.WriteString(n.Name.Local)
		if n.Data != "" {
			buf.WriteByte(' ')
			buf.WriteString(n.Data)
		}
		buf.WriteString("?>")
	case DirectiveNode:
		buf.WriteString("<!")
		buf.WriteString(n.Data)
		buf.WriteString(">")
	case ElementNode:
		name := qualified(n.Name)
		buf.WriteByte('<')
		buf.WriteString(name)
		for _, a := range n.Attr {
			buf.WriteByte(' ')
			buf.WriteString(qualified(a.Name))
			buf.WriteString(`="`)
			attrEscaper.WriteString(buf, a.Value)
			buf.WriteByte('"')
		}
		if len(n.Children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for _, c := range n.Children {
			c.write(buf)
		}
		buf.WriteString("</")
		buf.WriteString(name)
		buf.WriteByte('>')
	}
}
