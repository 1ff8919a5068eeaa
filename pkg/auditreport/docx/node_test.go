package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseXMLRoundTrip(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="urn:w" mc:Ignorable="w14"><!-- note --><w:body>` +
		`<w:p w:rsidR="00A1"><w:r><w:t xml:space="preserve"> a &amp; b </w:t></w:r><w:r><w:br/></w:r></w:p>` +
		`</w:body></w:document>`

	root, err := ParseXML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, src, string(root.Marshal()))

	p := root.Find("w:p")
	require.NotNil(t, p)
	v, ok := p.GetAttr("w:rsidR")
	assert.True(t, ok)
	assert.Equal(t, "00A1", v)
	assert.Equal(t, " a & b ", ParagraphText(p))
}

func TestParseXMLMalformed(t *testing.T) {
	_, err := ParseXML([]byte(`<w:p><w:r></w:p>`))
	assert.Error(t, err)

	_, err = ParseXML([]byte(`<w:p><w:r>`))
	assert.Error(t, err)
}

func TestNodeSplicing(t *testing.T) {
	parent := NewElement("w:body")
	a, b, c := NewElement("w:p"), NewElement("w:p"), NewElement("w:tbl")
	parent.Append(a, c)

	assert.True(t, parent.InsertBefore(c, b))
	assert.Equal(t, []*Node{a, b, c}, parent.Children)

	d := NewElement("w:p")
	assert.True(t, parent.InsertAfter(c, d))
	assert.Equal(t, 3, parent.Index(d))

	assert.True(t, parent.Remove(b))
	assert.Equal(t, []*Node{a, c, d}, parent.Children)
	assert.False(t, parent.Remove(b))
	assert.False(t, parent.InsertBefore(b, NewElement("w:p")))

	assert.Len(t, parent.Elements("w:p"), 2)
	assert.Equal(t, c, parent.Child("w:tbl"))
}

func TestClone(t *testing.T) {
	n := NewElement("w:rPr").Append(NewElement("w:b"))
	c := n.Clone()
	c.Append(NewElement("w:i"))
	c.SetAttr("w:x", "1")

	assert.Len(t, n.Children, 1)
	assert.Empty(t, n.Attr)
}

func TestSetRunText(t *testing.T) {
	root, err := ParseXML([]byte(`<w:r><w:rPr/><w:t>a</w:t><w:tab/><w:t>b</w:t></w:r>`))
	require.NoError(t, err)
	r := root.Find("w:r")

	assert.Equal(t, "ab", RunText(r))
	SetRunText(r, "xyz")
	assert.Equal(t, "xyz", RunText(r))
	assert.Len(t, r.Elements("w:t"), 1)
	assert.NotNil(t, r.Child("w:tab"))

	SetRunText(r, "")
	assert.Equal(t, "", RunText(r))
}

func TestUnits(t *testing.T) {
	assert.Equal(t, 20, HalfPoints(10))
	assert.Equal(t, 21, HalfPoints(10.5))
	assert.Equal(t, 240, Twips(12))
}
