// Package docx edits WordprocessingML packages in place: it locates anchor
// paragraphs, substitutes placeholder tokens and splices generated
// paragraphs and tables into the body.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"
)

const (
	mainPart     = "word/document.xml"
	mainRelsPart = "word/_rels/document.xml.rels"

	relTypeHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

// ErrInvalidDocument indicates the file is not a readable .docx package.
var ErrInvalidDocument = errors.New("invalid docx document")

type zipEntry struct {
	name     string
	method   uint16
	modified time.Time
	data     []byte
}

// Document is a loaded .docx package. The main body and every header and
// footer part are held as node trees; all other parts are kept verbatim.
type Document struct {
	entries []zipEntry
	main    *Node
	// Body is the w:body element of the main part.
	Body *Node
	// parts maps header/footer part names to their trees, in package order.
	parts     map[string]*Node
	partNames []string
}

// Open reads a .docx file.
func Open(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Read parses a .docx package from r.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	doc := &Document{parts: make(map[string]*Node)}
	for _, f := range zr.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, f.Name, err)
		}
		doc.entries = append(doc.entries, zipEntry{
			name:     f.Name,
			method:   f.Method,
			modified: f.Modified,
			data:     data,
		})
	}

	mainXML := doc.entry(mainPart)
	if mainXML == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidDocument, mainPart)
	}
	if doc.main, err = ParseXML(mainXML); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, mainPart, err)
	}
	if doc.Body = doc.main.Find("w:body"); doc.Body == nil {
		return nil, fmt.Errorf("%w: %s has no body", ErrInvalidDocument, mainPart)
	}

	if rels := doc.entry(mainRelsPart); rels != nil {
		for _, name := range headerFooterParts(rels) {
			data := doc.entry(name)
			if data == nil {
				continue
			}
			tree, err := ParseXML(data)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, name, err)
			}
			doc.parts[name] = tree
			doc.partNames = append(doc.partNames, name)
		}
	}
	return doc, nil
}

// Save writes the document to filePath.
func (d *Document) Save(filePath string) error {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return err
	}
	return os.WriteFile(filePath, buf.Bytes(), 0644)
}

// Write serializes the package, keeping the original part order.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, e := range d.entries {
		data := e.data
		switch {
		case e.name == mainPart:
			data = d.main.Marshal()
		case d.parts[e.name] != nil:
			data = d.parts[e.name].Marshal()
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   e.method,
			Modified: e.modified,
		})
		if err != nil {
			return err
		}
		if _, err := fw.Write(data); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Parts returns the root of the main part followed by header and footer parts.
func (d *Document) Parts() []*Node {
	roots := []*Node{d.main}
	for _, name := range d.partNames {
		roots = append(roots, d.parts[name])
	}
	return roots
}

func (d *Document) entry(name string) []byte {
	for _, e := range d.entries {
		if e.name == name {
			return e.data
		}
	}
	return nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// headerFooterParts lists header and footer part names referenced by the
// main part's relationships.
func headerFooterParts(data []byte) []string {
	var names []string
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var relType, target, mode string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Type":
				relType = attr.Value
			case "Target":
				target = attr.Value
			case "TargetMode":
				mode = attr.Value
			}
		}
		if mode == "External" || (relType != relTypeHeader && relType != relTypeFooter) {
			continue
		}
		names = append(names, resolveRelativePath(target, "word"))
	}

	return names
}

// resolveRelativePath resolves a relationship target against the part's directory.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}
