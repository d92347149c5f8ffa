// Provides parsing of SVG images into an immutable render tree.
// The tree keeps the grouping structure and the id attributes of the
// source document, so that single nodes may be adressed and painted
// on their own. Painting is performed by the svgrender package,
// backed by a canvas implementation such as svgraster or svgpdf.
package svgtree

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// ErrorMode determines how the parser reacts
// to an unsupported SVG element.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for unsupported elements
	WarnErrorMode
	// StrictErrorMode aborts the parsing at the first unsupported element
	StrictErrorMode
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// Tree holds the data from a parsed SVG document.
// Once built it is immutable: render calls only read it,
// so one tree may safely be shared between concurrent renders.
type Tree struct {
	ViewBox      Bounds
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	Root         *Group   // top level svg element

	Width, Height string // top level width and height attributes

	grads map[string]*Gradient
	defs  map[string][]definition
}

// ReadTreeStream reads a render tree from the given io.Reader.
// This only supports a sub-set of SVG, but is enough to draw many
// icons and illustrations. errMode determines if the parser ignores,
// errors out, or logs a warning when it does not handle
// an element found in the document.
func ReadTreeStream(stream io.Reader, errMode ErrorMode) (*Tree, error) {
	tree := &Tree{
		Root:  &Group{},
		defs:  make(map[string][]definition),
		grads: make(map[string]*Gradient),
	}
	cursor := &treeCursor{styleStack: []PathStyle{DefaultStyle}, tree: tree}
	cursor.groupStack = []*Group{tree.Root}
	cursor.errorMode = errMode
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errors.New("invalid svg xml document")
				}
				break
			}
			return tree, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			// Reads all recognized style attributes from the start element
			// and places it on top of the styleStack
			err = cursor.pushStyle(se.Attr)
			if err != nil {
				return tree, err
			}
			err = cursor.readStartElement(se)
			if err != nil {
				return tree, err
			}
		case xml.EndElement:
			// pop style
			cursor.styleStack = cursor.styleStack[:len(cursor.styleStack)-1]
			switch se.Name.Local {
			case "g":
				if cursor.inDefs {
					cursor.currentDef = append(cursor.currentDef, definition{
						Tag: "endg",
					})
				} else if len(cursor.groupStack) > 1 {
					cursor.groupStack = cursor.groupStack[:len(cursor.groupStack)-1]
				}
			case "title":
				cursor.inTitleText = false
			case "desc":
				cursor.inDescText = false
			case "defs":
				if len(cursor.currentDef) > 0 {
					cursor.tree.defs[cursor.currentDef[0].ID] = cursor.currentDef
					cursor.currentDef = make([]definition, 0)
				}
				cursor.inDefs = false
			case "radialGradient", "linearGradient":
				cursor.inGrad = false
			}
		case xml.CharData:
			if cursor.inTitleText {
				tree.Titles[len(tree.Titles)-1] += string(se)
			}
			if cursor.inDescText {
				tree.Descriptions[len(tree.Descriptions)-1] += string(se)
			}
		}
	}
	return tree, nil
}

// ReadTree reads a render tree from the named file.
// See ReadTreeStream for details.
func ReadTree(path string, errMode ErrorMode) (*Tree, error) {
	fin, errf := os.Open(path)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadTreeStream(fin, errMode)
}
