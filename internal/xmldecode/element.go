package xmldecode

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Static errors for err113 compliance.
var (
	ErrNoRootElement        = errors.New("document has no root element")
	ErrMultipleRootElements = errors.New("document has more than one root element")
)

// Attr is one element attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a parsed XML element. Tag is the local name; namespaces are
// ignored.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// Parse reads a complete XML document into an element tree.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		root  *Element
		stack []*Element
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local}

			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
					continue
				}

				el.Attrs = append(el.Attrs, Attr{Name: attr.Name.Local, Value: attr.Value})
			}

			switch {
			case len(stack) > 0:
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			case root == nil:
				root = el
			default:
				return nil, ErrMultipleRootElements
			}

			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, ErrNoRootElement
	}

	return root, nil
}
