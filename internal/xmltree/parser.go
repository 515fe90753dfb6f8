// =============================================================================
// XML to CSV Converter - XML Parser
// =============================================================================
//
// This file builds the element tree from raw document bytes. It is the only
// place where malformed input is rejected: everything downstream (detector,
// flattener, writers) assumes a well-formed tree.
//
// PARSING NOTES:
//   - Feeds in the wild declare all sorts of encodings (ISO-8859-2 is common
//     for the product feeds this tool was written for). The decoder uses
//     golang.org/x/net/html/charset so those documents decode transparently.
//   - Only the text directly inside an element before its first child is
//     retained. For mixed content the tail fragments carry no field value.
//   - Namespace prefixes are dropped; the converter is not namespace-aware.
//
// =============================================================================

package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// Parse reads an XML document from r and returns the root element.
//
// PARAMETERS:
//   - r: The raw document bytes.
//
// RETURNS:
//   - The root element of the document.
//   - An error if the document is not well-formed or contains no element.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var root *Node
	var stack []*Node

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			node := &Node{Tag: tok.Name.Local}
			if len(tok.Attr) > 0 {
				node.Attrs = make([]Attr, 0, len(tok.Attr))
				for _, a := range tok.Attr {
					node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
				}
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("unexpected second root element <%s>", tok.Name.Local)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			current := stack[len(stack)-1]
			// Keep only the text before the first child element.
			if len(current.Children) == 0 {
				current.Text += string(tok)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("document contains no root element")
	}

	return root, nil
}

// ParseBytes is a convenience wrapper around Parse for in-memory documents.
func ParseBytes(data []byte) (*Node, error) {
	return Parse(bytes.NewReader(data))
}
