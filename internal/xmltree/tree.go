// =============================================================================
// XML to CSV Converter - XML Tree Module
// =============================================================================
//
// This module defines the in-memory element tree that the rest of the
// application operates on. The tree is deliberately schema-free: every feed
// we receive has a different, undocumented structure, so the parser keeps
// everything (tags, attributes, text) exactly as it appears in the document.
//
// TREE SHAPE:
//   <shop>
//     <products>
//       <product id="1">
//         <name>Widget</name>
//         <price currency="USD">9.99</price>
//       </product>
//       ...
//     </products>
//   </shop>
//
//   Each element becomes one Node. Attribute order and child order follow
//   document order, which the detector and flattener rely on for
//   deterministic output.
//
// =============================================================================

package xmltree

// Attr is a single attribute on an element, in document order.
type Attr struct {
	// Name is the local attribute name (namespace prefixes are dropped;
	// the converter is not namespace-aware).
	Name string

	// Value is the raw attribute value.
	Value string
}

// Node represents one XML element.
//
// A Node owns its children exclusively: the parser produces a strict tree
// with no sharing and no cycles, so the detector and flattener can walk it
// without cycle checks.
type Node struct {
	// Tag is the local element name.
	Tag string

	// Attrs holds the element's attributes in document order.
	Attrs []Attr

	// Text is the character data directly inside the element, before its
	// first child. Trailing and interstitial text is not kept; the
	// flattener would discard it anyway for elements with children.
	Text string

	// Children holds the child elements in document order.
	Children []*Node
}

// Walk visits n and every descendant in pre-order (parent before children,
// children in document order) and calls fn for each. This is the traversal
// order the detection heuristic's tie-breaking is defined on.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Count returns the total number of elements in the subtree rooted at n,
// including n itself.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) { total++ })
	return total
}
