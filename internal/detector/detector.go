// =============================================================================
// XML to CSV Converter - Item Detector Module
// =============================================================================
//
// This module answers the central question for a feed with unknown schema:
// which element represents "one record"?
//
// HEURISTIC:
//   The repeated element is almost always the record. For every element in
//   the tree we count, among its direct children only, how many share each
//   tag. The (parent, tag) pair with the highest count wins, and that
//   parent's matching children become the records.
//
//   Example:
//     <shop>
//       <info>...</info>
//       <products>
//         <product>...</product>   x 500
//       </products>
//     </shop>
//
//   (products, product) has count 500, so the 500 <product> elements are
//   the records.
//
// DETERMINISM:
//   The tree is walked in pre-order (parent before children, children in
//   document order) and the best candidate is replaced only on a strictly
//   greater count. Two parents tying on the maximum therefore always
//   resolve to the one encountered first, on every run.
//
// =============================================================================

package detector

import "github.com/ginjaninja78/XML-to-CSV-conversion/internal/xmltree"

// Detection is the outcome of item detection for one tree.
type Detection struct {
	// Items are the record elements, in document order. Empty when the
	// tree has no elements below the root.
	Items []*xmltree.Node

	// Tag is the detected record tag. When detection falls back to the
	// root's direct children this is the root's own tag and is only
	// meaningful for reporting.
	Tag string

	// FellBack is true when a forced tag was requested but matched
	// nothing, and automatic detection was used instead. The caller is
	// expected to surface a warning; the condition is not fatal.
	FellBack bool
}

// Detect identifies the record elements of the tree rooted at root.
//
// PARAMETERS:
//   - root: The parsed document root. Must not be nil.
//   - forceTag: Optional record tag override. When non-empty, every element
//     anywhere in the tree with this tag becomes a record, regardless of
//     parent. When empty, the repeated-tag heuristic decides.
//
// RETURNS:
//   - A Detection with the records in document order. Never an error:
//     a forced tag that matches nothing falls back to automatic detection
//     with FellBack set, and a degenerate tree yields the root's direct
//     children (possibly none).
func Detect(root *xmltree.Node, forceTag string) Detection {
	if forceTag != "" {
		var items []*xmltree.Node
		root.Walk(func(n *xmltree.Node) {
			if n.Tag == forceTag {
				items = append(items, n)
			}
		})
		if len(items) > 0 {
			return Detection{Items: items, Tag: forceTag}
		}

		// The requested tag does not exist in this document. Recover by
		// detecting automatically and let the caller warn about it.
		auto := detectAuto(root)
		auto.FellBack = true
		return auto
	}

	return detectAuto(root)
}

// detectAuto runs the repeated-tag heuristic.
//
// The traversal keeps a single best (count, parent, tag) candidate as
// ordinary local state. Counts are accumulated child by child in document
// order and the candidate is replaced only when a count strictly exceeds
// the current best, which is what makes ties deterministic: the first
// (parent, tag) pair to reach the maximum keeps it.
func detectAuto(root *xmltree.Node) Detection {
	var (
		bestCount  int
		bestParent *xmltree.Node
		bestTag    string
	)

	root.Walk(func(parent *xmltree.Node) {
		counts := make(map[string]int, len(parent.Children))
		for _, child := range parent.Children {
			counts[child.Tag]++
			if counts[child.Tag] > bestCount {
				bestCount = counts[child.Tag]
				bestParent = parent
				bestTag = child.Tag
			}
		}
	})

	// A best count of one means no tag repeats anywhere. The root's
	// direct children are the closest thing to records this document has;
	// report the root's own tag since no child tag was singled out.
	if bestCount <= 1 {
		items := make([]*xmltree.Node, len(root.Children))
		copy(items, root.Children)
		return Detection{Items: items, Tag: root.Tag}
	}

	items := make([]*xmltree.Node, 0, bestCount)
	for _, child := range bestParent.Children {
		if child.Tag == bestTag {
			items = append(items, child)
		}
	}

	return Detection{Items: items, Tag: bestTag}
}
