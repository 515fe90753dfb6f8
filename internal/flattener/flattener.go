// =============================================================================
// XML to CSV Converter - Record Flattener Module
// =============================================================================
//
// This module reduces one record subtree (arbitrary depth, arbitrary
// branching) to a single flat key/value row.
//
// KEY NAMING:
//   Keys are built from the tag path inside the record. The record root's
//   own tag never appears in descendant keys; every intermediate ancestor's
//   tag does, joined with "_". Attributes append "@<name>" to the owning
//   element's key.
//
//     <offer code="A1">
//       <seller><name>Acme</name></seller>
//       <price currency="USD">9.99</price>
//     </offer>
//
//   flattens to:
//
//     offer@code     = "A1"
//     seller_name    = "Acme"
//     price@currency = "USD"
//     price          = "9.99"
//
// MULTI-VALUED FIELDS:
//   Repeated sibling tags (image galleries are the classic case) would
//   produce the same key several times. Because the output is one row per
//   record, those values collapse into one cell: collected in first-seen
//   order, exact duplicates dropped, joined with " | ".
//
// =============================================================================

package flattener

import (
	"strings"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/xmltree"
)

// PathSeparator joins ancestor tags inside a composite key.
const PathSeparator = "_"

// AttrMarker separates an element's key from an attribute name.
const AttrMarker = "@"

// ValueSeparator joins the merged values of a multi-valued field.
const ValueSeparator = " | "

// Row is one flattened record: a unique composite key to merged value
// mapping, plus the keys in first-emitted order. The order is what makes
// the derived CSV header deterministic, so Row is used instead of a bare
// map everywhere rows travel.
type Row struct {
	// Keys holds the composite keys in the order they were first emitted
	// during the record's traversal.
	Keys []string

	// Values maps each key to its merged value. len(Values) == len(Keys).
	Values map[string]string
}

// Get returns the merged value for key, or "" when the row has no such
// field. Missing keys render as empty cells.
func (r Row) Get(key string) string {
	return r.Values[key]
}

// Flatten reduces the subtree rooted at record to a single Row.
//
// The traversal is side-effect-free with respect to the tree: flattening
// the same record twice yields identical rows, and distinct records can be
// flattened concurrently without coordination.
func Flatten(record *xmltree.Node) Row {
	b := &bucket{values: make(map[string][]string)}
	walk(record, "", true, b)

	row := Row{
		Keys:   b.order,
		Values: make(map[string]string, len(b.order)),
	}

	// Second pass: dedupe values per key (first occurrence wins) and join
	// the survivors. Kept separate from collection so the merge rule stays
	// independent of traversal details.
	for _, key := range b.order {
		vals := b.values[key]
		seen := make(map[string]bool, len(vals))
		uniq := make([]string, 0, len(vals))
		for _, v := range vals {
			if !seen[v] {
				seen[v] = true
				uniq = append(uniq, v)
			}
		}
		row.Values[key] = strings.Join(uniq, ValueSeparator)
	}

	return row
}

// Header returns the ordered, deduplicated union of all keys across rows,
// in first-seen order: all of row one's keys in row order, then any new
// keys from row two, and so on. This drives the output column order.
func Header(rows []Row) []string {
	var header []string
	seen := make(map[string]bool)

	for _, row := range rows {
		for _, key := range row.Keys {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}
	}

	return header
}

// bucket accumulates candidate fields during one record traversal. A key
// may be appended to several times before merging.
type bucket struct {
	order  []string
	values map[string][]string
}

func (b *bucket) add(key, value string) {
	if _, exists := b.values[key]; !exists {
		b.order = append(b.order, key)
	}
	b.values[key] = append(b.values[key], value)
}

// walk emits candidate fields for node and recurses into its children.
//
// prefix is the accumulated ancestor path ("" at the record root, then
// "seller_", "seller_address_", ...). isRoot marks the record root, whose
// tag is excluded from descendant prefixes: the root is the row itself,
// not an ancestor that needs disambiguating.
func walk(node *xmltree.Node, prefix string, isRoot bool, b *bucket) {
	// Attributes always carry the owning element's tag, record root
	// included. Whitespace-only values are dropped rather than emitted as
	// empty fields.
	for _, attr := range node.Attrs {
		value := strings.TrimSpace(attr.Value)
		if value == "" {
			continue
		}
		b.add(prefix+node.Tag+AttrMarker+attr.Name, value)
	}

	if len(node.Children) == 0 {
		// Text leaf. Empty text emits nothing; attributes above still count.
		if text := strings.TrimSpace(node.Text); text != "" {
			b.add(prefix+node.Tag, text)
		}
		return
	}

	// An element with children contributes no text field of its own.
	childPrefix := prefix
	if !isRoot {
		childPrefix = prefix + node.Tag + PathSeparator
	}
	for _, child := range node.Children {
		walk(child, childPrefix, false, b)
	}
}
