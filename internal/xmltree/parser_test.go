package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildsOrderedTree(t *testing.T) {
	doc := `<shop>
		<info>catalog</info>
		<product id="1" lang="pl">
			<name>Widget</name>
			<price currency="USD">9.99</price>
		</product>
	</shop>`

	root, err := ParseBytes([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "shop", root.Tag)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "info", root.Children[0].Tag)
	assert.Equal(t, "catalog", root.Children[0].Text)

	product := root.Children[1]
	assert.Equal(t, "product", product.Tag)
	require.Len(t, product.Attrs, 2)
	assert.Equal(t, Attr{Name: "id", Value: "1"}, product.Attrs[0])
	assert.Equal(t, Attr{Name: "lang", Value: "pl"}, product.Attrs[1])

	require.Len(t, product.Children, 2)
	assert.Equal(t, "name", product.Children[0].Tag)
	assert.Equal(t, "Widget", product.Children[0].Text)
	assert.Equal(t, "price", product.Children[1].Tag)
	assert.Equal(t, "9.99", product.Children[1].Text)
}

func TestParseKeepsOnlyTextBeforeFirstChild(t *testing.T) {
	doc := `<a>leading<b>inner</b>trailing</a>`

	root, err := ParseBytes([]byte(doc))
	require.NoError(t, err)

	// Text before the first child is kept, tail fragments are not.
	assert.Equal(t, "leading", root.Text)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "inner", root.Children[0].Text)
}

func TestParseHandlesEncodingDeclaration(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?><root><item>ok</item></root>`

	root, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "ok", root.Children[0].Text)
}

func TestParseDropsNamespacePrefixes(t *testing.T) {
	doc := `<g:rss xmlns:g="http://example.com/ns"><g:item g:id="7">x</g:item></g:rss>`

	root, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "rss", root.Tag)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "item", root.Children[0].Tag)
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"unclosed element":  `<a><b></a>`,
		"no root element":   `   `,
		"second root":       `<a></a><b></b>`,
		"garbage":           `not xml at all <<<`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBytes([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestWalkVisitsPreOrder(t *testing.T) {
	doc := `<r><a><a1/><a2/></a><b/></r>`
	root, err := ParseBytes([]byte(doc))
	require.NoError(t, err)

	var visited []string
	root.Walk(func(n *Node) { visited = append(visited, n.Tag) })

	assert.Equal(t, []string{"r", "a", "a1", "a2", "b"}, visited)
	assert.Equal(t, 5, root.Count())
}
