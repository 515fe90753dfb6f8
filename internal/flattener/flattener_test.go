package flattener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/xmltree"
)

func parse(t *testing.T, doc string) *xmltree.Node {
	t.Helper()
	root, err := xmltree.ParseBytes([]byte(doc))
	require.NoError(t, err)
	return root
}

func TestFlattenLeafTextAndAttributes(t *testing.T) {
	record := parse(t, `<price currency="USD">9.99</price>`)

	row := Flatten(record)

	assert.Equal(t, []string{"price@currency", "price"}, row.Keys)
	assert.Equal(t, "USD", row.Get("price@currency"))
	assert.Equal(t, "9.99", row.Get("price"))
}

func TestFlattenExcludesRecordRootFromPrefixes(t *testing.T) {
	record := parse(t, `<offer>
		<seller><name>Acme</name></seller>
	</offer>`)

	row := Flatten(record)

	// The record root's tag never appears in descendant keys; the
	// intermediate <seller> ancestor does.
	assert.Equal(t, []string{"seller_name"}, row.Keys)
	assert.Equal(t, "Acme", row.Get("seller_name"))
}

func TestFlattenDeepNestingAccumulatesAncestorTags(t *testing.T) {
	record := parse(t, `<offer>
		<seller>
			<address>
				<city>Gdansk</city>
			</address>
		</seller>
	</offer>`)

	row := Flatten(record)

	assert.Equal(t, "Gdansk", row.Get("seller_address_city"))
}

func TestFlattenMergesRepeatedKeysDroppingDuplicates(t *testing.T) {
	record := parse(t, `<product>
		<image>a</image>
		<image>b</image>
		<image>a</image>
	</product>`)

	row := Flatten(record)

	// First-seen order, exact duplicates removed, joined with " | ".
	assert.Equal(t, "a | b", row.Get("image"))
	assert.Equal(t, []string{"image"}, row.Keys)
}

func TestFlattenTrimsValuesAndSuppressesEmptyOnes(t *testing.T) {
	record := parse(t, `<product note="   " sku=" AB-1 ">
		<name>  Widget  </name>
		<description>   </description>
	</product>`)

	row := Flatten(record)

	// Whitespace-only attribute and text values are omitted entirely, not
	// emitted as empty fields.
	assert.Equal(t, []string{"product@sku", "name"}, row.Keys)
	assert.Equal(t, "AB-1", row.Get("product@sku"))
	assert.Equal(t, "Widget", row.Get("name"))
	assert.Equal(t, "", row.Get("description"))
}

func TestFlattenParentWithChildrenContributesNoTextField(t *testing.T) {
	record := parse(t, `<product>mixed<name>Widget</name></product>`)

	row := Flatten(record)

	assert.Equal(t, []string{"name"}, row.Keys)
}

func TestFlattenAttributesOnNestedElements(t *testing.T) {
	record := parse(t, `<product>
		<price currency="USD">9.99</price>
		<variants>
			<variant size="M">blue</variant>
		</variants>
	</product>`)

	row := Flatten(record)

	assert.Equal(t, "USD", row.Get("price@currency"))
	assert.Equal(t, "9.99", row.Get("price"))
	assert.Equal(t, "M", row.Get("variants_variant@size"))
	assert.Equal(t, "blue", row.Get("variants_variant"))
}

func TestFlattenIsIdempotent(t *testing.T) {
	record := parse(t, `<product sku="1">
		<image>a</image>
		<image>b</image>
		<seller><name>Acme</name></seller>
	</product>`)

	first := Flatten(record)
	second := Flatten(record)

	assert.Equal(t, first.Keys, second.Keys)
	assert.Equal(t, first.Values, second.Values)
}

func TestFlattenEmptyRecord(t *testing.T) {
	record := parse(t, `<product/>`)

	row := Flatten(record)

	assert.Empty(t, row.Keys)
	assert.Empty(t, row.Values)
}

func TestHeaderIsFirstSeenUnionAcrossRows(t *testing.T) {
	rowOne := Flatten(parse(t, `<r><a>1</a><b>2</b></r>`))
	rowTwo := Flatten(parse(t, `<r><b>3</b><c>4</c></r>`))

	header := Header([]Row{rowOne, rowTwo})

	assert.Equal(t, []string{"a", "b", "c"}, header)

	// Missing keys render as empty cells on either side.
	assert.Equal(t, "", rowOne.Get("c"))
	assert.Equal(t, "", rowTwo.Get("a"))
}

func TestHeaderEmptyRows(t *testing.T) {
	assert.Empty(t, Header(nil))
	assert.Empty(t, Header([]Row{}))
}
