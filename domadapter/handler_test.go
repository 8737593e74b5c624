package domadapter

import (
	"testing"

	"cssengine/cssintern"
	"cssengine/style"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const fixtureHTML = `<html><head></head><body>
  <div id="wrap" class="outer box">
    <p class="lead">first</p>
    <p>second <a href="https://example.com">link</a></p>
  </div>
</body></html>`

func firstMatch(t *testing.T, doc *Document, selector string) any {
	t.Helper()
	sel, ok := doc.QuerySelectorFirst(selector)
	require.True(t, ok, "no element for %q", selector)
	return sel
}

func TestNodeNameAndClassAndID(t *testing.T) {
	doc, err := ParseString(fixtureHTML)
	require.NoError(t, err)
	h := Handler{}

	wrap := firstMatch(t, doc, "#wrap")
	name, err := h.NodeName(wrap)
	require.NoError(t, err)
	require.Equal(t, "div", name.String())

	ok, err := h.NodeHasClass(wrap, cssintern.Intern("box"), false)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.NodeHasClass(wrap, cssintern.Intern("BOX"), false)
	require.NoError(t, err)
	require.False(t, ok, "class matching is case-sensitive outside quirks mode")

	ok, err = h.NodeHasClass(wrap, cssintern.Intern("BOX"), true)
	require.NoError(t, err)
	require.True(t, ok, "quirks mode compares case-insensitively")

	id, has, err := h.NodeID(wrap)
	require.NoError(t, err)
	require.True(t, has)
	require.Equal(t, "wrap", id.String())
}

func TestNamedAncestorAndParentWalk(t *testing.T) {
	doc, err := ParseString(fixtureHTML)
	require.NoError(t, err)
	h := Handler{}

	lead := firstMatch(t, doc, ".lead")

	parent, ok, err := h.NamedParentNode(lead, cssintern.Intern("div"))
	require.NoError(t, err)
	require.True(t, ok)
	id, _, _ := h.NodeID(parent)
	require.Equal(t, "wrap", id.String())

	_, ok, err = h.NamedParentNode(lead, cssintern.Intern("section"))
	require.NoError(t, err)
	require.False(t, ok)

	anc, ok, err := h.NamedAncestorNode(lead, cssintern.Intern("body"))
	require.NoError(t, err)
	require.True(t, ok)
	name, _ := h.NodeName(anc)
	require.Equal(t, "body", name.String())
}

func TestNamedSiblingRequiresImmediatePredecessor(t *testing.T) {
	doc, err := ParseString(fixtureHTML)
	require.NoError(t, err)
	h := Handler{}

	paragraphs := doc.QuerySelectorAll("p")
	require.Equal(t, 2, paragraphs.Length())
	second := paragraphs.Eq(1)

	sib, ok, err := h.NamedSiblingNode(second, cssintern.Intern("p"))
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, sib.(*goquery.Selection).HasClass("lead"))
}

func TestRootHasNoNamedParent(t *testing.T) {
	doc, err := ParseString(fixtureHTML)
	require.NoError(t, err)
	h := Handler{}

	root := doc.Root()
	_, ok, err := h.NamedParentNode(root, cssintern.Zero)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNodeIsLinkUsesCascadiaForHrefAnchors(t *testing.T) {
	doc, err := ParseString(fixtureHTML)
	require.NoError(t, err)
	h := Handler{}

	a := firstMatch(t, doc, "a")
	ok, err := h.NodeIsLink(a)
	require.NoError(t, err)
	require.True(t, ok)

	p := firstMatch(t, doc, ".lead")
	ok, err = h.NodeIsLink(p)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPresentationalHintColorsHrefAnchors(t *testing.T) {
	doc, err := ParseString(fixtureHTML)
	require.NoError(t, err)
	h := Handler{}

	a := firstMatch(t, doc, "a")
	blob, err := h.NodePresentationalHint(a, uint16(style.PropColor))
	require.NoError(t, err)
	require.NotNil(t, blob)

	p := firstMatch(t, doc, ".lead")
	blob, err = h.NodePresentationalHint(p, uint16(style.PropColor))
	require.NoError(t, err)
	require.Nil(t, blob)
}

func TestPresentationalHintReadsLegacyWidthAttribute(t *testing.T) {
	doc, err := ParseString(`<html><body><table width="120"></table></body></html>`)
	require.NoError(t, err)
	h := Handler{}

	table := firstMatch(t, doc, "table")
	blob, err := h.NodePresentationalHint(table, uint16(style.PropWidth))
	require.NoError(t, err)
	require.NotNil(t, blob)
}

func TestUADefaultForPropertyOverridesFontFamilyOnly(t *testing.T) {
	h := Handler{}

	operand, has, err := h.UADefaultForProperty(uint16(style.PropFontFamily))
	require.NoError(t, err)
	require.True(t, has)
	require.Equal(t, []cssintern.Handle{cssintern.Intern("serif")}, operand.Strings)

	_, has, err = h.UADefaultForProperty(uint16(style.PropColor))
	require.NoError(t, err)
	require.False(t, has)
}
