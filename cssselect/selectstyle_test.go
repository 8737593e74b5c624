package cssselect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cssengine/bytecode"
	"cssengine/cssintern"
	"cssengine/rule"
	"cssengine/selector"
	"cssengine/style"
)

func colorDecl(r, g, b uint8, important bool) []byte {
	var flags bytecode.Flags
	if important {
		flags = bytecode.FlagImportant
	}
	return bytecode.Emit(nil, style.PropColor, flags, bytecode.ValueSet, bytecode.KindColor,
		bytecode.Operand{Color: bytecode.NewColor(r, g, b, 0xff)})
}

func newBlockRule(t *testing.T, sheet *rule.Stylesheet, sel *selector.Selector, decl []byte) *rule.Rule {
	t.Helper()
	r := rule.NewSelectorBlockRule([]*selector.Selector{sel})
	require.NoError(t, sheet.AddRule(r, nil))
	sheet.AppendStyle(r, decl)
	return r
}

func TestSelectStyleIDBeatsClassSpecificity(t *testing.T) {
	cssintern.Reset()
	sheet := rule.New("t.css", "", rule.OriginAuthor, false, nil)

	idSel := selector.New(cssintern.Zero, true)
	require.NoError(t, idSel.Append(selector.Detail{Kind: selector.KindID, Name: cssintern.Intern("a")}))
	newBlockRule(t, sheet, idSel, colorDecl(255, 0, 0, false))

	classSel := selector.New(cssintern.Zero, true)
	require.NoError(t, classSel.Append(selector.Detail{Kind: selector.KindClass, Name: cssintern.Intern("b")}))
	newBlockRule(t, sheet, classSel, colorDecl(0, 0, 255, false))

	ctx := ContextCreate()
	ctx.AddStylesheet(sheet)

	element := &fakeNode{name: "span", id: "a", classes: []string{"b"}}
	result, err := SelectStyle(element, ctx, fakeHandler{}, Options{Media: MediaAll})
	require.NoError(t, err)

	_, col := result.Color()
	r, _, _, _ := col.RGBA()
	require.Equal(t, uint8(255), r, "id specificity must beat class specificity")
}

func TestSelectStyleParentCombinatorRequiresDirectParent(t *testing.T) {
	cssintern.Reset()

	divCompound := selector.New(cssintern.Intern("div"), false)
	noteCompound := selector.New(cssintern.Intern("p"), false)
	require.NoError(t, noteCompound.Append(selector.Detail{Kind: selector.KindClass, Name: cssintern.Intern("note")}))
	require.NoError(t, selector.Combine(selector.CombinatorParent, divCompound, noteCompound))

	div := &fakeNode{name: "div"}
	section := &fakeNode{name: "section"}
	pUnderDiv := &fakeNode{name: "p", classes: []string{"note"}, parent: div}
	pUnderSection := &fakeNode{name: "p", classes: []string{"note"}, parent: section}

	ok, err := matchSelector(fakeHandler{}, pUnderDiv, noteCompound, false, cssintern.Zero)
	require.NoError(t, err)
	require.True(t, ok, "p.note directly under div must match 'div > p.note'")

	ok, err = matchSelector(fakeHandler{}, pUnderSection, noteCompound, false, cssintern.Zero)
	require.NoError(t, err)
	require.False(t, ok, "p.note under section must not match 'div > p.note'")
}

func TestSelectStyleImportantInvertsOriginOrder(t *testing.T) {
	cssintern.Reset()

	authorSheet := rule.New("author.css", "", rule.OriginAuthor, false, nil)
	authorSel := selector.New(cssintern.Intern("div"), false)
	require.NoError(t, authorSel.Append(selector.Detail{Kind: selector.KindID, Name: cssintern.Intern("x")}))
	newBlockRule(t, authorSheet, authorSel, colorDecl(255, 0, 0, false))

	userSheet := rule.New("user.css", "", rule.OriginUser, false, nil)
	userSel := selector.New(cssintern.Zero, true)
	newBlockRule(t, userSheet, userSel, colorDecl(0, 255, 0, true))

	ctx := ContextCreate()
	ctx.AddStylesheet(authorSheet)
	ctx.AddStylesheet(userSheet)

	element := &fakeNode{name: "div", id: "x"}
	result, err := SelectStyle(element, ctx, fakeHandler{}, Options{Media: MediaAll})
	require.NoError(t, err)

	_, col := result.Color()
	_, g, _, _ := col.RGBA()
	require.Equal(t, uint8(255), g, "a !important user rule must beat a higher-specificity normal author rule")
}

func TestSelectStyleComposesRelativeFontSizeAgainstParent(t *testing.T) {
	cssintern.Reset()

	parentSheet := rule.New("t.css", "", rule.OriginAuthor, false, nil)
	parentSel := selector.New(cssintern.Intern("body"), false)
	fontDecl := bytecode.Emit(nil, style.PropFontSize, 0, bytecode.ValueSet, bytecode.KindLength,
		bytecode.Operand{Length: bytecode.Length{Value: bytecode.FromFloat(20), Unit: bytecode.UnitPX}})
	newBlockRule(t, parentSheet, parentSel, fontDecl)

	childSheet := rule.New("t.css", "", rule.OriginAuthor, false, nil)
	childSel := selector.New(cssintern.Intern("span"), false)
	emDecl := bytecode.Emit(nil, style.PropFontSize, 0, bytecode.ValueSet, bytecode.KindLength,
		bytecode.Operand{Length: bytecode.Length{Value: bytecode.FromFloat(2), Unit: bytecode.UnitEM}})
	newBlockRule(t, childSheet, childSel, emDecl)

	ctx := ContextCreate()
	ctx.AddStylesheet(parentSheet)

	body := &fakeNode{name: "body"}
	parentResult, err := SelectStyle(body, ctx, fakeHandler{}, Options{Media: MediaAll})
	require.NoError(t, err)
	_, parentFontSize := parentResult.FontSize()
	require.InDelta(t, 20.0, parentFontSize.Value.Float(), 0.01)

	ctx2 := ContextCreate()
	ctx2.AddStylesheet(childSheet)
	span := &fakeNode{name: "span", parent: body}
	childResult, err := SelectStyle(span, ctx2, fakeHandler{}, Options{Media: MediaAll, Parent: parentResult})
	require.NoError(t, err)

	_, childFontSize := childResult.FontSize()
	require.InDelta(t, 40.0, childFontSize.Value.Float(), 0.01, "2em against a 20px parent resolves to 40px")
}

func TestSelectStyleInheritsColorWithNoExplicitDeclaration(t *testing.T) {
	cssintern.Reset()

	parentSheet := rule.New("t.css", "", rule.OriginAuthor, false, nil)
	parentSel := selector.New(cssintern.Intern("body"), false)
	newBlockRule(t, parentSheet, parentSel, colorDecl(10, 20, 30, false))

	ctx := ContextCreate()
	ctx.AddStylesheet(parentSheet)

	body := &fakeNode{name: "body"}
	parentResult, err := SelectStyle(body, ctx, fakeHandler{}, Options{Media: MediaAll})
	require.NoError(t, err)

	emptySheet := rule.New("empty.css", "", rule.OriginAuthor, false, nil)
	ctx2 := ContextCreate()
	ctx2.AddStylesheet(emptySheet)
	span := &fakeNode{name: "span", parent: body}
	childResult, err := SelectStyle(span, ctx2, fakeHandler{}, Options{Media: MediaAll, Parent: parentResult})
	require.NoError(t, err)

	_, col := childResult.Color()
	r, g, b, _ := col.RGBA()
	require.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{r, g, b}, "color must inherit unchanged from the parent")
}

func TestSelectStylePresentationalHintAppliesAtUATier(t *testing.T) {
	cssintern.Reset()

	element := &fakeNode{name: "a"}
	handler := presentationalHintHandler{hintElement: element, hintBlob: colorDecl(0, 0, 238, false)}

	ctx := ContextCreate()
	ctx.AddStylesheet(rule.New("empty.css", "", rule.OriginAuthor, false, nil))

	result, err := SelectStyle(element, ctx, handler, Options{Media: MediaAll})
	require.NoError(t, err)

	_, col := result.Color()
	r, g, b, _ := col.RGBA()
	require.Equal(t, [3]uint8{0, 0, 238}, [3]uint8{r, g, b}, "a presentational hint must apply when no rule overrides it")
}

func TestSelectStylePresentationalHintIsOverriddenByAuthorRule(t *testing.T) {
	cssintern.Reset()

	element := &fakeNode{name: "a"}
	handler := presentationalHintHandler{hintElement: element, hintBlob: colorDecl(0, 0, 238, false)}

	sheet := rule.New("t.css", "", rule.OriginAuthor, false, nil)
	sel := selector.New(cssintern.Intern("a"), false)
	newBlockRule(t, sheet, sel, colorDecl(255, 0, 0, false))

	ctx := ContextCreate()
	ctx.AddStylesheet(sheet)

	result, err := SelectStyle(element, ctx, handler, Options{Media: MediaAll})
	require.NoError(t, err)

	_, col := result.Color()
	r, _, _, _ := col.RGBA()
	require.Equal(t, uint8(255), r, "any author rule must beat a UA-tier presentational hint, regardless of specificity")
}

func TestSelectStyleMediaMaskExcludesNonMatchingRules(t *testing.T) {
	cssintern.Reset()

	sheet := rule.New("t.css", "", rule.OriginAuthor, false, nil)
	mediaRule := rule.NewMediaRule(rule.MediaPrint)
	require.NoError(t, sheet.AddRule(mediaRule, nil))

	sel := selector.New(cssintern.Intern("div"), false)
	child := rule.NewSelectorBlockRule([]*selector.Selector{sel})
	require.NoError(t, sheet.AddRule(child, mediaRule))
	sheet.AppendStyle(child, colorDecl(1, 2, 3, false))

	ctx := ContextCreate()
	ctx.AddStylesheet(sheet)

	element := &fakeNode{name: "div"}
	result, err := SelectStyle(element, ctx, fakeHandler{}, Options{Media: MediaScreen})
	require.NoError(t, err)

	_, col := result.Color()
	r, g, b, _ := col.RGBA()
	require.NotEqual(t, [3]uint8{1, 2, 3}, [3]uint8{r, g, b}, "a @media print rule must not apply under a screen mask")
}
