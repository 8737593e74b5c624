package main

import (
	"testing"

	"cssengine/rule"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSheet() *rule.Stylesheet {
	return rule.New("test.css", "", rule.OriginAuthor, false, zap.NewNop())
}

func TestGrammarParsesSelectorBlock(t *testing.T) {
	sheet := newTestSheet()
	fe := newFrontendFor(sheet, zap.NewNop())

	err := newGrammar(`p.lead, div#wrap { color: red; font-size: 12px; }`, fe).Run()
	require.NoError(t, err)
	require.Equal(t, 1, sheet.RuleCount())

	rules := sheet.Rules()
	require.Len(t, rules, 1)
	require.Equal(t, rule.TypeSelectorBlock, rules[0].Type)
	require.Len(t, rules[0].Selectors, 2)
	require.NotNil(t, rules[0].Style)
}

func TestGrammarParsesMediaBlock(t *testing.T) {
	sheet := newTestSheet()
	fe := newFrontendFor(sheet, zap.NewNop())

	css := `@media screen, print { a { color: blue; } }`
	err := newGrammar(css, fe).Run()
	require.NoError(t, err)

	rules := sheet.Rules()
	require.Len(t, rules, 1)
	require.Equal(t, rule.TypeMedia, rules[0].Type)
	require.Equal(t, rule.MediaScreen|rule.MediaPrint, rules[0].Media)
	require.Equal(t, 1, rules[0].ItemsCount)
}

func TestGrammarHandlesCharset(t *testing.T) {
	sheet := newTestSheet()
	fe := newFrontendFor(sheet, zap.NewNop())

	err := newGrammar(`@charset "UTF-8"; body { color: black; }`, fe).Run()
	require.NoError(t, err)
	require.Equal(t, 2, sheet.RuleCount())
	require.Equal(t, rule.TypeCharset, sheet.Rules()[0].Type)
}

func TestGrammarSkipsUnknownAtRules(t *testing.T) {
	sheet := newTestSheet()
	fe := newFrontendFor(sheet, zap.NewNop())

	css := `@font-face { font-family: "Foo"; src: url(foo.woff); } p { color: green; }`
	err := newGrammar(css, fe).Run()
	require.NoError(t, err)
	require.Equal(t, 1, sheet.RuleCount())
	require.Equal(t, rule.TypeSelectorBlock, sheet.Rules()[0].Type)
}

func TestGrammarRejectsGeneralSiblingCombinator(t *testing.T) {
	sheet := newTestSheet()
	fe := newFrontendFor(sheet, zap.NewNop())

	err := newGrammar(`p ~ span { color: red; }`, fe).Run()
	require.Error(t, err)
}

func TestGrammarRecordsWarningsForMalformedDeclarations(t *testing.T) {
	sheet := newTestSheet()
	fe := newFrontendFor(sheet, zap.NewNop())

	gr := newGrammar(`p { not-a-real-property: 42; color: red; }`, fe)
	err := gr.Run()
	require.NoError(t, err)
	require.Error(t, gr.Warnings())
}

func TestGrammarParsesAttributeAndPseudoSelectors(t *testing.T) {
	sheet := newTestSheet()
	fe := newFrontendFor(sheet, zap.NewNop())

	css := `a[href], li:first-child, p::first-line { color: red; }`
	err := newGrammar(css, fe).Run()
	require.NoError(t, err)
	require.Len(t, sheet.Rules()[0].Selectors, 3)
}
