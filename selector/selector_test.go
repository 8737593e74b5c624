package selector

import (
	"testing"

	"cssengine/cssintern"

	"github.com/stretchr/testify/require"
)

func TestIDBeatsClassSpecificity(t *testing.T) {
	idSel := New(cssintern.Intern("span"), false)
	require.NoError(t, idSel.Append(Detail{Kind: KindID, Name: cssintern.Intern("a")}))

	classSel := New(cssintern.Intern("span"), false)
	require.NoError(t, classSel.Append(Detail{Kind: KindClass, Name: cssintern.Intern("b")}))

	require.Greater(t, idSel.Specificity(), classSel.Specificity())
}

func TestCombineAddsPredecessorSpecificity(t *testing.T) {
	div := New(cssintern.Intern("div"), false)
	p := New(cssintern.Intern("p"), false)
	require.NoError(t, p.Append(Detail{Kind: KindClass, Name: cssintern.Intern("note")}))

	before := p.Specificity()
	require.NoError(t, Combine(CombinatorParent, div, p))
	require.Equal(t, before+div.Specificity(), p.Specificity())
	require.Equal(t, CombinatorParent, p.Comb)
	require.Same(t, div, p.Predecessor)
}

func TestCombineRejectsExistingPredecessor(t *testing.T) {
	a := New(cssintern.Intern("a"), false)
	b := New(cssintern.Intern("b"), false)
	c := New(cssintern.Intern("c"), false)
	require.NoError(t, Combine(CombinatorDescendant, a, b))
	require.Error(t, Combine(CombinatorDescendant, c, b))
}

func TestAppendRejectsDetailAfterPseudoElement(t *testing.T) {
	s := New(cssintern.Intern("li"), false)
	require.NoError(t, s.Append(Detail{Kind: KindPseudoElement, Name: cssintern.Intern("before")}))
	require.Error(t, s.Append(Detail{Kind: KindClass, Name: cssintern.Intern("x")}))
}

func TestCombineRejectsPseudoElementPredecessor(t *testing.T) {
	a := New(cssintern.Intern("li"), false)
	require.NoError(t, a.Append(Detail{Kind: KindPseudoElement, Name: cssintern.Intern("before")}))
	b := New(cssintern.Intern("span"), false)
	require.Error(t, Combine(CombinatorDescendant, a, b))
}

func TestKeyPrefersIDThenClassThenElement(t *testing.T) {
	s := New(cssintern.Intern("div"), false)
	require.NoError(t, s.Append(Detail{Kind: KindClass, Name: cssintern.Intern("box")}))
	kind, name := s.Key()
	require.Equal(t, KindClass, kind)
	require.Equal(t, "box", name.String())

	require.NoError(t, s.Append(Detail{Kind: KindID, Name: cssintern.Intern("main")}))
	kind, name = s.Key()
	require.Equal(t, KindID, kind)
	require.Equal(t, "main", name.String())
}

func TestSpecificityWithInlineDominatesEverything(t *testing.T) {
	id := New(cssintern.Intern("div"), false)
	require.NoError(t, id.Append(Detail{Kind: KindID, Name: cssintern.Intern("x")}))
	require.Greater(t, id.SpecificityWithInline(), id.Specificity())
	require.Greater(t, id.SpecificityWithInline(), uint32(0x01000000))
}
