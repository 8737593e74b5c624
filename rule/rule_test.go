package rule

import (
	"testing"

	"cssengine/cssintern"
	"cssengine/csserr"
	"cssengine/hash"
	"cssengine/selector"

	"github.com/stretchr/testify/require"
)

func newTestSelector(t *testing.T, elem string) *selector.Selector {
	t.Helper()
	return selector.New(cssintern.Intern(elem), false)
}

func TestAddRuleAssignsMonotonicOriginIndex(t *testing.T) {
	s := New("test.css", "", OriginAuthor, false, nil)
	r1 := NewSelectorBlockRule([]*selector.Selector{newTestSelector(t, "p")})
	r2 := NewSelectorBlockRule([]*selector.Selector{newTestSelector(t, "div")})

	require.NoError(t, s.AddRule(r1, nil))
	require.NoError(t, s.AddRule(r2, nil))

	require.Equal(t, 0, r1.OriginIndex)
	require.Equal(t, 1, r2.OriginIndex)
	require.Equal(t, 2, s.RuleCount())
}

func TestRemoveRuleKeepsOriginIndicesStable(t *testing.T) {
	s := New("test.css", "", OriginAuthor, false, nil)
	r1 := NewSelectorBlockRule([]*selector.Selector{newTestSelector(t, "p")})
	r2 := NewSelectorBlockRule([]*selector.Selector{newTestSelector(t, "div")})
	r3 := NewSelectorBlockRule([]*selector.Selector{newTestSelector(t, "span")})
	require.NoError(t, s.AddRule(r1, nil))
	require.NoError(t, s.AddRule(r2, nil))
	require.NoError(t, s.AddRule(r3, nil))

	require.NoError(t, s.RemoveRule(r2))

	rules := s.Rules()
	require.Len(t, rules, 2)
	require.Equal(t, 0, rules[0].OriginIndex)
	require.Equal(t, 2, rules[1].OriginIndex)

	r4 := NewSelectorBlockRule([]*selector.Selector{newTestSelector(t, "a")})
	require.NoError(t, s.AddRule(r4, nil))
	require.Equal(t, 3, r4.OriginIndex, "indices are never reused after removal")
}

func TestAddRuleInsertsSelectorsIntoHash(t *testing.T) {
	s := New("test.css", "", OriginAuthor, false, nil)
	sel := newTestSelector(t, "p")
	r := NewSelectorBlockRule([]*selector.Selector{sel})
	require.NoError(t, s.AddRule(r, nil))

	kind, name := sel.Key()
	require.Len(t, s.Hash.Candidates(hash.Key{Kind: kind, Name: name}), 1)
	require.Same(t, r, s.OwnerOf(sel))
}

func TestMediaRuleNestsChildren(t *testing.T) {
	s := New("test.css", "", OriginAuthor, false, nil)
	media := NewMediaRule(MediaScreen)
	require.NoError(t, s.AddRule(media, nil))

	child := NewSelectorBlockRule([]*selector.Selector{newTestSelector(t, "p")})
	require.NoError(t, s.AddRule(child, media))

	require.Equal(t, 1, media.ItemsCount)
	require.Same(t, child, media.Children)
	require.Same(t, media, child.Parent)
}

func TestAppendStyleConcatenatesBlobs(t *testing.T) {
	s := New("test.css", "", OriginAuthor, false, nil)
	r := NewSelectorBlockRule(nil)

	s.AppendStyle(r, []byte{1, 2, 3, 4})
	require.Equal(t, []byte{1, 2, 3, 4}, r.Style)

	s.AppendStyle(r, []byte{5, 6})
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, r.Style)
}

func TestDataDoneBlocksOnPendingImport(t *testing.T) {
	s := New("test.css", "", OriginAuthor, false, nil)
	imp := NewImportRule(cssintern.Intern("other.css"), MediaAll)
	require.NoError(t, s.AddRule(imp, nil))

	err := s.DataDone()
	require.ErrorIs(t, err, csserr.ImportsPending)

	child := New("other.css", "", OriginAuthor, false, nil)
	require.NoError(t, s.RegisterImport(imp, child))
	require.NoError(t, s.DataDone())
}

func TestAddRuleRejectsEverythingOnceFinalized(t *testing.T) {
	s := New("test.css", "", OriginAuthor, false, nil)
	require.NoError(t, s.DataDone())

	err := s.AddRule(newTestSelectorBlock(t, "p"), nil)
	require.ErrorIs(t, err, csserr.Invalid)

	imp := NewImportRule(cssintern.Intern("other.css"), MediaAll)
	err = s.AddRule(imp, nil)
	require.ErrorIs(t, err, csserr.Invalid, "a finalized sheet's only valid import mutation is RegisterImport, not a new AddRule")
}

func newTestSelectorBlock(t *testing.T, elem string) *Rule {
	t.Helper()
	return NewSelectorBlockRule([]*selector.Selector{newTestSelector(t, elem)})
}
