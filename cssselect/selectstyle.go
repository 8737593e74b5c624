package cssselect

import (
	"sort"

	"cssengine/bytecode"
	"cssengine/csserr"
	"cssengine/cssintern"
	"cssengine/hash"
	"cssengine/rule"
	"cssengine/style"
)

// Options configures one SelectStyle call, spec.md §4.4 "Selection
// algorithm for one element".
type Options struct {
	// PseudoElement selects a ::before/::after-shaped style instead of the
	// element's own; the zero handle means "the element itself".
	PseudoElement cssintern.Handle
	// Media gates which @media-wrapped rules participate.
	Media MediaMask
	// Quirks forces case-insensitive class/id matching even for sheets that
	// don't themselves carry the quirks flag (spec.md §9 Open Question c).
	Quirks bool
	// InlineStyle is the declaration bytecode compiled from the element's
	// own style="..." attribute, if any; treated as a fourth cascade origin
	// ranked above author per spec.md §4.4 step 1's "UA, user, author,
	// inline" enumeration.
	InlineStyle []byte
	// Parent is the already-selected style of element's parent, for step 4
	// composition; nil for the root element.
	Parent *style.Computed
}

// tier is the cascade-origin ranking used by the precedence tuple, spec.md
// §4.4 step 2: "(origin, important, specificity, (sheet_index, rule_index))
// ... important inverting the origin order". Inline style is its own tier,
// ranked above author per step 1's origin enumeration.
type tier int

const (
	tierUA tier = iota
	tierUser
	tierAuthor
	tierInline
)

func tierOf(origin rule.Origin) tier {
	switch origin {
	case rule.OriginUA:
		return tierUA
	case rule.OriginUser:
		return tierUser
	default:
		return tierAuthor
	}
}

// precedenceRank collapses a (tier, important) pair to a single ascending
// rank: normal declarations rank 0..3 in tier order, important declarations
// rank above every normal declaration and in the reverse tier order.
func precedenceRank(t tier, important bool) int {
	if !important {
		return int(t)
	}
	return 4 + (3 - int(t))
}

type matchedDecl struct {
	rank        int
	specificity uint32
	sheetIndex  int
	ruleIndex   int
	seq         int
	decl        bytecode.Declaration
}

// SelectStyle implements spec.md §4.4's four-step selection algorithm for a
// single element.
func SelectStyle(element any, ctx *Context, handler Handler, opts Options) (*style.Computed, error) {
	if ctx == nil || handler == nil {
		return nil, csserr.Wrap(csserr.BadParm, "cssselect: SelectStyle requires a context and handler")
	}

	keys, err := elementKeys(handler, element)
	if err != nil {
		return nil, err
	}

	var matches []matchedDecl
	if err := appendPresentationalHints(&matches, handler, element); err != nil {
		return nil, err
	}
	for _, sheet := range ctx.Sheets() {
		if sheet.Disabled {
			continue
		}
		quirks := opts.Quirks || sheet.Quirks
		seen := make(map[*rule.Rule]bool)
		for _, key := range keys {
			for _, sel := range sheet.Hash.Candidates(key) {
				r := sheet.OwnerOf(sel)
				if r == nil || r.Type != rule.TypeSelectorBlock || seen[r] {
					continue
				}
				if !mediaApplies(r, opts.Media) {
					continue
				}
				ok, err := matchSelector(handler, element, sel, quirks, opts.PseudoElement)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				seen[r] = true
				if err := appendDecls(&matches, r.Style, tierOf(sheet.Origin), sel.Specificity(), sheet.Index, r.OriginIndex); err != nil {
					return nil, err
				}
			}
		}
	}
	if opts.InlineStyle != nil {
		if err := appendDecls(&matches, opts.InlineStyle, tierInline, 0, 0, 0); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return lessPrecedence(matches[i], matches[j]) })

	result := &style.Computed{}
	if err := style.Initialise(result, handler); err != nil {
		return nil, err
	}
	style.SeedInheritance(result)
	for _, m := range matches {
		result.Apply(m.decl.Opcode, m.decl.Value, m.decl.Operand)
	}

	isRoot, err := isRootElement(handler, element)
	if err != nil {
		return nil, err
	}
	result.SetRoot(isRoot)

	if opts.Parent == nil {
		result.ResolveAbsolute(nil)
		return result, nil
	}

	composed := &style.Computed{}
	resolver := func(parentHint, childHint bytecode.Length) bytecode.Length {
		resolved, err := handler.ComputeFontSize(parentHint, childHint)
		if err != nil {
			return childHint
		}
		return resolved
	}
	if err := style.Compose(opts.Parent, result, resolver, composed); err != nil {
		return nil, err
	}
	composed.ResolveAbsolute(opts.Parent)
	return composed, nil
}

// Compose exposes step 4 of the selection algorithm standalone, for callers
// that already selected parent and child styles separately.
func Compose(parent, child *style.Computed, handler Handler) (*style.Computed, error) {
	result := &style.Computed{}
	resolver := func(parentHint, childHint bytecode.Length) bytecode.Length {
		resolved, err := handler.ComputeFontSize(parentHint, childHint)
		if err != nil {
			return childHint
		}
		return resolved
	}
	if err := style.Compose(parent, child, resolver, result); err != nil {
		return nil, err
	}
	result.ResolveAbsolute(parent)
	return result, nil
}

func lessPrecedence(a, b matchedDecl) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	if a.specificity != b.specificity {
		return a.specificity < b.specificity
	}
	if a.sheetIndex != b.sheetIndex {
		return a.sheetIndex < b.sheetIndex
	}
	if a.ruleIndex != b.ruleIndex {
		return a.ruleIndex < b.ruleIndex
	}
	return a.seq < b.seq
}

func appendDecls(out *[]matchedDecl, blob []byte, t tier, specificity uint32, sheetIndex, ruleIndex int) error {
	seq := 0
	dec := bytecode.Decoder{Blob: blob}
	return dec.Walk(func(d bytecode.Declaration) error {
		important := d.Flags&bytecode.FlagImportant != 0
		*out = append(*out, matchedDecl{
			rank:        precedenceRank(t, important),
			specificity: specificity,
			sheetIndex:  sheetIndex,
			ruleIndex:   ruleIndex,
			seq:         seq,
			decl:        d,
		})
		seq++
		return nil
	})
}

// appendPresentationalHints folds each property's HTML presentational
// hint, if any, into matches at tierUA with zero specificity -- spec.md
// §4.4's handler capability list names NodePresentationalHint alongside
// the matching/selection queries, and CSS 2.1 Appendix D requires such
// hints to participate in the cascade at the lowest tier so any real
// stylesheet rule, of any origin, can override them.
func appendPresentationalHints(out *[]matchedDecl, handler Handler, element any) error {
	for op := bytecode.Opcode(0); int(op) < style.NumProps(); op++ {
		blob, err := handler.NodePresentationalHint(element, uint16(op))
		if err != nil {
			return err
		}
		if blob == nil {
			continue
		}
		if err := appendDecls(out, blob, tierUA, 0, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

// mediaApplies reports whether r (possibly nested inside one or more
// @media blocks) participates under mask; top-level rules with no @media
// ancestor always apply.
func mediaApplies(r *rule.Rule, mask MediaMask) bool {
	for p := r.Parent; p != nil; p = p.Parent {
		if p.Type == rule.TypeMedia && p.Media&mask == 0 {
			return false
		}
	}
	return true
}

// elementKeys derives the hash lookup keys for element, spec.md §4.4 step
// 1: its element name, each of its classes, its id, and the universal key.
func elementKeys(h Handler, element any) ([]hash.Key, error) {
	name, err := h.NodeName(element)
	if err != nil {
		return nil, err
	}
	classes, err := h.NodeClasses(element)
	if err != nil {
		return nil, err
	}
	id, hasID, err := h.NodeID(element)
	if err != nil {
		return nil, err
	}
	return hash.ElementKeys(name, id, hasID, classes), nil
}

// isRootElement reports whether element has no parent, using the
// NamedParentNode wildcard convention (cssintern.Zero matches any name).
func isRootElement(h Handler, element any) (bool, error) {
	_, ok, err := h.NamedParentNode(element, cssintern.Zero)
	if err != nil {
		return false, err
	}
	return !ok, nil
}
