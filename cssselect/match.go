package cssselect

import (
	"errors"

	"cssengine/cssintern"
	"cssengine/csserr"
	"cssengine/selector"
)

// matchSelector implements spec.md §4.4 "Matching": walk the rightmost
// compound's detail run left-to-right; if all details pass, walk combinator
// links leftward using the corresponding ancestor/parent/sibling query. Any
// failure (including a "node lacks this info" handler error) is
// non-retryable: matching returns false, not an error, since that failure
// mode is defined as non-fatal by spec.md §4.4 "Failure semantics" -- only
// a genuine handler error (e.g. out-of-memory) propagates.
func matchSelector(h Handler, element any, sel *selector.Selector, quirks bool, pseudoElement cssintern.Handle) (bool, error) {
	if sel.ContainsPseudoElement() != (pseudoElement != cssintern.Zero) {
		return false, nil
	}
	if pseudoElement != cssintern.Zero {
		last := sel.Details[len(sel.Details)-1]
		if last.Kind != selector.KindPseudoElement || !cssintern.CaselessEqual(last.Name, pseudoElement) {
			return false, nil
		}
	}

	ok, err := matchCompound(h, element, sel, quirks)
	if err == nil && ok {
		ok, err = matchChain(h, element, sel, quirks)
	}
	if errors.Is(err, csserr.PropertyNotSet) {
		return false, nil
	}
	return ok, err
}

// matchChain walks sel's combinator predecessors leftward from element,
// which has already been verified to match sel's own compound.
func matchChain(h Handler, element any, sel *selector.Selector, quirks bool) (bool, error) {
	pred := sel.Predecessor
	if pred == nil {
		return true, nil
	}
	name, hasName := elementNameHint(pred)

	switch sel.Comb {
	case selector.CombinatorParent:
		parent, ok, err := h.NamedParentNode(element, hintOrZero(name, hasName))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		matched, err := matchCompound(h, parent, pred, quirks)
		if err != nil || !matched {
			return matched, err
		}
		return matchChain(h, parent, pred, quirks)

	case selector.CombinatorAdjacentSibling:
		sib, ok, err := h.NamedSiblingNode(element, hintOrZero(name, hasName))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		matched, err := matchCompound(h, sib, pred, quirks)
		if err != nil || !matched {
			return matched, err
		}
		return matchChain(h, sib, pred, quirks)

	default: // CombinatorDescendant
		cur := element
		for {
			anc, ok, err := h.NamedAncestorNode(cur, hintOrZero(name, hasName))
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			matched, err := matchCompound(h, anc, pred, quirks)
			if err != nil {
				return false, err
			}
			if matched {
				rest, err := matchChain(h, anc, pred, quirks)
				if err != nil || rest {
					return rest, err
				}
			}
			cur = anc
		}
	}
}

// elementNameHint reports pred's required element name, if its leftmost
// detail names a concrete element (not the universal selector) -- used to
// let the handler skip directly to the nearest ancestor/parent/sibling of
// that name rather than requiring a generic unfiltered walk, since spec.md
// §4.4's capability list only offers named_* variants.
func elementNameHint(pred *selector.Selector) (cssintern.Handle, bool) {
	if len(pred.Details) == 0 {
		return cssintern.Zero, false
	}
	first := pred.Details[0]
	if first.Kind == selector.KindElement {
		return first.Name, true
	}
	return cssintern.Zero, false
}

// hintOrZero returns name when present, or the zero handle otherwise; by
// convention (documented on Handler) implementers treat the zero handle as
// "match any element name" -- the universal-selector / pseudo-class-only
// predecessor case.
func hintOrZero(name cssintern.Handle, has bool) cssintern.Handle {
	if has {
		return name
	}
	return cssintern.Zero
}

// matchCompound tests every non-structural detail of sel's own compound
// (excluding any trailing pseudo-element, already validated by the caller)
// against element.
func matchCompound(h Handler, element any, sel *selector.Selector, quirks bool) (bool, error) {
	for _, d := range sel.Details {
		ok, err := matchDetail(h, element, d, quirks)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchDetail(h Handler, element any, d selector.Detail, quirks bool) (bool, error) {
	switch d.Kind {
	case selector.KindUniversal:
		return true, nil
	case selector.KindPseudoElement:
		// Validated structurally by matchSelector before this is reached.
		return true, nil
	case selector.KindElement:
		name, err := h.NodeName(element)
		if err != nil {
			return false, err
		}
		if quirks {
			return cssintern.CaselessEqual(name, d.Name), nil
		}
		return name == d.Name, nil
	case selector.KindClass:
		return h.NodeHasClass(element, d.Name, quirks)
	case selector.KindID:
		return h.NodeHasID(element, d.Name, quirks)
	case selector.KindAttribute:
		return h.NodeHasAttribute(element, d.Name)
	case selector.KindAttributeEquals:
		return h.NodeAttributeEquals(element, d.Name, d.Value)
	case selector.KindAttributeDashmatch:
		return h.NodeAttributeDashmatch(element, d.Name, d.Value)
	case selector.KindAttributeIncludes:
		return h.NodeAttributeIncludes(element, d.Name, d.Value)
	case selector.KindPseudoClass:
		return matchPseudoClass(h, element, d)
	default:
		return false, nil
	}
}

func matchPseudoClass(h Handler, element any, d selector.Detail) (bool, error) {
	switch d.Name.String() {
	case "link":
		return h.NodeIsLink(element)
	case "visited":
		return h.NodeIsVisited(element)
	case "hover":
		return h.NodeIsHover(element)
	case "active":
		return h.NodeIsActive(element)
	case "focus":
		return h.NodeIsFocus(element)
	case "lang":
		return h.NodeIsLang(element, d.Value)
	default:
		return false, nil
	}
}
