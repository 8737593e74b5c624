// Package selector implements the selector model from spec.md §3 ("Selector
// detail", "Selector") and §4.2: compound selectors built detail by detail,
// chained leftward through combinators, with specificity accumulated as
// details and combinators are added.
package selector

import (
	"cssengine/cssintern"
	"cssengine/csserr"
)

// Kind identifies a selector detail's grammar category, spec.md §3.
type Kind uint8

const (
	KindElement Kind = iota
	KindUniversal
	KindClass
	KindID
	KindPseudoClass
	KindPseudoElement
	KindAttribute
	KindAttributeEquals
	KindAttributeDashmatch
	KindAttributeIncludes
)

// Combinator describes how a detail (or compound) relates to its
// predecessor: none within a compound, otherwise the relationship between
// two compounds in a chain.
type Combinator uint8

const (
	CombinatorNone Combinator = iota
	CombinatorDescendant
	CombinatorParent // direct child ('>')
	CombinatorAdjacentSibling
)

// Specificity contribution per detail class, spec.md §3: A (inline) is
// never contributed by a detail directly -- it is reserved for inline
// style declarations applied outside the selector model entirely.
const (
	specB = 0x00010000 // id
	specC = 0x00000100 // class, attribute, pseudo-class
	specD = 0x00000001 // element, pseudo-element, universal contributes 0
)

func classOf(k Kind) uint32 {
	switch k {
	case KindID:
		return specB
	case KindClass, KindPseudoClass,
		KindAttribute, KindAttributeEquals, KindAttributeDashmatch, KindAttributeIncludes:
		return specC
	case KindElement, KindPseudoElement:
		return specD
	default: // KindUniversal contributes nothing
		return 0
	}
}

// Detail is one (kind, name, value) triple in a compound selector's detail
// run, spec.md §3.
type Detail struct {
	Kind  Kind
	Name  cssintern.Handle
	Value cssintern.Handle // only meaningful for attribute-equals/dashmatch/includes and pseudo-class arguments
}

// Selector is a compound selector (its own Details run) plus an optional
// pointer to a combinator predecessor further left in the chain, spec.md §3
// "Selector".
type Selector struct {
	Details []Detail

	Predecessor *Selector
	Comb        Combinator

	specificity uint32
}

// New creates a selector for a single compound whose first detail names the
// element (or the universal selector when universal is true).
func New(elementName cssintern.Handle, universal bool) *Selector {
	kind := KindElement
	if universal {
		kind = KindUniversal
	}
	s := &Selector{}
	s.Details = append(s.Details, Detail{Kind: kind, Name: elementName})
	s.specificity += classOf(kind)
	return s
}

// Append adds one more detail to s's compound, per spec.md §4.2: bumps the
// specificity by the detail's class, and rejects placing a pseudo-element
// anywhere but the tail (a pseudo-element must be the last detail appended,
// and only one is allowed per compound).
func (s *Selector) Append(d Detail) error {
	if err := s.checkPseudoElementPlacement(); err != nil {
		return err
	}
	if d.Kind == KindPseudoElement && s.hasPseudoElement() {
		return csserr.Wrap(csserr.Invalid, "selector: more than one pseudo-element in a compound")
	}
	s.Details = append(s.Details, d)
	s.specificity += classOf(d.Kind)
	return nil
}

func (s *Selector) hasPseudoElement() bool {
	for _, d := range s.Details {
		if d.Kind == KindPseudoElement {
			return true
		}
	}
	return false
}

// checkPseudoElementPlacement rejects appending to a compound whose last
// detail is already a pseudo-element (nothing may follow it).
func (s *Selector) checkPseudoElementPlacement() error {
	if len(s.Details) == 0 {
		return nil
	}
	if s.Details[len(s.Details)-1].Kind == KindPseudoElement {
		return csserr.Wrap(csserr.Invalid, "selector: cannot append after a pseudo-element")
	}
	return nil
}

// Specificity returns the accumulated A.B.C.D value for this selector and
// its full combinator chain, spec.md §3's encoding
// (0x01000000*A + 0x00010000*B + 0x00000100*C + D).
func (s *Selector) Specificity() uint32 {
	total := s.specificity
	for p := s.Predecessor; p != nil; p = p.Predecessor {
		total += p.specificity
	}
	return total
}

// SpecificityWithInline adds the inline-style A contribution (spec.md §3's
// A=0x01000000) on top of the selector chain's own specificity, so the
// result exceeds any selector-only specificity. cssselect.SelectStyle does
// not call it: it ranks inline style through its own cascade tier.
func (s *Selector) SpecificityWithInline() uint32 {
	return s.Specificity() + 0x01000000
}

// ContainsPseudoElement reports whether any compound in the chain carries a
// pseudo-element; used by Combine's precondition.
func (s *Selector) ContainsPseudoElement() bool {
	for p := s; p != nil; p = p.Predecessor {
		if p.hasPseudoElement() {
			return true
		}
	}
	return false
}

// Combine links a as b's combinator predecessor, per spec.md §4.2:
// "combine(kind, a, b) sets b.combinator = a, b.comb_kind = kind, and adds
// a's specificity to b's." Precondition: b has no existing predecessor and
// a contains no pseudo-element (only the rightmost compound may carry one).
func Combine(kind Combinator, a, b *Selector) error {
	if b.Predecessor != nil {
		return csserr.Wrap(csserr.Invalid, "selector: combine target already has a predecessor")
	}
	if a.ContainsPseudoElement() {
		return csserr.Wrap(csserr.Invalid, "selector: combinator predecessor may not contain a pseudo-element")
	}
	b.Predecessor = a
	b.Comb = kind
	return nil
}

// Key returns the hash key for this selector's rightmost compound, per
// spec.md §4.4: the name of its first id-detail if present, else its first
// class-detail, else its element name (or "*" for universal).
func (s *Selector) Key() (kind Kind, name cssintern.Handle) {
	var firstClass *Detail
	for i := range s.Details {
		d := &s.Details[i]
		switch d.Kind {
		case KindID:
			return KindID, d.Name
		case KindClass:
			if firstClass == nil {
				firstClass = d
			}
		}
	}
	if firstClass != nil {
		return KindClass, firstClass.Name
	}
	return s.Details[0].Kind, s.Details[0].Name
}
