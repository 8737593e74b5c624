// Package cssselect implements the selection engine from spec.md §4.4 and
// §6: matching candidate selectors against a host element via a capability
// interface, bucketing matched declarations by cascade precedence, and
// composing the result into a computed style. (Named cssselect rather than
// "select" -- that identifier is a Go keyword.)
package cssselect

import (
	"cssengine/bytecode"
	"cssengine/cssintern"
)

// Handler is the host-supplied selection handler capability set from
// spec.md §4.4, kept out of this module's scope per spec.md §1 ("a
// host-supplied selection handler ... is out of scope") but required as an
// interface so SelectStyle can drive it. Every query method returns
// csserr.PropertyNotSet-shaped errors for "node lacks this info" (non-fatal,
// treated as no-match, spec.md §4.4 "Failure semantics") and propagates any
// other error (e.g. csserr.NoMem) as fatal.
type Handler interface {
	NodeName(element any) (cssintern.Handle, error)
	NodeHasClass(element any, class cssintern.Handle, quirks bool) (bool, error)
	NodeHasID(element any, id cssintern.Handle, quirks bool) (bool, error)

	// NodeClasses and NodeID enumerate element's own classes/id, as opposed
	// to NodeHasClass/NodeHasID's membership tests against a known name.
	// Spec.md §4.4 step 1 requires probing the hash under "each of its
	// classes" and "its id" as hash keys, which needs enumeration the
	// spec's handler capability list doesn't separately name; added here as
	// the natural extension (SPEC_FULL.md Open Question resolution).
	NodeClasses(element any) ([]cssintern.Handle, error)
	NodeID(element any) (cssintern.Handle, bool, error)

	NamedAncestorNode(element any, name cssintern.Handle) (any, bool, error)
	NamedParentNode(element any, name cssintern.Handle) (any, bool, error)
	NamedSiblingNode(element any, name cssintern.Handle) (any, bool, error)

	NodeIsLink(element any) (bool, error)
	NodeIsVisited(element any) (bool, error)
	NodeIsHover(element any) (bool, error)
	NodeIsActive(element any) (bool, error)
	NodeIsFocus(element any) (bool, error)
	NodeIsLang(element any, lang cssintern.Handle) (bool, error)

	NodeHasAttribute(element any, name cssintern.Handle) (bool, error)
	NodeAttributeEquals(element any, name, value cssintern.Handle) (bool, error)
	NodeAttributeDashmatch(element any, name, value cssintern.Handle) (bool, error)
	NodeAttributeIncludes(element any, name, value cssintern.Handle) (bool, error)

	// NodePresentationalHint returns a UA-level declaration bytecode blob
	// for a property HTML presentational attributes hint at (e.g. a
	// <table>'s "border" attribute implying border-width), or nil if the
	// element carries no such hint.
	NodePresentationalHint(element any, op uint16) ([]byte, error)

	// UADefaultForProperty supplies the default value for a property the
	// UA stylesheet itself doesn't set explicitly.
	UADefaultForProperty(op uint16) (bytecode.Operand, bool, error)

	// ComputeFontSize resolves a possibly-keyword/relative font-size hint
	// (e.g. "larger", "150%") against the parent's absolute font size.
	ComputeFontSize(parentSize bytecode.Length, hint bytecode.Length) (bytecode.Length, error)

	// DefaultQuotes satisfies style.UADefaults so Handler can be passed
	// directly to style.Initialise.
	DefaultQuotes() []cssintern.Handle
}
