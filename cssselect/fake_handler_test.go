package cssselect

import (
	"cssengine/bytecode"
	"cssengine/cssintern"
	"cssengine/style"
)

// fakeNode is a minimal DOM stand-in for exercising Handler against a
// known tree shape without pulling in a real DOM adapter.
type fakeNode struct {
	name     string
	id       string
	classes  []string
	parent   *fakeNode
	prevSib  *fakeNode
}

type fakeHandler struct{}

func (fakeHandler) NodeName(element any) (cssintern.Handle, error) {
	return cssintern.Intern(element.(*fakeNode).name), nil
}

func (fakeHandler) NodeHasClass(element any, class cssintern.Handle, quirks bool) (bool, error) {
	n := element.(*fakeNode)
	for _, c := range n.classes {
		if cssintern.Intern(c) == class {
			return true, nil
		}
	}
	return false, nil
}

func (fakeHandler) NodeHasID(element any, id cssintern.Handle, quirks bool) (bool, error) {
	n := element.(*fakeNode)
	return n.id != "" && cssintern.Intern(n.id) == id, nil
}

func (fakeHandler) NodeClasses(element any) ([]cssintern.Handle, error) {
	n := element.(*fakeNode)
	out := make([]cssintern.Handle, len(n.classes))
	for i, c := range n.classes {
		out[i] = cssintern.Intern(c)
	}
	return out, nil
}

func (fakeHandler) NodeID(element any) (cssintern.Handle, bool, error) {
	n := element.(*fakeNode)
	if n.id == "" {
		return cssintern.Zero, false, nil
	}
	return cssintern.Intern(n.id), true, nil
}

func nameMatches(n *fakeNode, name cssintern.Handle) bool {
	return name == cssintern.Zero || cssintern.Intern(n.name) == name
}

func (fakeHandler) NamedAncestorNode(element any, name cssintern.Handle) (any, bool, error) {
	n := element.(*fakeNode)
	for p := n.parent; p != nil; p = p.parent {
		if nameMatches(p, name) {
			return p, true, nil
		}
	}
	return nil, false, nil
}

func (fakeHandler) NamedParentNode(element any, name cssintern.Handle) (any, bool, error) {
	n := element.(*fakeNode)
	if n.parent == nil || !nameMatches(n.parent, name) {
		return nil, false, nil
	}
	return n.parent, true, nil
}

func (fakeHandler) NamedSiblingNode(element any, name cssintern.Handle) (any, bool, error) {
	n := element.(*fakeNode)
	if n.prevSib == nil || !nameMatches(n.prevSib, name) {
		return nil, false, nil
	}
	return n.prevSib, true, nil
}

func (fakeHandler) NodeIsLink(element any) (bool, error)   { return false, nil }
func (fakeHandler) NodeIsVisited(element any) (bool, error) { return false, nil }
func (fakeHandler) NodeIsHover(element any) (bool, error)   { return false, nil }
func (fakeHandler) NodeIsActive(element any) (bool, error)  { return false, nil }
func (fakeHandler) NodeIsFocus(element any) (bool, error)   { return false, nil }
func (fakeHandler) NodeIsLang(element any, lang cssintern.Handle) (bool, error) {
	return false, nil
}

func (fakeHandler) NodeHasAttribute(element any, name cssintern.Handle) (bool, error) {
	return false, nil
}
func (fakeHandler) NodeAttributeEquals(element any, name, value cssintern.Handle) (bool, error) {
	return false, nil
}
func (fakeHandler) NodeAttributeDashmatch(element any, name, value cssintern.Handle) (bool, error) {
	return false, nil
}
func (fakeHandler) NodeAttributeIncludes(element any, name, value cssintern.Handle) (bool, error) {
	return false, nil
}

func (fakeHandler) NodePresentationalHint(element any, op uint16) ([]byte, error) {
	return nil, nil
}

func (fakeHandler) UADefaultForProperty(op uint16) (bytecode.Operand, bool, error) {
	return bytecode.Operand{}, false, nil
}

func (fakeHandler) ComputeFontSize(parentSize, hint bytecode.Length) (bytecode.Length, error) {
	switch hint.Unit {
	case bytecode.UnitPercent:
		px := hint.Value.Float() / 100 * parentSize.Value.Float()
		return bytecode.Length{Value: bytecode.FromFloat(px), Unit: bytecode.UnitPX}, nil
	case bytecode.UnitEM:
		px := hint.Value.Float() * parentSize.Value.Float()
		return bytecode.Length{Value: bytecode.FromFloat(px), Unit: bytecode.UnitPX}, nil
	default:
		return hint, nil
	}
}

func (fakeHandler) DefaultQuotes() []cssintern.Handle { return nil }

// presentationalHintHandler wraps fakeHandler and reports a caller-supplied
// color hint for one element, for exercising SelectStyle's UA-tier
// presentational pass without a real DOM adapter.
type presentationalHintHandler struct {
	fakeHandler
	hintElement any
	hintBlob    []byte
}

func (h presentationalHintHandler) NodePresentationalHint(element any, op uint16) ([]byte, error) {
	if element == h.hintElement && style.Opcode(op) == style.PropColor {
		return h.hintBlob, nil
	}
	return nil, nil
}
