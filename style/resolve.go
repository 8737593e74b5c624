package style

import "cssengine/bytecode"

// relativeOps lists every length-valued property whose unit can be em, ex
// or a percentage and therefore needs absolute resolution against this
// element's own font-size (em/ex) or the parent box (%). font-size itself
// is resolved separately through FontSizeResolver during Compose, spec.md
// §4.1 "Composition".
var relativeOps = []Opcode{
	PropWidth, PropHeight, PropMinWidth, PropMinHeight, PropMaxWidth, PropMaxHeight,
	PropTop, PropRight, PropBottom, PropLeft,
	PropMarginTop, PropMarginRight, PropMarginBottom, PropMarginLeft,
	PropPaddingTop, PropPaddingRight, PropPaddingBottom, PropPaddingLeft,
	PropBorderTopWidth, PropBorderRightWidth, PropBorderBottomWidth, PropBorderLeftWidth,
	PropLineHeight, PropTextIndent, PropLetterSpacing, PropWordSpacing,
	PropBorderSpacing, PropOutlineWidth, PropVerticalAlign,
}

// percentageBaseOps are the subset of relativeOps resolved against the
// parent's box rather than the element's own font-size when expressed as a
// percentage -- spec.md §4.1: "against the parent style for widths/heights
// where the spec requires". Width-like properties and text-indent measure
// against the parent's resolved width; a percentage on any other property
// (heights, vertical margins/padding, line-height, spacing) is left as a
// percentage by this pass.
var percentageBaseOps = map[Opcode]bool{
	PropWidth: true, PropMinWidth: true, PropMaxWidth: true,
	PropMarginLeft: true, PropMarginRight: true,
	PropPaddingLeft: true, PropPaddingRight: true,
	PropLeft: true, PropRight: true, PropTextIndent: true,
}

// ResolveAbsolute implements spec.md §4.1's "Absolute-value resolution"
// pass: converts every relative length (em, ex, percentage) on c into an
// absolute pixel length, using c's own just-computed font-size for em/ex
// and parent's resolved width for applicable percentage properties. It
// mutates c in place and is a pure, non-failing pass (spec.md §4.1
// "Failure": "pure reads cannot fail").
func (c *Computed) ResolveAbsolute(parent *Computed) {
	_, fontSize := c.FontSize()
	emPX := fontSize.Value.Float()
	exPX := emPX * 0.5 // conventional ex-to-em ratio absent real font metrics

	var parentWidthPX float64
	if parent != nil {
		_, pw := parent.Width()
		parentWidthPX = absolutePX(pw, 0, 0)
	}

	for _, op := range relativeOps {
		l := c.getLength(op)
		var px float64
		switch l.Unit {
		case bytecode.UnitEM:
			px = l.Value.Float() * emPX
		case bytecode.UnitEX:
			px = l.Value.Float() * exPX
		case bytecode.UnitPercent:
			if !percentageBaseOps[op] {
				continue
			}
			px = l.Value.Float() / 100 * parentWidthPX
		default:
			continue
		}
		c.setLength(op, Set, bytecode.Length{Value: bytecode.FromFloat(px), Unit: bytecode.UnitPX})
	}
}

// absolutePX reduces an already-resolved length to a plain pixel float,
// treating any remaining relative unit as already-resolved em/ex input
// (emPX/exPX) -- used only to read the parent's own resolved width, which
// by the time ResolveAbsolute runs top-down is already absolute.
func absolutePX(l bytecode.Length, emPX, exPX float64) float64 {
	switch l.Unit {
	case bytecode.UnitEM:
		return l.Value.Float() * emPX
	case bytecode.UnitEX:
		return l.Value.Float() * exPX
	default:
		return l.Value.Float()
	}
}
