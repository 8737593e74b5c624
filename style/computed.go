// Package style implements the computed style record from spec.md §3
// ("Computed style") and §4.1.
package style

import (
	"cssengine/bytecode"
	"cssengine/cssintern"
	"cssengine/csserr"
)

// Discriminant identifies which variant a property carries: inherit,
// initial, a bare keyword (auto/none/normal), or a typed payload (Set).
type Discriminant = bytecode.Value

const (
	Inherit = bytecode.ValueInherit
	Initial = bytecode.ValueInitial
	Auto    = bytecode.ValueAuto
	None    = bytecode.ValueNone
	Normal  = bytecode.ValueNormal
	Set     = bytecode.ValueSet
)

// UADefaults lets the selection handler supply string-valued initial
// values (spec.md §4.1: "Properties whose initial value involves a string
// ... request defaults from the selection handler so embedders control
// them"). A narrow interface, not cssselect.Handler itself, to avoid a
// style<->cssselect import cycle; cssselect.Handler satisfies it structurally.
type UADefaults interface {
	DefaultQuotes() []cssintern.Handle
}

// UAPropertyDefaults extends UADefaults for handlers that can also supply a
// UA-stylesheet override for a specific property's initial value (spec.md
// §4.4's handler capability list: "UADefaultForProperty supplies the
// default value for a property the UA stylesheet itself doesn't set
// explicitly"). Handlers that have nothing to add beyond CSS 2.1's
// hardcoded initials can implement UADefaults alone; Initialise type-
// asserts for this narrower interface rather than widening UADefaults
// itself, so cssselect.Handler satisfies both without a style<->cssselect
// import cycle.
type UAPropertyDefaults interface {
	UADefaults
	UADefaultForProperty(op uint16) (bytecode.Operand, bool, error)
}

// Computed is the fixed-size, bit-packed-in-spirit computed style record.
// Internally it keeps one typed dense array per payload shape rather than
// literally packing bits, the memory/speed tradeoff spec.md §9 explicitly
// leaves to the implementer; the external contract (accessors + fixups) is
// unaffected.
type Computed struct {
	disc   [numProps]Discriminant
	enumv  [numProps]uint8
	length [numProps]bytecode.Length
	color  [numProps]bytecode.Color
	handle [numProps]cssintern.Handle
	strs   [numProps][]cssintern.Handle
	number [numProps]bytecode.Fixed

	uncommon *uncommon

	// root records whether this style belongs to the document root element,
	// consulted by the Display position fixup (spec.md §4.1).
	root bool
}

// SetRoot marks whether this style belongs to the document's root element.
// The selection engine calls this once per element before exposing Display.
func (c *Computed) SetRoot(isRoot bool) { c.root = isRoot }

func (c *Computed) ensureUncommon() *uncommon {
	if c.uncommon == nil {
		c.uncommon = &uncommon{}
	}
	return c.uncommon
}

// --- generic internal storage, dispatching dense vs. uncommon ---

func (c *Computed) getDisc(op Opcode) Discriminant {
	if slot, ok := uncommonSlot[op]; ok {
		if c.uncommon == nil {
			return Initial
		}
		return c.uncommon.disc[slot]
	}
	return c.disc[op]
}

func (c *Computed) setDisc(op Opcode, d Discriminant) {
	if slot, ok := uncommonSlot[op]; ok {
		c.ensureUncommon().disc[slot] = d
		return
	}
	c.disc[op] = d
}

func (c *Computed) getEnum(op Opcode) uint8 {
	if slot, ok := uncommonSlot[op]; ok {
		if c.uncommon == nil {
			return 0
		}
		return c.uncommon.enumv[slot]
	}
	return c.enumv[op]
}

func (c *Computed) setEnum(op Opcode, d Discriminant, v uint8) {
	c.setDisc(op, d)
	if slot, ok := uncommonSlot[op]; ok {
		c.ensureUncommon().enumv[slot] = v
		return
	}
	c.enumv[op] = v
}

func (c *Computed) getLength(op Opcode) bytecode.Length {
	if slot, ok := uncommonSlot[op]; ok {
		if c.uncommon == nil {
			return bytecode.Length{}
		}
		return c.uncommon.length[slot]
	}
	return c.length[op]
}

func (c *Computed) setLength(op Opcode, d Discriminant, l bytecode.Length) {
	c.setDisc(op, d)
	if slot, ok := uncommonSlot[op]; ok {
		c.ensureUncommon().length[slot] = l
		return
	}
	c.length[op] = l
}

func (c *Computed) getColor(op Opcode) bytecode.Color {
	if slot, ok := uncommonSlot[op]; ok {
		if c.uncommon == nil {
			return 0
		}
		return c.uncommon.color[slot]
	}
	return c.color[op]
}

func (c *Computed) setColor(op Opcode, d Discriminant, col bytecode.Color) {
	c.setDisc(op, d)
	if slot, ok := uncommonSlot[op]; ok {
		c.ensureUncommon().color[slot] = col
		return
	}
	c.color[op] = col
}

func (c *Computed) getHandle(op Opcode) cssintern.Handle {
	return c.handle[op]
}

func (c *Computed) setHandle(op Opcode, d Discriminant, h cssintern.Handle) {
	c.setDisc(op, d)
	c.handle[op] = h
}

func (c *Computed) getStrings(op Opcode) []cssintern.Handle {
	if slot, ok := uncommonSlot[op]; ok {
		if c.uncommon == nil {
			return nil
		}
		return c.uncommon.strs[slot]
	}
	return c.strs[op]
}

func (c *Computed) setStrings(op Opcode, d Discriminant, list []cssintern.Handle) {
	c.setDisc(op, d)
	if slot, ok := uncommonSlot[op]; ok {
		c.ensureUncommon().strs[slot] = list
		return
	}
	c.strs[op] = list
}

func (c *Computed) getCounters(op Opcode) []bytecode.CounterEntry {
	if slot, ok := uncommonSlot[op]; ok {
		if c.uncommon == nil {
			return nil
		}
		return c.uncommon.counters[slot]
	}
	return nil
}

func (c *Computed) setCounters(op Opcode, d Discriminant, list []bytecode.CounterEntry) {
	c.setDisc(op, d)
	if slot, ok := uncommonSlot[op]; ok {
		c.ensureUncommon().counters[slot] = list
	}
}

func (c *Computed) getNumber(op Opcode) bytecode.Fixed {
	return c.number[op]
}

func (c *Computed) setNumber(op Opcode, d Discriminant, n bytecode.Fixed) {
	c.setDisc(op, d)
	c.number[op] = n
}

// Apply writes one decoded declaration into the style, dispatching on the
// opcode's registered Kind. This is the "handler that decodes operands and
// writes the corresponding slot" from spec.md §4.3's "Execution during
// cascade".
func (c *Computed) Apply(op Opcode, value Discriminant, operand bytecode.Operand) {
	switch kindOf[op] {
	case bytecode.KindColor:
		c.setColor(op, value, operand.Color)
	case bytecode.KindLength:
		c.setLength(op, value, operand.Length)
	case bytecode.KindString:
		c.setHandle(op, value, operand.String)
	case bytecode.KindNumber:
		c.setNumber(op, value, operand.Number)
	case bytecode.KindStringList:
		c.setStrings(op, value, operand.Strings)
	case bytecode.KindCounterList:
		c.setCounters(op, value, operand.Counters)
	case bytecode.KindKeyword:
		// Keyword-with-enum properties pack their member into the low
		// byte of operand.Number when Set; the parser always emits this
		// shape for enum keywords (see parse/properties.go).
		c.setEnum(op, value, uint8(operand.Number))
	}
}

// Initialise sets every property to its CSS-specified initial value, per
// spec.md §4.1. String-valued initials (quotes) are requested from the
// selection handler so embedders control them.
func Initialise(c *Computed, handler UADefaults) error {
	*c = Computed{}

	setEnumInitial(c, PropDisplay, uint8(DisplayInline))
	setEnumInitial(c, PropPosition, uint8(PositionStatic))
	setEnumInitial(c, PropFloat, uint8(FloatNone))
	setEnumInitial(c, PropClear, uint8(ClearNone))
	c.setDisc(PropTop, Auto)
	c.setDisc(PropRight, Auto)
	c.setDisc(PropBottom, Auto)
	c.setDisc(PropLeft, Auto)
	c.setDisc(PropZIndex, Auto)
	setEnumInitial(c, PropVisibility, uint8(VisibilityVisible))

	c.setDisc(PropWidth, Auto)
	c.setDisc(PropHeight, Auto)
	c.setLength(PropMinWidth, Set, bytecode.Length{})
	c.setDisc(PropMaxWidth, None)
	c.setLength(PropMinHeight, Set, bytecode.Length{})
	c.setDisc(PropMaxHeight, None)

	for _, op := range []Opcode{PropMarginTop, PropMarginRight, PropMarginBottom, PropMarginLeft} {
		c.setLength(op, Set, bytecode.Length{})
	}
	for _, op := range []Opcode{PropPaddingTop, PropPaddingRight, PropPaddingBottom, PropPaddingLeft} {
		c.setLength(op, Set, bytecode.Length{})
	}

	medium := bytecode.Length{Value: bytecode.FromFloat(2), Unit: bytecode.UnitPX}
	for _, op := range []Opcode{PropBorderTopWidth, PropBorderRightWidth, PropBorderBottomWidth, PropBorderLeftWidth} {
		c.setLength(op, Set, medium)
	}
	for _, op := range []Opcode{PropBorderTopColor, PropBorderRightColor, PropBorderBottomColor, PropBorderLeftColor} {
		c.setColor(op, Initial, 0) // "currentColor"-equivalent: resolved via Color() during use
	}
	for _, op := range []Opcode{PropBorderTopStyle, PropBorderRightStyle, PropBorderBottomStyle, PropBorderLeftStyle} {
		setEnumInitial(c, op, uint8(BorderStyleNone))
	}

	c.setStrings(PropFontFamily, Initial, nil)
	c.setLength(PropFontSize, Set, bytecode.Length{Value: bytecode.FromFloat(16), Unit: bytecode.UnitPX})
	setEnumInitial(c, PropFontStyle, uint8(FontStyleNormal))
	setEnumInitial(c, PropFontVariant, uint8(FontVariantNormal))
	// FontWeight's enum slot stores (weight/100 - 1) so the 100..900 range
	// fits a uint8; see the FontWeight accessor for the inverse.
	setEnumInitial(c, PropFontWeight, uint8(FontWeight400/100-1))
	c.setDisc(PropLineHeight, Normal)

	setEnumInitial(c, PropTextAlign, uint8(TextAlignStart))
	setEnumInitial(c, PropTextDecoration, uint8(TextDecorationNone))
	c.setLength(PropTextIndent, Set, bytecode.Length{})
	setEnumInitial(c, PropTextTransform, uint8(TextTransformNone))
	setEnumInitial(c, PropWhiteSpace, uint8(WhiteSpaceNormal))
	setEnumInitial(c, PropDirection, uint8(DirectionLTR))
	setEnumInitial(c, PropUnicodeBidi, uint8(UnicodeBidiNormal))
	c.setDisc(PropVerticalAlign, bytecode.ValueInitial)

	c.setColor(PropColor, Initial, bytecode.NewColor(0, 0, 0, 0xff))
	c.setDisc(PropBackgroundColor, None) // "transparent"
	c.setDisc(PropBackgroundImage, None)
	setEnumInitial(c, PropBackgroundAttachment, uint8(BackgroundAttachmentScroll))
	setEnumInitial(c, PropBackgroundRepeat, uint8(BackgroundRepeatRepeat))
	c.setDisc(PropBackgroundPosition, Initial)

	c.setDisc(PropListStyleImage, None)
	setEnumInitial(c, PropListStylePosition, uint8(ListStylePositionOutside))
	setEnumInitial(c, PropListStyleType, uint8(ListStyleTypeDisc))

	setEnumInitial(c, PropBorderCollapse, uint8(BorderCollapseSeparate))
	c.setLength(PropBorderSpacing, Set, bytecode.Length{Value: bytecode.FromFloat(2), Unit: bytecode.UnitPX})
	setEnumInitial(c, PropCaptionSide, uint8(CaptionSideTop))
	setEnumInitial(c, PropEmptyCells, uint8(EmptyCellsShow))
	setEnumInitial(c, PropTableLayout, uint8(TableLayoutAuto))

	c.setDisc(PropClip, Auto)
	c.setDisc(PropContent, Normal)
	c.setDisc(PropCounterIncrement, None)
	c.setDisc(PropCounterReset, None)
	c.setDisc(PropCursor, Auto)
	c.setColor(PropOutlineColor, Initial, 0)
	setEnumInitial(c, PropOutlineStyle, uint8(BorderStyleNone))
	c.setLength(PropOutlineWidth, Set, medium)
	c.setDisc(PropLetterSpacing, Normal)
	c.setDisc(PropWordSpacing, Normal)

	if handler != nil {
		if q := handler.DefaultQuotes(); len(q) > 0 {
			c.setStrings(PropQuotes, Set, q)
		} else {
			c.setDisc(PropQuotes, Initial)
		}
	} else {
		c.setDisc(PropQuotes, Initial)
	}

	// A handler that also implements UAPropertyDefaults gets the final say
	// per property: anything it supplies overrides the CSS 2.1 hardcoded
	// initial set above, the same way a real UA stylesheet's declared
	// values take precedence over the spec's bare initial-value table.
	if ua, ok := handler.(UAPropertyDefaults); ok {
		for op := Opcode(0); op < numProps; op++ {
			operand, has, err := ua.UADefaultForProperty(uint16(op))
			if err != nil {
				return err
			}
			if has {
				c.Apply(op, Set, operand)
			}
		}
	}

	return nil
}

func setEnumInitial(c *Computed, op Opcode, v uint8) {
	c.setEnum(op, Set, v)
}

// SeedInheritance marks every inherited property (CSS 2.1's per-property
// inheritance table, spec.md §4.1) as Inherit, so that once the selection
// engine applies matched declarations on top, any inherited property no
// declaration touched still composes from the parent rather than keeping
// the CSS-specified initial value Initialise gave it. Call after
// Initialise and before applying cascade declarations.
func SeedInheritance(c *Computed) {
	for op := Opcode(0); op < numProps; op++ {
		if inherited[op] {
			c.setDisc(op, Inherit)
		}
	}
}

// IsInherited reports whether op inherits from the parent absent an
// explicit declaration.
func IsInherited(op Opcode) bool { return inherited[op] }

// NumProps returns the number of registered property opcodes.
func NumProps() int { return int(numProps) }

// FontSizeResolver resolves a possibly-relative child font-size hint
// against the parent's absolute font size, spec.md §4.1 "Composition".
type FontSizeResolver func(parentHint, childHint bytecode.Length) bytecode.Length

// Compose builds result from parent and child: child's value wins when set
// and not Inherit; otherwise parent's value is copied. font-size is
// special-cased through resolveFontSize. Spec.md §4.1 "Composition".
func Compose(parent, child *Computed, resolveFontSize FontSizeResolver, result *Computed) error {
	if parent == nil || child == nil || result == nil {
		return csserr.Wrap(csserr.BadParm, "style.Compose: nil argument")
	}
	*result = Computed{}
	result.root = child.root

	for op := Opcode(0); op < numProps; op++ {
		composeOne(parent, child, result, op)
	}

	// composeOne already handled the inherit/initial/absolute cases above;
	// only a relative child font-size (em/ex/%) needs resolving against the
	// parent's absolute size here.
	if resolveFontSize != nil && child.getDisc(PropFontSize) == Set {
		ch := child.getLength(PropFontSize)
		if ch.Unit == bytecode.UnitEM || ch.Unit == bytecode.UnitEX || ch.Unit == bytecode.UnitPercent {
			ph := parent.getLength(PropFontSize)
			result.setLength(PropFontSize, Set, resolveFontSize(ph, ch))
		}
	}

	return nil
}

// composeOne implements spec.md §4.1: a property whose discriminant is
// Inherit (set either by an explicit "inherit" declaration or, during
// selection, as the default for an inherited property nothing matched)
// takes the parent's value; any other discriminant is the child's own
// resolved value and wins outright.
func composeOne(parent, child, result *Computed, op Opcode) {
	src := child
	if child.getDisc(op) == Inherit {
		src = parent
	}

	switch kindOf[op] {
	case bytecode.KindColor:
		result.setColor(op, src.getDisc(op), src.getColor(op))
	case bytecode.KindLength:
		result.setLength(op, src.getDisc(op), src.getLength(op))
	case bytecode.KindString:
		result.setHandle(op, src.getDisc(op), src.getHandle(op))
	case bytecode.KindNumber:
		result.setNumber(op, src.getDisc(op), src.getNumber(op))
	case bytecode.KindStringList:
		result.setStrings(op, src.getDisc(op), src.getStrings(op))
	case bytecode.KindCounterList:
		result.setCounters(op, src.getDisc(op), src.getCounters(op))
	case bytecode.KindKeyword:
		result.setEnum(op, src.getDisc(op), src.getEnum(op))
	}
}
