package style

import (
	"cssengine/bytecode"
	"cssengine/cssintern"
)

// Each accessor returns the property's Discriminant alongside its typed
// value, mirroring libcss's css_computed_style_* accessor shape from
// original_source/libcss/include/libcss/computed.h (e.g.
// css_computed_display returns both a status and an enum out-param).

// Display applies the position fixup from spec.md §4.1: on the document
// root, on out-of-flow elements (position absolute/fixed), or on floated
// elements, inline-level and table-internal display values coerce to their
// block equivalents.
func (c *Computed) Display() (Discriminant, DisplayValue) {
	disc := c.getDisc(PropDisplay)
	d := DisplayValue(c.getEnum(PropDisplay))

	_, pos := c.Position()
	_, float := c.Float()
	outOfFlow := pos == PositionAbsolute || pos == PositionFixed
	if !c.root && !outOfFlow && float == FloatNone {
		return disc, d
	}

	switch d {
	case DisplayInlineTable:
		return disc, DisplayTable
	case DisplayInline, DisplayInlineBlock,
		DisplayTableRowGroup, DisplayTableHeaderGroup, DisplayTableFooterGroup,
		DisplayTableRow, DisplayTableColumnGroup, DisplayTableColumn,
		DisplayTableCell, DisplayTableCaption:
		return disc, DisplayBlock
	default:
		return disc, d
	}
}

func (c *Computed) Position() (Discriminant, PositionValue) {
	return c.getDisc(PropPosition), PositionValue(c.getEnum(PropPosition))
}

// Float applies spec.md §4.1's "float becomes none whenever position is
// absolute or fixed" fixup.
func (c *Computed) Float() (Discriminant, FloatValue) {
	disc := c.getDisc(PropFloat)
	f := FloatValue(c.getEnum(PropFloat))
	if _, pos := c.Position(); pos == PositionAbsolute || pos == PositionFixed {
		return disc, FloatNone
	}
	return disc, f
}

func (c *Computed) Clear() (Discriminant, ClearValue) {
	return c.getDisc(PropClear), ClearValue(c.getEnum(PropClear))
}

// Top, Right, Bottom and Left apply the position fixup from spec.md §4.1:
// under position:static the effective value is always auto regardless of
// what is stored; under position:relative, CSS 9.4.3's opposing-auto
// resolution applies (both auto -> both 0; one auto -> negation of the
// other; otherwise the stored values hold).
func (c *Computed) Top() (Discriminant, bytecode.Length) {
	top, _ := c.verticalOffsets()
	return top.disc, top.length
}

func (c *Computed) Bottom() (Discriminant, bytecode.Length) {
	_, bottom := c.verticalOffsets()
	return bottom.disc, bottom.length
}

func (c *Computed) Right() (Discriminant, bytecode.Length) {
	right, _ := c.horizontalOffsets()
	return right.disc, right.length
}

func (c *Computed) Left() (Discriminant, bytecode.Length) {
	_, left := c.horizontalOffsets()
	return left.disc, left.length
}

type offset struct {
	disc   Discriminant
	length bytecode.Length
}

func (c *Computed) verticalOffsets() (top, bottom offset) {
	_, pos := c.Position()
	if pos == PositionStatic {
		return offset{disc: Auto}, offset{disc: Auto}
	}
	top = offset{disc: c.getDisc(PropTop), length: c.getLength(PropTop)}
	bottom = offset{disc: c.getDisc(PropBottom), length: c.getLength(PropBottom)}
	if pos != PositionRelative {
		return top, bottom
	}
	return resolveOpposingAuto(top, bottom)
}

func (c *Computed) horizontalOffsets() (right, left offset) {
	_, pos := c.Position()
	if pos == PositionStatic {
		return offset{disc: Auto}, offset{disc: Auto}
	}
	right = offset{disc: c.getDisc(PropRight), length: c.getLength(PropRight)}
	left = offset{disc: c.getDisc(PropLeft), length: c.getLength(PropLeft)}
	if pos != PositionRelative {
		return right, left
	}
	return resolveOpposingAuto(right, left)
}

func resolveOpposingAuto(a, b offset) (offset, offset) {
	aAuto := a.disc == Auto
	bAuto := b.disc == Auto
	switch {
	case aAuto && bAuto:
		zero := offset{disc: Set, length: bytecode.Length{}}
		return zero, zero
	case aAuto:
		return offset{disc: Set, length: negate(b.length)}, b
	case bAuto:
		return a, offset{disc: Set, length: negate(a.length)}
	default:
		return a, b
	}
}

func negate(l bytecode.Length) bytecode.Length {
	return bytecode.Length{Value: -l.Value, Unit: l.Unit}
}

func (c *Computed) ZIndex() (Discriminant, bytecode.Fixed) {
	return c.getDisc(PropZIndex), c.getNumber(PropZIndex)
}

func (c *Computed) Visibility() (Discriminant, VisibilityValue) {
	return c.getDisc(PropVisibility), VisibilityValue(c.getEnum(PropVisibility))
}

func (c *Computed) Width() (Discriminant, bytecode.Length)  { return c.getDisc(PropWidth), c.getLength(PropWidth) }
func (c *Computed) Height() (Discriminant, bytecode.Length) { return c.getDisc(PropHeight), c.getLength(PropHeight) }
func (c *Computed) MinWidth() (Discriminant, bytecode.Length) {
	return c.getDisc(PropMinWidth), c.getLength(PropMinWidth)
}
func (c *Computed) MaxWidth() (Discriminant, bytecode.Length) {
	return c.getDisc(PropMaxWidth), c.getLength(PropMaxWidth)
}
func (c *Computed) MinHeight() (Discriminant, bytecode.Length) {
	return c.getDisc(PropMinHeight), c.getLength(PropMinHeight)
}
func (c *Computed) MaxHeight() (Discriminant, bytecode.Length) {
	return c.getDisc(PropMaxHeight), c.getLength(PropMaxHeight)
}

func (c *Computed) MarginTop() (Discriminant, bytecode.Length) {
	return c.getDisc(PropMarginTop), c.getLength(PropMarginTop)
}
func (c *Computed) MarginRight() (Discriminant, bytecode.Length) {
	return c.getDisc(PropMarginRight), c.getLength(PropMarginRight)
}
func (c *Computed) MarginBottom() (Discriminant, bytecode.Length) {
	return c.getDisc(PropMarginBottom), c.getLength(PropMarginBottom)
}
func (c *Computed) MarginLeft() (Discriminant, bytecode.Length) {
	return c.getDisc(PropMarginLeft), c.getLength(PropMarginLeft)
}

func (c *Computed) PaddingTop() (Discriminant, bytecode.Length) {
	return c.getDisc(PropPaddingTop), c.getLength(PropPaddingTop)
}
func (c *Computed) PaddingRight() (Discriminant, bytecode.Length) {
	return c.getDisc(PropPaddingRight), c.getLength(PropPaddingRight)
}
func (c *Computed) PaddingBottom() (Discriminant, bytecode.Length) {
	return c.getDisc(PropPaddingBottom), c.getLength(PropPaddingBottom)
}
func (c *Computed) PaddingLeft() (Discriminant, bytecode.Length) {
	return c.getDisc(PropPaddingLeft), c.getLength(PropPaddingLeft)
}

func (c *Computed) BorderTopWidth() (Discriminant, bytecode.Length) {
	return c.getDisc(PropBorderTopWidth), c.getLength(PropBorderTopWidth)
}
func (c *Computed) BorderRightWidth() (Discriminant, bytecode.Length) {
	return c.getDisc(PropBorderRightWidth), c.getLength(PropBorderRightWidth)
}
func (c *Computed) BorderBottomWidth() (Discriminant, bytecode.Length) {
	return c.getDisc(PropBorderBottomWidth), c.getLength(PropBorderBottomWidth)
}
func (c *Computed) BorderLeftWidth() (Discriminant, bytecode.Length) {
	return c.getDisc(PropBorderLeftWidth), c.getLength(PropBorderLeftWidth)
}

func (c *Computed) BorderTopColor() (Discriminant, bytecode.Color) {
	return c.getDisc(PropBorderTopColor), c.getColor(PropBorderTopColor)
}
func (c *Computed) BorderRightColor() (Discriminant, bytecode.Color) {
	return c.getDisc(PropBorderRightColor), c.getColor(PropBorderRightColor)
}
func (c *Computed) BorderBottomColor() (Discriminant, bytecode.Color) {
	return c.getDisc(PropBorderBottomColor), c.getColor(PropBorderBottomColor)
}
func (c *Computed) BorderLeftColor() (Discriminant, bytecode.Color) {
	return c.getDisc(PropBorderLeftColor), c.getColor(PropBorderLeftColor)
}

func (c *Computed) BorderTopStyle() (Discriminant, BorderStyleValue) {
	return c.getDisc(PropBorderTopStyle), BorderStyleValue(c.getEnum(PropBorderTopStyle))
}
func (c *Computed) BorderRightStyle() (Discriminant, BorderStyleValue) {
	return c.getDisc(PropBorderRightStyle), BorderStyleValue(c.getEnum(PropBorderRightStyle))
}
func (c *Computed) BorderBottomStyle() (Discriminant, BorderStyleValue) {
	return c.getDisc(PropBorderBottomStyle), BorderStyleValue(c.getEnum(PropBorderBottomStyle))
}
func (c *Computed) BorderLeftStyle() (Discriminant, BorderStyleValue) {
	return c.getDisc(PropBorderLeftStyle), BorderStyleValue(c.getEnum(PropBorderLeftStyle))
}

func (c *Computed) FontFamily() (Discriminant, []string) {
	return c.getDisc(PropFontFamily), handlesToStrings(c.getStrings(PropFontFamily))
}
func (c *Computed) FontSize() (Discriminant, bytecode.Length) {
	return c.getDisc(PropFontSize), c.getLength(PropFontSize)
}
func (c *Computed) FontStyle() (Discriminant, FontStyleValue) {
	return c.getDisc(PropFontStyle), FontStyleValue(c.getEnum(PropFontStyle))
}
func (c *Computed) FontVariant() (Discriminant, FontVariantValue) {
	return c.getDisc(PropFontVariant), FontVariantValue(c.getEnum(PropFontVariant))
}

// FontWeight decodes the enum slot's (weight/100 - 1) encoding back into
// the CSS 100..900 scale; see Initialise's comment on PropFontWeight.
func (c *Computed) FontWeight() (Discriminant, FontWeightValue) {
	return c.getDisc(PropFontWeight), FontWeightValue((c.getEnum(PropFontWeight) + 1)) * 100
}

func (c *Computed) LineHeight() (Discriminant, bytecode.Length) {
	return c.getDisc(PropLineHeight), c.getLength(PropLineHeight)
}

func (c *Computed) TextAlign() (Discriminant, TextAlignValue) {
	return c.getDisc(PropTextAlign), TextAlignValue(c.getEnum(PropTextAlign))
}
func (c *Computed) TextDecoration() (Discriminant, TextDecorationValue) {
	return c.getDisc(PropTextDecoration), TextDecorationValue(c.getEnum(PropTextDecoration))
}
func (c *Computed) TextIndent() (Discriminant, bytecode.Length) {
	return c.getDisc(PropTextIndent), c.getLength(PropTextIndent)
}
func (c *Computed) TextTransform() (Discriminant, TextTransformValue) {
	return c.getDisc(PropTextTransform), TextTransformValue(c.getEnum(PropTextTransform))
}
func (c *Computed) WhiteSpace() (Discriminant, WhiteSpaceValue) {
	return c.getDisc(PropWhiteSpace), WhiteSpaceValue(c.getEnum(PropWhiteSpace))
}
func (c *Computed) Direction() (Discriminant, DirectionValue) {
	return c.getDisc(PropDirection), DirectionValue(c.getEnum(PropDirection))
}
func (c *Computed) UnicodeBidi() (Discriminant, UnicodeBidiValue) {
	return c.getDisc(PropUnicodeBidi), UnicodeBidiValue(c.getEnum(PropUnicodeBidi))
}
func (c *Computed) VerticalAlign() (Discriminant, bytecode.Length) {
	return c.getDisc(PropVerticalAlign), c.getLength(PropVerticalAlign)
}

func (c *Computed) ListStylePosition() (Discriminant, ListStylePositionValue) {
	return c.getDisc(PropListStylePosition), ListStylePositionValue(c.getEnum(PropListStylePosition))
}
func (c *Computed) ListStyleType() (Discriminant, ListStyleTypeValue) {
	return c.getDisc(PropListStyleType), ListStyleTypeValue(c.getEnum(PropListStyleType))
}

func (c *Computed) BorderCollapse() (Discriminant, BorderCollapseValue) {
	return c.getDisc(PropBorderCollapse), BorderCollapseValue(c.getEnum(PropBorderCollapse))
}
func (c *Computed) BorderSpacing() (Discriminant, bytecode.Length) {
	return c.getDisc(PropBorderSpacing), c.getLength(PropBorderSpacing)
}
func (c *Computed) CaptionSide() (Discriminant, CaptionSideValue) {
	return c.getDisc(PropCaptionSide), CaptionSideValue(c.getEnum(PropCaptionSide))
}
func (c *Computed) EmptyCells() (Discriminant, EmptyCellsValue) {
	return c.getDisc(PropEmptyCells), EmptyCellsValue(c.getEnum(PropEmptyCells))
}
func (c *Computed) TableLayout() (Discriminant, TableLayoutValue) {
	return c.getDisc(PropTableLayout), TableLayoutValue(c.getEnum(PropTableLayout))
}

func (c *Computed) Color() (Discriminant, bytecode.Color) {
	return c.getDisc(PropColor), c.getColor(PropColor)
}
func (c *Computed) BackgroundColor() (Discriminant, bytecode.Color) {
	return c.getDisc(PropBackgroundColor), c.getColor(PropBackgroundColor)
}
func (c *Computed) BackgroundAttachment() (Discriminant, BackgroundAttachmentValue) {
	return c.getDisc(PropBackgroundAttachment), BackgroundAttachmentValue(c.getEnum(PropBackgroundAttachment))
}
func (c *Computed) BackgroundRepeat() (Discriminant, BackgroundRepeatValue) {
	return c.getDisc(PropBackgroundRepeat), BackgroundRepeatValue(c.getEnum(PropBackgroundRepeat))
}

// Uncommon-slot accessors.

func (c *Computed) Cursor() (Discriminant, []string) {
	return c.getDisc(PropCursor), handlesToStrings(c.getStrings(PropCursor))
}

func (c *Computed) Content() (Discriminant, []string) {
	return c.getDisc(PropContent), handlesToStrings(c.getStrings(PropContent))
}

func (c *Computed) Quotes() (Discriminant, []string) {
	return c.getDisc(PropQuotes), handlesToStrings(c.getStrings(PropQuotes))
}

func (c *Computed) CounterIncrement() (Discriminant, []bytecode.CounterEntry) {
	return c.getDisc(PropCounterIncrement), c.getCounters(PropCounterIncrement)
}
func (c *Computed) CounterReset() (Discriminant, []bytecode.CounterEntry) {
	return c.getDisc(PropCounterReset), c.getCounters(PropCounterReset)
}

func (c *Computed) OutlineColor() (Discriminant, bytecode.Color) {
	return c.getDisc(PropOutlineColor), c.getColor(PropOutlineColor)
}
func (c *Computed) OutlineStyle() (Discriminant, OutlineStyleValue) {
	return c.getDisc(PropOutlineStyle), OutlineStyleValue(c.getEnum(PropOutlineStyle))
}
func (c *Computed) OutlineWidth() (Discriminant, bytecode.Length) {
	return c.getDisc(PropOutlineWidth), c.getLength(PropOutlineWidth)
}

func (c *Computed) LetterSpacing() (Discriminant, bytecode.Length) {
	return c.getDisc(PropLetterSpacing), c.getLength(PropLetterSpacing)
}
func (c *Computed) WordSpacing() (Discriminant, bytecode.Length) {
	return c.getDisc(PropWordSpacing), c.getLength(PropWordSpacing)
}

// Clip returns the clip rectangle's auto-ness per edge alongside the
// rectangle itself; the outer Discriminant is Auto when the whole property
// is "auto" and Set when a rect(...) was specified (individual edges may
// still be auto, per CSS 2.1's clip grammar).
func (c *Computed) Clip() (Discriminant, ClipRect) {
	disc := c.getDisc(PropClip)
	if c.uncommon == nil {
		return disc, ClipRect{TopAuto: true, RightAuto: true, BottomAuto: true, LeftAuto: true}
	}
	r := c.uncommon.clip
	return disc, ClipRect{
		Top: bytecode.Length{Value: r.top, Unit: r.topUnit}, TopAuto: r.topAuto,
		Right: bytecode.Length{Value: r.right, Unit: r.rightUnit}, RightAuto: r.rightAuto,
		Bottom: bytecode.Length{Value: r.bottom, Unit: r.bottomUnit}, BottomAuto: r.bottomAuto,
		Left: bytecode.Length{Value: r.left, Unit: r.leftUnit}, LeftAuto: r.leftAuto,
	}
}

// ClipRect is the public, accessor-facing view of clipRect.
type ClipRect struct {
	Top, Right, Bottom, Left                 bytecode.Length
	TopAuto, RightAuto, BottomAuto, LeftAuto bool
}

// handlesToStrings resolves a list of interned string handles to their
// backing strings, for accessors that expose ordinary []string to callers
// rather than leaking cssintern.Handle outside this package's internals.
func handlesToStrings(hs []cssintern.Handle) []string {
	if hs == nil {
		return nil
	}
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.String()
	}
	return out
}
