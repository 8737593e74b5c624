package style

import "cssengine/bytecode"

// Opcode is a property identifier. The concrete table lives here (not in
// bytecode) because style owns the ~70-property surface; bytecode only
// needs to pack/unpack generic (opcode, flags, value) words.
type Opcode = bytecode.Opcode

// The property table, grounded on the accessor list in
// original_source/libcss/include/libcss/computed.h. Ordering has no
// semantic meaning; it only fixes each property's slot in Computed's dense
// arrays.
const (
	PropColor Opcode = iota
	PropBackgroundColor
	PropBackgroundImage
	PropBackgroundAttachment
	PropBackgroundRepeat
	PropBackgroundPosition

	PropDisplay
	PropPosition
	PropFloat
	PropClear
	PropTop
	PropRight
	PropBottom
	PropLeft
	PropZIndex
	PropVisibility

	PropWidth
	PropHeight
	PropMinWidth
	PropMaxWidth
	PropMinHeight
	PropMaxHeight

	PropMarginTop
	PropMarginRight
	PropMarginBottom
	PropMarginLeft

	PropPaddingTop
	PropPaddingRight
	PropPaddingBottom
	PropPaddingLeft

	PropBorderTopWidth
	PropBorderRightWidth
	PropBorderBottomWidth
	PropBorderLeftWidth
	PropBorderTopColor
	PropBorderRightColor
	PropBorderBottomColor
	PropBorderLeftColor
	PropBorderTopStyle
	PropBorderRightStyle
	PropBorderBottomStyle
	PropBorderLeftStyle

	PropFontFamily
	PropFontSize
	PropFontStyle
	PropFontVariant
	PropFontWeight
	PropLineHeight

	PropTextAlign
	PropTextDecoration
	PropTextIndent
	PropTextTransform
	PropWhiteSpace
	PropDirection
	PropUnicodeBidi
	PropVerticalAlign

	PropListStyleImage
	PropListStylePosition
	PropListStyleType

	PropBorderCollapse
	PropBorderSpacing
	PropCaptionSide
	PropEmptyCells
	PropTableLayout

	// Uncommon properties: allocated in the lazily-created uncommon
	// sub-record, spec.md §3 "Computed style" / §9.
	PropClip
	PropContent
	PropCounterIncrement
	PropCounterReset
	PropCursor
	PropOutlineColor
	PropOutlineStyle
	PropOutlineWidth
	PropLetterSpacing
	PropWordSpacing
	PropQuotes

	numProps
)

// uncommonProps marks which opcodes live in the lazily-allocated uncommon
// sub-record rather than the dense arrays, per spec.md §3's invariant that
// a style touching none of these keeps its uncommon pointer nil.
var uncommonProps = map[Opcode]bool{
	PropClip:             true,
	PropContent:          true,
	PropCounterIncrement: true,
	PropCounterReset:     true,
	PropCursor:           true,
	PropOutlineColor:     true,
	PropOutlineStyle:     true,
	PropOutlineWidth:     true,
	PropLetterSpacing:    true,
	PropWordSpacing:      true,
	PropQuotes:           true,
	PropBorderSpacing:    true,
}

func isUncommon(op Opcode) bool { return uncommonProps[op] }

// kindOf and inherited describe, per property, how its payload is
// shaped and whether the property inherits by default per CSS 2.1 --
// consulted by Initialise and Compose.
var kindOf = map[Opcode]bytecode.Kind{
	PropColor:                bytecode.KindColor,
	PropBackgroundColor:      bytecode.KindColor,
	PropBackgroundImage:      bytecode.KindString,
	PropBackgroundAttachment: bytecode.KindKeyword,
	PropBackgroundRepeat:     bytecode.KindKeyword,
	PropBackgroundPosition:   bytecode.KindLength,

	PropDisplay:    bytecode.KindKeyword,
	PropPosition:   bytecode.KindKeyword,
	PropFloat:      bytecode.KindKeyword,
	PropClear:      bytecode.KindKeyword,
	PropTop:        bytecode.KindLength,
	PropRight:      bytecode.KindLength,
	PropBottom:     bytecode.KindLength,
	PropLeft:       bytecode.KindLength,
	PropZIndex:     bytecode.KindNumber,
	PropVisibility: bytecode.KindKeyword,

	PropWidth:     bytecode.KindLength,
	PropHeight:    bytecode.KindLength,
	PropMinWidth:  bytecode.KindLength,
	PropMaxWidth:  bytecode.KindLength,
	PropMinHeight: bytecode.KindLength,
	PropMaxHeight: bytecode.KindLength,

	PropMarginTop:    bytecode.KindLength,
	PropMarginRight:  bytecode.KindLength,
	PropMarginBottom: bytecode.KindLength,
	PropMarginLeft:   bytecode.KindLength,

	PropPaddingTop:    bytecode.KindLength,
	PropPaddingRight:  bytecode.KindLength,
	PropPaddingBottom: bytecode.KindLength,
	PropPaddingLeft:   bytecode.KindLength,

	PropBorderTopWidth:    bytecode.KindLength,
	PropBorderRightWidth:  bytecode.KindLength,
	PropBorderBottomWidth: bytecode.KindLength,
	PropBorderLeftWidth:   bytecode.KindLength,
	PropBorderTopColor:    bytecode.KindColor,
	PropBorderRightColor:  bytecode.KindColor,
	PropBorderBottomColor: bytecode.KindColor,
	PropBorderLeftColor:   bytecode.KindColor,
	PropBorderTopStyle:    bytecode.KindKeyword,
	PropBorderRightStyle:  bytecode.KindKeyword,
	PropBorderBottomStyle: bytecode.KindKeyword,
	PropBorderLeftStyle:   bytecode.KindKeyword,

	PropFontFamily:  bytecode.KindStringList,
	PropFontSize:    bytecode.KindLength,
	PropFontStyle:   bytecode.KindKeyword,
	PropFontVariant: bytecode.KindKeyword,
	PropFontWeight:  bytecode.KindKeyword,
	PropLineHeight:  bytecode.KindLength,

	PropTextAlign:      bytecode.KindKeyword,
	PropTextDecoration: bytecode.KindKeyword,
	PropTextIndent:     bytecode.KindLength,
	PropTextTransform:  bytecode.KindKeyword,
	PropWhiteSpace:     bytecode.KindKeyword,
	PropDirection:      bytecode.KindKeyword,
	PropUnicodeBidi:    bytecode.KindKeyword,
	PropVerticalAlign:  bytecode.KindLength,

	PropListStyleImage:    bytecode.KindString,
	PropListStylePosition: bytecode.KindKeyword,
	PropListStyleType:     bytecode.KindKeyword,

	PropBorderCollapse: bytecode.KindKeyword,
	PropBorderSpacing:  bytecode.KindLength,
	PropCaptionSide:    bytecode.KindKeyword,
	PropEmptyCells:     bytecode.KindKeyword,
	PropTableLayout:    bytecode.KindKeyword,

	PropClip:             bytecode.KindLength,
	PropContent:          bytecode.KindStringList,
	PropCounterIncrement: bytecode.KindCounterList,
	PropCounterReset:     bytecode.KindCounterList,
	PropCursor:           bytecode.KindStringList,
	PropOutlineColor:     bytecode.KindColor,
	PropOutlineStyle:     bytecode.KindKeyword,
	PropOutlineWidth:     bytecode.KindLength,
	PropLetterSpacing:    bytecode.KindLength,
	PropWordSpacing:      bytecode.KindLength,
	PropQuotes:           bytecode.KindStringList,
}

// inherited lists the properties that, absent an explicit declaration,
// inherit from the parent rather than taking their initial value --
// CSS 2.1's per-property inheritance table.
var inherited = map[Opcode]bool{
	PropColor:             true,
	PropFontFamily:        true,
	PropFontSize:          true,
	PropFontStyle:         true,
	PropFontVariant:       true,
	PropFontWeight:        true,
	PropLineHeight:        true,
	PropTextAlign:         true,
	PropTextIndent:        true,
	PropTextTransform:     true,
	PropWhiteSpace:        true,
	PropDirection:         true,
	PropVisibility:        true,
	PropListStyleImage:    true,
	PropListStylePosition: true,
	PropListStyleType:     true,
	PropBorderCollapse:    true,
	PropBorderSpacing:     true,
	PropCaptionSide:       true,
	PropEmptyCells:        true,
	PropCursor:            true,
	PropLetterSpacing:     true,
	PropWordSpacing:       true,
	PropQuotes:            true,
}

func init() {
	for op, kind := range kindOf {
		bytecode.RegisterKind(op, kind)
	}
}
