package style

// Enum-valued keyword properties store their member as a small integer in
// Computed.enum, alongside the generic Discriminant in Computed.disc. Each
// type below is just a documented uint8 for one property's keyword set.

type DisplayValue uint8

const (
	DisplayInline DisplayValue = iota
	DisplayBlock
	DisplayListItem
	DisplayInlineBlock
	DisplayTable
	DisplayInlineTable
	DisplayTableRowGroup
	DisplayTableHeaderGroup
	DisplayTableFooterGroup
	DisplayTableRow
	DisplayTableColumnGroup
	DisplayTableColumn
	DisplayTableCell
	DisplayTableCaption
	DisplayNone
)

type PositionValue uint8

const (
	PositionStatic PositionValue = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

type FloatValue uint8

const (
	FloatNone FloatValue = iota
	FloatLeft
	FloatRight
)

type ClearValue uint8

const (
	ClearNone ClearValue = iota
	ClearLeft
	ClearRight
	ClearBoth
)

type VisibilityValue uint8

const (
	VisibilityVisible VisibilityValue = iota
	VisibilityHidden
	VisibilityCollapse
)

type BackgroundAttachmentValue uint8

const (
	BackgroundAttachmentScroll BackgroundAttachmentValue = iota
	BackgroundAttachmentFixed
)

type BackgroundRepeatValue uint8

const (
	BackgroundRepeatRepeat BackgroundRepeatValue = iota
	BackgroundRepeatRepeatX
	BackgroundRepeatRepeatY
	BackgroundRepeatNoRepeat
)

type BorderStyleValue uint8

const (
	BorderStyleNone BorderStyleValue = iota
	BorderStyleHidden
	BorderStyleDotted
	BorderStyleDashed
	BorderStyleSolid
	BorderStyleDouble
	BorderStyleGroove
	BorderStyleRidge
	BorderStyleInset
	BorderStyleOutset
)

type FontStyleValue uint8

const (
	FontStyleNormal FontStyleValue = iota
	FontStyleItalic
	FontStyleOblique
)

type FontVariantValue uint8

const (
	FontVariantNormal FontVariantValue = iota
	FontVariantSmallCaps
)

type FontWeightValue uint16

const (
	FontWeight100 FontWeightValue = 100
	FontWeight200 FontWeightValue = 200
	FontWeight300 FontWeightValue = 300
	FontWeight400 FontWeightValue = 400
	FontWeight500 FontWeightValue = 500
	FontWeight600 FontWeightValue = 600
	FontWeight700 FontWeightValue = 700
	FontWeight800 FontWeightValue = 800
	FontWeight900 FontWeightValue = 900
)

type TextAlignValue uint8

const (
	TextAlignLeft TextAlignValue = iota
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
	TextAlignStart
)

type TextDecorationValue uint8

const (
	TextDecorationNone TextDecorationValue = iota
	TextDecorationUnderline
	TextDecorationOverline
	TextDecorationLineThrough
	TextDecorationBlink
)

type TextTransformValue uint8

const (
	TextTransformNone TextTransformValue = iota
	TextTransformCapitalize
	TextTransformUppercase
	TextTransformLowercase
)

type WhiteSpaceValue uint8

const (
	WhiteSpaceNormal WhiteSpaceValue = iota
	WhiteSpacePre
	WhiteSpaceNowrap
	WhiteSpacePreLine
	WhiteSpacePreWrap
)

type DirectionValue uint8

const (
	DirectionLTR DirectionValue = iota
	DirectionRTL
)

type UnicodeBidiValue uint8

const (
	UnicodeBidiNormal UnicodeBidiValue = iota
	UnicodeBidiEmbed
	UnicodeBidiOverride
)

type ListStylePositionValue uint8

const (
	ListStylePositionOutside ListStylePositionValue = iota
	ListStylePositionInside
)

type ListStyleTypeValue uint8

const (
	ListStyleTypeDisc ListStyleTypeValue = iota
	ListStyleTypeCircle
	ListStyleTypeSquare
	ListStyleTypeDecimal
	ListStyleTypeLowerRoman
	ListStyleTypeUpperRoman
	ListStyleTypeLowerAlpha
	ListStyleTypeUpperAlpha
	ListStyleTypeNone
)

type BorderCollapseValue uint8

const (
	BorderCollapseSeparate BorderCollapseValue = iota
	BorderCollapseCollapse
)

type CaptionSideValue uint8

const (
	CaptionSideTop CaptionSideValue = iota
	CaptionSideBottom
)

type EmptyCellsValue uint8

const (
	EmptyCellsShow EmptyCellsValue = iota
	EmptyCellsHide
)

type TableLayoutValue uint8

const (
	TableLayoutAuto TableLayoutValue = iota
	TableLayoutFixed
)

type OutlineStyleValue = BorderStyleValue
