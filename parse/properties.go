package parse

import (
	"strings"

	"cssengine/bytecode"
	"cssengine/cssintern"
	"cssengine/csserr"
	"cssengine/style"
)

// PropertyParser turns a declaration's already-tokenized value (with any
// trailing "!important" already stripped by StripImportant) into bytecode
// appended to buf. Spec.md §4.5: "property-specific value parser → emit
// opcode/flags/value + operands".
type PropertyParser func(buf []byte, flags bytecode.Flags, value []Token) ([]byte, error)

// propertyParsers maps a CSS property's lowercase name to its parser.
// Populated by init() below; style's init() has already registered each
// opcode's operand Kind with bytecode.RegisterKind, so these parsers only need to build the
// matching Operand.
var propertyParsers = map[string]PropertyParser{}

// Parse looks up name's parser and emits its declaration into buf. Returns
// csserr.Invalid if name is not a recognized property.
func Parse(buf []byte, name string, value []Token) ([]byte, error) {
	stripped, flags := StripImportant(value)
	p, ok := propertyParsers[strings.ToLower(name)]
	if !ok {
		return buf, csserr.Wrap(csserr.Invalid, "parse: unknown property "+name)
	}
	return p(buf, flags, stripped)
}

func init() {
	registerColorProperty("color", style.PropColor)
	registerColorProperty("background-color", style.PropBackgroundColor)
	registerColorProperty("border-top-color", style.PropBorderTopColor)
	registerColorProperty("border-right-color", style.PropBorderRightColor)
	registerColorProperty("border-bottom-color", style.PropBorderBottomColor)
	registerColorProperty("border-left-color", style.PropBorderLeftColor)
	registerColorProperty("outline-color", style.PropOutlineColor)

	registerLengthProperty("width", style.PropWidth, true)
	registerLengthProperty("height", style.PropHeight, true)
	registerLengthProperty("min-width", style.PropMinWidth, false)
	registerLengthProperty("min-height", style.PropMinHeight, false)
	registerLengthProperty("max-width", style.PropMaxWidth, true)
	registerLengthProperty("max-height", style.PropMaxHeight, true)
	registerLengthProperty("top", style.PropTop, true)
	registerLengthProperty("right", style.PropRight, true)
	registerLengthProperty("bottom", style.PropBottom, true)
	registerLengthProperty("left", style.PropLeft, true)
	registerLengthProperty("margin-top", style.PropMarginTop, true)
	registerLengthProperty("margin-right", style.PropMarginRight, true)
	registerLengthProperty("margin-bottom", style.PropMarginBottom, true)
	registerLengthProperty("margin-left", style.PropMarginLeft, true)
	registerLengthProperty("padding-top", style.PropPaddingTop, false)
	registerLengthProperty("padding-right", style.PropPaddingRight, false)
	registerLengthProperty("padding-bottom", style.PropPaddingBottom, false)
	registerLengthProperty("padding-left", style.PropPaddingLeft, false)
	registerLengthProperty("border-top-width", style.PropBorderTopWidth, false)
	registerLengthProperty("border-right-width", style.PropBorderRightWidth, false)
	registerLengthProperty("border-bottom-width", style.PropBorderBottomWidth, false)
	registerLengthProperty("border-left-width", style.PropBorderLeftWidth, false)
	registerLengthProperty("font-size", style.PropFontSize, false)
	registerLengthProperty("line-height", style.PropLineHeight, false)
	registerLengthProperty("text-indent", style.PropTextIndent, false)
	registerLengthProperty("letter-spacing", style.PropLetterSpacing, false)
	registerLengthProperty("word-spacing", style.PropWordSpacing, false)
	registerLengthProperty("border-spacing", style.PropBorderSpacing, false)
	registerLengthProperty("outline-width", style.PropOutlineWidth, false)

	registerEnumProperty("display", style.PropDisplay, map[string]uint8{
		"inline": uint8(style.DisplayInline), "block": uint8(style.DisplayBlock),
		"list-item": uint8(style.DisplayListItem), "inline-block": uint8(style.DisplayInlineBlock),
		"table": uint8(style.DisplayTable), "inline-table": uint8(style.DisplayInlineTable),
		"table-row-group": uint8(style.DisplayTableRowGroup), "table-header-group": uint8(style.DisplayTableHeaderGroup),
		"table-footer-group": uint8(style.DisplayTableFooterGroup), "table-row": uint8(style.DisplayTableRow),
		"table-column-group": uint8(style.DisplayTableColumnGroup), "table-column": uint8(style.DisplayTableColumn),
		"table-cell": uint8(style.DisplayTableCell), "table-caption": uint8(style.DisplayTableCaption),
		"none": uint8(style.DisplayNone),
	})
	registerEnumProperty("position", style.PropPosition, map[string]uint8{
		"static": uint8(style.PositionStatic), "relative": uint8(style.PositionRelative),
		"absolute": uint8(style.PositionAbsolute), "fixed": uint8(style.PositionFixed),
	})
	registerEnumProperty("float", style.PropFloat, map[string]uint8{
		"none": uint8(style.FloatNone), "left": uint8(style.FloatLeft), "right": uint8(style.FloatRight),
	})
	registerEnumProperty("clear", style.PropClear, map[string]uint8{
		"none": uint8(style.ClearNone), "left": uint8(style.ClearLeft), "right": uint8(style.ClearRight), "both": uint8(style.ClearBoth),
	})
	registerEnumProperty("visibility", style.PropVisibility, map[string]uint8{
		"visible": uint8(style.VisibilityVisible), "hidden": uint8(style.VisibilityHidden), "collapse": uint8(style.VisibilityCollapse),
	})
	registerEnumProperty("text-align", style.PropTextAlign, map[string]uint8{
		"left": uint8(style.TextAlignLeft), "right": uint8(style.TextAlignRight),
		"center": uint8(style.TextAlignCenter), "justify": uint8(style.TextAlignJustify), "start": uint8(style.TextAlignStart),
	})
	registerEnumProperty("text-transform", style.PropTextTransform, map[string]uint8{
		"none": uint8(style.TextTransformNone), "capitalize": uint8(style.TextTransformCapitalize),
		"uppercase": uint8(style.TextTransformUppercase), "lowercase": uint8(style.TextTransformLowercase),
	})
	registerEnumProperty("white-space", style.PropWhiteSpace, map[string]uint8{
		"normal": uint8(style.WhiteSpaceNormal), "pre": uint8(style.WhiteSpacePre),
		"nowrap": uint8(style.WhiteSpaceNowrap), "pre-line": uint8(style.WhiteSpacePreLine), "pre-wrap": uint8(style.WhiteSpacePreWrap),
	})
	registerEnumProperty("font-style", style.PropFontStyle, map[string]uint8{
		"normal": uint8(style.FontStyleNormal), "italic": uint8(style.FontStyleItalic), "oblique": uint8(style.FontStyleOblique),
	})
	registerEnumProperty("font-variant", style.PropFontVariant, map[string]uint8{
		"normal": uint8(style.FontVariantNormal), "small-caps": uint8(style.FontVariantSmallCaps),
	})
	borderStyleNames := map[string]uint8{
		"none": uint8(style.BorderStyleNone), "hidden": uint8(style.BorderStyleHidden), "dotted": uint8(style.BorderStyleDotted),
		"dashed": uint8(style.BorderStyleDashed), "solid": uint8(style.BorderStyleSolid), "double": uint8(style.BorderStyleDouble),
		"groove": uint8(style.BorderStyleGroove), "ridge": uint8(style.BorderStyleRidge), "inset": uint8(style.BorderStyleInset),
		"outset": uint8(style.BorderStyleOutset),
	}
	registerEnumProperty("border-top-style", style.PropBorderTopStyle, borderStyleNames)
	registerEnumProperty("border-right-style", style.PropBorderRightStyle, borderStyleNames)
	registerEnumProperty("border-bottom-style", style.PropBorderBottomStyle, borderStyleNames)
	registerEnumProperty("border-left-style", style.PropBorderLeftStyle, borderStyleNames)
	registerEnumProperty("outline-style", style.PropOutlineStyle, borderStyleNames)

	registerFontWeightProperty()
	registerFontFamilyProperty()
}

func registerColorProperty(name string, op style.Opcode) {
	propertyParsers[name] = func(buf []byte, flags bytecode.Flags, value []Token) ([]byte, error) {
		d, col, err := parseColorValue(value)
		if err != nil {
			return buf, err
		}
		return bytecode.Emit(buf, op, flags, d, bytecode.KindColor, bytecode.Operand{Color: col}), nil
	}
}

func registerLengthProperty(name string, op style.Opcode, allowNone bool) {
	propertyParsers[name] = func(buf []byte, flags bytecode.Flags, value []Token) ([]byte, error) {
		d, length, err := parseLengthValue(value, allowNone)
		if err != nil {
			return buf, err
		}
		return bytecode.Emit(buf, op, flags, d, bytecode.KindLength, bytecode.Operand{Length: length}), nil
	}
}

func registerEnumProperty(name string, op style.Opcode, members map[string]uint8) {
	propertyParsers[name] = func(buf []byte, flags bytecode.Flags, value []Token) ([]byte, error) {
		d, member, err := parseKeywordValue(value, members)
		if err != nil {
			return buf, err
		}
		operand := bytecode.Operand{}
		if d == bytecode.ValueSet {
			operand.Number = bytecode.Fixed(member)
		}
		return bytecode.Emit(buf, op, flags, d, bytecode.KindKeyword, operand), nil
	}
}

func registerFontWeightProperty() {
	propertyParsers["font-weight"] = func(buf []byte, flags bytecode.Flags, value []Token) ([]byte, error) {
		toks := trimWhitespace(value)
		if len(toks) != 1 {
			return buf, csserr.Wrap(csserr.Invalid, "parse: font-weight expects one token")
		}
		t := toks[0]
		var d bytecode.Value
		var slot uint8
		switch {
		case t.Kind == TokenIdent && equalFoldASCII(t.Text, "inherit"):
			d = bytecode.ValueInherit
		case t.Kind == TokenIdent && equalFoldASCII(t.Text, "normal"):
			d, slot = bytecode.ValueSet, 3 // 400/100 - 1
		case t.Kind == TokenIdent && equalFoldASCII(t.Text, "bold"):
			d, slot = bytecode.ValueSet, 6 // 700/100 - 1
		case t.Kind == TokenNumber:
			n := int(t.Value)
			if n < 100 || n > 900 || n%100 != 0 {
				return buf, csserr.Wrap(csserr.Invalid, "parse: font-weight out of range")
			}
			d, slot = bytecode.ValueSet, uint8(n/100-1)
		default:
			return buf, csserr.Wrap(csserr.Invalid, "parse: invalid font-weight")
		}
		operand := bytecode.Operand{}
		if d == bytecode.ValueSet {
			operand.Number = bytecode.Fixed(slot)
		}
		return bytecode.Emit(buf, style.PropFontWeight, flags, d, bytecode.KindKeyword, operand), nil
	}
}

func registerFontFamilyProperty() {
	propertyParsers["font-family"] = func(buf []byte, flags bytecode.Flags, value []Token) ([]byte, error) {
		toks := trimWhitespace(value)
		if len(toks) == 1 && toks[0].Kind == TokenIdent && equalFoldASCII(toks[0].Text, "inherit") {
			return bytecode.Emit(buf, style.PropFontFamily, flags, bytecode.ValueInherit, bytecode.KindStringList, bytecode.Operand{}), nil
		}
		var names []cssintern.Handle
		for _, t := range toks {
			switch t.Kind {
			case TokenString:
				names = append(names, cssintern.Intern(t.Text))
			case TokenIdent:
				names = append(names, cssintern.Intern(t.Text))
			case TokenComma, TokenWhitespace:
				// separators; each ident is taken as its own family name, so an
				// unquoted multi-word name (e.g. Times New Roman) is not joined
				// and yields one name per word.
			default:
				return buf, csserr.Wrap(csserr.Invalid, "parse: invalid font-family token")
			}
		}
		if len(names) == 0 {
			return buf, csserr.Wrap(csserr.Invalid, "parse: empty font-family")
		}
		return bytecode.Emit(buf, style.PropFontFamily, flags, bytecode.ValueSet, bytecode.KindStringList, bytecode.Operand{Strings: names}), nil
	}
}
