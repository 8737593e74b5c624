package domadapter

import (
	"strconv"
	"strings"

	"cssengine/bytecode"
	"cssengine/cssintern"
	"cssengine/style"

	"github.com/andybalholm/cascadia"
	"github.com/PuerkitoBio/goquery"
)

// linkSelector identifies an anchor/area carrying an href, CSS 2.1's
// definition of ":link" -- compiled once via cascadia rather than
// hand-rolled, since cascadia already ships the pseudo-class grammar this
// module's own selector/cssselect packages don't implement structurally.
var linkSelector = cascadia.MustCompile("a[href], area[href]")

// NodePresentationalHint returns a UA-level declaration for the small set
// of HTML presentational hints CSS 2.1 Appendix D documents as "as if
// specified in the author style sheet, with zero specificity" -- link
// color, and the legacy width/height/bgcolor/color attributes. Anything
// else reports no hint (nil, nil).
//
// :link/:visited styling is resolved through the cascadia-compiled
// linkSelector fallback path rather than duplicating cssselect's own
// pseudo-class matching here.
func (Handler) NodePresentationalHint(element any, op uint16) ([]byte, error) {
	sel, err := asSelection(element)
	if err != nil {
		return nil, nil
	}
	node := sel.Get(0)

	switch style.Opcode(op) {
	case style.PropColor:
		if linkSelector.Match(node) {
			return colorDecl(style.PropColor, 0, 0, 238), nil // CSS2.1 UA default "blue"-ish link color
		}
		if c, ok := sel.Attr("color"); ok {
			if rgb, ok := parseLegacyColor(c); ok {
				return colorDecl(style.PropColor, rgb[0], rgb[1], rgb[2]), nil
			}
		}
		return nil, nil

	case style.PropTextDecoration:
		if linkSelector.Match(node) {
			return enumDecl(style.PropTextDecoration, uint8(style.TextDecorationUnderline)), nil
		}
		return nil, nil

	case style.PropBackgroundColor:
		if c, ok := sel.Attr("bgcolor"); ok {
			if rgb, ok := parseLegacyColor(c); ok {
				return colorDecl(style.PropBackgroundColor, rgb[0], rgb[1], rgb[2]), nil
			}
		}
		return nil, nil

	case style.PropWidth:
		return legacyLengthHint(sel, "width", style.PropWidth)
	case style.PropHeight:
		return legacyLengthHint(sel, "height", style.PropHeight)

	default:
		return nil, nil
	}
}

// UADefaultForProperty overrides style.Initialise's CSS 2.1 initial value
// for the one property CSS 2.1 explicitly leaves UA-dependent: font-family
// (CSS 2.1 §15.3 -- "the initial value ... is UA-dependent"). Every other
// property's hardcoded initial is already exactly what CSS 2.1 specifies,
// so domadapter has nothing to add there.
func (Handler) UADefaultForProperty(op uint16) (bytecode.Operand, bool, error) {
	if style.Opcode(op) == style.PropFontFamily {
		return bytecode.Operand{Strings: []cssintern.Handle{cssintern.Intern("serif")}}, true, nil
	}
	return bytecode.Operand{}, false, nil
}

func colorDecl(op style.Opcode, r, g, b uint8) []byte {
	return bytecode.Emit(nil, op, 0, bytecode.ValueSet, bytecode.KindColor,
		bytecode.Operand{Color: bytecode.NewColor(r, g, b, 0xff)})
}

func enumDecl(op style.Opcode, member uint8) []byte {
	return bytecode.Emit(nil, op, 0, bytecode.ValueSet, bytecode.KindKeyword,
		bytecode.Operand{Number: bytecode.Fixed(member)})
}

func legacyLengthHint(sel *goquery.Selection, attr string, op style.Opcode) ([]byte, error) {
	raw, ok := sel.Attr(attr)
	if !ok {
		return nil, nil
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "%")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, nil
	}
	length := bytecode.Length{Value: bytecode.FromFloat(float64(n)), Unit: bytecode.UnitPX}
	return bytecode.Emit(nil, op, 0, bytecode.ValueSet, bytecode.KindLength, bytecode.Operand{Length: length}), nil
}

// parseLegacyColor resolves the handful of HTML legacy color forms this
// adapter bothers with: "#rrggbb"/"#rgb" and the basic named colors that
// show up in hand-authored email HTML (CSS 2.1 doesn't require more for a
// presentational hint, and full SVG/CSS3 color-keyword parsing belongs to
// the declaration parser, not this adapter).
func parseLegacyColor(s string) ([3]uint8, bool) {
	s = strings.TrimSpace(s)
	if named, ok := legacyColorNames[strings.ToLower(s)]; ok {
		return named, true
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		expanded := make([]byte, 0, 6)
		for _, c := range s {
			expanded = append(expanded, byte(c), byte(c))
		}
		s = string(expanded)
	}
	if len(s) != 6 {
		return [3]uint8{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [3]uint8{}, false
	}
	return [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

var legacyColorNames = map[string][3]uint8{
	"black": {0, 0, 0}, "white": {255, 255, 255}, "red": {255, 0, 0},
	"green": {0, 128, 0}, "blue": {0, 0, 255}, "yellow": {255, 255, 0},
	"gray": {128, 128, 128}, "grey": {128, 128, 128}, "silver": {192, 192, 192},
	"maroon": {128, 0, 0}, "purple": {128, 0, 128}, "teal": {0, 128, 128},
	"navy": {0, 0, 128}, "olive": {128, 128, 0}, "lime": {0, 255, 0},
	"aqua": {0, 255, 255}, "fuchsia": {255, 0, 255}, "orange": {255, 165, 0},
}
