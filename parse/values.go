package parse

import (
	"strings"

	"cssengine/bytecode"
	"cssengine/csserr"
)

// namedColors is the CSS 2.1 16-color keyword set ("transparent" is
// handled separately by parseColorValue), grounded on original_source/libcss's css_colour lookup table. The
// distilled spec only requires round-tripping hex/keyword colors for
// cascade purposes, not the full CSS3 extended color list.
var namedColors = map[string]bytecode.Color{
	"black":   bytecode.NewColor(0, 0, 0, 0xff),
	"silver":  bytecode.NewColor(0xc0, 0xc0, 0xc0, 0xff),
	"gray":    bytecode.NewColor(0x80, 0x80, 0x80, 0xff),
	"white":   bytecode.NewColor(0xff, 0xff, 0xff, 0xff),
	"maroon":  bytecode.NewColor(0x80, 0, 0, 0xff),
	"red":     bytecode.NewColor(0xff, 0, 0, 0xff),
	"purple":  bytecode.NewColor(0x80, 0, 0x80, 0xff),
	"fuchsia": bytecode.NewColor(0xff, 0, 0xff, 0xff),
	"green":   bytecode.NewColor(0, 0x80, 0, 0xff),
	"lime":    bytecode.NewColor(0, 0xff, 0, 0xff),
	"olive":   bytecode.NewColor(0x80, 0x80, 0, 0xff),
	"yellow":  bytecode.NewColor(0xff, 0xff, 0, 0xff),
	"navy":    bytecode.NewColor(0, 0, 0x80, 0xff),
	"blue":    bytecode.NewColor(0, 0, 0xff, 0xff),
	"teal":    bytecode.NewColor(0, 0x80, 0x80, 0xff),
	"aqua":    bytecode.NewColor(0, 0xff, 0xff, 0xff),
}

func trimWhitespace(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind != TokenWhitespace {
			out = append(out, t)
		}
	}
	return out
}

// parseColorValue parses a single color value token: inherit, a named
// keyword, transparent, or a #rgb/#rrggbb/#rrggbbaa hash.
func parseColorValue(value []Token) (bytecode.Value, bytecode.Color, error) {
	toks := trimWhitespace(value)
	if len(toks) != 1 {
		return 0, 0, csserr.Wrap(csserr.Invalid, "parse: color expects a single value")
	}
	t := toks[0]
	switch {
	case t.Kind == TokenIdent && equalFoldASCII(t.Text, "inherit"):
		return bytecode.ValueInherit, 0, nil
	case t.Kind == TokenIdent && equalFoldASCII(t.Text, "transparent"):
		return bytecode.ValueNone, 0, nil
	case t.Kind == TokenIdent:
		if c, ok := namedColors[strings.ToLower(t.Text)]; ok {
			return bytecode.ValueSet, c, nil
		}
		return 0, 0, csserr.Wrap(csserr.Invalid, "parse: unknown color keyword "+t.Text)
	case t.Kind == TokenHash:
		c, err := parseHexColor(t.Text)
		return bytecode.ValueSet, c, err
	default:
		return 0, 0, csserr.Wrap(csserr.Invalid, "parse: invalid color token")
	}
}

func parseHexColor(hex string) (bytecode.Color, error) {
	hexVal := func(c byte) (byte, error) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', nil
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, nil
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, nil
		default:
			return 0, csserr.Wrap(csserr.Invalid, "parse: invalid hex digit")
		}
	}
	byteOf := func(hi, lo byte) (byte, error) {
		h, err := hexVal(hi)
		if err != nil {
			return 0, err
		}
		l, err := hexVal(lo)
		if err != nil {
			return 0, err
		}
		return h<<4 | l, nil
	}

	switch len(hex) {
	case 3, 4:
		r, err := byteOf(expandDigit(hex[0]))
		if err != nil {
			return 0, err
		}
		g, err := byteOf(expandDigit(hex[1]))
		if err != nil {
			return 0, err
		}
		b, err := byteOf(expandDigit(hex[2]))
		if err != nil {
			return 0, err
		}
		a := byte(0xff)
		if len(hex) == 4 {
			a, err = byteOf(expandDigit(hex[3]))
			if err != nil {
				return 0, err
			}
		}
		return bytecode.NewColor(r, g, b, a), nil
	case 6, 8:
		r, err := byteOf(hex[0], hex[1])
		if err != nil {
			return 0, err
		}
		g, err := byteOf(hex[2], hex[3])
		if err != nil {
			return 0, err
		}
		b, err := byteOf(hex[4], hex[5])
		if err != nil {
			return 0, err
		}
		a := byte(0xff)
		if len(hex) == 8 {
			a, err = byteOf(hex[6], hex[7])
			if err != nil {
				return 0, err
			}
		}
		return bytecode.NewColor(r, g, b, a), nil
	default:
		return 0, csserr.Wrap(csserr.Invalid, "parse: hex color must be 3, 4, 6 or 8 digits")
	}
}

func expandDigit(c byte) (byte, byte) { return c, c }

// parseLengthValue parses a single length: inherit, auto, a unitless zero,
// a dimension, or a percentage. allowNone also accepts the "none" keyword
// (for max-width/max-height).
func parseLengthValue(value []Token, allowNone bool) (bytecode.Value, bytecode.Length, error) {
	toks := trimWhitespace(value)
	if len(toks) != 1 {
		return 0, bytecode.Length{}, csserr.Wrap(csserr.Invalid, "parse: length expects a single value")
	}
	t := toks[0]
	switch {
	case t.Kind == TokenIdent && equalFoldASCII(t.Text, "inherit"):
		return bytecode.ValueInherit, bytecode.Length{}, nil
	case t.Kind == TokenIdent && equalFoldASCII(t.Text, "auto"):
		return bytecode.ValueAuto, bytecode.Length{}, nil
	case allowNone && t.Kind == TokenIdent && equalFoldASCII(t.Text, "none"):
		return bytecode.ValueNone, bytecode.Length{}, nil
	case t.Kind == TokenNumber && t.Value == 0:
		return bytecode.ValueSet, bytecode.Length{Unit: bytecode.UnitPX}, nil
	case t.Kind == TokenDimension:
		unit, ok := unitFromString(t.Unit)
		if !ok {
			return 0, bytecode.Length{}, csserr.Wrap(csserr.Invalid, "parse: unknown unit "+t.Unit)
		}
		return bytecode.ValueSet, bytecode.Length{Value: bytecode.FromFloat(t.Value), Unit: unit}, nil
	case t.Kind == TokenPercentage:
		return bytecode.ValueSet, bytecode.Length{Value: bytecode.FromFloat(t.Value), Unit: bytecode.UnitPercent}, nil
	default:
		return 0, bytecode.Length{}, csserr.Wrap(csserr.Invalid, "parse: invalid length token")
	}
}

func unitFromString(u string) (bytecode.Unit, bool) {
	switch strings.ToLower(u) {
	case "px":
		return bytecode.UnitPX, true
	case "em":
		return bytecode.UnitEM, true
	case "ex":
		return bytecode.UnitEX, true
	case "pt":
		return bytecode.UnitPT, true
	case "cm":
		return bytecode.UnitCM, true
	case "mm":
		return bytecode.UnitMM, true
	case "in":
		return bytecode.UnitIN, true
	case "pc":
		return bytecode.UnitPC, true
	case "deg":
		return bytecode.UnitDEG, true
	case "rad":
		return bytecode.UnitRAD, true
	case "grad":
		return bytecode.UnitGRAD, true
	case "ms":
		return bytecode.UnitMS, true
	case "s":
		return bytecode.UnitS, true
	case "hz":
		return bytecode.UnitHZ, true
	case "khz":
		return bytecode.UnitKHZ, true
	default:
		return 0, false
	}
}

// parseKeywordValue parses a single ident against members, plus the
// generic inherit/initial discriminants every keyword property accepts.
func parseKeywordValue(value []Token, members map[string]uint8) (bytecode.Value, uint8, error) {
	toks := trimWhitespace(value)
	if len(toks) != 1 || toks[0].Kind != TokenIdent {
		return 0, 0, csserr.Wrap(csserr.Invalid, "parse: keyword property expects a single ident")
	}
	name := strings.ToLower(toks[0].Text)
	switch name {
	case "inherit":
		return bytecode.ValueInherit, 0, nil
	case "initial":
		return bytecode.ValueInitial, 0, nil
	}
	member, ok := members[name]
	if !ok {
		return 0, 0, csserr.Wrap(csserr.Invalid, "parse: unknown keyword "+name)
	}
	return bytecode.ValueSet, member, nil
}
