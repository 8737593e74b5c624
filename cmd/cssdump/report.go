package main

import (
	"fmt"
	"io"

	"cssengine/bytecode"
	"cssengine/style"
)

// dumpComputed writes a human-readable listing of the handful of
// properties cssdump's fixtures most commonly exercise: box, color and
// text properties, plus each property's Discriminant so "inherit"/"auto"
// are visible as such rather than as some arbitrary resolved length.
func dumpComputed(w io.Writer, c *style.Computed) {
	disc, display := c.Display()
	fmt.Fprintf(w, "display:          %s (%s)\n", displayName(display), discName(disc))

	disc, pos := c.Position()
	fmt.Fprintf(w, "position:         %s (%s)\n", positionName(pos), discName(disc))

	disc, color := c.Color()
	fmt.Fprintf(w, "color:            %s (%s)\n", colorHex(color), discName(disc))

	disc, bg := c.BackgroundColor()
	fmt.Fprintf(w, "background-color: %s (%s)\n", colorHex(bg), discName(disc))

	disc, width := c.Width()
	fmt.Fprintf(w, "width:            %s (%s)\n", lengthString(width), discName(disc))
	disc, height := c.Height()
	fmt.Fprintf(w, "height:           %s (%s)\n", lengthString(height), discName(disc))

	disc, fontSize := c.FontSize()
	fmt.Fprintf(w, "font-size:        %s (%s)\n", lengthString(fontSize), discName(disc))
	disc, weight := c.FontWeight()
	fmt.Fprintf(w, "font-weight:      %d (%s)\n", weight, discName(disc))

	disc, decoration := c.TextDecoration()
	fmt.Fprintf(w, "text-decoration:  %s (%s)\n", textDecorationName(decoration), discName(disc))
	disc, align := c.TextAlign()
	fmt.Fprintf(w, "text-align:       %s (%s)\n", textAlignName(align), discName(disc))

	disc, mTop := c.MarginTop()
	fmt.Fprintf(w, "margin-top:       %s (%s)\n", lengthString(mTop), discName(disc))
	disc, pTop := c.PaddingTop()
	fmt.Fprintf(w, "padding-top:      %s (%s)\n", lengthString(pTop), discName(disc))
}

func discName(d style.Discriminant) string {
	switch d {
	case style.Inherit:
		return "inherit"
	case style.Auto:
		return "auto"
	case style.Set:
		return "set"
	default:
		return "unset"
	}
}

func colorHex(c bytecode.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

func lengthString(l bytecode.Length) string {
	return fmt.Sprintf("%g%s", l.Value.Float(), unitSuffix(l.Unit))
}

func unitSuffix(u bytecode.Unit) string {
	switch u {
	case bytecode.UnitPX:
		return "px"
	case bytecode.UnitEM:
		return "em"
	case bytecode.UnitEX:
		return "ex"
	case bytecode.UnitPercent:
		return "%"
	case bytecode.UnitPT:
		return "pt"
	case bytecode.UnitCM:
		return "cm"
	case bytecode.UnitMM:
		return "mm"
	case bytecode.UnitIN:
		return "in"
	case bytecode.UnitPC:
		return "pc"
	case bytecode.UnitDEG:
		return "deg"
	case bytecode.UnitRAD:
		return "rad"
	case bytecode.UnitGRAD:
		return "grad"
	case bytecode.UnitMS:
		return "ms"
	case bytecode.UnitS:
		return "s"
	case bytecode.UnitHZ:
		return "Hz"
	case bytecode.UnitKHZ:
		return "kHz"
	default:
		return ""
	}
}

func displayName(d style.DisplayValue) string  { return enumName(fmt.Sprintf("%d", d), displayNames, int(d)) }
func positionName(p style.PositionValue) string {
	return enumName(fmt.Sprintf("%d", p), positionNames, int(p))
}
func textDecorationName(t style.TextDecorationValue) string {
	return enumName(fmt.Sprintf("%d", t), textDecorationNames, int(t))
}
func textAlignName(t style.TextAlignValue) string {
	return enumName(fmt.Sprintf("%d", t), textAlignNames, int(t))
}

func enumName(fallback string, names []string, i int) string {
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return fallback
}

var displayNames = []string{
	style.DisplayNone: "none", style.DisplayBlock: "block", style.DisplayInline: "inline",
	style.DisplayInlineBlock: "inline-block", style.DisplayTable: "table",
	style.DisplayInlineTable: "inline-table", style.DisplayTableRowGroup: "table-row-group",
	style.DisplayTableHeaderGroup: "table-header-group", style.DisplayTableFooterGroup: "table-footer-group",
	style.DisplayTableRow: "table-row", style.DisplayTableColumnGroup: "table-column-group",
	style.DisplayTableColumn: "table-column", style.DisplayTableCell: "table-cell",
	style.DisplayTableCaption: "table-caption", style.DisplayListItem: "list-item",
}

var positionNames = []string{
	style.PositionStatic: "static", style.PositionRelative: "relative",
	style.PositionAbsolute: "absolute", style.PositionFixed: "fixed",
}

var textDecorationNames = []string{
	style.TextDecorationNone: "none", style.TextDecorationUnderline: "underline",
	style.TextDecorationOverline: "overline", style.TextDecorationLineThrough: "line-through",
	style.TextDecorationBlink: "blink",
}

var textAlignNames = []string{
	style.TextAlignLeft: "left", style.TextAlignRight: "right",
	style.TextAlignCenter: "center", style.TextAlignJustify: "justify",
}
