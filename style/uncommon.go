package style

import (
	"cssengine/bytecode"
	"cssengine/cssintern"
)

// clipRect mirrors css_computed_clip_rect from original_source/libcss --
// present in the original, named only generically ("clip") by the
// distilled spec, carried over here as a supplemented feature (SPEC_FULL.md
// §4).
type clipRect struct {
	top, right, bottom, left                 bytecode.Fixed
	topUnit, rightUnit, bottomUnit, leftUnit bytecode.Unit
	topAuto, rightAuto, bottomAuto, leftAuto bool
}

// Uncommon properties are few enough to hand-index rather than use the full
// dense Opcode space.
const (
	slotClip = iota
	slotContent
	slotCounterIncrement
	slotCounterReset
	slotCursor
	slotOutlineColor
	slotOutlineStyle
	slotOutlineWidth
	slotLetterSpacing
	slotWordSpacing
	slotQuotes
	slotBorderSpacing
	numUncommonSlots
)

var uncommonSlot = map[Opcode]int{
	PropClip:             slotClip,
	PropContent:          slotContent,
	PropCounterIncrement: slotCounterIncrement,
	PropCounterReset:     slotCounterReset,
	PropCursor:           slotCursor,
	PropOutlineColor:     slotOutlineColor,
	PropOutlineStyle:     slotOutlineStyle,
	PropOutlineWidth:     slotOutlineWidth,
	PropLetterSpacing:    slotLetterSpacing,
	PropWordSpacing:      slotWordSpacing,
	PropQuotes:           slotQuotes,
	PropBorderSpacing:    slotBorderSpacing,
}

// uncommon holds the properties spec.md §3 calls out as "rarely set"
// (cursor, clip, border-spacing, outline, word/letter spacing, counters,
// content), allocated lazily so a Computed that never touches any of them
// keeps this pointer nil.
type uncommon struct {
	disc     [numUncommonSlots]bytecode.Value
	enumv    [numUncommonSlots]uint8
	length   [numUncommonSlots]bytecode.Length
	color    [numUncommonSlots]bytecode.Color
	strs     [numUncommonSlots][]cssintern.Handle
	counters [numUncommonSlots][]bytecode.CounterEntry

	clip clipRect
}
