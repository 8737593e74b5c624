// Package bytecode implements the declaration wire format from spec.md §3
// ("Declaration value discriminant") and §4.3: a 32-bit opcode|flags|value
// word followed by inline operands whose length is determined solely by
// (opcode, value).
package bytecode

import (
	"encoding/binary"
	"fmt"

	"cssengine/cssintern"
	"cssengine/csserr"
)

// Opcode identifies the property a declaration assigns. The concrete set of
// opcodes (one per CSS property) lives in cssengine/style, which owns the
// property table; bytecode only needs the numeric type and the packing
// rules.
type Opcode uint16

// Value is the small per-property discriminant: auto/none/normal/inherit/
// set-with-typed-payload, spec.md §3.
type Value uint8

const (
	// ValueInherit means "use the parent's computed value"; no operands.
	ValueInherit Value = iota
	// ValueInitial means "use the CSS-specified initial value"; no operands.
	ValueInitial
	// ValueAuto, ValueNone, ValueNormal are bare keyword values; no operands.
	ValueAuto
	ValueNone
	ValueNormal
	// ValueSet means a typed payload follows, per the property's Kind.
	ValueSet
)

// Flags carries the important/inherit bits from spec.md §3.
type Flags uint8

const (
	FlagImportant Flags = 1 << iota
	FlagInherit
)

// Word is the packed opcode|flags|value 32-bit header preceding a
// declaration's operands. Layout (high to low bits): 16 bits opcode, 8 bits
// flags, 8 bits value -- an arbitrary but fixed split, chosen generously
// enough to never run out of opcode space for a ~70-property table.
type Word uint32

// BuildWord packs (opcode, flags, value) into a single machine word, the Go
// equivalent of libcss's buildOPV.
func BuildWord(op Opcode, flags Flags, value Value) Word {
	return Word(uint32(op)<<16 | uint32(flags)<<8 | uint32(value))
}

// Opcode extracts the opcode component.
func (w Word) Opcode() Opcode { return Opcode(w >> 16) }

// Flags extracts the flags component.
func (w Word) Flags() Flags { return Flags((w >> 8) & 0xff) }

// Value extracts the value discriminant component.
func (w Word) Value() Value { return Value(w & 0xff) }

// WithFlags returns a copy of w with flags OR'd in.
func (w Word) WithFlags(add Flags) Word {
	return BuildWord(w.Opcode(), w.Flags()|add, w.Value())
}

// Kind classifies the operand shape a property's typed payload takes when
// Value == ValueSet. Every opcode in the style package's property table
// declares exactly one Kind.
type Kind uint8

const (
	// KindKeyword carries a single 4-byte enum-member operand when
	// ValueSet (e.g. border-style's ten keywords don't fit the bare
	// Auto/None/Normal sentinels, so the member index rides as an
	// operand word, same shape as KindNumber).
	KindKeyword Kind = iota
	// KindLength is a Fixed + Unit pair (spec.md §3 "Fixed-point length").
	KindLength
	// KindColor is one Color word (spec.md §3 "Color").
	KindColor
	// KindString is one interned string handle (URIs, single font-family
	// entries referenced outside a list).
	KindString
	// KindNumber is a bare Fixed value with no unit (opacity-like scalars,
	// integer counters, z-index).
	KindNumber
	// KindStringList is a list of string handles terminated by a sentinel
	// handle id of 0 (cssintern.Zero) -- font-family stacks, quotes pairs.
	KindStringList
	// KindCounterList is a list of (name handle, Fixed value) pairs
	// terminated by a sentinel zero handle -- counter-increment/-reset.
	KindCounterList
)

// recordSize returns the fixed byte size of one element of a list Kind.
func (k Kind) recordSize() int {
	switch k {
	case KindStringList:
		return 8 // one string handle id
	case KindCounterList:
		return 12 // handle id (8) + Fixed value (4)
	default:
		return 0
	}
}

func (k Kind) isList() bool {
	return k == KindStringList || k == KindCounterList
}

// fixedLen returns the byte length of a non-list Kind's single operand.
func (k Kind) fixedLen() int {
	switch k {
	case KindKeyword:
		return 4
	case KindLength:
		return 8 // Fixed (4) + Unit (4)
	case KindColor:
		return 4
	case KindString:
		return 8
	case KindNumber:
		return 4
	default:
		return 0
	}
}

// OperandLen computes the number of operand bytes that follow a Word,
// reading ahead into buf (which starts immediately after the Word) only
// when the Kind is a sentinel-terminated list. This is the single place
// that must agree with Emit's layout and with MakeImportant's walk --
// spec.md §4.3's "walker must compute skip lengths ... identically to
// execution; a mismatch corrupts the blob".
func OperandLen(kind Kind, value Value, buf []byte) (int, error) {
	if value != ValueSet {
		return 0, nil
	}
	if !kind.isList() {
		need := kind.fixedLen()
		if len(buf) < need {
			return 0, csserr.Wrap(csserr.Invalid, "bytecode: truncated operand")
		}
		return need, nil
	}

	rec := kind.recordSize()
	offset := 0
	for {
		if len(buf) < offset+rec {
			return 0, csserr.Wrap(csserr.Invalid, "bytecode: truncated list operand")
		}
		handleID := binary.LittleEndian.Uint64(buf[offset : offset+8])
		offset += rec
		if handleID == 0 {
			// Sentinel entry (the zero/empty handle) terminates the list.
			break
		}
	}
	return offset, nil
}

// Emit appends a declaration (header word + operands) to buf and returns
// the extended slice.
func Emit(buf []byte, op Opcode, flags Flags, value Value, kind Kind, operand Operand) []byte {
	w := BuildWord(op, flags, value)
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(w))
	buf = append(buf, hdr[:]...)

	if value != ValueSet {
		return buf
	}

	switch kind {
	case KindLength:
		var b [8]byte
		binary.LittleEndian.PutUint32(b[0:4], uint32(operand.Length.Value))
		binary.LittleEndian.PutUint32(b[4:8], uint32(operand.Length.Unit))
		buf = append(buf, b[:]...)
	case KindColor:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(operand.Color))
		buf = append(buf, b[:]...)
	case KindString:
		buf = appendHandle(buf, operand.String)
	case KindNumber:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(operand.Number))
		buf = append(buf, b[:]...)
	case KindStringList:
		for _, h := range operand.Strings {
			buf = appendHandle(buf, h)
		}
		buf = appendHandle(buf, cssintern.Zero)
	case KindCounterList:
		for _, c := range operand.Counters {
			buf = appendHandle(buf, c.Name)
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(c.Value))
			buf = append(buf, b[:]...)
		}
		buf = appendHandle(buf, cssintern.Zero)
		var zero [4]byte
		buf = append(buf, zero[:]...)
	case KindKeyword:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(operand.Number))
		buf = append(buf, b[:]...)
	}
	return buf
}

func appendHandle(buf []byte, h cssintern.Handle) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(handleID(h)))
	return append(buf, b[:]...)
}

// Operand bundles the possible inline payload shapes a declaration can
// carry. Exactly one field is meaningful, selected by the Kind passed to
// Emit/Decode.
type Operand struct {
	Length   Length
	Color    Color
	String   cssintern.Handle
	Number   Fixed
	Strings  []cssintern.Handle
	Counters []CounterEntry
}

// CounterEntry is one (name, value) pair in a counter-increment/-reset list.
type CounterEntry struct {
	Name  cssintern.Handle
	Value Fixed
}

// Fixed is the 32-bit signed fixed-point number from spec.md §3, stored as
// a plain int32 scaled by 1<<10 (1024ths), matching libcss's CSS_FIXED
// scaling order of magnitude closely enough for cascade purposes without
// copying its exact macro set.
type Fixed int32

const FixedShift = 10

// FromFloat converts a float64 to the fixed-point representation.
func FromFloat(f float64) Fixed {
	return Fixed(f * (1 << FixedShift))
}

// Float converts back to a float64.
func (f Fixed) Float() float64 {
	return float64(f) / (1 << FixedShift)
}

// Unit is the CSS unit tag paired with a Length (spec.md §3).
type Unit uint32

const (
	UnitPX Unit = iota
	UnitEM
	UnitEX
	UnitPercent
	UnitPT
	UnitCM
	UnitMM
	UnitIN
	UnitPC
	UnitDEG
	UnitRAD
	UnitGRAD
	UnitMS
	UnitS
	UnitHZ
	UnitKHZ
)

// Length pairs a Fixed value with its Unit. The zero Length (0, UnitPX) is
// the documented "zero-length values carry unit px by convention" default.
type Length struct {
	Value Fixed
	Unit  Unit
}

// Color is 32-bit RRGGBBAA per spec.md §3.
type Color uint32

func NewColor(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// handleID extracts the private integer id backing a cssintern.Handle so
// bytecode can serialize it without cssintern exposing its internals
// publicly. cssintern.Handle's only exported numeric view is via this
// package-local helper relying on the handle's String()/Zero comparability;
// since Handle has no exported id, we encode identity through a registry
// instead of the raw id.
func handleID(h cssintern.Handle) uint64 {
	return handleRegistry.idFor(h)
}

func handleFromID(id uint64) cssintern.Handle {
	return handleRegistry.handleFor(id)
}

var handleRegistry = newHandleTable()

type handleTable struct {
	toID     map[cssintern.Handle]uint64
	fromID   map[uint64]cssintern.Handle
	next     uint64
}

func newHandleTable() *handleTable {
	t := &handleTable{
		toID:   make(map[cssintern.Handle]uint64),
		fromID: make(map[uint64]cssintern.Handle),
		next:   1, // 0 is reserved for the sentinel (zero handle)
	}
	t.toID[cssintern.Zero] = 0
	t.fromID[0] = cssintern.Zero
	return t
}

func (t *handleTable) idFor(h cssintern.Handle) uint64 {
	if id, ok := t.toID[h]; ok {
		return id
	}
	id := t.next
	t.next++
	t.toID[h] = id
	t.fromID[id] = h
	return id
}

func (t *handleTable) handleFor(id uint64) cssintern.Handle {
	if h, ok := t.fromID[id]; ok {
		return h
	}
	return cssintern.Zero
}

// Decode reads the operand immediately following a Word at buf[0:], per
// kind, returning the decoded Operand and the number of bytes consumed.
func Decode(kind Kind, value Value, buf []byte) (Operand, int, error) {
	n, err := OperandLen(kind, value, buf)
	if err != nil {
		return Operand{}, 0, err
	}
	if value != ValueSet {
		return Operand{}, 0, nil
	}

	var op Operand
	switch kind {
	case KindKeyword:
		op.Number = Fixed(binary.LittleEndian.Uint32(buf[0:4]))
	case KindLength:
		op.Length = Length{
			Value: Fixed(binary.LittleEndian.Uint32(buf[0:4])),
			Unit:  Unit(binary.LittleEndian.Uint32(buf[4:8])),
		}
	case KindColor:
		op.Color = Color(binary.LittleEndian.Uint32(buf[0:4]))
	case KindString:
		op.String = handleFromID(binary.LittleEndian.Uint64(buf[0:8]))
	case KindNumber:
		op.Number = Fixed(binary.LittleEndian.Uint32(buf[0:4]))
	case KindStringList:
		rec := kind.recordSize()
		for off := 0; off+rec <= n; off += rec {
			id := binary.LittleEndian.Uint64(buf[off : off+8])
			if id == 0 {
				break
			}
			op.Strings = append(op.Strings, handleFromID(id))
		}
	case KindCounterList:
		rec := kind.recordSize()
		for off := 0; off+rec <= n; off += rec {
			id := binary.LittleEndian.Uint64(buf[off : off+8])
			if id == 0 {
				break
			}
			val := Fixed(binary.LittleEndian.Uint32(buf[off+8 : off+12]))
			op.Counters = append(op.Counters, CounterEntry{Name: handleFromID(id), Value: val})
		}
	}
	return op, n, nil
}

// kindTable resolves the Kind for an opcode. Populated by the style
// package via RegisterKind at init time, since bytecode must not import
// style (style imports bytecode, not the reverse).
var kindTable = map[Opcode]Kind{}

// RegisterKind associates an opcode with its operand Kind. Called once per
// property from style's init().
func RegisterKind(op Opcode, kind Kind) {
	kindTable[op] = kind
}

// KindOf returns the registered Kind for op, or KindKeyword if none was
// registered (one 4-byte operand when the value is ValueSet, none otherwise).
func KindOf(op Opcode) Kind {
	if k, ok := kindTable[op]; ok {
		return k
	}
	return KindKeyword
}

// MakeImportant walks blob declaration by declaration, OR-ing FlagImportant
// into every header word in place. Spec.md §4.3/§8: blob length is
// unchanged, and the skip-length computation must exactly match decode.
func MakeImportant(blob []byte) error {
	offset := 0
	for offset < len(blob) {
		if offset+4 > len(blob) {
			return csserr.Wrap(csserr.Invalid, "bytecode: truncated header")
		}
		w := Word(binary.LittleEndian.Uint32(blob[offset : offset+4]))
		important := w.WithFlags(FlagImportant)
		binary.LittleEndian.PutUint32(blob[offset:offset+4], uint32(important))

		kind := KindOf(w.Opcode())
		n, err := OperandLen(kind, w.Value(), blob[offset+4:])
		if err != nil {
			return fmt.Errorf("bytecode: making blob important at offset %d: %w", offset, err)
		}
		offset += 4 + n
	}
	return nil
}

// Decoder walks a compiled blob, invoking Visit for each declaration.
type Decoder struct {
	Blob []byte
}

// Declaration is one decoded entry from a Decoder.Walk pass.
type Declaration struct {
	Opcode  Opcode
	Flags   Flags
	Value   Value
	Operand Operand
}

// Walk visits every declaration in the blob in order, stopping at the first
// error (a malformed blob) or once the blob is exhausted.
func (d *Decoder) Walk(visit func(Declaration) error) error {
	offset := 0
	for offset < len(d.Blob) {
		if offset+4 > len(d.Blob) {
			return csserr.Wrap(csserr.Invalid, "bytecode: truncated header")
		}
		w := Word(binary.LittleEndian.Uint32(d.Blob[offset : offset+4]))
		kind := KindOf(w.Opcode())
		operand, n, err := Decode(kind, w.Value(), d.Blob[offset+4:])
		if err != nil {
			return err
		}
		if err := visit(Declaration{
			Opcode:  w.Opcode(),
			Flags:   w.Flags(),
			Value:   w.Value(),
			Operand: operand,
		}); err != nil {
			return err
		}
		offset += 4 + n
	}
	return nil
}
