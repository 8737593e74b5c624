// Package csserr defines the single error taxonomy shared by every package
// in the engine.
package csserr

import "fmt"

// Code identifies the outcome of an engine operation. Every fallible
// function in this module returns (or wraps, via %w) one of these.
type Code int

const (
	// OK indicates success. Functions that can only fail return a plain
	// error and rely on nil meaning OK; Code is used where a caller needs
	// to branch on the specific failure kind.
	OK Code = iota
	// NoMem means the caller-supplied allocator (or Go's own allocator,
	// surfaced via a recovered OOM) returned null/failed.
	NoMem
	// BadParm means a null or out-of-range argument was supplied.
	BadParm
	// Invalid means the operation is semantically illegal in the current
	// state (double combine, misplaced pseudo-element, register-import
	// with nothing pending, and so on).
	Invalid
	// NeedData means a streaming parser needs more input before it can
	// make progress.
	NeedData
	// BadCharset is raised by the lexer when it cannot honor a declared
	// character set.
	BadCharset
	// EOF is raised by the lexer at end of input.
	EOF
	// ImportsPending is the cooperative signal from Stylesheet.DataDone:
	// the host must resolve pending @import rules before the sheet is
	// usable.
	ImportsPending
	// PropertyNotSet means a selector/cascade inspection asked about a
	// property that carries no value for the element in question.
	PropertyNotSet
)

var names = map[Code]string{
	OK:             "ok",
	NoMem:          "out of memory",
	BadParm:        "bad parameter",
	Invalid:        "invalid operation for current state",
	NeedData:       "parser needs more data",
	BadCharset:     "unsupported or malformed charset",
	EOF:            "end of input",
	ImportsPending: "imports pending",
	PropertyNotSet: "property not set",
}

// Error implements the error interface so a Code can be returned, wrapped,
// and compared with errors.Is directly.
func (c Code) Error() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("csserr: unknown code %d", int(c))
}

// Sentinel values for errors.Is comparisons, following the same names as
// the Code constants so call sites read naturally: errors.Is(err, csserr.ErrInvalid).
var (
	ErrNoMem          = NoMem
	ErrBadParm        = BadParm
	ErrInvalid        = Invalid
	ErrNeedData       = NeedData
	ErrBadCharset     = BadCharset
	ErrEOF            = EOF
	ErrImportsPending = ImportsPending
	ErrPropertyNotSet = PropertyNotSet
)

// Is reports whether err is (or wraps) the given Code, the way errors.Is
// expects a custom Is method to behave for value-typed sentinel errors.
func (c Code) Is(target error) bool {
	other, ok := target.(Code)
	if !ok {
		return false
	}
	return c == other
}

// Wrap annotates err with a message while preserving it as the %w-wrapped
// cause, so errors.Is(wrapped, someCode) keeps working up the call chain.
// This is the one helper every package uses instead of ad hoc fmt.Errorf,
// matching the teacher's own fmt.Errorf("...: %w", err) convention.
func Wrap(code Code, msg string) error {
	return fmt.Errorf("%s: %w", msg, code)
}
