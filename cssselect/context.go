package cssselect

import (
	"cssengine/csserr"
	"cssengine/rule"
)

// Context holds an ordered list of stylesheets, spec.md §6 "Selection API":
// "context_create, context_add_stylesheet, context_insert_at,
// context_remove, context_count".
type Context struct {
	sheets []*rule.Stylesheet
}

// ContextCreate creates an empty selection context.
func ContextCreate() *Context {
	return &Context{}
}

// AddStylesheet appends sheet to the end of the context's ordered list.
func (ctx *Context) AddStylesheet(sheet *rule.Stylesheet) {
	ctx.sheets = append(ctx.sheets, sheet)
	ctx.renumber()
}

// InsertAt inserts sheet at position index, shifting later sheets' apparent
// order (spec.md §8: sheet order feeds directly into the precedence tuple's
// sheet_index component, so callers rely on this being a true insert).
func (ctx *Context) InsertAt(sheet *rule.Stylesheet, index int) error {
	if index < 0 || index > len(ctx.sheets) {
		return csserr.Wrap(csserr.BadParm, "cssselect: InsertAt index out of range")
	}
	ctx.sheets = append(ctx.sheets, nil)
	copy(ctx.sheets[index+1:], ctx.sheets[index:])
	ctx.sheets[index] = sheet
	ctx.renumber()
	return nil
}

// Remove removes the first occurrence of sheet from the context.
func (ctx *Context) Remove(sheet *rule.Stylesheet) error {
	for i, s := range ctx.sheets {
		if s == sheet {
			ctx.sheets = append(ctx.sheets[:i], ctx.sheets[i+1:]...)
			ctx.renumber()
			return nil
		}
	}
	return csserr.Wrap(csserr.Invalid, "cssselect: sheet not present in context")
}

// renumber keeps each sheet's Index in sync with its position, since
// SelectStyle's precedence tuple uses Index as the sheet_index tie-break
// component (spec.md §4.4 step 2).
func (ctx *Context) renumber() {
	for i, s := range ctx.sheets {
		s.Index = i
	}
}

// Count returns the number of stylesheets currently in the context.
func (ctx *Context) Count() int { return len(ctx.sheets) }

// Sheets returns the context's stylesheets in order. Exposed for
// SelectStyle and for tests; callers must not mutate the returned slice.
func (ctx *Context) Sheets() []*rule.Stylesheet { return ctx.sheets }
