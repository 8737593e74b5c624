// Package rule implements the rule and stylesheet model from spec.md §3
// ("Rule", "Stylesheet", "Import resolution state") and §4.2.
package rule

import (
	"cssengine/cssintern"
	"cssengine/csserr"
	"cssengine/hash"
	"cssengine/selector"

	"go.uber.org/zap"
)

// Type tags the rule union, spec.md §3: "{unknown, selector-block,
// @charset, @import, @media, @font-face, @page}".
type Type uint8

const (
	TypeUnknown Type = iota
	TypeSelectorBlock
	TypeCharset
	TypeImport
	TypeMedia
	TypeFontFace
	TypePage
)

// Origin is the cascade origin bucket, consulted alongside specificity and
// source order during selection (spec.md §4.4 step 2).
type Origin uint8

const (
	OriginUA Origin = iota
	OriginUser
	OriginAuthor
)

// MediaMask is a bitset of media types an @media block or @import applies
// to, spec.md §6 "Media mask" ("64-bit flag set"). Defined here (not in
// cssselect, which would create an import cycle) since rule.Rule carries it
// directly; cssselect re-exports these as cssselect.MediaMask (a type alias) for
// callers of SelectStyle.
type MediaMask uint64

const (
	MediaScreen MediaMask = 1 << iota
	MediaPrint
	MediaSpeech
	MediaBraille
	MediaEmbossed
	MediaHandheld
	MediaProjection
	MediaTTY
	MediaTV
	// MediaAural is the deprecated CSS2 alias for MediaSpeech
	// (original's CSS_MEDIA_AURAL), kept for stylesheets still using it.
	MediaAural = MediaSpeech

	MediaAll MediaMask = MediaScreen | MediaPrint | MediaSpeech | MediaBraille |
		MediaEmbossed | MediaHandheld | MediaProjection | MediaTTY | MediaTV
)

// ImportState tracks one @import's resolution per spec.md §3 "Import
// resolution state": "begins with URL+media-mask and a null imported-sheet
// pointer. The host resolves pending imports one at a time and registers
// the result, mutating only that pointer."
type ImportState struct {
	URL     cssintern.Handle
	Media   MediaMask
	Sheet   *Stylesheet // nil until resolved
	pending bool
}

// Rule is one node in a stylesheet's rule tree: a tagged union plus the
// tree-structural fields every rule carries regardless of Type (spec.md §3
// "Every rule records its parent ..., siblings (prev/next), an origin index
// ..., and an items count").
type Rule struct {
	Type Type

	Parent       *Rule // nil for top-level rules (parent is the stylesheet)
	Prev, Next   *Rule
	OriginIndex  int // monotonic insertion order within the sheet, never reused
	ItemsCount   int // selectors (selector-block) or child rules (@media)

	// selector-block
	Selectors []*selector.Selector
	Style     []byte // compiled declaration bytecode, spec.md §4.3

	// @charset
	Charset cssintern.Handle

	// @import
	Import *ImportState

	// @media
	Media    MediaMask
	Children *Rule // head of the @media block's own sibling list

	// @page
	PageSelector *selector.Selector

	// @font-face
	FontFace []byte // declaration bytecode, same shape as Style
}

// Stylesheet owns a sheet's rule tree, selector hash, and identity metadata,
// spec.md §3 "Stylesheet".
type Stylesheet struct {
	URL      string
	Title    string
	Origin   Origin
	Quirks   bool
	Disabled bool

	Index int // this sheet's position in the cascade's ordered sheet list

	head, tail *Rule
	ruleCount  int
	Hash       *hash.Index

	// owners maps each registered selector back to the rule it came from,
	// so a hash-candidate lookup (which only returns *selector.Selector)
	// can recover the rule's declaration bytecode and precedence data
	// during selection (spec.md §4.4 step 1).
	owners map[*selector.Selector]*Rule

	freeList [4][][]byte // buckets of released bytecode blobs, spec.md §3

	pendingImports []*Rule
	finalized      bool

	log *zap.Logger
}

// bucketSizes matches libcss's css_stylesheet style-destroy free list: four
// rounded-size buckets rather than an exact-fit allocator, spec.md §9 Open
// Question (b) resolved in SPEC_FULL.md §6 by keeping the original's bucket
// count.
var bucketSizes = [4]int{16, 32, 64, 128}

// New creates an empty stylesheet with the given identity metadata.
func New(url, title string, origin Origin, quirks bool, log *zap.Logger) *Stylesheet {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stylesheet{
		URL:    url,
		Title:  title,
		Origin: origin,
		Quirks: quirks,
		Hash:   hash.New(),
		owners: make(map[*selector.Selector]*Rule),
		log:    log,
	}
}

// AddRule assigns rule's origin index, links it into parent's sibling list
// (or the sheet's top-level list when parent is nil), and inserts its
// selectors into the sheet's hash. Spec.md §4.2 "add_rule": "rule indices
// are unique within a sheet and strictly increasing in insertion order;
// uniqueness matters, contiguity does not."
func (s *Stylesheet) AddRule(r *Rule, parent *Rule) error {
	if s.finalized {
		return csserr.Wrap(csserr.Invalid, "rule: cannot add rules to a finalized stylesheet")
	}
	r.OriginIndex = s.ruleCount
	s.ruleCount++
	r.Parent = parent

	if parent != nil {
		appendSibling(&parent.Children, r)
		parent.ItemsCount++
	} else {
		s.appendTopLevel(r)
	}

	for _, sel := range r.Selectors {
		s.Hash.Add(sel)
		s.owners[sel] = r
	}
	if r.PageSelector != nil {
		s.Hash.Add(r.PageSelector)
		s.owners[r.PageSelector] = r
	}
	if r.Type == TypeImport {
		s.pendingImports = append(s.pendingImports, r)
	}

	s.log.Debug("rule added", zap.Int("origin_index", r.OriginIndex), zap.Uint8("type", uint8(r.Type)))
	return nil
}

func (s *Stylesheet) appendTopLevel(r *Rule) {
	if s.tail == nil {
		s.head, s.tail = r, r
		return
	}
	r.Prev = s.tail
	s.tail.Next = r
	s.tail = r
}

func appendSibling(head **Rule, r *Rule) {
	if *head == nil {
		*head = r
		return
	}
	cur := *head
	for cur.Next != nil {
		cur = cur.Next
	}
	cur.Next = r
	r.Prev = cur
}

// RemoveRule unlinks r from its sibling list and removes its selectors from
// the hash. Rule indices are never reused (spec.md §4.2 invariant).
func (s *Stylesheet) RemoveRule(r *Rule) error {
	if r.Prev != nil {
		r.Prev.Next = r.Next
	} else if r.Parent != nil {
		r.Parent.Children = r.Next
	} else {
		s.head = r.Next
	}
	if r.Next != nil {
		r.Next.Prev = r.Prev
	} else if r.Parent != nil {
		// r was the tail of parent's children; nothing further to update,
		// parent tracks only its head.
	} else {
		s.tail = r.Prev
	}
	if r.Parent != nil {
		r.Parent.ItemsCount--
	}

	for _, sel := range r.Selectors {
		s.Hash.Remove(sel)
		delete(s.owners, sel)
	}
	if r.PageSelector != nil {
		s.Hash.Remove(r.PageSelector)
		delete(s.owners, r.PageSelector)
	}
	return nil
}

// OwnerOf returns the rule that registered sel into this sheet's hash, or
// nil if sel is not (or no longer) registered.
func (s *Stylesheet) OwnerOf(sel *selector.Selector) *Rule {
	return s.owners[sel]
}

// Rules returns the sheet's top-level rules in source order.
func (s *Stylesheet) Rules() []*Rule {
	var out []*Rule
	for r := s.head; r != nil; r = r.Next {
		out = append(out, r)
	}
	return out
}

// RuleCount returns the number of rules ever added (monotonic, including
// removed ones -- origin indices are never renumbered).
func (s *Stylesheet) RuleCount() int { return s.ruleCount }

// AppendStyle implements spec.md §4.2 "append_style(rule, style)": if the
// rule already carries a style blob, the new blob is concatenated onto a
// grown block (bucket-reused where possible); otherwise the rule adopts the
// input directly.
func (s *Stylesheet) AppendStyle(r *Rule, blob []byte) {
	if r.Style == nil {
		r.Style = blob
		return
	}
	grown := s.growBlock(len(r.Style) + len(blob))
	grown = append(grown[:0], r.Style...)
	grown = append(grown, blob...)
	s.releaseBlock(r.Style)
	r.Style = grown
}

// growBlock returns a reused buffer from the smallest free-list bucket that
// fits need, or a freshly allocated one sized to that bucket.
func (s *Stylesheet) growBlock(need int) []byte {
	for i, size := range bucketSizes {
		if need > size {
			continue
		}
		if n := len(s.freeList[i]); n > 0 {
			buf := s.freeList[i][n-1]
			s.freeList[i] = s.freeList[i][:n-1]
			return buf[:0]
		}
		return make([]byte, 0, size)
	}
	return make([]byte, 0, need)
}

// releaseBlock returns blob to its rounded-size bucket for reuse, spec.md
// §3's "small free-list array of released bytecode blocks bucketed by
// rounded size".
func (s *Stylesheet) releaseBlock(blob []byte) {
	cap := cap(blob)
	for i, size := range bucketSizes {
		if cap <= size {
			s.freeList[i] = append(s.freeList[i], blob)
			return
		}
	}
	// larger than any bucket: drop it, nothing to reuse it for.
}

// NextPendingImport returns the next unresolved @import rule, or nil if
// none remain -- the host drives these one at a time per spec.md §5
// "Suspension points".
func (s *Stylesheet) NextPendingImport() *Rule {
	for _, r := range s.pendingImports {
		if r.Import != nil && r.Import.Sheet == nil {
			return r
		}
	}
	return nil
}

// RegisterImport fulfils r's pending import, mutating only its Sheet
// pointer (spec.md §3 "Import resolution state").
func (s *Stylesheet) RegisterImport(r *Rule, sheet *Stylesheet) error {
	if r.Type != TypeImport || r.Import == nil {
		return csserr.Wrap(csserr.BadParm, "rule: RegisterImport on a non-@import rule")
	}
	r.Import.Sheet = sheet
	return nil
}

// DataDone marks the sheet as having received its final byte chunk. While
// any @import remains unresolved it returns ImportsPending (spec.md §5);
// the host must drain NextPendingImport/RegisterImport and call DataDone
// again. Once every import is resolved the rule tree becomes immutable
// except for those import pointers.
func (s *Stylesheet) DataDone() error {
	if s.NextPendingImport() != nil {
		return csserr.Wrap(csserr.ImportsPending, "rule: imports still pending")
	}
	s.finalized = true
	return nil
}

// NewSelectorBlockRule creates a TypeSelectorBlock rule from its
// comma-separated selector list; declarations are attached afterward via
// AppendStyle.
func NewSelectorBlockRule(selectors []*selector.Selector) *Rule {
	return &Rule{Type: TypeSelectorBlock, Selectors: selectors, ItemsCount: len(selectors)}
}

// NewCharsetRule creates a TypeCharset rule naming the declared encoding.
func NewCharsetRule(name cssintern.Handle) *Rule {
	return &Rule{Type: TypeCharset, Charset: name}
}

// NewImportRule creates a TypeImport rule with a freshly unresolved
// ImportState.
func NewImportRule(url cssintern.Handle, media MediaMask) *Rule {
	return &Rule{Type: TypeImport, Import: &ImportState{URL: url, Media: media}}
}

// NewMediaRule creates a TypeMedia rule; child rules are attached via
// AddRule(child, mediaRule).
func NewMediaRule(media MediaMask) *Rule {
	return &Rule{Type: TypeMedia, Media: media}
}

// NewPageRule creates a TypePage rule for an (optionally pseudo-class
// qualified) @page selector -- supplemented beyond the distilled spec per
// SPEC_FULL.md §6, grounded on original_source/libcss's CSS_PAGE rule type.
func NewPageRule(sel *selector.Selector) *Rule {
	return &Rule{Type: TypePage, PageSelector: sel}
}

// NewFontFaceRule creates a TypeFontFace rule; descriptors are attached via
// AppendStyle-shaped bytecode in FontFace.
func NewFontFaceRule(declBytes []byte) *Rule {
	return &Rule{Type: TypeFontFace, FontFace: declBytes}
}
