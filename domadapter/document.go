// Package domadapter is a reference cssselect.Handler implementation over
// goquery/cascadia/x-net-html, ported from the teacher's internal/html
// goquery wrapping but retargeted at cssselect's single-fact capability
// surface instead of the teacher's whole-selector Matches delegation.
//
// Not part of the engine's public contract (spec.md §1 places the
// selection handler out of scope); it exists so the engine can be
// exercised end-to-end by tests and cmd/cssdump.
package domadapter

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document wraps a parsed HTML document and hands out *goquery.Selection
// elements for use as cssselect.Handler's opaque "element any" values.
type Document struct {
	doc *goquery.Document
}

// Parse parses r into a Document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("domadapter: parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses an HTML fixture given as a string.
func ParseString(src string) (*Document, error) {
	return Parse(strings.NewReader(src))
}

// Root returns the document's <html> element, or the document node itself
// if the fixture has no explicit <html> tag.
func (d *Document) Root() *goquery.Selection {
	root := d.doc.Selection.Find("html").First()
	if root.Length() == 0 {
		return d.doc.Selection
	}
	return root
}

// QuerySelectorAll returns every element matching a raw CSS selector,
// resolved by goquery's own (cascadia-backed) matcher -- used by
// cmd/cssdump to locate the element to dump, independent of this module's
// own cssselect matching path.
func (d *Document) QuerySelectorAll(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// QuerySelectorFirst returns the first element matching selector, or
// ok=false if none does.
func (d *Document) QuerySelectorFirst(selector string) (*goquery.Selection, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return sel, true
}

// Walk calls visit for every element node in document order, depth-first,
// for running SelectStyle over a whole fixture rather than a single
// located node.
func (d *Document) Walk(visit func(*goquery.Selection) error) error {
	return walkNode(d.Root(), visit)
}

func walkNode(sel *goquery.Selection, visit func(*goquery.Selection) error) error {
	if sel.Length() == 0 {
		return nil
	}
	node := sel.Get(0)
	if node.Type == html.ElementNode {
		if err := visit(sel); err != nil {
			return err
		}
	}
	var err error
	sel.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		err = walkNode(child, visit)
		return err == nil
	})
	return err
}
