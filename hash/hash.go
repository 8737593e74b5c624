// Package hash implements the selector hash from spec.md §4.4: selectors
// are indexed under a key derived from their rightmost compound, so
// candidate lookup for an element only walks selectors that could possibly
// match instead of the sheet's entire rule set.
package hash

import (
	"cssengine/cssintern"
	"cssengine/selector"
)

// Key identifies one hash bucket: a detail kind (id, class, or
// element/universal) paired with an interned name.
type Key struct {
	Kind selector.Kind
	Name cssintern.Handle
}

// KeyFor derives s's hash key, spec.md §4.4: "the name of its first
// id-detail if present, else its first class-detail, else its element name
// (or `*` for universal)".
func KeyFor(s *selector.Selector) Key {
	kind, name := s.Key()
	return Key{Kind: kind, Name: name}
}

// Index maps hash keys to the selectors registered under them. Each bucket
// preserves insertion order so downstream specificity/order tie-breaking
// stays deterministic.
type Index struct {
	buckets map[Key][]*selector.Selector
}

// New creates an empty selector hash.
func New() *Index {
	return &Index{buckets: make(map[Key][]*selector.Selector)}
}

// Add registers s under its derived key.
func (idx *Index) Add(s *selector.Selector) {
	k := KeyFor(s)
	idx.buckets[k] = append(idx.buckets[k], s)
}

// Remove unregisters s from its bucket. A no-op if s was never added or was
// already removed.
func (idx *Index) Remove(s *selector.Selector) {
	k := KeyFor(s)
	bucket := idx.buckets[k]
	for i, cand := range bucket {
		if cand == s {
			idx.buckets[k] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// Candidates returns the chain of selectors sharing key, for the caller to
// iterate and match fully (spec.md §4.4: "Lookup by key returns the chain
// of selectors sharing that key; callers iterate and match each chain
// fully").
func (idx *Index) Candidates(key Key) []*selector.Selector {
	return idx.buckets[key]
}

// ElementKeys enumerates every key a concrete element should probe, per
// spec.md §4.4 step 1 of the selection algorithm: "its element name, each
// of its classes, its id, and the universal key".
func ElementKeys(elementName cssintern.Handle, id cssintern.Handle, hasID bool, classes []cssintern.Handle) []Key {
	keys := make([]Key, 0, len(classes)+3)
	keys = append(keys, Key{Kind: selector.KindElement, Name: elementName})
	if hasID {
		keys = append(keys, Key{Kind: selector.KindID, Name: id})
	}
	for _, c := range classes {
		keys = append(keys, Key{Kind: selector.KindClass, Name: c})
	}
	keys = append(keys, Key{Kind: selector.KindUniversal, Name: cssintern.Zero})
	return keys
}
