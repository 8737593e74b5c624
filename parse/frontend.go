package parse

import (
	"cssengine/cssenc"
	"cssengine/cssintern"
	"cssengine/rule"

	"go.uber.org/zap"
)

// State is the three-state automaton from spec.md §4.5's diagram.
type State uint8

const (
	BeforeCharset State = iota
	BeforeRules
	HadRule
)

// Frontend drives one stylesheet's rule-ordering automaton as rules arrive
// from the host's token consumer. It does not itself tokenize CSS source
// (see TokenSource); callers feed it already-recognized rule events.
type Frontend struct {
	Sheet *rule.Stylesheet
	Enc   *cssenc.Registry // optional; nil means declared charsets pass through unaliased
	state State
	log   *zap.Logger
}

// NewFrontend creates a front-end writing into sheet. enc resolves
// declared @charset names to their canonical form (spec.md §5 "Shared
// resources"); pass nil to skip alias resolution.
func NewFrontend(sheet *rule.Stylesheet, enc *cssenc.Registry, log *zap.Logger) *Frontend {
	if log == nil {
		log = zap.NewNop()
	}
	return &Frontend{Sheet: sheet, Enc: enc, state: BeforeCharset, log: log}
}

// State reports the automaton's current state, for tests and diagnostics.
func (f *Frontend) State() State { return f.state }

// HandleCharset processes an @charset rule. Spec.md §4.5: "@charset is
// accepted only in BeforeCharset"; a violation is logged and the rule
// discarded rather than aborting the parse.
func (f *Frontend) HandleCharset(name cssintern.Handle) error {
	if f.state != BeforeCharset {
		f.log.Warn("discarding out-of-order @charset", zap.String("state", f.stateName()))
		return nil
	}
	if f.Enc != nil {
		if canon, ok := f.Enc.Canonical(name.String()); ok {
			name = cssintern.Intern(canon)
		}
	}
	r := rule.NewCharsetRule(name)
	if err := f.Sheet.AddRule(r, nil); err != nil {
		return err
	}
	f.state = BeforeRules
	return nil
}

// HandleImport processes an @import rule. Spec.md §4.5: "@import is
// accepted only in BeforeCharset or BeforeRules".
func (f *Frontend) HandleImport(url cssintern.Handle, media rule.MediaMask) error {
	if f.state == HadRule {
		f.log.Warn("discarding out-of-order @import", zap.String("state", f.stateName()))
		return nil
	}
	r := rule.NewImportRule(url, media)
	if err := f.Sheet.AddRule(r, nil); err != nil {
		return err
	}
	f.state = BeforeRules
	return nil
}

// HandleOtherAtRule processes any at-rule other than @charset/@import
// (@media, @font-face, @page). Spec.md §4.5: "other at-rules ... drive the
// state to HadRule".
func (f *Frontend) HandleOtherAtRule(r *rule.Rule, parent *rule.Rule) error {
	if err := f.Sheet.AddRule(r, parent); err != nil {
		return err
	}
	f.state = HadRule
	return nil
}

// HandleSelectorBlock processes a selector-block rule (the common case: a
// comma-separated selector list plus a declaration body). Spec.md §4.5:
// "selector blocks ... drive the state to HadRule".
func (f *Frontend) HandleSelectorBlock(r *rule.Rule, parent *rule.Rule) error {
	if err := f.Sheet.AddRule(r, parent); err != nil {
		return err
	}
	f.state = HadRule
	return nil
}

func (f *Frontend) stateName() string {
	switch f.state {
	case BeforeCharset:
		return "before_charset"
	case BeforeRules:
		return "before_rules"
	default:
		return "had_rule"
	}
}
