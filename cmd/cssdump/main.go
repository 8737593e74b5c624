// Command cssdump is a debugging aid for the cascade engine, in the
// teacher's cmd/inliner idiom: flag-based, one input file pair in, one
// report out. It exists purely as an ambient-stack exerciser and manual
// debugging tool, not a production surface.
package main

import (
	"flag"
	"fmt"
	"os"

	"cssengine/cssenc"
	"cssengine/cssintern"
	"cssengine/cssselect"
	"cssengine/domadapter"
	"cssengine/parse"
	"cssengine/rule"
	"cssengine/style"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	cssFile  = flag.String("css", "", "Path to a .css stylesheet")
	htmlFile = flag.String("html", "", "Path to an .html fixture")
	selFlag  = flag.String("selector", "", "CSS selector identifying the element to dump (first match wins)")
	origin   = flag.String("origin", "author", "Cascade origin for the stylesheet: ua, user, or author")
	media    = flag.String("media", "screen", "Media type the dump is evaluated under: screen, print, speech, all, ...")
	quirks   = flag.Bool("quirks", false, "Force quirks-mode matching")
	verbose  = flag.Bool("verbose", false, "Log rule insertion and parse warnings to stderr")
)

func main() {
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "cssdump: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	if *cssFile == "" || *htmlFile == "" || *selFlag == "" {
		flag.Usage()
		return fmt.Errorf("-css, -html and -selector are required")
	}

	cssSrc, err := os.ReadFile(*cssFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *cssFile, err)
	}
	htmlSrc, err := os.ReadFile(*htmlFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *htmlFile, err)
	}

	originVal, err := parseOrigin(*origin)
	if err != nil {
		return err
	}
	mediaMask := mediaKeyword(*media)
	if mediaMask == 0 {
		return fmt.Errorf("unrecognized -media value %q", *media)
	}

	sheet := rule.New(*cssFile, "", originVal, *quirks, logger)
	fe := newFrontendFor(sheet, logger)
	gr := newGrammar(string(cssSrc), fe)
	if err := gr.Run(); err != nil {
		return fmt.Errorf("parsing %s: %w", *cssFile, err)
	}
	if warnings := gr.Warnings(); warnings != nil {
		for _, w := range multierr.Errors(warnings) {
			fmt.Fprintf(os.Stderr, "cssdump: warning: %v\n", w)
		}
	}

	doc, err := domadapter.ParseString(string(htmlSrc))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", *htmlFile, err)
	}
	target, ok := doc.QuerySelectorFirst(*selFlag)
	if !ok {
		return fmt.Errorf("no element in %s matches %q", *htmlFile, *selFlag)
	}

	ctx := cssselect.ContextCreate()
	ctx.AddStylesheet(sheet)

	handler := domadapter.Handler{}
	computed, err := selectWithAncestry(target, ctx, handler, mediaMask, *quirks)
	if err != nil {
		return fmt.Errorf("selecting style: %w", err)
	}

	dumpComputed(os.Stdout, computed)
	return nil
}

// newFrontendFor builds the parse.Frontend that drives sheet's rule
// registration, backed by the default charset-alias table -- cssdump's
// fixtures are always UTF-8 already, but Frontend.HandleCharset still
// consults the registry the way a real multi-encoding caller would.
func newFrontendFor(sheet *rule.Stylesheet, logger *zap.Logger) *parse.Frontend {
	enc := cssenc.New()
	return parse.NewFrontend(sheet, enc, logger)
}

func parseOrigin(s string) (rule.Origin, error) {
	switch s {
	case "ua":
		return rule.OriginUA, nil
	case "user":
		return rule.OriginUser, nil
	case "author":
		return rule.OriginAuthor, nil
	default:
		return 0, fmt.Errorf("unrecognized -origin value %q (want ua, user, or author)", s)
	}
}

// selectWithAncestry runs cssselect.SelectStyle from the document root down
// to element, composing each ancestor's style into the next so inherited
// and relative (em/%) properties resolve the same way a real layout pass
// would see them, not just element's own matched declarations in isolation.
func selectWithAncestry(element any, ctx *cssselect.Context, handler cssselect.Handler, mask cssselect.MediaMask, quirks bool) (*style.Computed, error) {
	chain, err := ancestorChain(element, handler)
	if err != nil {
		return nil, err
	}

	var parent *style.Computed
	var result *style.Computed
	for _, el := range chain {
		computed, err := cssselect.SelectStyle(el, ctx, handler, cssselect.Options{
			Media:  mask,
			Quirks: quirks,
			Parent: parent,
		})
		if err != nil {
			return nil, err
		}
		parent = computed
		result = computed
	}
	return result, nil
}

// ancestorChain returns [root, ..., element] by walking NamedParentNode
// with the wildcard handle, since cssselect.SelectStyle needs each level
// composed root-down, not just the target element alone.
func ancestorChain(element any, handler cssselect.Handler) ([]any, error) {
	chain := []any{element}
	cur := element
	for {
		parent, ok, err := handler.NamedParentNode(cur, cssintern.Zero)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		chain = append([]any{parent}, chain...)
		cur = parent
	}
	return chain, nil
}
