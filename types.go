package figfont

import (
	"io"

	"github.com/ryanlewis/figfont/internal/common"
	"github.com/ryanlewis/figfont/internal/debug"
	"github.com/ryanlewis/figfont/internal/parser"
	"github.com/ryanlewis/figfont/internal/renderer"
)

// Font is a parsed FIGfont. It is never modified after parsing and is safe
// for concurrent use.
type Font struct {
	// Name is the font name, taken from the file name when loaded from disk
	Name string

	// Hardblank is the sub-character that prints as a space but takes part
	// in smushing like a visible character
	Hardblank rune

	// Height is the number of rows in every glyph
	Height int

	// Baseline is the number of rows from the top of a glyph to its baseline
	Baseline int

	// MaxLen is the widest glyph row the font declares
	MaxLen int

	// OldLayout is the legacy layout header field
	OldLayout int

	// FullLayout is the full-layout header field, or -1 when absent
	FullLayout int

	// Layout is the resolved layout, re-encoded as a full-layout value
	Layout Layout

	// PrintDirection is 0 for left-to-right, 1 for right-to-left
	PrintDirection int

	// CommentLines is the number of comment lines in the font file
	CommentLines int

	// CodetagCount is the declared number of code-tagged glyphs, or -1
	CodetagCount int

	// Comment is the font's comment block
	Comment string

	// Warnings lists non-fatal problems found while parsing
	Warnings []string

	pf *parser.Font
}

func newFont(pf *parser.Font) *Font {
	f := &Font{
		Hardblank:      pf.Hardblank,
		Height:         pf.Height,
		Baseline:       pf.Baseline,
		MaxLen:         pf.MaxLength,
		OldLayout:      pf.OldLayout,
		FullLayout:     -1,
		Layout:         Layout(pf.Rules.FullLayout()),
		PrintDirection: pf.PrintDirection,
		CommentLines:   pf.CommentLines,
		CodetagCount:   -1,
		Comment:        pf.Comment,
		Warnings:       pf.Warnings,
		pf:             pf,
	}
	if pf.FullLayoutSet {
		f.FullLayout = pf.FullLayout
	}
	if pf.CodetagCountSet {
		f.CodetagCount = pf.CodetagCount
	}
	return f
}

// Glyph returns the rows of the glyph for r. The slice must not be
// modified. Characters outside the FIGfont set return an
// *UnsupportedCharacterError.
func (f *Font) Glyph(r rune) ([]string, error) {
	if f == nil || f.pf == nil {
		return nil, ErrUnknownFont
	}
	return f.pf.Glyphs.Lookup(r)
}

// Rules returns the font's resolved fitting rules. A Font that did not come
// from a loader has full-width rules on both axes.
func (f *Font) Rules() FittingRules {
	if f == nil || f.pf == nil {
		return FittingRules{}
	}
	return f.pf.Rules
}

func (f *Font) hardblank() rune {
	if f == nil {
		return 0
	}
	return f.Hardblank
}

// GlyphOverlap reports how many columns right may overlap left under the
// font's horizontal layout.
func (f *Font) GlyphOverlap(left, right []string) int {
	return renderer.GlyphOverlap(left, right, f.Rules(), f.hardblank())
}

// SmushGlyphs joins right onto left with the given overlap.
func (f *Font) SmushGlyphs(left, right []string, overlap int) []string {
	return renderer.SmushGlyphs(left, right, overlap, f.Rules(), f.hardblank())
}

// CanVerticalSmush reports whether lower may be merged into upper under
// the font's vertical layout.
func (f *Font) CanVerticalSmush(upper, lower string) VerticalVerdict {
	return renderer.CanVerticalSmush(upper, lower, f.Rules())
}

// VerticalOverlap reports how many rows lower may overlap upper.
func (f *Font) VerticalOverlap(upper, lower []string) int {
	return renderer.VerticalOverlap(upper, lower, f.Rules())
}

// SmushVertical stacks lower under upper with the given overlap.
func (f *Font) SmushVertical(upper, lower []string, overlap int) []string {
	return renderer.SmushVertical(upper, lower, overlap, f.Rules())
}

// VerticalVerdict is the outcome of CanVerticalSmush.
type VerticalVerdict = renderer.VerticalVerdict

// Vertical merge outcomes.
const (
	VerticalValid   = renderer.VerticalValid
	VerticalEnd     = renderer.VerticalEnd
	VerticalInvalid = renderer.VerticalInvalid
)

// Parse and render errors. Use errors.As to get at the details.
type (
	FontHeaderError           = parser.FontHeaderError
	GlyphParseError           = parser.GlyphParseError
	UnsupportedCharacterError = parser.UnsupportedCharacterError
)

// Common errors returned by the figfont package
var (
	// ErrUnknownFont is returned when no font is given
	ErrUnknownFont = common.ErrUnknownFont

	// ErrUnsupportedRune is returned when a rune is not in the font
	ErrUnsupportedRune = common.ErrUnsupportedRune

	// ErrBadFontFormat is returned when a font file cannot be parsed
	ErrBadFontFormat = common.ErrBadFontFormat
)

// Option configures rendering behavior.
type Option func(*options)

type options struct {
	rules          *FittingRules
	printDirection *int
	unknownRune    *rune
	width          *int
	trimWhitespace bool
	debugOut       io.Writer
	debugPretty    bool
}

// toInternal converts the options for the renderer. The returned function
// flushes the debug session, if one was opened.
func (o *options) toInternal() (*renderer.Options, func() error) {
	ro := &renderer.Options{
		Rules:          o.rules,
		PrintDirection: o.printDirection,
		UnknownRune:    o.unknownRune,
		Width:          o.width,
		TrimWhitespace: o.trimWhitespace,
	}
	if o.debugOut == nil {
		return ro, func() error { return nil }
	}
	var sink debug.Sink
	if o.debugPretty {
		sink = debug.NewPrettySink(o.debugOut)
	} else {
		sink = debug.NewJSONSink(o.debugOut)
	}
	ro.Debug = debug.NewSession(sink)
	return ro, ro.Debug.Close
}

// WithLayout replaces the font's layout for this render. Bits the font
// header could carry are honored, including the vertical ones.
//
//   - WithLayout(FitFullWidth): glyphs edge to edge
//   - WithLayout(FitKerning): glyphs touch but never merge
//   - WithLayout(FitSmushing | RuleEqualChar): merge equal characters only
func WithLayout(layout Layout) Option {
	return func(opts *options) {
		r := layout.FittingRules()
		opts.rules = &r
	}
}

// WithFittingRules replaces the font's fitting rules for this render.
func WithFittingRules(rules FittingRules) Option {
	return func(opts *options) {
		opts.rules = &rules
	}
}

// WithPrintDirection sets the print direction, overriding the font's
// default. 0 is left-to-right; 1 lays each line's glyphs out from the
// right.
func WithPrintDirection(direction int) Option {
	return func(opts *options) {
		opts.printDirection = &direction
	}
}

// WithUnknownRune draws r in place of characters the font lacks. Without
// it rendering fails with ErrUnsupportedRune. r itself must be in the
// font.
func WithUnknownRune(r rune) Option {
	return func(opts *options) {
		opts.unknownRune = &r
	}
}

// WithTrimWhitespace removes trailing spaces from every output row.
func WithTrimWhitespace(trim bool) Option {
	return func(opts *options) {
		opts.trimWhitespace = trim
	}
}

// WithWidth wraps output lines wider than width columns, at a space when
// there is one. Values of 0 or less mean 80; values above 1000 are
// clamped to 1000.
func WithWidth(width int) Option {
	return func(opts *options) {
		if width <= 0 {
			width = 80
		} else if width > 1000 {
			width = 1000
		}
		opts.width = &width
	}
}

// WithDebug traces the render to w, as JSON Lines or in a readable form
// when pretty is set. Nothing is written unless tracing is enabled with
// SetDebug or FIGFONT_DEBUG=1.
func WithDebug(w io.Writer, pretty bool) Option {
	return func(opts *options) {
		opts.debugOut = w
		opts.debugPretty = pretty
	}
}

// SetDebug turns render tracing on or off for the process.
func SetDebug(on bool) {
	debug.SetEnabled(on)
}

// InitDebugFromEnv enables tracing when FIGFONT_DEBUG=1.
func InitDebugFromEnv() {
	debug.InitFromEnv()
}
