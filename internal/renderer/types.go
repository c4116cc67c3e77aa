package renderer

import (
	"errors"

	"github.com/ryanlewis/figfont/internal/debug"
	"github.com/ryanlewis/figfont/internal/parser"
)

// ErrNilFont is returned when Render is called without a font.
var ErrNilFont = errors.New("font cannot be nil")

// Options carries the per-render settings resolved by the root package.
// Nil fields fall back to the font's own values.
type Options struct {
	// Rules replaces the font's fitting rules
	Rules *parser.FittingRules
	// PrintDirection is 0 for left-to-right, 1 for right-to-left
	PrintDirection *int
	// UnknownRune is drawn in place of characters the font lacks
	UnknownRune *rune
	// Width wraps output lines wider than this many columns
	Width *int
	// TrimWhitespace removes trailing spaces from each row
	TrimWhitespace bool
	// Debug receives trace events; nil disables tracing
	Debug *debug.Session
}
