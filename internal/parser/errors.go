package parser

import (
	"fmt"

	"github.com/ryanlewis/figfont/internal/common"
)

// FontHeaderError reports a missing or malformed field in the font header.
// A font with a bad header cannot be used.
type FontHeaderError struct {
	Field string // header field name, e.g. "height"
	Value string // raw field text, empty when the field is missing
	Err   error  // underlying cause, may be nil
}

func (e *FontHeaderError) Error() string {
	switch {
	case e.Value == "" && e.Err != nil:
		return fmt.Sprintf("font header: %s: %v", e.Field, e.Err)
	case e.Value == "":
		return fmt.Sprintf("font header: missing %s", e.Field)
	case e.Err != nil:
		return fmt.Sprintf("font header: invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("font header: invalid %s %q", e.Field, e.Value)
}

func (e *FontHeaderError) Unwrap() error { return e.Err }

// Is reports header errors as ErrBadFontFormat.
func (e *FontHeaderError) Is(target error) bool { return target == common.ErrBadFontFormat }

// GlyphParseError reports a glyph block that could not be read.
type GlyphParseError struct {
	Code rune // character code whose block failed
	Row  int  // 0-based row within the glyph
	Line int  // 1-based line number in the font file, 0 if past the end
	Err  error
}

func (e *GlyphParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("glyph %d row %d (line %d): %v", e.Code, e.Row+1, e.Line, e.Err)
	}
	return fmt.Sprintf("glyph %d row %d: %v", e.Code, e.Row+1, e.Err)
}

func (e *GlyphParseError) Unwrap() error { return e.Err }

// Is reports glyph errors as ErrBadFontFormat.
func (e *GlyphParseError) Is(target error) bool { return target == common.ErrBadFontFormat }

// UnsupportedCharacterError is returned when a glyph is requested for a code
// outside the fixed 102-character set.
type UnsupportedCharacterError struct {
	Char rune
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("%v: %q (%d)", common.ErrUnsupportedRune, e.Char, e.Char)
}

// Is reports the error as ErrUnsupportedRune.
func (e *UnsupportedCharacterError) Is(target error) bool { return target == common.ErrUnsupportedRune }
