package parser

import "unicode/utf8"

const (
	firstASCII = 32
	lastASCII  = 126
	asciiCount = lastASCII - firstASCII + 1
)

// accentedCodes are the Latin-1 characters every FIGfont carries after ASCII,
// in file order: Ä Ö Ü ä ö ü ß.
var accentedCodes = [...]rune{196, 214, 220, 228, 246, 252, 223}

// GlyphCount is the number of glyphs in a complete font.
const GlyphCount = asciiCount + len(accentedCodes)

// Glyph is one FIGcharacter: exactly Font.Height rows of sub-characters.
type Glyph []string

// Width returns the length of the first row in runes.
func (g Glyph) Width() int {
	if len(g) == 0 {
		return 0
	}
	return utf8.RuneCountInString(g[0])
}

// GlyphTable maps the fixed FIGfont character set to glyphs.
// The zero value is empty; only the parser fills it.
type GlyphTable struct {
	ascii    [asciiCount]Glyph
	accented [len(accentedCodes)]Glyph
}

// Codes returns the supported character codes in font file order.
func Codes() []rune {
	codes := make([]rune, 0, GlyphCount)
	for c := rune(firstASCII); c <= lastASCII; c++ {
		codes = append(codes, c)
	}
	return append(codes, accentedCodes[:]...)
}

// slot returns the table cell for code, or nil if the code is unsupported.
func (t *GlyphTable) slot(code rune) *Glyph {
	if code >= firstASCII && code <= lastASCII {
		return &t.ascii[code-firstASCII]
	}
	for i, c := range accentedCodes {
		if c == code {
			return &t.accented[i]
		}
	}
	return nil
}

// Lookup returns the glyph for code. Codes outside the supported set yield
// an *UnsupportedCharacterError.
func (t *GlyphTable) Lookup(code rune) (Glyph, error) {
	if t != nil {
		if s := t.slot(code); s != nil && *s != nil {
			return *s, nil
		}
	}
	return nil, &UnsupportedCharacterError{Char: code}
}

// Has reports whether a glyph is present for code.
func (t *GlyphTable) Has(code rune) bool {
	_, err := t.Lookup(code)
	return err == nil
}

// Len returns the number of glyphs present.
func (t *GlyphTable) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, g := range t.ascii {
		if g != nil {
			n++
		}
	}
	for _, g := range t.accented {
		if g != nil {
			n++
		}
	}
	return n
}

func (t *GlyphTable) set(code rune, g Glyph) bool {
	s := t.slot(code)
	if s == nil {
		return false
	}
	*s = g
	return true
}
