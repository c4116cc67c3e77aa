package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("row is not valid UTF-8")

// endmarkOf returns the terminator of a glyph row: its last rune, or its
// last byte when the row does not end in valid UTF-8.
func endmarkOf(line string) string {
	if line == "" {
		return ""
	}
	_, size := utf8.DecodeLastRuneInString(line)
	return line[len(line)-size:]
}

// trimEndmarkRun removes every trailing occurrence of mark. Applying it
// twice with the same mark gives the same result as applying it once.
func trimEndmarkRun(line, mark string) string {
	if mark == "" {
		return line
	}
	for strings.HasSuffix(line, mark) {
		line = line[:len(line)-len(mark)]
	}
	return line
}

// stripTrailingRun strips the endmark run from a raw glyph row.
// Whatever character ends the line is the endmark; the conventional "@" and
// "@@" are not required.
func stripTrailingRun(line string) string {
	line = strings.TrimSuffix(line, "\r")
	return trimEndmarkRun(line, endmarkOf(line))
}

// parseGlyphs reads the 102 required glyph blocks in file order.
func parseGlyphs(lr *lineReader, font *Font) error {
	for _, code := range Codes() {
		glyph, err := parseGlyph(lr, font, code)
		if err != nil {
			return err
		}
		font.Glyphs.set(code, glyph)
	}
	return nil
}

// parseGlyph reads exactly font.Height rows for one character.
func parseGlyph(lr *lineReader, font *Font, code rune) (Glyph, error) {
	glyph := make(Glyph, 0, font.Height)
	width := -1

	for row := 0; row < font.Height; row++ {
		raw, err := lr.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("expected %d rows, got %d: %w", font.Height, row, io.ErrUnexpectedEOF)
			}
			return nil, &GlyphParseError{Code: code, Row: row, Err: err}
		}
		if !utf8.ValidString(raw) {
			return nil, &GlyphParseError{Code: code, Row: row, Line: lr.line, Err: errInvalidUTF8}
		}

		body := stripTrailingRun(raw)
		w := utf8.RuneCountInString(body)
		if w > font.MaxLength {
			font.Warnings = append(font.Warnings,
				fmt.Sprintf("glyph %d row %d: width %d exceeds max length %d", code, row+1, w, font.MaxLength))
		}
		if width == -1 {
			width = w
		} else if w != width {
			font.Warnings = append(font.Warnings,
				fmt.Sprintf("glyph %d row %d: width %d, first row has %d", code, row+1, w, width))
		}

		glyph = append(glyph, body)
	}

	return glyph, nil
}
