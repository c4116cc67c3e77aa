// Package fonttest builds synthetic FIGfont text for tests.
package fonttest

import (
	"fmt"
	"strings"
)

// Codes is the glyph order of a FIGfont file.
var Codes = func() []rune {
	codes := make([]rune, 0, 102)
	for c := rune(32); c <= 126; c++ {
		codes = append(codes, c)
	}
	return append(codes, 196, 214, 220, 228, 246, 252, 223)
}()

// Spec describes a synthetic font.
type Spec struct {
	// Header replaces the generated header line when set
	Header string

	Hardblank      rune // defaults to '$'
	Height         int  // defaults to 1
	Baseline       int  // defaults to Height
	MaxLength      int  // defaults to 10
	OldLayout      int
	PrintDirection int
	FullLayout     int
	FullLayoutSet  bool
	Comments       []string

	// Glyphs overrides individual characters
	Glyphs map[rune][]string

	// Default builds the rows of any character not in Glyphs. When nil every
	// row is the character itself, and space is a single blank column.
	Default func(code rune, height int) []string

	// Omit drops that many rows from the end of the file
	Omit int
}

func (s Spec) height() int {
	if s.Height <= 0 {
		return 1
	}
	return s.Height
}

func (s Spec) headerLine() string {
	if s.Header != "" {
		return s.Header
	}
	hb := s.Hardblank
	if hb == 0 {
		hb = '$'
	}
	baseline := s.Baseline
	if baseline == 0 {
		baseline = s.height()
	}
	maxLen := s.MaxLength
	if maxLen == 0 {
		maxLen = 10
	}
	line := fmt.Sprintf("flf2a%c %d %d %d %d %d", hb, s.height(), baseline, maxLen, s.OldLayout, len(s.Comments))
	if s.FullLayoutSet {
		line += fmt.Sprintf(" %d %d", s.PrintDirection, s.FullLayout)
	} else if s.PrintDirection != 0 {
		line += fmt.Sprintf(" %d", s.PrintDirection)
	}
	return line
}

// Rows returns the glyph rows Build writes for code.
func (s Spec) Rows(code rune) []string {
	if rows, ok := s.Glyphs[code]; ok {
		return rows
	}
	if s.Default != nil {
		return s.Default(code, s.height())
	}
	rows := make([]string, s.height())
	for i := range rows {
		if code == ' ' {
			rows[i] = " "
		} else {
			rows[i] = string(code)
		}
	}
	return rows
}

// Build renders the spec as FIGfont text.
func Build(s Spec) string {
	lines := []string{s.headerLine()}
	lines = append(lines, s.Comments...)
	for _, code := range Codes {
		rows := s.Rows(code)
		for i, row := range rows {
			mark := "@"
			if strings.HasSuffix(row, "@") {
				mark = "#"
			}
			if i == len(rows)-1 {
				mark += mark
			}
			lines = append(lines, row+mark)
		}
	}
	if s.Omit > 0 {
		lines = lines[:len(lines)-s.Omit]
	}
	return strings.Join(lines, "\n") + "\n"
}
