// Package parser implements FIGfont (FLF 2.0) parsing: the header line, the
// layout fields it carries, and the fixed set of glyph blocks.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Font is a parsed FIGfont. It is built by one Parse call and never modified
// afterwards, so it can be shared between goroutines.
type Font struct {
	Header

	// Comment is the comment block, lines joined with "\n"
	Comment string

	// Glyphs holds the 102 required characters
	Glyphs *GlyphTable

	// Warnings contains non-fatal issues found while parsing
	Warnings []string
}

// lineReader numbers the lines handed out by a scanner.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

// next returns the next line, or io.EOF when the input is exhausted.
func (lr *lineReader) next() (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", fmt.Errorf("reading line %d: %w", lr.line+1, err)
		}
		return "", io.EOF
	}
	lr.line++
	return lr.sc.Text(), nil
}

// Parse reads a complete FIGfont from r.
func Parse(r io.Reader) (*Font, error) {
	scanner, buf := createPooledScanner(r)
	defer releaseScannerBuffer(buf)
	lr := &lineReader{sc: scanner}

	font, err := parseHeader(lr)
	if err != nil {
		return nil, err
	}
	if err := parseGlyphs(lr, font); err != nil {
		return nil, err
	}
	return font, nil
}

// ParseHeader reads only the header line and the comment block.
// The returned font has an empty glyph table.
func ParseHeader(r io.Reader) (*Font, error) {
	scanner, buf := createPooledScanner(r)
	defer releaseScannerBuffer(buf)
	return parseHeader(&lineReader{sc: scanner})
}

func parseHeader(lr *lineReader) (*Font, error) {
	line, err := lr.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &FontHeaderError{Field: "signature", Err: errors.New("empty font data")}
		}
		return nil, &FontHeaderError{Field: "signature", Err: err}
	}

	header, err := ParseHeaderLine(line)
	if err != nil {
		return nil, err
	}

	font := &Font{Header: *header, Glyphs: &GlyphTable{}}
	if err := readComments(lr, font); err != nil {
		return nil, err
	}
	return font, nil
}

func readComments(lr *lineReader, font *Font) error {
	comments := make([]string, 0, font.CommentLines)
	for i := 0; i < font.CommentLines; i++ {
		line, err := lr.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("expected %d lines, got %d: %w", font.CommentLines, i, io.ErrUnexpectedEOF)
			}
			return &FontHeaderError{Field: "comments", Err: err}
		}
		comments = append(comments, strings.TrimRight(line, "\r"))
	}
	font.Comment = strings.Join(comments, "\n")
	return nil
}
