// Package figfont renders text as FIGlet banners using FIGfont (FLF 2.0)
// files.
//
// A Font is parsed once and never modified afterwards, so it can be shared
// between goroutines without locking. Its layout rules decide how adjacent
// glyphs are pushed together: full width, fitting (kerning) or smushing.
package figfont

import (
	"archive/zip"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/ryanlewis/figfont/internal/parser"
	"github.com/ryanlewis/figfont/internal/renderer"
)

// zipMagic starts every zip local file header. figlet distributes many
// fonts zip-compressed under the plain .flf name.
var zipMagic = []byte("PK\x03\x04")

// ParseFont reads a FIGfont from r. Zip-compressed fonts are detected and
// the first file in the archive is parsed.
//
// Example:
//
//	file, err := os.Open("standard.flf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	font, err := figfont.ParseFont(file)
func ParseFont(r io.Reader) (*Font, error) {
	br := bufio.NewReader(r)
	if magic, _ := br.Peek(len(zipMagic)); bytes.Equal(magic, zipMagic) {
		data, err := io.ReadAll(br)
		if err != nil {
			return nil, fmt.Errorf("reading font: %w", err)
		}
		if data, err = unzipFont(data); err != nil {
			return nil, err
		}
		return parseFont(bytes.NewReader(data))
	}
	return parseFont(br)
}

// ParseFontBytes parses a FIGfont held in memory.
func ParseFontBytes(data []byte) (*Font, error) {
	return ParseFont(bytes.NewReader(data))
}

// ParseFontLatin1 parses a FIGfont stored in ISO-8859-1, where the
// accented glyphs and any non-ASCII sub-characters are single bytes.
func ParseFontLatin1(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	if bytes.HasPrefix(data, zipMagic) {
		if data, err = unzipFont(data); err != nil {
			return nil, err
		}
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding latin-1: %v", ErrBadFontFormat, err)
	}
	return parseFont(bytes.NewReader(decoded))
}

func parseFont(r io.Reader) (*Font, error) {
	pf, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}
	return newFont(pf), nil
}

// unzipFont returns the contents of the first regular file in a zip archive.
func unzipFont(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening zip: %v", ErrBadFontFormat, err)
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("%w: zip archive is empty", ErrBadFontFormat)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s in zip: %v", ErrBadFontFormat, f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%w: zip archive contains only directories", ErrBadFontFormat)
}

// LoadFont reads a FIGfont from disk. The font is named after the file,
// without its extension.
func LoadFont(fontPath string) (*Font, error) {
	file, err := os.Open(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	font, err := ParseFont(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", fontPath, err)
	}
	font.Name = strings.TrimSuffix(filepath.Base(fontPath), filepath.Ext(fontPath))
	return font, nil
}

// cleanFSPath validates a path for use with fs.FS and rejects traversal.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// LoadFontFS reads a FIGfont from fsys, for example an embed.FS:
//
//	//go:embed fonts/*.flf
//	var fonts embed.FS
//
//	font, err := figfont.LoadFontFS(fonts, "fonts/standard.flf")
func LoadFontFS(fsys fs.FS, fontPath string) (*Font, error) {
	if fsys == nil {
		return nil, errors.New("filesystem cannot be nil")
	}
	clean, err := cleanFSPath(fontPath)
	if err != nil {
		return nil, err
	}

	file, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	font, err := ParseFont(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", clean, err)
	}
	font.Name = strings.TrimSuffix(path.Base(clean), path.Ext(clean))
	return font, nil
}

// Render returns text drawn with f.
func Render(text string, f *Font, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := RenderTo(&sb, text, f, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderTo writes text drawn with f to w.
func RenderTo(w io.Writer, text string, f *Font, opts ...Option) error {
	if f == nil {
		return ErrUnknownFont
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	ro, closeDebug := o.toInternal()
	err := renderer.RenderTo(w, text, f.pf, ro)
	if cerr := closeDebug(); err == nil {
		err = cerr
	}
	return err
}
