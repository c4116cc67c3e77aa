package figfont

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/text/encoding/charmap"

	"github.com/ryanlewis/figfont/internal/fonttest"
)

// miniSpec is a one-row font whose glyphs draw themselves.
var miniSpec = fonttest.Spec{
	Comments: []string{"mini font", "for tests"},
	Glyphs:   map[rune][]string{' ': {"$"}},
}

func miniFontText() string { return fonttest.Build(miniSpec) }

func mustParse(t testing.TB, spec fonttest.Spec) *Font {
	t.Helper()
	f, err := ParseFont(strings.NewReader(fonttest.Build(spec)))
	if err != nil {
		t.Fatalf("ParseFont() error = %v", err)
	}
	return f
}

// zipFont packs files into a zip archive in the given order. Names ending
// in "/" become directories.
func zipFont(t testing.TB, files ...[2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f[0])
		if err != nil {
			t.Fatalf("zip Create(%s) error = %v", f[0], err)
		}
		if !strings.HasSuffix(f[0], "/") {
			if _, err := w.Write([]byte(f[1])); err != nil {
				t.Fatalf("zip Write error = %v", err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close error = %v", err)
	}
	return buf.Bytes()
}

func TestParseFont(t *testing.T) {
	f := mustParse(t, fonttest.Spec{
		Height:         2,
		Baseline:       1,
		MaxLength:      4,
		OldLayout:      15,
		FullLayout:     24463,
		FullLayoutSet:  true,
		PrintDirection: 1,
		Comments:       []string{"line one", "line two"},
	})

	if f.Height != 2 || f.Baseline != 1 || f.MaxLen != 4 {
		t.Errorf("metrics = %d/%d/%d, want 2/1/4", f.Height, f.Baseline, f.MaxLen)
	}
	if f.Hardblank != '$' {
		t.Errorf("Hardblank = %q, want '$'", f.Hardblank)
	}
	if f.OldLayout != 15 || f.FullLayout != 24463 {
		t.Errorf("OldLayout/FullLayout = %d/%d, want 15/24463", f.OldLayout, f.FullLayout)
	}
	if f.Layout != Layout(24463) {
		t.Errorf("Layout = %v, want %v", f.Layout, Layout(24463))
	}
	if f.PrintDirection != 1 {
		t.Errorf("PrintDirection = %d, want 1", f.PrintDirection)
	}
	if f.CommentLines != 2 || f.Comment != "line one\nline two" {
		t.Errorf("comments = %d %q", f.CommentLines, f.Comment)
	}
	if f.CodetagCount != -1 {
		t.Errorf("CodetagCount = %d, want -1", f.CodetagCount)
	}
	if f.Name != "" {
		t.Errorf("Name = %q, want empty for parsed fonts", f.Name)
	}
}

func TestParseFont_LegacyLayout(t *testing.T) {
	f := mustParse(t, fonttest.Spec{OldLayout: 0})
	if f.FullLayout != -1 {
		t.Errorf("FullLayout = %d, want -1 when absent", f.FullLayout)
	}
	if f.Layout != FitKerning {
		t.Errorf("Layout = %v, want FitKerning", f.Layout)
	}
	if got := f.Rules(); got.HorizontalMode() != Fitting || got.VerticalMode() != FullWidth {
		t.Errorf("Rules() = %+v, want horizontal fitting and vertical full width", got)
	}
}

func TestParseFont_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType string
	}{
		{"empty", "", "header"},
		{"bad_signature", "flf3a$ 1 1 10 0 0\n", "header"},
		{"bad_height", "flf2a$ x 1 10 0 0\n", "header"},
		{"truncated_glyphs", fonttest.Build(fonttest.Spec{Omit: 10}), "glyph"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFont(strings.NewReader(tt.input))
			if !errors.Is(err, ErrBadFontFormat) {
				t.Fatalf("ParseFont() error = %v, want ErrBadFontFormat", err)
			}
			switch tt.wantType {
			case "header":
				var herr *FontHeaderError
				if !errors.As(err, &herr) {
					t.Errorf("error %v is not a *FontHeaderError", err)
				}
			case "glyph":
				var gerr *GlyphParseError
				if !errors.As(err, &gerr) {
					t.Errorf("error %v is not a *GlyphParseError", err)
				}
			}
		})
	}
}

func TestParseFontBytes(t *testing.T) {
	f, err := ParseFontBytes([]byte(miniFontText()))
	if err != nil {
		t.Fatalf("ParseFontBytes() error = %v", err)
	}
	rows, err := f.Glyph('Q')
	if err != nil || len(rows) != 1 || rows[0] != "Q" {
		t.Errorf("Glyph('Q') = %q, %v", rows, err)
	}
}

func TestParseFont_Zip(t *testing.T) {
	t.Run("single_file", func(t *testing.T) {
		data := zipFont(t, [2]string{"mini.flf", miniFontText()})
		f, err := ParseFontBytes(data)
		if err != nil {
			t.Fatalf("ParseFontBytes(zip) error = %v", err)
		}
		if f.Comment != "mini font\nfor tests" {
			t.Errorf("Comment = %q", f.Comment)
		}
	})

	t.Run("skips_directories", func(t *testing.T) {
		data := zipFont(t, [2]string{"fonts/", ""}, [2]string{"fonts/mini.flf", miniFontText()})
		if _, err := ParseFont(bytes.NewReader(data)); err != nil {
			t.Fatalf("ParseFont(zip) error = %v", err)
		}
	})

	t.Run("first_file_wins", func(t *testing.T) {
		data := zipFont(t,
			[2]string{"a.flf", miniFontText()},
			[2]string{"b.flf", "not a font"},
		)
		if _, err := ParseFont(bytes.NewReader(data)); err != nil {
			t.Fatalf("ParseFont(zip) error = %v", err)
		}
	})

	t.Run("only_directories", func(t *testing.T) {
		data := zipFont(t, [2]string{"fonts/", ""})
		_, err := ParseFont(bytes.NewReader(data))
		if !errors.Is(err, ErrBadFontFormat) || !strings.Contains(err.Error(), "only directories") {
			t.Errorf("ParseFont() error = %v, want only-directories error", err)
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		_, err := ParseFont(strings.NewReader("PK\x03\x04 this is not really a zip"))
		if !errors.Is(err, ErrBadFontFormat) {
			t.Errorf("ParseFont() error = %v, want ErrBadFontFormat", err)
		}
	})

	t.Run("empty_archive", func(t *testing.T) {
		_, err := unzipFont(zipFont(t))
		if !errors.Is(err, ErrBadFontFormat) || !strings.Contains(err.Error(), "empty") {
			t.Errorf("unzipFont() error = %v, want empty-archive error", err)
		}
	})
}

func TestParseFontLatin1(t *testing.T) {
	spec := fonttest.Spec{Glyphs: map[rune][]string{' ': {"$"}, 'Ä': {"Ä"}}}
	encoded, err := charmap.ISO8859_1.NewEncoder().String(fonttest.Build(spec))
	if err != nil {
		t.Fatalf("encoding latin-1: %v", err)
	}

	f, err := ParseFontLatin1(strings.NewReader(encoded))
	if err != nil {
		t.Fatalf("ParseFontLatin1() error = %v", err)
	}
	rows, _ := f.Glyph('Ä')
	if len(rows) != 1 || rows[0] != "Ä" {
		t.Errorf("Glyph('Ä') = %q, want [\"Ä\"]", rows)
	}

	// the same bytes are not valid UTF-8
	_, err = ParseFont(strings.NewReader(encoded))
	var gerr *GlyphParseError
	if !errors.As(err, &gerr) {
		t.Fatalf("ParseFont(latin-1) error = %v, want *GlyphParseError", err)
	}
	if gerr.Code != 'Ä' {
		t.Errorf("GlyphParseError.Code = %d, want %d", gerr.Code, 'Ä')
	}

	t.Run("zipped", func(t *testing.T) {
		data := zipFont(t, [2]string{"latin.flf", encoded})
		if _, err := ParseFontLatin1(bytes.NewReader(data)); err != nil {
			t.Errorf("ParseFontLatin1(zip) error = %v", err)
		}
	})
}

func TestLoadFont(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mini.flf")
	if err := os.WriteFile(path, []byte(miniFontText()), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFont(path)
	if err != nil {
		t.Fatalf("LoadFont() error = %v", err)
	}
	if f.Name != "mini" {
		t.Errorf("Name = %q, want mini", f.Name)
	}

	if _, err := LoadFont(filepath.Join(dir, "missing.flf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFont(missing) error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.flf")
	if err := os.WriteFile(bad, []byte("garbage\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFont(bad); !errors.Is(err, ErrBadFontFormat) {
		t.Errorf("LoadFont(bad) error = %v, want ErrBadFontFormat", err)
	}
}

func TestLoadFontFS(t *testing.T) {
	fsys := fstest.MapFS{
		"fonts/mini.flf":   {Data: []byte(miniFontText())},
		"fonts/zipped.flf": {Data: zipFont(t, [2]string{"zipped.flf", miniFontText()})},
	}

	for _, name := range []string{"fonts/mini.flf", "fonts/zipped.flf"} {
		f, err := LoadFontFS(fsys, name)
		if err != nil {
			t.Errorf("LoadFontFS(%q) error = %v", name, err)
			continue
		}
		if want := strings.TrimSuffix(filepath.Base(name), ".flf"); f.Name != want {
			t.Errorf("LoadFontFS(%q).Name = %q, want %q", name, f.Name, want)
		}
	}

	if _, err := LoadFontFS(nil, "fonts/mini.flf"); err == nil {
		t.Error("LoadFontFS(nil) succeeded")
	}
	if _, err := LoadFontFS(fsys, "fonts/none.flf"); err == nil {
		t.Error("LoadFontFS(missing) succeeded")
	}
}

func TestCleanFSPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"fonts/standard.flf", "fonts/standard.flf", false},
		{"standard.flf", "standard.flf", false},
		{"", "", true},
		{"/etc/passwd", "", true},
		{"fonts\\standard.flf", "", true},
		{"../secret.flf", "", true},
		{"fonts/../../secret.flf", "", true},
		{".", "", true},
		{"fonts/./standard.flf", "", true},
		{"fonts//standard.flf", "", true},
	}

	for _, tt := range tests {
		got, err := cleanFSPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("cleanFSPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("cleanFSPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
