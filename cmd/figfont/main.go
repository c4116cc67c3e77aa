// Command figfont prints text as a FIGlet banner.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/figfont"
	"github.com/ryanlewis/figfont/internal/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// envFontDir names an extra directory searched for fonts given by name.
const envFontDir = "FIGFONT_DIR"

type config struct {
	font        string
	unknownRune string
	layout      string
	width       int
	latin1      bool
	trim        bool
	rtl         bool
	info        bool
	debug       bool
	debugFile   string
	debugPretty bool
	version     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg config
	flags := pflag.NewFlagSet("figfont", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { printHelp(stderr, flags) }

	flags.StringVarP(&cfg.font, "font", "f", "standard", "Path to a FIGfont file, or a font name")
	flags.StringVarP(&cfg.unknownRune, "unknown-rune", "u", "", "Rune drawn in place of characters the font lacks")
	flags.StringVarP(&cfg.layout, "layout", "l", "", "Layout override: full, kern, smush, or a full-layout number")
	flags.IntVarP(&cfg.width, "width", "w", 0, "Output width in columns (0: terminal width, or 80)")
	flags.BoolVar(&cfg.latin1, "latin1", false, "Read the font as ISO-8859-1")
	flags.BoolVar(&cfg.trim, "trim-whitespace", false, "Trim trailing whitespace from each line")
	flags.BoolVarP(&cfg.rtl, "rtl", "r", false, "Print right to left")
	flags.BoolVar(&cfg.info, "info", false, "Print the font header as YAML and exit")
	flags.BoolVar(&cfg.debug, "debug", false, "Trace the render to stderr")
	flags.StringVar(&cfg.debugFile, "debug-file", "", "Write the trace to a file instead of stderr")
	flags.BoolVar(&cfg.debugPretty, "debug-pretty", false, "Write the trace in a readable format (default: JSON)")
	flags.BoolVarP(&cfg.version, "version", "v", false, "Show version information")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if cfg.version {
		fmt.Fprintf(stdout, "figfont version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	font, err := loadFont(cfg.font, cfg.latin1)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.info {
		if err := printInfo(stdout, font); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	text, err := inputText(flags.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts, cleanup, err := renderOptions(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer cleanup()

	if err := figfont.RenderTo(stdout, text, font, opts...); err != nil {
		fmt.Fprintf(stderr, "Error rendering text: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout)
	return 0
}

// inputText joins the arguments, or reads stdin when there are none.
func inputText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdin == nil {
		return "", errors.New("no text provided")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimRight(string(data), "\r\n")
	if text == "" {
		return "", errors.New("no text provided")
	}
	return text, nil
}

func renderOptions(cfg config, stdout, stderr io.Writer) ([]figfont.Option, func(), error) {
	cleanup := func() {}
	opts := []figfont.Option{figfont.WithWidth(outputWidth(cfg.width, stdout))}

	if cfg.unknownRune != "" {
		r, err := parseUnknownRune(cfg.unknownRune)
		if err != nil {
			return nil, cleanup, fmt.Errorf("parsing unknown rune: %w", err)
		}
		opts = append(opts, figfont.WithUnknownRune(r))
	}
	if cfg.layout != "" {
		layout, err := parseLayout(cfg.layout)
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, figfont.WithLayout(layout))
	}
	if cfg.trim {
		opts = append(opts, figfont.WithTrimWhitespace(true))
	}
	if cfg.rtl {
		opts = append(opts, figfont.WithPrintDirection(1))
	}

	figfont.InitDebugFromEnv()
	if cfg.debug || cfg.debugFile != "" {
		figfont.SetDebug(true)
	}
	if debug.Enabled() {
		var out io.Writer = stderr
		if cfg.debugFile != "" {
			file, err := os.Create(cfg.debugFile)
			if err != nil {
				return nil, cleanup, fmt.Errorf("creating debug file: %w", err)
			}
			cleanup = func() { file.Close() }
			out = file
		}
		opts = append(opts, figfont.WithDebug(out, cfg.debugPretty || debug.PrettyFromEnv()))
	}
	return opts, cleanup, nil
}

// outputWidth picks the render width. An explicit width wins; otherwise
// the terminal width is used when stdout is a terminal.
func outputWidth(width int, stdout io.Writer) int {
	if width > 0 {
		return width
	}
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

// parseLayout accepts a mode name or a numeric full-layout value in
// decimal or 0x hex.
func parseLayout(s string) (figfont.Layout, error) {
	switch strings.ToLower(s) {
	case "full", "full-width":
		return figfont.FitFullWidth, nil
	case "kern", "fitting":
		return figfont.FitKerning, nil
	case "smush", "universal":
		return figfont.FitSmushing, nil
	}
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid layout %q: want full, kern, smush or a number up to 65535", s)
	}
	return figfont.Layout(n).Normalize(), nil
}

// parseUnknownRune reads a rune given as a literal character, "\uXXXX",
// "\UXXXXXXXX", "U+XXXX", "0xXX" or a decimal code point.
func parseUnknownRune(s string) (rune, error) {
	if s == "" {
		return 0, errors.New("unknown rune cannot be empty")
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}

	digits, base := s, 10
	switch {
	case strings.HasPrefix(s, `\u`):
		if len(s) != 6 {
			return 0, fmt.Errorf("invalid rune format: %s", s)
		}
		digits, base = s[2:], 16
	case strings.HasPrefix(s, `\U`):
		if len(s) != 10 {
			return 0, fmt.Errorf("invalid rune format: %s", s)
		}
		digits, base = s[2:], 16
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"),
		strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits, base = s[2:], 16
	}

	code, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid rune format: %s", s)
	}
	r := rune(code)
	if r < 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
		return 0, fmt.Errorf("invalid code point: %s", s)
	}
	return r, nil
}

// resolveFontPath turns a font name into a file path, trying the name
// as given, with a .flf extension, under ./fonts and under $FIGFONT_DIR.
func resolveFontPath(name string) string {
	candidates := []string{name}
	if filepath.Ext(name) != ".flf" {
		candidates = append(candidates, name+".flf")
	}
	base := filepath.Base(candidates[len(candidates)-1])
	candidates = append(candidates, filepath.Join("fonts", base))
	if dir := os.Getenv(envFontDir); dir != "" {
		candidates = append(candidates, filepath.Join(dir, base))
	}

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return name
}

func loadFont(name string, latin1 bool) (*figfont.Font, error) {
	p := resolveFontPath(name)
	if !latin1 {
		return figfont.LoadFont(p)
	}

	file, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	font, err := figfont.ParseFontLatin1(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", p, err)
	}
	font.Name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	return font, nil
}

type fontInfo struct {
	Name           string   `yaml:"name"`
	Hardblank      string   `yaml:"hardblank"`
	Height         int      `yaml:"height"`
	Baseline       int      `yaml:"baseline"`
	MaxLength      int      `yaml:"max_length"`
	OldLayout      int      `yaml:"old_layout"`
	FullLayout     int      `yaml:"full_layout"`
	Layout         string   `yaml:"layout"`
	Rules          string   `yaml:"rules"`
	PrintDirection int      `yaml:"print_direction"`
	CodetagCount   int      `yaml:"codetag_count"`
	Comment        string   `yaml:"comment,omitempty"`
	Warnings       []string `yaml:"warnings,omitempty"`
}

func printInfo(w io.Writer, f *figfont.Font) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(fontInfo{
		Name:           f.Name,
		Hardblank:      string(f.Hardblank),
		Height:         f.Height,
		Baseline:       f.Baseline,
		MaxLength:      f.MaxLen,
		OldLayout:      f.OldLayout,
		FullLayout:     f.FullLayout,
		Layout:         f.Layout.String(),
		Rules:          f.Rules().String(),
		PrintDirection: f.PrintDirection,
		CodetagCount:   f.CodetagCount,
		Comment:        f.Comment,
		Warnings:       f.Warnings,
	})
	if err != nil {
		return fmt.Errorf("encoding font info: %w", err)
	}
	return enc.Close()
}

func printHelp(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "figfont - FIGlet banner generator")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  figfont [flags] <text>")
	fmt.Fprintln(w, "  echo text | figfont [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flags.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Unknown rune formats:")
	fmt.Fprintln(w, "  Literal: -u '*'")
	fmt.Fprintln(w, "  Unicode escape: -u '\\u2588'")
	fmt.Fprintln(w, "  Unicode notation: -u 'U+2588'")
	fmt.Fprintln(w, "  Decimal: -u '63'")
	fmt.Fprintln(w, "  Hexadecimal: -u '0x3F'")
}
