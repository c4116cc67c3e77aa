package renderer

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/ryanlewis/figfont/internal/debug"
	"github.com/ryanlewis/figfont/internal/parser"
)

// glyphEntry is one input character resolved to its padded glyph.
type glyphEntry struct {
	r       rune
	rows    []string
	subst   bool
	isSpace bool
}

type renderState struct {
	font      *parser.Font
	rules     parser.FittingRules
	hardblank rune
	rtl       bool
	width     int
	unknown   *rune
	trim      bool
	debug     *debug.Session

	glyphCount int
}

func newRenderState(font *parser.Font, opts *Options) *renderState {
	state := &renderState{
		font:      font,
		rules:     font.Rules,
		hardblank: font.Hardblank,
		rtl:       font.PrintDirection == 1,
	}
	if opts == nil {
		return state
	}
	if opts.Rules != nil {
		state.rules = *opts.Rules
	}
	if opts.PrintDirection != nil {
		state.rtl = *opts.PrintDirection == 1
	}
	if opts.Width != nil && *opts.Width > 0 {
		state.width = *opts.Width
	}
	state.unknown = opts.UnknownRune
	state.trim = opts.TrimWhitespace
	state.debug = opts.Debug
	return state
}

// RenderTo writes text as a FIGlet banner to w.
//
// Each input line becomes a fig line: glyphs joined by the horizontal
// layout, wrapped at the configured width. Fig lines are then stacked using
// the vertical layout. Hardblanks are written as spaces, and rows are
// separated by "\n" with no trailing newline.
func RenderTo(w io.Writer, text string, font *parser.Font, opts *Options) error {
	if font == nil {
		return ErrNilFont
	}
	state := newRenderState(font, opts)
	start := time.Now()
	state.traceStart(text, opts)

	var output []string
	figLines := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		blocks, err := state.renderLine(line)
		if err != nil {
			return err
		}
		for _, block := range blocks {
			if figLines == 0 {
				output = block
			} else {
				var overlap int
				output, overlap = stackBlocks(output, block, state.rules)
				state.debug.Emit("render", "VerticalMerge", debug.VerticalMergeData{
					Line:    figLines,
					Overlap: overlap,
					Mode:    state.rules.VerticalMode().String(),
				})
			}
			figLines++
		}
	}

	n, err := state.write(w, output)
	state.debug.Emit("render", "End", debug.RenderEndData{
		TotalLines:   figLines,
		TotalGlyphs:  state.glyphCount,
		ElapsedMs:    time.Since(start).Milliseconds(),
		BytesWritten: n,
	})
	return err
}

// Render returns text as a FIGlet banner.
func Render(text string, font *parser.Font, opts *Options) (string, error) {
	var sb strings.Builder
	if err := RenderTo(&sb, text, font, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (state *renderState) traceStart(text string, opts *Options) {
	if state.debug == nil {
		return
	}
	f := state.font
	state.debug.Emit("parse", "Header", debug.HeaderData{
		Hardblank:    f.Hardblank,
		Height:       f.Height,
		Baseline:     f.Baseline,
		MaxLength:    f.MaxLength,
		OldLayout:    f.OldLayout,
		FullLayout:   f.FullLayout,
		FullLayoutOK: f.FullLayoutSet,
		PrintDir:     f.PrintDirection,
		CommentLines: f.CommentLines,
		Warnings:     len(f.Warnings),
	})

	source := "font"
	if opts != nil && opts.Rules != nil {
		source = "override"
	}
	state.debug.Emit("parse", "Layout", debug.LayoutData{
		HorizontalMode:  state.rules.HorizontalMode().String(),
		HorizontalRules: debug.RuleNames(parser.HorizontalRuleCount, state.rules.HorizontalRule, debug.HorizontalRuleName),
		VerticalMode:    state.rules.VerticalMode().String(),
		VerticalRules:   debug.RuleNames(parser.VerticalRuleCount, state.rules.VerticalRule, debug.VerticalRuleName),
		FullLayout:      int(state.rules.FullLayout()),
		Source:          source,
	})

	dir := 0
	if state.rtl {
		dir = 1
	}
	state.debug.Emit("render", "Start", debug.RenderStartData{
		Text:       text,
		TextLength: len(text),
		CharHeight: f.Height,
		Hardblank:  state.hardblank,
		WidthLimit: state.width,
		PrintDir:   dir,
	})
}

// lookup resolves r to a glyph padded to its own width.
func (state *renderState) lookup(r rune) (glyphEntry, error) {
	if r == '\t' {
		r = ' '
	}
	g, err := state.font.Glyphs.Lookup(r)
	subst := false
	if err != nil {
		if state.unknown == nil {
			return glyphEntry{}, err
		}
		if g, err = state.font.Glyphs.Lookup(*state.unknown); err != nil {
			return glyphEntry{}, err
		}
		subst = true
	}
	return glyphEntry{
		r:       r,
		rows:    padBlock(g, blockWidth(g)),
		subst:   subst,
		isSpace: r == ' ',
	}, nil
}

// renderLine turns one input line into one or more fig lines.
func (state *renderState) renderLine(line string) ([][]string, error) {
	var glyphs []glyphEntry
	for _, r := range line {
		g, err := state.lookup(r)
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, g)
	}

	if state.width == 0 {
		return [][]string{state.join(glyphs, true)}, nil
	}

	var out [][]string
	start := 0
	for i := 0; i < len(glyphs); i++ {
		if i == start || blockWidth(state.join(glyphs[start:i+1], false)) <= state.width {
			continue
		}
		switch brk := lastSpace(glyphs, start, i); {
		case glyphs[i].isSpace:
			out = append(out, state.join(glyphs[start:i], true))
			start = i + 1
		case brk > start:
			out = append(out, state.join(glyphs[start:brk], true))
			start = brk + 1
			i--
		default:
			out = append(out, state.join(glyphs[start:i], true))
			start = i
			i--
		}
	}
	if start < len(glyphs) || len(out) == 0 {
		out = append(out, state.join(glyphs[start:], true))
	}
	return out, nil
}

// lastSpace returns the index of the last space glyph strictly between
// start and end, or -1.
func lastSpace(glyphs []glyphEntry, start, end int) int {
	for j := end - 1; j > start; j-- {
		if glyphs[j].isSpace {
			return j
		}
	}
	return -1
}

// join lays glyphs out horizontally. Right-to-left text is laid out in
// reverse order.
func (state *renderState) join(glyphs []glyphEntry, trace bool) []string {
	if state.rtl {
		glyphs = slices.Clone(glyphs)
		slices.Reverse(glyphs)
	}
	trace = trace && state.debug != nil

	block := make([]string, state.font.Height)
	for _, g := range glyphs {
		overlap := GlyphOverlap(block, g.rows, state.rules, state.hardblank)
		if trace {
			state.debug.Emit("render", "Glyph", debug.GlyphData{
				Index:        state.glyphCount,
				Rune:         g.r,
				Width:        blockWidth(g.rows),
				UnknownSubst: g.subst,
			})
			state.debug.Emit("render", "Overlap", debug.OverlapData{
				Index:   state.glyphCount,
				Overlap: overlap,
				Mode:    state.rules.HorizontalMode().String(),
			})
			state.glyphCount++
		}

		next := make([]string, len(block))
		for row := range block {
			var right string
			if row < len(g.rows) {
				right = g.rows[row]
			}
			var tr func(smushDecision)
			if trace {
				tr = func(d smushDecision) {
					state.debug.Emit("render", "SmushDecision", debug.SmushDecisionData{
						Row:    row,
						Col:    d.col,
						Lch:    d.left,
						Rch:    d.right,
						Result: d.result,
						Rule:   debug.HorizontalRuleName(d.rule),
					})
				}
			}
			next[row] = smushRow(block[row], right, overlap, state.rules, state.hardblank, tr)
		}
		block = next
	}
	return block
}

// write emits the rows with hardblanks shown as spaces.
func (state *renderState) write(w io.Writer, rows []string) (int, error) {
	sb := acquireBuilder()
	defer releaseBuilder(sb)

	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if state.hardblank != ' ' {
			row = strings.ReplaceAll(row, string(state.hardblank), " ")
		}
		if state.trim {
			row = strings.TrimRight(row, " ")
		}
		sb.WriteString(row)
	}
	return io.WriteString(w, sb.String())
}
