package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sink receives the events of a session. Close flushes anything buffered.
type Sink interface {
	Write(event Event) error
	Close() error
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONSink returns a JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{w: bw, enc: json.NewEncoder(bw)}
}

func (s *JSONSink) Write(event Event) error { return s.enc.Encode(event) }

// Close flushes buffered lines.
func (s *JSONSink) Close() error { return s.w.Flush() }

// PrettySink writes each event as a heading line followed by an indented
// summary of its data:
//
//	#4 render/SmushDecision [1f2e3d4c]
//	    row=0 col=2 '/'+'\' -> '|' rule=big-x
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink returns a human-readable sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{w: bufio.NewWriter(w)}
}

func (s *PrettySink) Write(event Event) error {
	fmt.Fprintf(s.w, "#%d %s/%s [%s]\n", event.Seq, event.Phase, event.Event, event.SessionID)
	if body := describe(event.Data); body != "" {
		fmt.Fprintf(s.w, "    %s\n", body)
	}
	return nil
}

// Close flushes buffered lines.
func (s *PrettySink) Close() error { return s.w.Flush() }

// describe summarises event data on one line.
func describe(data any) string {
	switch d := data.(type) {
	case nil:
		return ""
	case SessionStartData:
		return "version=" + d.Version
	case SessionEndData:
		return fmt.Sprintf("elapsed=%dms events=%d", d.ElapsedMs, d.Events)
	case HeaderData:
		full := "none"
		if d.FullLayoutOK {
			full = strconv.Itoa(d.FullLayout)
		}
		s := fmt.Sprintf("hardblank=%s height=%d baseline=%d max_length=%d old_layout=%d full_layout=%s dir=%s comments=%d",
			runeStr(d.Hardblank), d.Height, d.Baseline, d.MaxLength, d.OldLayout, full, dirStr(d.PrintDir), d.CommentLines)
		if d.Warnings > 0 {
			s += fmt.Sprintf(" warnings=%d", d.Warnings)
		}
		return s
	case LayoutData:
		return fmt.Sprintf("h=%s[%s] v=%s[%s] full_layout=0x%04X from=%s",
			d.HorizontalMode, strings.Join(d.HorizontalRules, ","),
			d.VerticalMode, strings.Join(d.VerticalRules, ","), d.FullLayout, d.Source)
	case RenderStartData:
		return fmt.Sprintf("text=%q runes=%d height=%d hardblank=%s width=%d dir=%s",
			d.Text, d.TextLength, d.CharHeight, runeStr(d.Hardblank), d.WidthLimit, dirStr(d.PrintDir))
	case GlyphData:
		s := fmt.Sprintf("glyph=%d %s width=%d", d.Index, runeStr(d.Rune), d.Width)
		if d.UnknownSubst {
			s += " substituted"
		}
		return s
	case OverlapData:
		return fmt.Sprintf("glyph=%d overlap=%d mode=%s", d.Index, d.Overlap, d.Mode)
	case SmushDecisionData:
		return fmt.Sprintf("row=%d col=%d %s+%s -> %s rule=%s",
			d.Row, d.Col, runeStr(d.Lch), runeStr(d.Rch), runeStr(d.Result), d.Rule)
	case VerticalMergeData:
		return fmt.Sprintf("line=%d overlap=%d mode=%s", d.Line, d.Overlap, d.Mode)
	case RenderEndData:
		return fmt.Sprintf("lines=%d glyphs=%d bytes=%d elapsed=%dms",
			d.TotalLines, d.TotalGlyphs, d.BytesWritten, d.ElapsedMs)
	}
	return fmt.Sprintf("%+v", data)
}

// runeStr quotes printable ASCII and shows anything else as U+XXXX.
func runeStr(r rune) string {
	if r >= 0x20 && r < 0x7F {
		return "'" + string(r) + "'"
	}
	return fmt.Sprintf("U+%04X", r)
}

func dirStr(dir int) string {
	if dir == 1 {
		return "rtl"
	}
	return "ltr"
}
