package debug

// HeaderData is emitted as parse/Header with the scalars of the font in use.
type HeaderData struct {
	Hardblank    rune `json:"hardblank"`
	Height       int  `json:"height"`
	Baseline     int  `json:"baseline"`
	MaxLength    int  `json:"max_length"`
	OldLayout    int  `json:"old_layout"`
	FullLayout   int  `json:"full_layout"`
	FullLayoutOK bool `json:"full_layout_set"`
	PrintDir     int  `json:"print_dir"`
	CommentLines int  `json:"comment_lines"`
	Warnings     int  `json:"warnings"`
}

// LayoutData is emitted as parse/Layout once the fitting rules for a render
// are settled.
type LayoutData struct {
	HorizontalMode  string   `json:"horizontal_mode"`
	HorizontalRules []string `json:"horizontal_rules"`
	VerticalMode    string   `json:"vertical_mode"`
	VerticalRules   []string `json:"vertical_rules"`
	FullLayout      int      `json:"full_layout"`
	Source          string   `json:"source"` // "font" or "override"
}

// RenderStartData opens a render.
type RenderStartData struct {
	Text       string `json:"text"`
	TextLength int    `json:"text_length"`
	CharHeight int    `json:"char_height"`
	Hardblank  rune   `json:"hardblank"`
	WidthLimit int    `json:"width_limit"`
	PrintDir   int    `json:"print_dir"`
}

// GlyphData describes a glyph about to be appended to the current line.
type GlyphData struct {
	Index        int  `json:"index"`
	Rune         rune `json:"rune"`
	Width        int  `json:"width"`
	UnknownSubst bool `json:"unknown_subst,omitempty"`
}

// OverlapData records the horizontal overlap chosen for a glyph.
type OverlapData struct {
	Index   int    `json:"index"`
	Overlap int    `json:"overlap"`
	Mode    string `json:"mode"`
}

// SmushDecisionData records one merged pair of visible sub-characters.
type SmushDecisionData struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Lch    rune   `json:"lch"`
	Rch    rune   `json:"rch"`
	Result rune   `json:"result"`
	Rule   string `json:"rule"`
}

// VerticalMergeData records how a fig line was stacked under the output.
type VerticalMergeData struct {
	Line    int    `json:"line"`
	Overlap int    `json:"overlap"`
	Mode    string `json:"mode"`
}

// RenderEndData closes a render.
type RenderEndData struct {
	TotalLines   int   `json:"total_lines"`
	TotalGlyphs  int   `json:"total_glyphs"`
	ElapsedMs    int64 `json:"elapsed_ms"`
	BytesWritten int   `json:"bytes_written"`
}

// SessionStartData opens a session.
type SessionStartData struct {
	Version string `json:"version"`
}

// SessionEndData closes a session. Events counts everything emitted before
// it.
type SessionEndData struct {
	ElapsedMs int64  `json:"elapsed_ms"`
	Events    uint64 `json:"events"`
}
