package debug

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

// decode splits JSON Lines output into events with raw data.
func decode(t *testing.T, out []byte) []Event {
	t.Helper()
	var events []Event
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		var ev Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			t.Fatalf("bad JSON line %q: %v", sc.Text(), err)
		}
		events = append(events, ev)
	}
	return events
}

func TestNewSession_Disabled(t *testing.T) {
	SetEnabled(false)

	var buf bytes.Buffer
	session := NewSession(NewJSONSink(&buf))
	if session != nil {
		t.Fatal("NewSession() returned a session while tracing is off")
	}
	session.Emit("render", "Glyph", GlyphData{})
	if err := session.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}
	if session.SessionID() != "" {
		t.Errorf("nil SessionID() = %q", session.SessionID())
	}
	if buf.Len() != 0 {
		t.Errorf("nil session wrote %q", buf.String())
	}
}

func TestNewSession_NilSink(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	if NewSession(nil) != nil {
		t.Error("NewSession(nil) returned a session")
	}
}

func TestSession_Lifecycle(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	var buf bytes.Buffer
	session := NewSession(NewJSONSink(&buf))
	if session == nil {
		t.Fatal("NewSession() = nil while tracing is on")
	}
	if id := session.SessionID(); len(id) != 8 {
		t.Errorf("SessionID() = %q, want 8 hex characters", id)
	}

	session.Emit("render", "Overlap", OverlapData{Index: 1, Overlap: 2, Mode: "smushing"})
	if err := session.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	events := decode(t, buf.Bytes())
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	want := []string{"session/Start", "render/Overlap", "session/End"}
	for i, ev := range events {
		if got := ev.Phase + "/" + ev.Event; got != want[i] {
			t.Errorf("event %d = %s, want %s", i, got, want[i])
		}
		if ev.Seq != uint64(i+1) {
			t.Errorf("event %d Seq = %d, want %d", i, ev.Seq, i+1)
		}
		if ev.SessionID != session.SessionID() {
			t.Errorf("event %d SessionID = %q", i, ev.SessionID)
		}
	}

	end, _ := json.Marshal(events[2].Data)
	var endData SessionEndData
	if err := json.Unmarshal(end, &endData); err != nil {
		t.Fatal(err)
	}
	if endData.Events != 2 {
		t.Errorf("SessionEndData.Events = %d, want 2", endData.Events)
	}
}

func TestSession_ConcurrentEmit(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	var buf bytes.Buffer
	session := NewSession(NewJSONSink(&buf))

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				session.Emit("render", "Glyph", GlyphData{Index: g*100 + i})
			}
		}(g)
	}
	wg.Wait()
	if err := session.Close(); err != nil {
		t.Fatal(err)
	}

	events := decode(t, buf.Bytes())
	if len(events) != 102 {
		t.Fatalf("got %d events, want 102", len(events))
	}
	seen := make(map[uint64]bool, len(events))
	for _, ev := range events {
		if seen[ev.Seq] {
			t.Fatalf("duplicate Seq %d", ev.Seq)
		}
		seen[ev.Seq] = true
	}
}

func TestPrettySink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPrettySink(&buf)

	events := []Event{
		{Seq: 4, SessionID: "abc123", Phase: "render", Event: "SmushDecision",
			Data: SmushDecisionData{Row: 1, Col: 4, Lch: '|', Rch: ')', Result: ')', Rule: "hierarchy"}},
		{Seq: 2, SessionID: "abc123", Phase: "parse", Event: "Layout",
			Data: LayoutData{
				HorizontalMode:  "smushing",
				HorizontalRules: []string{"equal", "big-x"},
				VerticalMode:    "full-width",
				VerticalRules:   []string{},
				FullLayout:      0x91,
				Source:          "font",
			}},
		{Seq: 3, SessionID: "abc123", Phase: "render", Event: "Glyph",
			Data: GlyphData{Index: 0, Rune: 'é', Width: 3, UnknownSubst: true}},
		{Seq: 5, SessionID: "abc123", Phase: "test", Event: "Nil"},
	}
	for _, ev := range events {
		if err := sink.Write(ev); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"#4 render/SmushDecision [abc123]",
		"row=1 col=4 '|'+')' -> ')' rule=hierarchy",
		"h=smushing[equal,big-x] v=full-width[] full_layout=0x0091 from=font",
		"U+00E9 width=3 substituted",
		"#5 test/Nil [abc123]\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q, got:\n%s", want, out)
		}
	}
	if strings.HasSuffix(out, "#5 test/Nil [abc123]\n    \n") {
		t.Error("empty data should not produce a body line")
	}
}

func TestDescribe_Header(t *testing.T) {
	got := describe(HeaderData{Hardblank: '$', Height: 6, Baseline: 5, MaxLength: 16, OldLayout: -1, PrintDir: 1})
	want := "hardblank='$' height=6 baseline=5 max_length=16 old_layout=-1 full_layout=none dir=rtl comments=0"
	if got != want {
		t.Errorf("describe(HeaderData) =\n%q\nwant\n%q", got, want)
	}
}

func TestRuleNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"h1", HorizontalRuleName(1), "equal"},
		{"h4", HorizontalRuleName(4), "opposite-pair"},
		{"h6", HorizontalRuleName(6), "hardblank"},
		{"h0", HorizontalRuleName(0), "universal"},
		{"h7", HorizontalRuleName(7), "unknown"},
		{"v4", VerticalRuleName(4), "horizontal-line"},
		{"v5", VerticalRuleName(5), "vertical-line"},
		{"v6", VerticalRuleName(6), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	on := map[int]bool{2: true, 5: true}
	got := RuleNames(6, func(n int) bool { return on[n] }, HorizontalRuleName)
	if strings.Join(got, ",") != "underscore,big-x" {
		t.Errorf("RuleNames = %v", got)
	}
	if got := RuleNames(5, func(int) bool { return false }, VerticalRuleName); got == nil || len(got) != 0 {
		t.Errorf("RuleNames with nothing enabled = %#v, want empty non-nil", got)
	}
}

func TestInitFromEnv(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(false)

	t.Setenv(EnvDebug, "0")
	InitFromEnv()
	if Enabled() {
		t.Error("FIGFONT_DEBUG=0 should leave tracing off")
	}

	t.Setenv(EnvDebug, "1")
	InitFromEnv()
	if !Enabled() {
		t.Error("FIGFONT_DEBUG=1 should turn tracing on")
	}

	t.Setenv(EnvPretty, "1")
	if !PrettyFromEnv() {
		t.Error("PrettyFromEnv() = false with FIGFONT_DEBUG_PRETTY=1")
	}
}

func BenchmarkEmit(b *testing.B) {
	data := SmushDecisionData{Row: 0, Col: 5, Lch: '|', Rch: ')', Result: ')', Rule: "hierarchy"}

	b.Run("disabled", func(b *testing.B) {
		SetEnabled(false)
		session := NewSession(NewJSONSink(&bytes.Buffer{}))
		for i := 0; i < b.N; i++ {
			session.Emit("render", "SmushDecision", data)
		}
	})

	b.Run("enabled", func(b *testing.B) {
		SetEnabled(true)
		defer SetEnabled(false)
		session := NewSession(NewJSONSink(&bytes.Buffer{}))
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			session.Emit("render", "SmushDecision", data)
		}
	})
}
