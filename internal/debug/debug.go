// Package debug traces font parsing and layout decisions.
//
// Tracing is switched on once per process (FIGFONT_DEBUG=1 or --debug).
// Each render gets its own Session, and a nil Session is a valid no-op, so
// call sites never check whether tracing is on. Events are JSON Lines by
// default; PrettySink writes a human-readable form.
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Version is the event schema version reported by session/Start.
const Version = "2"

// Environment variables read by InitFromEnv and PrettyFromEnv.
const (
	EnvDebug  = "FIGFONT_DEBUG"
	EnvPretty = "FIGFONT_DEBUG_PRETTY"
)

var enabled atomic.Bool

// SetEnabled turns tracing on or off for the process.
func SetEnabled(on bool) { enabled.Store(on) }

// Enabled reports whether tracing is on.
func Enabled() bool { return enabled.Load() }

// InitFromEnv enables tracing when FIGFONT_DEBUG=1.
func InitFromEnv() {
	if os.Getenv(EnvDebug) == "1" {
		SetEnabled(true)
	}
}

// PrettyFromEnv reports whether FIGFONT_DEBUG_PRETTY=1 asks for PrettySink.
func PrettyFromEnv() bool {
	return os.Getenv(EnvPretty) == "1"
}

// Event is the envelope written to a Sink.
type Event struct {
	Seq       uint64 `json:"seq"`
	Timestamp string `json:"ts"`
	SessionID string `json:"session_id"`
	Phase     string `json:"phase"`
	Event     string `json:"event"`
	Data      any    `json:"data,omitempty"`
}

// Session collects the events of one render. Emit may be called from
// several goroutines; events reach the sink one at a time.
type Session struct {
	id    string
	start time.Time
	seq   atomic.Uint64

	mu   sync.Mutex
	sink Sink
}

// NewSession opens a session writing to sink. It returns nil when tracing
// is off or sink is nil.
func NewSession(sink Sink) *Session {
	if !Enabled() || sink == nil {
		return nil
	}
	s := &Session{id: newSessionID(), start: time.Now(), sink: sink}
	s.Emit("session", "Start", SessionStartData{Version: Version})
	return s
}

// SessionID returns the session's random identifier, or "" for nil.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Emit writes one event. It does nothing on a nil session.
func (s *Session) Emit(phase, event string, data any) {
	if s == nil {
		return
	}
	evt := Event{
		Seq:       s.seq.Add(1),
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.id,
		Phase:     phase,
		Event:     event,
		Data:      data,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	//nolint:errcheck // tracing never fails a render
	s.sink.Write(evt)
}

// Close emits session/End and closes the sink.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.Emit("session", "End", SessionEndData{
		ElapsedMs: time.Since(s.start).Milliseconds(),
		Events:    s.seq.Load(),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Close()
}

func newSessionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		n := time.Now().UnixNano()
		b = []byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	}
	return hex.EncodeToString(b)
}
