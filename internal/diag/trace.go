package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Level names an execution-trace event category. Trace is purely for
// debugging the reference semantics (scope/region lifecycle, drop order);
// it is never consulted by evaluation itself.
type Level string

const (
	LevelScope  Level = "SCOPE"
	LevelDrop   Level = "DROP"
	LevelRegion Level = "REGION"
	LevelPanic  Level = "PANIC"
	LevelCall   Level = "CALL"
)

var levelColor = map[Level]*color.Color{
	LevelScope:  color.New(color.FgCyan),
	LevelDrop:   color.New(color.FgYellow),
	LevelRegion: color.New(color.FgMagenta),
	LevelPanic:  color.New(color.FgRed, color.Bold),
	LevelCall:   color.New(color.FgGreen),
}

// Trace is a leveled event log used by sigma/eval to record scope and
// region lifecycle events for tests and interactive debugging.
type Trace struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	events  []Event
}

// Event is one recorded trace line.
type Event struct {
	Level   Level
	Message string
}

// NewTrace builds a Trace writing to w. If enabled is false, Emit writes
// nothing (but events are still accumulated for in-process inspection via
// Events so tests can assert on drop order without enabling output).
func NewTrace(w io.Writer, enabled bool) *Trace {
	if w == nil {
		w = os.Stderr
	}
	return &Trace{out: w, enabled: enabled}
}

// Emit records an event and, if the trace is enabled, writes a colorized
// line to the underlying writer.
func (t *Trace) Emit(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	t.mu.Lock()
	t.events = append(t.events, Event{Level: level, Message: msg})
	enabled := t.enabled
	t.mu.Unlock()

	if !enabled {
		return
	}
	c, ok := levelColor[level]
	if !ok {
		c = color.New(color.Reset)
	}
	c.Fprintf(t.out, "[%s] %s\n", level, msg)
}

// Events returns the accumulated event log, in emission order.
func (t *Trace) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Reset clears the accumulated event log.
func (t *Trace) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
}
