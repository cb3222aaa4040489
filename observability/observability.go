// Package observability is the diagnostic seam the viewer core reports
// through. The core never logs directly; it emits events to a Sink the
// embedding application wires to its logger, or leaves as a no-op.
package observability

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// Event is one diagnostic occurrence inside the core: a render starting or
// being superseded, an annotation record failing to parse, a selection
// gesture being rejected.
type Event struct {
	Level  Level
	Op     string
	Msg    string
	Err    error
	Fields map[string]interface{}
}

type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Nop returns a sink that drops every event.
func Nop() Sink { return SinkFunc(func(Event) {}) }

// Gate forwards only events at or above min.
func Gate(min Level, next Sink) Sink {
	return SinkFunc(func(e Event) {
		if e.Level >= min {
			next.Emit(e)
		}
	})
}
