// internal/player/interface.go
package player

import "time"

// Backend is a platform media player. Commands return immediately; progress
// and failures are reported asynchronously on Events.
type Backend interface {
	SetSource(path string) error
	Play() error
	Pause() error
	Stop() error
	SetPosition(pos time.Duration) error
	Events() <-chan Event
	Close() error
}

// EventKind identifies what a backend Event reports.
type EventKind int

const (
	PositionChanged EventKind = iota
	DurationChanged
	StateChanged
	ErrorOccurred
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case PositionChanged:
		return "position"
	case DurationChanged:
		return "duration"
	case StateChanged:
		return "state"
	case ErrorOccurred:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a notification from a backend. Only the field matching Kind is
// meaningful.
type Event struct {
	Kind     EventKind
	Position time.Duration
	Duration time.Duration
	State    State
	Err      error
}

// PositionEvent reports a new playback position.
func PositionEvent(pos time.Duration) Event {
	return Event{Kind: PositionChanged, Position: pos}
}

// DurationEvent reports the duration of the loaded media.
func DurationEvent(d time.Duration) Event {
	return Event{Kind: DurationChanged, Duration: d}
}

// StateEvent reports a transport state change.
func StateEvent(s State) Event {
	return Event{Kind: StateChanged, State: s}
}

// ErrorEvent reports a playback failure.
func ErrorEvent(err error) Event {
	return Event{Kind: ErrorOccurred, Err: err}
}

// emit sends ev without blocking; events are dropped when the consumer lags.
func emit(ch chan<- Event, ev Event) {
	select {
	case ch <- ev:
	default:
	}
}
