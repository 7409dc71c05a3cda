// internal/player/mock.go
package player

import "time"

const mockEventBuffer = 64

// Mock is a test double for Backend.
type Mock struct {
	state    State
	source   string
	position time.Duration

	sourceErr error
	playErr   error
	seekErr   error

	sourceCalls []string
	seekCalls   []time.Duration
	calls       []string

	events chan Event
	closed bool
}

// NewMock creates a new mock backend for testing.
func NewMock() *Mock {
	return &Mock{
		state:  Stopped,
		events: make(chan Event, mockEventBuffer),
	}
}

func (m *Mock) SetSource(path string) error {
	m.calls = append(m.calls, "setSource")
	m.sourceCalls = append(m.sourceCalls, path)
	if m.sourceErr != nil {
		return m.sourceErr
	}
	m.source = path
	m.state = Stopped
	return nil
}

func (m *Mock) Play() error {
	m.calls = append(m.calls, "play")
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() error {
	m.calls = append(m.calls, "pause")
	if m.state == Playing {
		m.state = Paused
	}
	return nil
}

func (m *Mock) Stop() error {
	m.calls = append(m.calls, "stop")
	m.state = Stopped
	return nil
}

func (m *Mock) SetPosition(pos time.Duration) error {
	m.calls = append(m.calls, "setPosition")
	m.seekCalls = append(m.seekCalls, pos)
	if m.seekErr != nil {
		return m.seekErr
	}
	m.position = pos
	return nil
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) State() State { return m.state }

func (m *Mock) Source() string { return m.source }

func (m *Mock) SetSourceError(err error) { m.sourceErr = err }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetSeekError(err error) { m.seekErr = err }

func (m *Mock) SourceCalls() []string { return m.sourceCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

// Calls returns the backend methods invoked so far, in order.
func (m *Mock) Calls() []string { return m.calls }

// ResetCalls forgets recorded calls.
func (m *Mock) ResetCalls() {
	m.calls = nil
	m.sourceCalls = nil
	m.seekCalls = nil
}

func (m *Mock) IsClosed() bool { return m.closed }

// Emit queues an event as if the platform player had sent it.
func (m *Mock) Emit(ev Event) { emit(m.events, ev) }

// Verify Mock implements Backend at compile time.
var _ Backend = (*Mock)(nil)
