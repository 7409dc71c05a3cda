// internal/state/mock.go
package state

// Mock is a test double for Manager.
type Mock struct {
	sessions map[string]Session
	saves    int
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{sessions: make(map[string]Session)}
}

func (m *Mock) SaveSession(s Session) {
	m.saves++
	m.sessions[s.Kind] = s
}

func (m *Mock) GetSession(kind string) (*Session, error) {
	s, ok := m.sessions[kind]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager on first run
	}
	return &s, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) Saves() int { return m.saves }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
