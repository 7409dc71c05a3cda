// internal/player/state.go
package player

// State is the transport state reported by a backend.
//
// Valid transitions:
//   - Stopped → Playing (via Play after SetSource)
//   - Playing → Paused  (via Pause)
//   - Playing → Stopped (via Stop, or end of media)
//   - Paused  → Playing (via Play)
//   - Paused  → Stopped (via Stop)
//
// Invalid/No-op transitions (handled gracefully):
//   - Stopped → Paused  (ignored)
//   - Paused  → Paused  (ignored)
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
