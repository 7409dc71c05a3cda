// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad   Op = "load configuration"
	OpLoggingSetup Op = "set up logging"
	OpBackendStart Op = "start media backend"
	OpMPRISStart   Op = "start media key integration"

	// Session persistence
	OpStateOpen Op = "open session database"
	OpStateRead Op = "read last session"

	// Media listing
	OpScan       Op = "scan folder"
	OpLyricsLoad Op = "load lyrics"
	OpTagsRead   Op = "read file tags"

	// Playback operations
	OpTrackLoad     Op = "load track"
	OpPlaybackStart Op = "start playback"
	OpPlaybackPause Op = "pause playback"
	OpPlaybackStop  Op = "stop playback"
	OpPlaybackSeek  Op = "seek"
	OpPlayback      Op = "play media"

	// Desktop
	OpNotify Op = "send notification"
)

// playbackOps maps the operation names carried by playback errors.
var playbackOps = map[string]Op{
	"load":     OpTrackLoad,
	"play":     OpPlaybackStart,
	"pause":    OpPlaybackPause,
	"stop":     OpPlaybackStop,
	"seek":     OpPlaybackSeek,
	"playback": OpPlayback,
}

// ForOperation returns the Op for a playback operation name.
func ForOperation(name string) Op {
	if op, ok := playbackOps[name]; ok {
		return op
	}
	return Op(name)
}

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
