package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/cadence/internal/playback"
)

var errUnknownCommand = errors.New("unknown command")

// command is one line typed on the play prompt.
type command struct {
	name string
	pos  time.Duration
}

const helpText = "p play/pause, n next, b previous, s stop, seek <1m30s>, ls list, q quit"

// parseCommand reads one prompt line.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, nil
	}
	switch name := strings.ToLower(fields[0]); name {
	case "p", "n", "b", "s", "q", "ls", "?":
		if len(fields) > 1 {
			return command{}, fmt.Errorf("%s takes no argument", name)
		}
		return command{name: name}, nil
	case "seek":
		if len(fields) != 2 {
			return command{}, errors.New("usage: seek <duration>")
		}
		pos, err := time.ParseDuration(fields[1])
		if err != nil {
			return command{}, fmt.Errorf("seek: %w", err)
		}
		return command{name: name, pos: pos}, nil
	default:
		return command{}, fmt.Errorf("%w %q", errUnknownCommand, fields[0])
	}
}

// apply runs a transport command on the service. Prompt-only commands are
// handled by the caller.
func (c command) apply(s *playback.Service) {
	switch c.name {
	case "p":
		s.TogglePlayPause()
	case "n":
		s.Next()
	case "b":
		s.Previous()
	case "s":
		s.Stop()
	case "seek":
		s.Seek(c.pos)
	}
}
