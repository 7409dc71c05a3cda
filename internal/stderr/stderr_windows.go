//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio drivers don't produce the same stderr noise as ALSA.
package stderr

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Capture struct {
	lines chan string
}

// Start returns a capture that never yields lines.
func Start() (*Capture, error) {
	c := &Capture{lines: make(chan string)}
	close(c.lines)
	return c, nil
}

func (c *Capture) Lines() <-chan string { return c.lines }

func (c *Capture) Forward(logrus.FieldLogger) {}

func (c *Capture) Original() *os.File { return os.Stderr }

func (c *Capture) Stop() {}
