//go:build !windows

// Package stderr redirects file descriptor 2 so that messages written by the
// audio driver (ALSA through oto) reach the logger instead of the terminal.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
)

const bufferSize = 100

// Capture owns the redirected descriptor.
type Capture struct {
	orig  int
	r, w  *os.File
	lines chan string
}

// Start begins capturing stderr output. Call it before the speaker is
// initialized. On error the program continues with the original stderr.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, lines: make(chan string, bufferSize)}
	go c.read()
	return c, nil
}

func (c *Capture) read() {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
		}
	}
}

// Lines returns captured lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string { return c.lines }

// Forward logs every captured line at debug level until Stop.
func (c *Capture) Forward(logger logrus.FieldLogger) {
	go func() {
		for line := range c.lines {
			logger.WithField("source", "stderr").Debug(line)
		}
	}()
}

// Original returns a file writing to the terminal's stderr, bypassing the
// capture. The logger should write here while capture is active.
func (c *Capture) Original() *os.File {
	return os.NewFile(uintptr(c.orig), "stderr")
}

// Stop restores the original stderr.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	c.w.Close()
	c.r.Close()
}
