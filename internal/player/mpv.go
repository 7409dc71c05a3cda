package player

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	socketWaitRetries = 20
	socketWaitDelay   = 150 * time.Millisecond
	quitTimeout       = 3 * time.Second
	mpvEventBuffer    = 64
)

// Observed property ids.
const (
	obsTimePos = iota + 1
	obsDuration
	obsPause
	obsIdle
)

var observed = []struct {
	id   int
	name string
}{
	{obsTimePos, "time-pos"},
	{obsDuration, "duration"},
	{obsPause, "pause"},
	{obsIdle, "idle-active"},
}

// MPVOptions configures the mpv video backend.
type MPVOptions struct {
	Binary string
	Args   []string
	Logger logrus.FieldLogger
}

// MPVBackend renders video in an external mpv process driven over JSON IPC.
type MPVBackend struct {
	socketPath string
	cmd        *exec.Cmd
	conn       net.Conn
	exited     chan struct{}
	logger     logrus.FieldLogger

	mu     sync.Mutex // protects socket writes
	events chan Event

	closeOnce sync.Once
}

// ipcCommand is the JSON line written to mpv.
type ipcCommand struct {
	Command []any `json:"command"`
}

// ipcMessage is any JSON line read from mpv: a reply or an event.
type ipcMessage struct {
	Event     string          `json:"event"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Reason    string          `json:"reason"`
	FileError string          `json:"file_error"`
}

// NewMPVBackend starts an idle mpv process and connects to its IPC socket.
func NewMPVBackend(opts MPVOptions) (*MPVBackend, error) {
	binary := opts.Binary
	if binary == "" {
		binary = "mpv"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("generate socket name: %w", err)
	}
	socketPath := filepath.Join(os.TempDir(), fmt.Sprintf("cadence-%x.sock", randomBytes))

	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=no",
		"--pause=yes",
		"--input-ipc-server=" + socketPath,
	}
	args = append(args, opts.Args...)

	cmd := exec.Command(binary, args...)
	cmd.SysProcAttr = sysProcAttr()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	m := &MPVBackend{
		socketPath: socketPath,
		cmd:        cmd,
		exited:     make(chan struct{}),
		logger:     logger.WithField("backend", "mpv"),
		events:     make(chan Event, mpvEventBuffer),
	}
	go func() {
		_ = cmd.Wait()
		close(m.exited)
	}()

	conn, err := m.dial()
	if err != nil {
		_ = killProcess(cmd)
		return nil, fmt.Errorf("mpv socket not ready: %w", err)
	}
	m.conn = conn

	for _, p := range observed {
		if err := m.send("observe_property", p.id, p.name); err != nil {
			m.Close()
			return nil, fmt.Errorf("observe %s: %w", p.name, err)
		}
	}

	go m.readLoop()
	m.logger.WithField("socket", socketPath).Debug("mpv started")
	return m, nil
}

// dial polls until the IPC socket accepts connections.
func (m *MPVBackend) dial() (net.Conn, error) {
	for range socketWaitRetries {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return nil, errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			return conn, nil
		}
	}
	return nil, fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPVBackend) send(command ...any) error {
	payload, err := json.Marshal(ipcCommand{Command: command})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// SetSource loads path paused; Play starts it.
func (m *MPVBackend) SetSource(path string) error {
	if _, err := os.Stat(path); err != nil {
		return NewError(path, err)
	}
	if err := m.send("set_property", "pause", true); err != nil {
		return NewError(path, err)
	}
	if err := m.send("loadfile", path, "replace"); err != nil {
		return NewError(path, err)
	}
	return nil
}

func (m *MPVBackend) Play() error {
	return m.send("set_property", "pause", false)
}

func (m *MPVBackend) Pause() error {
	return m.send("set_property", "pause", true)
}

func (m *MPVBackend) Stop() error {
	return m.send("stop")
}

func (m *MPVBackend) SetPosition(pos time.Duration) error {
	return m.send("seek", pos.Seconds(), "absolute")
}

func (m *MPVBackend) Events() <-chan Event { return m.events }

// Close quits mpv, killing it if it does not exit in time.
func (m *MPVBackend) Close() error {
	m.closeOnce.Do(func() {
		if m.conn != nil {
			_ = m.send("quit")
		}

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}

		if m.conn != nil {
			m.conn.Close()
		}
		_ = os.Remove(m.socketPath)
	})
	return nil
}

func (m *MPVBackend) readLoop() {
	var t mpvTranslator
	scanner := bufio.NewScanner(m.conn)
	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			m.logger.WithError(err).Debug("skipping unparseable mpv line")
			continue
		}
		for _, ev := range t.translate(msg) {
			emit(m.events, ev)
		}
	}
	if err := scanner.Err(); err != nil {
		select {
		case <-m.exited:
		default:
			m.logger.WithError(err).Warn("mpv event read failed")
		}
	}
}

// mpvTranslator turns mpv IPC messages into backend events. mpv reports pause
// and idle separately, so it tracks both to derive the transport state.
type mpvTranslator struct {
	loaded bool
	paused bool
	state  State
}

func (t *mpvTranslator) translate(msg ipcMessage) []Event {
	switch msg.Event {
	case "":
		if msg.Error != "" && msg.Error != "success" {
			return []Event{ErrorEvent(fmt.Errorf("mpv: %s", msg.Error))}
		}
		return nil
	case "property-change":
		return t.property(msg.Name, msg.Data)
	case "file-loaded":
		t.loaded = true
		if !t.paused {
			return t.setState(Playing)
		}
		return nil
	case "end-file":
		t.loaded = false
		switch msg.Reason {
		case "error":
			return append([]Event{ErrorEvent(fileError(msg.FileError))}, t.setState(Stopped)...)
		case "eof", "quit":
			return t.setState(Stopped)
		default:
			// "stop" precedes a replacing loadfile; idle-active reports a real stop.
			return nil
		}
	default:
		return nil
	}
}

func (t *mpvTranslator) property(name string, data json.RawMessage) []Event {
	switch name {
	case "time-pos":
		if secs, ok := seconds(data); ok {
			return []Event{PositionEvent(secs)}
		}
	case "duration":
		if secs, ok := seconds(data); ok {
			return []Event{DurationEvent(secs)}
		}
	case "pause":
		var paused bool
		if json.Unmarshal(data, &paused) != nil {
			return nil
		}
		t.paused = paused
		if !t.loaded {
			return nil
		}
		if paused {
			if t.state == Playing {
				return t.setState(Paused)
			}
			return nil
		}
		return t.setState(Playing)
	case "idle-active":
		var idle bool
		if json.Unmarshal(data, &idle) != nil || !idle {
			return nil
		}
		t.loaded = false
		return t.setState(Stopped)
	}
	return nil
}

func (t *mpvTranslator) setState(s State) []Event {
	if t.state == s {
		return nil
	}
	t.state = s
	return []Event{StateEvent(s)}
}

// seconds decodes an mpv time property; null means unavailable.
func seconds(data json.RawMessage) (time.Duration, bool) {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil || v == nil {
		return 0, false
	}
	return time.Duration(math.Round(*v*1000)) * time.Millisecond, true
}

func fileError(reason string) error {
	err := fmt.Errorf("mpv: %s", reason)
	lower := strings.ToLower(reason)
	switch {
	case strings.Contains(lower, "permission"):
		return &Error{Kind: ErrAccessDenied, Err: err}
	case strings.Contains(lower, "no such file"), strings.Contains(lower, "not found"):
		return &Error{Kind: ErrResource, Err: err}
	case strings.Contains(lower, "network"), strings.Contains(lower, "http"):
		return &Error{Kind: ErrNetwork, Err: err}
	default:
		return &Error{Kind: ErrFormat, Err: err}
	}
}

var _ Backend = (*MPVBackend)(nil)
