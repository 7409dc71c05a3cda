package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	speakerSampleRate = beep.SampleRate(44100)
	resampleQuality   = 4
	beepEventBuffer   = 64
	positionInterval  = 100 * time.Millisecond
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
	})
	return speakerErr
}

// BeepBackend plays local audio files through the system speaker.
type BeepBackend struct {
	mu       sync.Mutex
	state    State
	path     string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	queued   bool
	gen      int

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewBeepBackend creates an audio backend. The speaker is initialized on the
// first Play.
func NewBeepBackend() *BeepBackend {
	b := &BeepBackend{
		state:  Stopped,
		events: make(chan Event, beepEventBuffer),
		done:   make(chan struct{}),
	}
	go b.reportPosition()
	return b
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// SetSource opens and decodes path, then replaces the current media. On
// failure the current media is left untouched.
func (b *BeepBackend) SetSource(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return NewError(path, err)
	}
	streamer, format, err := decode(path, f)
	if err != nil {
		f.Close()
		if Classify(err) == ErrUnknown {
			return &Error{Kind: ErrFormat, Path: path, Err: err}
		}
		return NewError(path, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// The current media keeps playing until the new one has decoded.
	b.release()

	b.path = path
	b.file = f
	b.streamer = streamer
	b.format = format
	b.state = Stopped

	emit(b.events, DurationEvent(format.SampleRate.D(streamer.Len())))
	emit(b.events, PositionEvent(0))
	return nil
}

// Play starts or resumes playback.
func (b *BeepBackend) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.streamer == nil {
		return ErrNoSource
	}
	if b.state == Playing {
		return nil
	}
	if err := initSpeaker(); err != nil {
		return &Error{Kind: ErrResource, Path: b.path, Err: err}
	}

	if b.queued {
		speaker.Lock()
		b.ctrl.Paused = false
		speaker.Unlock()
	} else {
		var s beep.Streamer = b.streamer
		if b.format.SampleRate != speakerSampleRate {
			s = beep.Resample(resampleQuality, b.format.SampleRate, speakerSampleRate, s)
		}
		b.gen++
		gen := b.gen
		b.ctrl = &beep.Ctrl{Streamer: s}
		b.queued = true
		// The callback runs with the speaker locked.
		speaker.Play(beep.Seq(b.ctrl, beep.Callback(func() {
			go b.finished(gen)
		})))
	}

	b.setState(Playing)
	return nil
}

// Pause suspends playback, keeping the position.
func (b *BeepBackend) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Playing || b.ctrl == nil {
		return nil
	}
	speaker.Lock()
	b.ctrl.Paused = true
	speaker.Unlock()
	b.setState(Paused)
	return nil
}

// Stop halts playback and rewinds to the start of the media.
func (b *BeepBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == Stopped {
		return nil
	}
	b.dequeue()
	if b.streamer != nil {
		speaker.Lock()
		_ = b.streamer.Seek(0)
		speaker.Unlock()
	}
	b.setState(Stopped)
	emit(b.events, PositionEvent(0))
	return nil
}

// SetPosition seeks within the loaded media.
func (b *BeepBackend) SetPosition(pos time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.streamer == nil {
		return ErrNoSource
	}
	n := b.format.SampleRate.N(pos)
	if last := b.streamer.Len() - 1; n > last {
		n = max(last, 0)
	}

	speaker.Lock()
	err := b.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		return NewError(b.path, err)
	}
	emit(b.events, PositionEvent(b.format.SampleRate.D(n)))
	return nil
}

func (b *BeepBackend) Events() <-chan Event { return b.events }

// Close stops playback and releases the decoder.
func (b *BeepBackend) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
		b.mu.Lock()
		b.release()
		b.mu.Unlock()
	})
	return nil
}

func (b *BeepBackend) finished(gen int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen || !b.queued {
		return
	}
	b.queued = false
	b.ctrl = nil
	b.setState(Stopped)
}

func (b *BeepBackend) reportPosition() {
	ticker := time.NewTicker(positionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			b.mu.Lock()
			if b.state == Playing && b.streamer != nil {
				speaker.Lock()
				pos := b.format.SampleRate.D(b.streamer.Position())
				speaker.Unlock()
				emit(b.events, PositionEvent(pos))
			}
			b.mu.Unlock()
		}
	}
}

func (b *BeepBackend) setState(s State) {
	if b.state == s {
		return
	}
	b.state = s
	emit(b.events, StateEvent(s))
}

// dequeue removes the streamer from the speaker. Must hold b.mu.
func (b *BeepBackend) dequeue() {
	if !b.queued {
		return
	}
	speaker.Clear()
	b.queued = false
	b.ctrl = nil
	b.gen++
}

// release drops the current media. Must hold b.mu.
func (b *BeepBackend) release() {
	b.dequeue()
	if b.streamer != nil {
		b.streamer.Close()
		b.streamer = nil
	}
	if b.file != nil {
		b.file.Close()
		b.file = nil
	}
	// The caller reports the resulting state: SetSource is followed by Play,
	// and Close ends the event stream.
	b.state = Stopped
	b.path = ""
}

var _ Backend = (*BeepBackend)(nil)
