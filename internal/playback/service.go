// internal/playback/service.go
package playback

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/media"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/tags"
)

// Operation names carried by ErrorEvent.
const (
	OpLoad   = "load"
	OpPlay   = "play"
	OpPause  = "pause"
	OpStop   = "stop"
	OpSeek   = "seek"
	OpPlayer = "playback"
)

// TagReader reads artist and album information for a track.
type TagReader interface {
	Read(path string) (tags.Info, error)
}

// Options configures a Service.
type Options struct {
	Kind    media.Kind
	Lyrics  *lyrics.Loader // nil disables lyrics
	Scanner *media.Scanner
	Tags    TagReader
	Logger  logrus.FieldLogger
}

// Service drives one media backend for one media kind. It is not safe for
// concurrent use; run it behind a Loop when more than one goroutine needs it.
type Service struct {
	backend player.Backend
	kind    media.Kind
	seq     *playlist.Sequencer
	loader  *lyrics.Loader
	scanner *media.Scanner
	tags    TagReader
	logger  logrus.FieldLogger

	path      string
	title     TitleChange
	state     State
	position  time.Duration
	duration  time.Duration
	lyrics    *lyrics.Index
	highlight int

	subs   []*Subscription
	subsMu sync.Mutex
	closed bool
}

// New creates a playback service over backend.
func New(backend player.Backend, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		backend:   backend,
		kind:      opts.Kind,
		seq:       playlist.NewSequencer(),
		loader:    opts.Lyrics,
		scanner:   opts.Scanner,
		tags:      opts.Tags,
		logger:    logger.WithField("kind", opts.Kind.String()),
		state:     StateStopped,
		lyrics:    lyrics.Empty(),
		highlight: -1,
	}
}

// Load plays path and announces its title, lyrics and cover.
func (s *Service) Load(path string) {
	if path == "" {
		s.logger.Debug("load ignored: empty path")
		return
	}

	s.seq.RecordCurrent(path)

	if err := s.backend.SetSource(path); err != nil {
		s.fail(OpLoad, path, err)
		return
	}
	if err := s.backend.Play(); err != nil {
		s.fail(OpPlay, path, err)
		return
	}

	prev := s.state
	s.path = path
	s.state = StatePlaying
	s.position = 0
	s.duration = 0
	s.lyrics = lyrics.Empty()
	s.highlight = -1
	s.logger.WithField("path", path).Info("playing")

	s.publish(StateChange{Previous: prev, Current: StatePlaying})

	s.title = s.readTitle(path)
	s.publish(s.title)

	if s.kind != media.Audio {
		return
	}

	found := false
	if s.loader != nil {
		s.lyrics, found = s.loader.Load(path)
	}
	s.publish(LyricsChange{Lines: s.lyrics.Texts(), Found: found})
	s.publish(CoverChange{Image: PlaceholderCover(), Placeholder: true})
}

func (s *Service) readTitle(path string) TitleChange {
	tc := TitleChange{Path: path, Title: filepath.Base(path)}
	if s.tags == nil {
		return tc
	}
	info, err := s.tags.Read(path)
	if err != nil {
		s.logger.WithField("path", path).WithError(err).Debug("no tags")
		return tc
	}
	tc.Artist = info.Artist
	tc.Album = info.Album
	return tc
}

// TogglePlayPause pauses, resumes, or restarts from the sequencer when stopped.
func (s *Service) TogglePlayPause() {
	switch s.state {
	case StatePlaying:
		if err := s.backend.Pause(); err != nil {
			s.fail(OpPause, s.path, err)
			return
		}
		s.setState(StatePaused)
	case StatePaused:
		if err := s.backend.Play(); err != nil {
			s.fail(OpPlay, s.path, err)
			return
		}
		s.setState(StatePlaying)
	default:
		t, ok := s.seq.RestartOrFirst()
		if !ok {
			s.logger.Debug("toggle ignored: empty playlist")
			return
		}
		s.Load(t.Path)
	}
}

// Stop halts playback. The current track stays selected.
func (s *Service) Stop() {
	if s.state == StateStopped {
		return
	}
	if err := s.backend.Stop(); err != nil {
		s.fail(OpStop, s.path, err)
		return
	}
	s.setState(StateStopped)
}

// Seek moves to pos. Positions outside [0, duration] are ignored.
func (s *Service) Seek(pos time.Duration) {
	if pos < 0 || pos > s.duration {
		s.logger.WithFields(logrus.Fields{
			"position": pos,
			"duration": s.duration,
		}).Debug("seek ignored: out of range")
		return
	}
	if err := s.backend.SetPosition(pos); err != nil {
		s.fail(OpSeek, s.path, err)
	}
}

// Next loads the following track, wrapping to the first.
func (s *Service) Next() {
	t, ok := s.seq.Next()
	if !ok {
		s.logger.Debug("next ignored: empty playlist")
		return
	}
	s.Load(t.Path)
}

// Previous loads the preceding track, wrapping to the last.
func (s *Service) Previous() {
	t, ok := s.seq.Previous()
	if !ok {
		s.logger.Debug("previous ignored: empty playlist")
		return
	}
	s.Load(t.Path)
}

// SetPlaylist replaces the playlist and clears the cursor.
func (s *Service) SetPlaylist(names []string, basePath string) {
	s.seq.Set(names, basePath)
}

// Resume points the cursor at path without playing it, so that the next
// stopped toggle restarts it.
func (s *Service) Resume(path string) bool {
	return s.seq.RecordCurrent(path)
}

// Scan lists dir for files of the service's kind and makes them the playlist.
func (s *Service) Scan(dir string) []string {
	if s.scanner == nil {
		s.logger.Warn("scan ignored: no scanner configured")
		return []string{}
	}
	names := s.scanner.Scan(dir, s.kind)
	s.SetPlaylist(names, dir)
	s.publish(ListUpdated{Kind: s.kind, Names: names})
	return names
}

// HandleEvent applies a backend event to the session.
func (s *Service) HandleEvent(ev player.Event) {
	switch ev.Kind {
	case player.PositionChanged:
		s.position = ev.Position
		s.publish(PositionChange{Position: s.position, Duration: s.duration})
		s.updateHighlight()
	case player.DurationChanged:
		s.duration = ev.Duration
		s.publish(PositionChange{Position: s.position, Duration: s.duration})
	case player.StateChanged:
		s.setState(fromPlayerState(ev.State))
	case player.ErrorOccurred:
		s.fail(OpPlayer, s.path, ev.Err)
	}
}

func (s *Service) updateHighlight() {
	idx := s.lyrics.Resolve(s.position)
	if idx == s.highlight {
		return
	}
	s.highlight = idx
	s.publish(HighlightChange{Index: idx})
}

func (s *Service) setState(next State) {
	if s.state == next {
		return
	}
	prev := s.state
	s.state = next
	s.publish(StateChange{Previous: prev, Current: next})
}

// fail logs err with its classification and publishes it. The session state
// is left untouched so the caller can retry.
func (s *Service) fail(op, path string, err error) {
	kind := player.Classify(err)
	s.logger.WithFields(logrus.Fields{
		"op":     op,
		"path":   path,
		"reason": kind.String(),
	}).WithError(err).Warn(kind.Description())
	s.publish(ErrorEvent{Operation: op, Path: path, Kind: kind, Err: err})
}

// State returns the current playback state.
func (s *Service) State() State { return s.state }

// Kind returns the media kind this service plays.
func (s *Service) Kind() media.Kind { return s.kind }

// Position returns the last reported playback position.
func (s *Service) Position() time.Duration { return s.position }

// Duration returns the last reported duration of the loaded media.
func (s *Service) Duration() time.Duration { return s.duration }

// CurrentPath returns the loaded path, or "" before the first load.
func (s *Service) CurrentPath() string { return s.path }

// Title returns the last announced title.
func (s *Service) Title() TitleChange { return s.title }

// CurrentIndex returns the playlist cursor (-1 if none).
func (s *Service) CurrentIndex() int { return s.seq.CurrentIndex() }

// Tracks returns a copy of the playlist.
func (s *Service) Tracks() []playlist.Track { return s.seq.Tracks() }

// BasePath returns the directory of the current playlist.
func (s *Service) BasePath() string { return s.seq.BasePath() }

// LyricTexts returns the loaded lyric lines in display order.
func (s *Service) LyricTexts() []string { return s.lyrics.Texts() }

// Highlight returns the last published lyric index.
func (s *Service) Highlight() int { return s.highlight }

// Snapshot is a copy of the session for readers outside the loop.
type Snapshot struct {
	Kind      media.Kind
	State     State
	Path      string
	Title     TitleChange
	Position  time.Duration
	Duration  time.Duration
	Index     int
	Tracks    []string
	Lyrics    []string
	Highlight int
}

// Snapshot copies the current session.
func (s *Service) Snapshot() Snapshot {
	return Snapshot{
		Kind:      s.kind,
		State:     s.state,
		Path:      s.path,
		Title:     s.title,
		Position:  s.position,
		Duration:  s.duration,
		Index:     s.seq.CurrentIndex(),
		Tracks:    s.seq.Names(),
		Lyrics:    s.lyrics.Texts(),
		Highlight: s.highlight,
	}
}

// Subscribe creates a new event subscription.
func (s *Service) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

func (s *Service) publish(e Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		if !sub.send(e) {
			s.logger.WithField("event", e).Trace("subscriber lagging, event dropped")
		}
	}
}

// Close shuts down the service and its backend.
func (s *Service) Close() error {
	s.subsMu.Lock()
	if s.closed {
		s.subsMu.Unlock()
		return nil
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return s.backend.Close()
}
