//go:build linux

// Package mpris exposes a playback loop to desktop media keys over D-Bus.
package mpris

import (
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/llehouerou/cadence/internal/playback"
)

// ErrLoopStopped is returned by MPRIS calls once the playback loop has ended.
var ErrLoopStopped = errors.New("playback loop stopped")

// Adapter connects a playback loop to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	logger logrus.FieldLogger
}

// New creates and starts an MPRIS adapter for loop.
func New(loop *playback.Loop, fsys afero.Fs, logger logrus.FieldLogger) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("cadence", &rootAdapter{}, &playerAdapter{loop: loop, fs: fsys}),
		logger: logger,
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			a.logger.WithError(err).Warn("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "Cadence", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{
		"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg",
		"video/mp4", "video/x-matroska",
	}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Commands are
// queued on the loop; reads are answered by it.
type playerAdapter struct {
	loop *playback.Loop
	fs   afero.Fs
}

func (p *playerAdapter) do(fn func(*playback.Service)) error {
	if !p.loop.Do(fn) {
		return ErrLoopStopped
	}
	return nil
}

func (p *playerAdapter) snapshot() (playback.Snapshot, error) {
	snap, ok := playback.Call(p.loop, (*playback.Service).Snapshot)
	if !ok {
		return snap, ErrLoopStopped
	}
	return snap, nil
}

func (p *playerAdapter) Next() error {
	return p.do((*playback.Service).Next)
}

func (p *playerAdapter) Previous() error {
	return p.do((*playback.Service).Previous)
}

func (p *playerAdapter) Pause() error {
	return p.do(func(s *playback.Service) {
		if s.State() == playback.StatePlaying {
			s.TogglePlayPause()
		}
	})
}

func (p *playerAdapter) PlayPause() error {
	return p.do((*playback.Service).TogglePlayPause)
}

func (p *playerAdapter) Stop() error {
	return p.do((*playback.Service).Stop)
}

func (p *playerAdapter) Play() error {
	return p.do(func(s *playback.Service) {
		if s.State() != playback.StatePlaying {
			s.TogglePlayPause()
		}
	})
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.do(func(s *playback.Service) {
		s.Seek(s.Position() + time.Duration(offset)*time.Microsecond)
	})
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.do(func(s *playback.Service) {
		s.Seek(time.Duration(position) * time.Microsecond)
	})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	state, ok := playback.Call(p.loop, (*playback.Service).State)
	if !ok {
		return types.PlaybackStatusStopped, ErrLoopStopped
	}
	return playbackStatus(state), nil
}

func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	default:
		return types.PlaybackStatusStopped
	}
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap, err := p.snapshot()
	if err != nil || snap.Path == "" {
		return types.Metadata{}, err
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(trackID(snap.Path)),
		Length:  types.Microseconds(snap.Duration.Microseconds()),
		Title:   snap.Title.Title,
		Album:   snap.Title.Album,
	}
	if snap.Title.Artist != "" {
		meta.Artist = []string{snap.Title.Artist}
	}
	if art := folderCover(p.fs, snap.Path); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Position() (int64, error) {
	pos, ok := playback.Call(p.loop, (*playback.Service).Position)
	if !ok {
		return 0, ErrLoopStopped
	}
	return pos.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

// Navigation wraps around, so next and previous are available whenever the
// playlist is not empty.
func (p *playerAdapter) hasTracks() (bool, error) {
	n, ok := playback.Call(p.loop, func(s *playback.Service) int { return len(s.Tracks()) })
	if !ok {
		return false, ErrLoopStopped
	}
	return n > 0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) { return p.hasTracks() }

func (p *playerAdapter) CanGoPrevious() (bool, error) { return p.hasTracks() }

func (p *playerAdapter) CanPlay() (bool, error) { return p.hasTracks() }

func (p *playerAdapter) CanPause() (bool, error) { return true, nil }

func (p *playerAdapter) CanSeek() (bool, error) { return true, nil }

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func trackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
