package playlist

import (
	"path/filepath"
	"strings"
)

// Sequencer wraps a Playlist with a base path and a cyclic cursor.
type Sequencer struct {
	playlist     *Playlist
	basePath     string
	currentIndex int // -1 if nothing selected
}

// NewSequencer creates a new empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Set replaces the playlist with names found in basePath and clears the
// cursor.
func (s *Sequencer) Set(names []string, basePath string) {
	s.playlist.Clear()
	s.basePath = basePath
	s.currentIndex = -1
	for _, name := range names {
		s.playlist.Add(NewTrack(basePath, name))
	}
}

// RecordCurrent moves the cursor to the track loaded from path. The base
// path prefix is stripped to recover the track name. Returns false and
// leaves the cursor unchanged if no track has that name.
func (s *Sequencer) RecordCurrent(path string) bool {
	name := path
	if s.basePath != "" {
		prefix := strings.TrimSuffix(s.basePath, string(filepath.Separator)) + string(filepath.Separator)
		name = strings.TrimPrefix(path, prefix)
	}
	index := s.playlist.IndexOf(name)
	if index < 0 {
		return false
	}
	s.currentIndex = index
	return true
}

// Previous moves the cursor back, wrapping to the last track when at the
// first track or when nothing is selected.
// Returns false on an empty playlist.
func (s *Sequencer) Previous() (Track, bool) {
	if s.IsEmpty() {
		return Track{}, false
	}
	if s.currentIndex > 0 {
		s.currentIndex--
	} else {
		s.currentIndex = s.playlist.Len() - 1
	}
	return s.Current()
}

// Next moves the cursor forward, wrapping from the last track to the first.
// Returns false on an empty playlist.
func (s *Sequencer) Next() (Track, bool) {
	if s.IsEmpty() {
		return Track{}, false
	}
	if s.currentIndex < s.playlist.Len()-1 {
		s.currentIndex++
	} else {
		s.currentIndex = 0
	}
	return s.Current()
}

// RestartOrFirst returns the current track, or selects and returns the
// first one when nothing is selected.
// Returns false on an empty playlist.
func (s *Sequencer) RestartOrFirst() (Track, bool) {
	if t, ok := s.Current(); ok {
		return t, true
	}
	if s.IsEmpty() {
		return Track{}, false
	}
	s.currentIndex = 0
	return s.Current()
}

// Current returns the selected track.
func (s *Sequencer) Current() (Track, bool) {
	t := s.playlist.Track(s.currentIndex)
	if t == nil {
		return Track{}, false
	}
	return *t, true
}

// CurrentIndex returns the index of the selected track (-1 if none).
func (s *Sequencer) CurrentIndex() int {
	return s.currentIndex
}

// BasePath returns the directory the playlist was built from.
func (s *Sequencer) BasePath() string {
	return s.basePath
}

// Tracks returns all tracks in order.
func (s *Sequencer) Tracks() []Track {
	return s.playlist.Tracks()
}

// Names returns the track names in order.
func (s *Sequencer) Names() []string {
	tracks := s.playlist.Tracks()
	names := make([]string, len(tracks))
	for i, t := range tracks {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of tracks.
func (s *Sequencer) Len() int {
	return s.playlist.Len()
}

// IsEmpty returns true if the playlist has no tracks.
func (s *Sequencer) IsEmpty() bool {
	return s.playlist.Len() == 0
}
