package playlist

import "path/filepath"

// Track represents a single entry of a scanned directory.
type Track struct {
	Name string // display name, as listed by the scan
	Path string // file path for playback
}

// NewTrack builds a track for name inside basePath.
func NewTrack(basePath, name string) Track {
	path := name
	if basePath != "" {
		path = filepath.Join(basePath, name)
	}
	return Track{Name: name, Path: path}
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IndexOf returns the index of the first track named name, or -1.
func (p *Playlist) IndexOf(name string) int {
	for i := range p.tracks {
		if p.tracks[i].Name == name {
			return i
		}
	}
	return -1
}
