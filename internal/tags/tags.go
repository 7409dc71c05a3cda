// Package tags reads artist and album metadata from media files.
package tags

import (
	"strings"

	"github.com/dhowden/tag"
)

// Info contains the tag metadata of one file.
type Info struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Year        int
	TrackNumber int
	TotalTracks int
	Format      string // ID3v2.3, VORBIS, MP4, ...
}

// DisplayArtist returns Artist, falling back to AlbumArtist.
func (i Info) DisplayArtist() string {
	if i.Artist != "" {
		return i.Artist
	}
	return i.AlbumArtist
}

// Summary joins the non-empty artist and album with " - ".
func (i Info) Summary() string {
	parts := make([]string, 0, 2)
	if a := i.DisplayArtist(); a != "" {
		parts = append(parts, a)
	}
	if i.Album != "" {
		parts = append(parts, i.Album)
	}
	return strings.Join(parts, " - ")
}

func fromMetadata(path string, m tag.Metadata) Info {
	track, total := m.Track()
	return Info{
		Path:        path,
		Title:       strings.TrimSpace(m.Title()),
		Artist:      strings.TrimSpace(m.Artist()),
		AlbumArtist: strings.TrimSpace(m.AlbumArtist()),
		Album:       strings.TrimSpace(m.Album()),
		Genre:       m.Genre(),
		Year:        m.Year(),
		TrackNumber: track,
		TotalTracks: total,
		Format:      string(m.Format()),
	}
}
