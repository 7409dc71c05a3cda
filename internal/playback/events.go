package playback

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"github.com/llehouerou/cadence/internal/media"
	"github.com/llehouerou/cadence/internal/player"
)

// Event is published to subscribers. The concrete types below are the only
// implementations.
type Event interface {
	event()
}

// ListUpdated is emitted when a scan replaces the playlist.
type ListUpdated struct {
	Kind  media.Kind
	Names []string
}

// LyricsChange is emitted after every audio load. Lines is empty when no
// lyric file was found.
type LyricsChange struct {
	Lines []string
	Found bool
}

// HighlightChange is emitted when the active lyric line changes. Index is -1
// before the first line.
type HighlightChange struct {
	Index int
}

// CoverChange carries the cover for the loaded track.
type CoverChange struct {
	Image       image.Image
	Placeholder bool
}

// PositionChange republishes backend position and duration updates.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// StateChange is emitted when playback state changes.
//
// Emitted by:
//   - Load: always, as the playback-started event
//   - TogglePlayPause/Stop: when the transport state changes
//   - HandleEvent: when the backend reports a different state (end of media)
type StateChange struct {
	Previous State
	Current  State
}

// TitleChange is emitted after a load. Title is the file name; Artist and
// Album come from tags when available.
type TitleChange struct {
	Path   string
	Title  string
	Artist string
	Album  string
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "load", "seek"
	Path      string // track path if applicable
	Kind      player.ErrorKind
	Err       error
}

func (ListUpdated) event()     {}
func (LyricsChange) event()    {}
func (HighlightChange) event() {}
func (CoverChange) event()     {}
func (PositionChange) event()  {}
func (StateChange) event()     {}
func (TitleChange) event()     {}
func (ErrorEvent) event()      {}

const coverSize = 300

var placeholderGray = color.Gray{Y: 0x80}

// PlaceholderCover returns the shared cover shown when no artwork is loaded.
var PlaceholderCover = sync.OnceValue(func() image.Image {
	img := image.NewGray(image.Rect(0, 0, coverSize, coverSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderGray), image.Point{}, draw.Src)
	return img
})
