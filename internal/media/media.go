// Package media lists local audio and video files.
package media

import (
	"path/filepath"
	"slices"
	"strings"
)

// Kind is the type of media a component handles.
type Kind int

const (
	Audio Kind = iota
	Video
)

// File extensions.
const (
	ExtMP3  = ".mp3"
	ExtWAV  = ".wav"
	ExtFLAC = ".flac"
	ExtM4A  = ".m4a"
	ExtOGG  = ".ogg"
	ExtAAC  = ".aac"

	ExtMP4 = ".mp4"
	ExtAVI = ".avi"
	ExtMKV = ".mkv"
	ExtMOV = ".mov"
	ExtWMV = ".wmv"
	ExtFLV = ".flv"
)

var (
	audioExts = []string{ExtMP3, ExtWAV, ExtFLAC, ExtM4A, ExtOGG, ExtAAC}
	videoExts = []string{ExtMP4, ExtAVI, ExtMKV, ExtMOV, ExtWMV, ExtFLV}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Audio:
		return "audio"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

// Extensions returns the file extensions of the kind, with leading dot.
func (k Kind) Extensions() []string {
	switch k {
	case Audio:
		return slices.Clone(audioExts)
	case Video:
		return slices.Clone(videoExts)
	default:
		return nil
	}
}

// Matches reports whether name has one of the kind's extensions,
// ignoring case.
func (k Kind) Matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	switch k {
	case Audio:
		return slices.Contains(audioExts, ext)
	case Video:
		return slices.Contains(videoExts, ext)
	default:
		return false
	}
}

// KindOf returns the kind matching path's extension.
func KindOf(path string) (Kind, bool) {
	switch {
	case Audio.Matches(path):
		return Audio, true
	case Video.Matches(path):
		return Video, true
	}
	return Audio, false
}
