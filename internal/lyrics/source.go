package lyrics

import (
	"errors"
	"io/fs"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Extension is the suffix of lyric files stored next to audio files.
const Extension = ".lrc"

// Matches the audio extensions a lyric file can be derived from
var audioExtRe = regexp.MustCompile(`(?i)\.(mp3|wav|flac|m4a|ogg|aac)$`)

// LRCPath returns the lyric file path for an audio file by swapping its
// extension for .lrc. Returns false if the extension is not a known audio
// extension.
func LRCPath(audioPath string) (string, bool) {
	loc := audioExtRe.FindStringIndex(audioPath)
	if loc == nil {
		return "", false
	}
	return audioPath[:loc[0]] + Extension, true
}

// Loader reads lyric files that sit next to audio files.
type Loader struct {
	fs     afero.Fs
	logger logrus.FieldLogger
}

// NewLoader creates a loader reading from fsys.
func NewLoader(fsys afero.Fs, logger logrus.FieldLogger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{fs: fsys, logger: logger}
}

// Load returns the lyrics for an audio file. A missing or unreadable lyric
// file yields an empty index and false; it is never an error for the caller.
func (l *Loader) Load(audioPath string) (*Index, bool) {
	log := l.logger.WithField("path", audioPath)

	lrcPath, ok := LRCPath(audioPath)
	if !ok {
		log.Debug("no lyric path for unrecognized audio extension")
		return Empty(), false
	}

	f, err := l.fs.Open(lrcPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("lrc", lrcPath).Debug("lyric file not found")
		} else {
			log.WithField("lrc", lrcPath).WithError(err).Warn("cannot open lyric file")
		}
		return Empty(), false
	}
	defer f.Close()

	idx, err := Parse(f)
	if err != nil {
		log.WithField("lrc", lrcPath).WithError(err).Warn("cannot read lyric file")
		return Empty(), false
	}

	log.WithField("lines", idx.Len()).Debug("lyrics loaded")
	return idx, true
}
