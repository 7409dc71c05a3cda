package media

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Scanner lists media files in a directory.
type Scanner struct {
	fs     afero.Fs
	logger logrus.FieldLogger
}

// NewScanner creates a scanner reading from fsys.
func NewScanner(fsys afero.Fs, logger logrus.FieldLogger) *Scanner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scanner{fs: fsys, logger: logger}
}

// Scan returns the names of the readable regular files in dir whose
// extension belongs to kind, in directory order (sorted by name). A missing
// or unreadable directory yields an empty list.
func (s *Scanner) Scan(dir string, kind Kind) []string {
	log := s.logger.WithFields(logrus.Fields{"dir": dir, "kind": kind})

	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("directory does not exist")
		} else {
			log.WithError(err).Warn("cannot read directory")
		}
		return []string{}
	}

	files := lo.Filter(infos, func(info os.FileInfo, _ int) bool {
		return info.Mode().IsRegular() && kind.Matches(info.Name())
	})
	names := lo.FilterMap(files, func(info os.FileInfo, _ int) (string, bool) {
		return info.Name(), s.readable(dir, info.Name())
	})

	log.WithField("count", len(names)).Debug("directory scanned")
	return names
}

// readable reports whether the file can be opened for reading.
func (s *Scanner) readable(dir, name string) bool {
	f, err := s.fs.Open(filepath.Join(dir, name))
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Stat returns file information for the named entry of dir.
func (s *Scanner) Stat(dir, name string) (os.FileInfo, error) {
	return s.fs.Stat(filepath.Join(dir, name))
}
