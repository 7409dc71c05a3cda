package tags

import (
	"errors"
	"fmt"

	"github.com/dhowden/tag"
	"github.com/spf13/afero"
)

// ErrNoTags is returned when a file carries no recognizable tags.
var ErrNoTags = errors.New("no tags found")

// Reader reads tags through a filesystem.
type Reader struct {
	fs afero.Fs
}

// NewReader creates a tag reader over fsys.
func NewReader(fsys afero.Fs) *Reader {
	return &Reader{fs: fsys}
}

// Read reads tag metadata from the file at path.
func (r *Reader) Read(path string) (Info, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return Info{}, fmt.Errorf("%s: %w", path, ErrNoTags)
	}
	if err != nil {
		return Info{}, fmt.Errorf("read tags %s: %w", path, err)
	}
	return fromMetadata(path, m), nil
}
