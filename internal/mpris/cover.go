package mpris

import (
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// coverNames lists folder image names in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "folder.jpg", "folder.png", "front.jpg", "front.png",
}

// folderCover returns the first cover image next to trackPath, or "".
func folderCover(fsys afero.Fs, trackPath string) string {
	if trackPath == "" {
		return ""
	}
	dir := filepath.Dir(trackPath)
	name, ok := lo.Find(coverNames, func(n string) bool {
		ok, err := afero.Exists(fsys, filepath.Join(dir, n))
		return ok && err == nil
	})
	if !ok {
		return ""
	}
	return filepath.Join(dir, name)
}
