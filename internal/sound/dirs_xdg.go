//go:build !darwin

package sound

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// systemDirs returns the stereo directory of every installed sound theme,
// e.g. /usr/share/sounds/freedesktop/stereo.
func systemDirs() []string {
	roots := append([]string{xdg.DataHome}, xdg.DataDirs...)
	var dirs []string
	for _, root := range roots {
		themes, err := os.ReadDir(filepath.Join(root, "sounds"))
		if err != nil {
			continue
		}
		for _, theme := range themes {
			if theme.IsDir() {
				dirs = append(dirs, filepath.Join(root, "sounds", theme.Name(), "stereo"))
			}
		}
	}
	return dirs
}
