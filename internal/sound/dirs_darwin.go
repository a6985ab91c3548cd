//go:build darwin

package sound

import (
	"os"
	"path/filepath"
)

func systemDirs() []string {
	dirs := []string{"/System/Library/Sounds", "/Library/Sounds"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Library", "Sounds"))
	}
	return dirs
}
