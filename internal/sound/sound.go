// Package sound validates notification sound names against the sounds
// installed on the system.
package sound

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const (
	// Mute is the reserved name that tells a bridge to play no sound.
	Mute = "_mute"
	// Default is always known and selects the platform default sound.
	Default = "Default"
)

// Set is a read-only collection of sound names.
type Set struct {
	names map[string]struct{}
}

// NewSet builds a Set from the sound files found directly in dirs.
// Missing or unreadable directories are skipped.
func NewSet(dirs ...string) *Set {
	s := &Set{names: map[string]struct{}{Default: {}}}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			if name != "" {
				s.names[name] = struct{}{}
			}
		}
	}
	return s
}

// Contains reports whether name is in the set. Mute never is.
func (s *Set) Contains(name string) bool {
	if name == Mute {
		return false
	}
	_, ok := s.names[name]
	return ok
}

// Names returns the sorted sound names.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	systemOnce sync.Once
	system     *Set
)

// System returns the system sound set, enumerated on first use.
func System() *Set {
	systemOnce.Do(func() {
		system = NewSet(systemDirs()...)
	})
	return system
}

// IsKnown reports whether name is a system notification sound.
func IsKnown(name string) bool {
	return System().Contains(name)
}
