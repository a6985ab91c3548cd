// Package logging builds the charmbracelet logger shared by the CLI and the
// notify package.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a text logger writing to w at the named level. Unknown
// levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "desknotify",
		ReportTimestamp: lvl == log.DebugLevel,
	})
}
