package notify

import (
	"fmt"
	"strings"

	"github.com/llehouerou/desknotify/internal/sound"
)

// appleScript renders n as a display notification command.
func appleScript(n Native) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "display notification %s with title %s", quoteAppleScript(n.Body), quoteAppleScript(n.Title))
	if n.Subtitle != "" {
		fmt.Fprintf(&sb, " subtitle %s", quoteAppleScript(n.Subtitle))
	}
	if s := n.Fields.Sound; s != sound.Mute && s != sound.Default && s != "" {
		fmt.Fprintf(&sb, " sound name %s", quoteAppleScript(s))
	}
	return sb.String()
}

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteAppleScript(s string) string {
	return `"` + appleScriptEscaper.Replace(s) + `"`
}
