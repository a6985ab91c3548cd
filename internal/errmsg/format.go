// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/desknotify/notify"
)

// Op represents an operation that can fail.
type Op string

const (
	OpConfigLoad   Op = "load configuration"
	OpBridgeOpen   Op = "connect to the notification center"
	OpNotifySend   Op = "send notification"
	OpParseOptions Op = "parse notification options"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	if hint := hintFor(err); hint != "" {
		return fmt.Sprintf("Failed to %s: %v (%s)", op, err, hint)
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

func hintFor(err error) string {
	if errors.Is(err, notify.ErrBridgeRejected) {
		return "are notifications enabled for this session?"
	}
	return ""
}
