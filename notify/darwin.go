//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
)

// osascriptBridge posts through AppleScript's display notification. It
// cannot observe the user's answer, so waits end with an empty event.
type osascriptBridge struct {
	path   string
	logger *log.Logger
	sched  scheduler
}

func newPlatformBridge(_ Config, logger *log.Logger) (Bridge, error) {
	osa, err := exec.LookPath("osascript")
	if err != nil {
		return nil, fmt.Errorf("find osascript: %w", err)
	}
	return &osascriptBridge{path: osa, logger: logger}, nil
}

func (b *osascriptBridge) Deliver(n Native) (<-chan ActivationEvent, error) {
	script := appleScript(n)
	events := make(chan ActivationEvent, 1)
	done := func() {
		if n.Wait {
			events <- ActivationEvent{}
		}
		close(events)
	}

	at, scheduled := n.deliveryTime()
	if !scheduled || !at.After(time.Now()) {
		if err := b.run(script); err != nil {
			return nil, err
		}
		done()
		return events, nil
	}

	fire := func() {
		if err := b.run(script); err != nil {
			b.logger.Warn("scheduled notification failed", "title", n.Title, "error", err)
			close(events)
			return
		}
		done()
	}
	cancel := func() { close(events) }
	if err := b.sched.schedule(time.Until(at), fire, cancel); err != nil {
		return nil, err
	}
	return events, nil
}

func (b *osascriptBridge) run(script string) error {
	out, err := exec.Command(b.path, "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}

func (b *osascriptBridge) Close() error {
	if n := b.sched.pending(); n > 0 {
		b.logger.Debug("cancelling scheduled notifications", "count", n)
	}
	b.sched.stop()
	return nil
}
