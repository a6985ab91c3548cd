// Package notify posts interactive desktop notifications and reports how
// the user answered them.
//
// Options are flattened into a Mapping, handed to the platform Bridge, and
// the bridge's ActivationEvent is decoded back into a Response. On Linux
// the bridge talks to org.freedesktop.Notifications over D-Bus; on macOS
// it posts through osascript.
package notify

import (
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultAppName identifies notifications when no application is set.
const DefaultAppName = "desknotify"

// Native is a notification as handed to a Bridge.
type Native struct {
	Title    string
	Subtitle string
	Body     string
	Fields   Mapping
	// Wait is set when the caller blocks for the activation event.
	Wait bool
}

// deliveryTime returns the scheduled delivery time, if any.
func (n Native) deliveryTime() (time.Time, bool) {
	if n.Fields.DeliveryDate == "" {
		return time.Time{}, false
	}
	secs, err := strconv.ParseFloat(n.Fields.DeliveryDate, 64)
	if err != nil {
		return time.Time{}, false
	}
	whole := int64(secs)
	return time.Unix(whole, int64((secs-float64(whole))*1e9)), true
}

// Bridge posts notifications to a native notification center.
type Bridge interface {
	// Deliver posts n, or schedules it when n.Fields.DeliveryDate is set.
	// When n.Wait is set the bridge sends the activation event on the
	// returned channel and then closes it; a channel closed without an
	// event means the bridge failed. Otherwise the channel carries nothing.
	Deliver(n Native) (<-chan ActivationEvent, error)
	// Close releases the bridge. Pending waits end without an event.
	Close() error
}

// Config configures a Notifier and its platform bridge.
type Config struct {
	// AppName identifies the application to the notification center.
	AppName string
	// ExpireTimeout hides non-interactive notifications after the given
	// time. Zero keeps the notification center's default. Notifications
	// that Send waits on never expire.
	ExpireTimeout time.Duration
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

func (c Config) appName() string {
	if c.AppName == "" {
		return DefaultAppName
	}
	return c.AppName
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

// closedEvents returns a channel that carries no event.
func closedEvents() <-chan ActivationEvent {
	ch := make(chan ActivationEvent)
	close(ch)
	return ch
}
