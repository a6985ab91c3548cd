package notify

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// syncToken serializes synchronous sends across the process: the native
// notification center tracks a single pending answer.
var syncToken sync.Mutex

// Notifier sends notifications through a Bridge.
type Notifier struct {
	bridge Bridge
	logger *log.Logger
}

// New opens the platform bridge. Errors satisfy
// errors.Is(err, ErrBridgeRejected).
func New(cfg Config) (*Notifier, error) {
	logger := cfg.logger()
	b, err := newPlatformBridge(cfg, logger)
	if err != nil {
		return nil, &DeliveryError{Op: "open bridge", Err: err}
	}
	return NewWithBridge(b, logger), nil
}

// NewWithBridge returns a Notifier using b. A nil logger discards output.
func NewWithBridge(b Bridge, logger *log.Logger) *Notifier {
	return &Notifier{bridge: b, logger: Config{Logger: logger}.logger()}
}

// Send posts a notification. It blocks until the user answers only when
// opts has a main button and a synchronous delivery date; otherwise it
// returns a None response once the notification is posted or scheduled.
func (n *Notifier) Send(title, subtitle, body string, opts *Options) (Response, error) {
	if opts == nil {
		opts = NewOptions()
	}
	wait := opts.waitsForActivation()
	if wait {
		syncToken.Lock()
		defer syncToken.Unlock()
	}

	fields := Encode(opts)
	events, err := n.bridge.Deliver(Native{
		Title:    title,
		Subtitle: subtitle,
		Body:     body,
		Fields:   fields,
		Wait:     wait,
	})
	if err != nil {
		n.logger.Debug("notification rejected", "title", title, "error", err)
		return Response{}, &DeliveryError{Op: "deliver", Err: err}
	}
	if !wait {
		n.logger.Debug("notification posted", "title", title, "scheduled", fields.DeliveryDate != "")
		return Response{Kind: None}, nil
	}

	n.logger.Debug("waiting for activation", "title", title)
	ev, ok := <-events
	if !ok {
		return Response{}, &DeliveryError{Op: "wait", Err: errBridgeClosed}
	}
	resp := Decode(ev)
	n.logger.Debug("notification activated", "title", title, "response", resp)
	return resp, nil
}

// Close releases the bridge.
func (n *Notifier) Close() error {
	return n.bridge.Close()
}

var (
	defaultMu       sync.Mutex
	defaultNotifier *Notifier
	defaultAppName  string
)

// SetApplication sets the application identity used by the package-level
// Send. It fails with ErrApplicationAlreadySet when called twice or after
// the first Send.
func SetApplication(name string) error {
	if name == "" {
		return errors.New("notify: empty application name")
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultAppName != "" || defaultNotifier != nil {
		return ErrApplicationAlreadySet
	}
	defaultAppName = name
	return nil
}

// Send posts a notification through a process-wide Notifier, opened on
// first use. See (*Notifier).Send.
func Send(title, subtitle, body string, opts *Options) (Response, error) {
	n, err := defaultInstance()
	if err != nil {
		return Response{}, err
	}
	return n.Send(title, subtitle, body, opts)
}

func defaultInstance() (*Notifier, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultNotifier == nil {
		n, err := New(Config{AppName: defaultAppName})
		if err != nil {
			return nil, err
		}
		defaultNotifier = n
	}
	return defaultNotifier, nil
}
