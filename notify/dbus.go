//go:build linux

package notify

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"

	"github.com/llehouerou/desknotify/internal/sound"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	signalActionInvoked      = dbusNotifyInterface + ".ActionInvoked"
	signalNotificationClosed = dbusNotifyInterface + ".NotificationClosed"
	signalNotificationReply  = dbusNotifyInterface + ".NotificationReplied"

	actionDefault = "default"
	actionClose   = "__close"
	actionReply   = "inline-reply"
	actionPrefix  = "action-"

	// NotificationClosed reason for a notification dismissed by the user.
	closedByUser uint32 = 2

	expireDefault int32 = -1
	expireNever   int32 = 0
)

// busCaller is the part of dbus.BusObject the bridge uses.
type busCaller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// dbusWait tracks a notification whose activation a caller is waiting for.
type dbusWait struct {
	labels     []string // action labels by index
	closeLabel string
	events     chan ActivationEvent
}

// finish publishes ev, if any, and ends the wait.
func (w *dbusWait) finish(ev ActivationEvent) {
	if ev != nil {
		w.events <- ev
	}
	close(w.events)
}

func (w *dbusWait) actionEvent(key string) ActivationEvent {
	switch key {
	case actionDefault:
		return ActivationEvent{KeyActivationType: ActivationContentsClicked}
	case actionClose:
		return w.closeEvent()
	case actionReply:
		return ActivationEvent{KeyActivationType: ActivationReplied}
	}
	label := key
	if idx, err := strconv.Atoi(strings.TrimPrefix(key, actionPrefix)); err == nil &&
		strings.HasPrefix(key, actionPrefix) && idx >= 0 && idx < len(w.labels) {
		label = w.labels[idx]
	}
	return ActivationEvent{KeyActivationType: ActivationActionClicked, KeyActivationValue: label}
}

func (w *dbusWait) closeEvent() ActivationEvent {
	return ActivationEvent{KeyActivationType: ActivationCloseClicked, KeyActivationValue: w.closeLabel}
}

// dbusNotify holds the arguments of one Notify call.
type dbusNotify struct {
	icon    string
	summary string
	body    string
	actions []string
	hints   map[string]dbus.Variant
	expire  int32
	group   string
}

// dbusBridge posts notifications via D-Bus and turns the server's signals
// into activation events.
type dbusBridge struct {
	conn    *dbus.Conn
	obj     busCaller
	appName string
	expire  int32
	logger  *log.Logger
	sched   scheduler
	signals chan *dbus.Signal

	mu     sync.Mutex
	waits  map[uint32]*dbusWait
	groups map[string]uint32 // group id -> last notification id
}

func newPlatformBridge(cfg Config, logger *log.Logger) (Bridge, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbusNotifyPath),
		dbus.WithMatchInterface(dbusNotifyInterface),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe to notification signals: %w", err)
	}

	b := newDBusBridge(conn.Object(dbusNotifyDest, dbusNotifyPath), cfg, logger)
	b.conn = conn
	conn.Signal(b.signals)
	go b.listen()
	return b, nil
}

func newDBusBridge(obj busCaller, cfg Config, logger *log.Logger) *dbusBridge {
	expire := expireDefault
	if cfg.ExpireTimeout > 0 {
		expire = int32(min(cfg.ExpireTimeout.Milliseconds(), math.MaxInt32))
	}
	return &dbusBridge{
		obj:     obj,
		appName: cfg.appName(),
		expire:  expire,
		logger:  logger,
		signals: make(chan *dbus.Signal, 16),
		waits:   make(map[uint32]*dbusWait),
		groups:  make(map[string]uint32),
	}
}

// Deliver posts n, or schedules it with a timer since the bus has no
// scheduling of its own.
func (b *dbusBridge) Deliver(n Native) (<-chan ActivationEvent, error) {
	req, w := b.request(n)

	at, scheduled := n.deliveryTime()
	if !scheduled || !at.After(time.Now()) {
		if err := b.post(req, w); err != nil {
			return nil, err
		}
		return b.eventsFor(w), nil
	}

	// Report an unreachable server now rather than at delivery time.
	if call := b.obj.Call(dbusNotifyInterface+".GetServerInformation", 0); call.Err != nil {
		return nil, fmt.Errorf("reach notification server: %w", call.Err)
	}
	fire := func() {
		if err := b.post(req, w); err != nil {
			b.logger.Warn("scheduled notification failed", "summary", req.summary, "error", err)
			if w != nil {
				w.finish(nil)
			}
		}
	}
	cancel := func() {
		if w != nil {
			w.finish(nil)
		}
	}
	if err := b.sched.schedule(time.Until(at), fire, cancel); err != nil {
		return nil, err
	}
	b.logger.Debug("notification scheduled", "summary", req.summary, "at", at)
	return b.eventsFor(w), nil
}

func (b *dbusBridge) eventsFor(w *dbusWait) <-chan ActivationEvent {
	if w == nil {
		return closedEvents()
	}
	return w.events
}

// request translates n into Notify arguments. The wait is nil unless the
// caller blocks on the answer.
func (b *dbusBridge) request(n Native) (dbusNotify, *dbusWait) {
	f := n.Fields
	req := dbusNotify{
		icon:    f.AppIcon,
		summary: n.Title,
		body:    joinNonEmpty("\n", n.Subtitle, n.Body),
		actions: []string{actionDefault, ""},
		hints: map[string]dbus.Variant{
			"desktop-entry": dbus.MakeVariant(b.appName),
		},
		expire: b.expire,
		group:  f.GroupID,
	}

	var labels []string
	switch {
	case f.IsResponse():
		req.actions = append(req.actions, actionReply, "Reply")
		req.hints["x-kde-reply-placeholder-text"] = dbus.MakeVariant(f.MainButtonLabel)
	case f.Actions != "":
		labels = SplitActions(f.Actions)
	case f.MainButtonLabel != "":
		labels = []string{f.MainButtonLabel}
	}
	for i, label := range labels {
		req.actions = append(req.actions, actionPrefix+strconv.Itoa(i), label)
	}
	if f.CloseButtonLabel != "" {
		req.actions = append(req.actions, actionClose, f.CloseButtonLabel)
	}

	if f.ContentImage != "" {
		req.hints["image-path"] = dbus.MakeVariant(f.ContentImage)
	}
	switch f.Sound {
	case sound.Mute:
		req.hints["suppress-sound"] = dbus.MakeVariant(true)
	case sound.Default, "":
	default:
		req.hints["sound-name"] = dbus.MakeVariant(f.Sound)
	}

	if !n.Wait {
		return req, nil
	}
	req.expire = expireNever
	return req, &dbusWait{
		labels:     labels,
		closeLabel: f.CloseButtonLabel,
		events:     make(chan ActivationEvent, 1),
	}
}

// post sends the Notify call and registers w under the returned id.
func (b *dbusBridge) post(req dbusNotify, w *dbusWait) error {
	// Holding mu until w is registered keeps signals for the new id from
	// being handled before the wait exists.
	b.mu.Lock()
	defer b.mu.Unlock()

	var replaces uint32
	if req.group != "" {
		replaces = b.groups[req.group]
	}

	// D-Bus Notify method signature:
	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := b.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		b.appName,
		replaces,
		req.icon,
		req.summary,
		req.body,
		req.actions,
		req.hints,
		req.expire,
	)
	if call.Err != nil {
		return call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return err
	}
	if req.group != "" {
		b.groups[req.group] = id
	}
	// Servers reuse the replaced id, so a wait on the old notification
	// would be answered by clicks on the new one.
	for _, prev := range []uint32{replaces, id} {
		if old, ok := b.waits[prev]; ok {
			delete(b.waits, prev)
			old.finish(ActivationEvent{})
			b.logger.Debug("wait superseded", "id", prev)
		}
	}
	if w != nil {
		b.waits[id] = w
	}
	b.logger.Debug("notification posted", "id", id, "replaces", replaces)
	return nil
}

func (b *dbusBridge) listen() {
	for sig := range b.signals {
		b.handleSignal(sig)
	}
	b.failWaits()
}

func (b *dbusBridge) handleSignal(sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}
	id, ok := sig.Body[0].(uint32)
	if !ok {
		return
	}

	switch sig.Name {
	case signalActionInvoked:
		key, _ := sig.Body[1].(string)
		b.resolve(id, func(w *dbusWait) ActivationEvent { return w.actionEvent(key) })
	case signalNotificationReply:
		text, _ := sig.Body[1].(string)
		b.resolve(id, func(*dbusWait) ActivationEvent {
			return ActivationEvent{KeyActivationType: ActivationReplied, KeyActivationValue: text}
		})
	case signalNotificationClosed:
		reason, _ := sig.Body[1].(uint32)
		b.resolve(id, func(w *dbusWait) ActivationEvent {
			if reason == closedByUser {
				return w.closeEvent()
			}
			return ActivationEvent{}
		})
	}
}

// resolve ends the wait registered for id, if any, with the event built by
// toEvent. Later signals for the same id are ignored.
func (b *dbusBridge) resolve(id uint32, toEvent func(*dbusWait) ActivationEvent) {
	b.mu.Lock()
	w, ok := b.waits[id]
	delete(b.waits, id)
	b.mu.Unlock()
	if ok {
		w.finish(toEvent(w))
	}
}

func (b *dbusBridge) failWaits() {
	b.mu.Lock()
	waits := b.waits
	b.waits = make(map[uint32]*dbusWait)
	b.mu.Unlock()
	for _, w := range waits {
		w.finish(nil)
	}
}

// Close cancels scheduled notifications and closes the bus connection.
func (b *dbusBridge) Close() error {
	if n := b.sched.pending(); n > 0 {
		b.logger.Debug("cancelling scheduled notifications", "count", n)
	}
	b.sched.stop()
	var err error
	if b.conn != nil {
		err = b.conn.Close()
	}
	b.failWaits()
	return err
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
