package notify

import "time"

// MainButton is the interactive control shown on a notification. It is one
// of SingleAction, DropdownActions or ResponseField.
type MainButton interface {
	mainButton()
}

// SingleAction displays one action button with the given label.
type SingleAction struct {
	Label string
}

// DropdownActions displays a menu titled Label listing Actions in order.
type DropdownActions struct {
	Label   string
	Actions []string
}

// ResponseField displays a text input with the given placeholder.
type ResponseField struct {
	Placeholder string
}

func (SingleAction) mainButton()    {}
func (DropdownActions) mainButton() {}
func (ResponseField) mainButton()   {}

type deliveryDate struct {
	at          float64 // seconds since the Unix epoch
	synchronous bool
}

// Options customizes a notification. The zero value, like NewOptions(),
// sets nothing. Setters return the receiver for chaining:
//
//	opts := notify.NewOptions().
//		MainButton(notify.SingleAction{Label: "Open"}).
//		CloseButton("Later").
//		Sound("Blow")
type Options struct {
	mainButton   MainButton
	closeButton  string
	appIcon      string
	contentImage string
	groupID      string
	deliveryDate *deliveryDate
	sound        string
}

// NewOptions returns Options with every attribute absent.
func NewOptions() *Options {
	return &Options{}
}

// MainButton sets the interactive control.
func (o *Options) MainButton(b MainButton) *Options {
	o.mainButton = b
	return o
}

// CloseButton displays a close button with the given label.
func (o *Options) CloseButton(label string) *Options {
	o.closeButton = label
	return o
}

// AppIcon sets the icon shown on the left side of the notification.
func (o *Options) AppIcon(path string) *Options {
	o.appIcon = path
	return o
}

// ContentImage sets the image shown on the right side of the notification.
func (o *Options) ContentImage(path string) *Options {
	o.contentImage = path
	return o
}

// GroupID groups notifications; a new notification in a group replaces
// the previous one.
func (o *Options) GroupID(id string) *Options {
	o.groupID = id
	return o
}

// DeliveryDate schedules the notification at epochSeconds. When
// synchronous is true and a main button is set, Send blocks until the
// user interacts with the notification.
func (o *Options) DeliveryDate(epochSeconds float64, synchronous bool) *Options {
	o.deliveryDate = &deliveryDate{at: epochSeconds, synchronous: synchronous}
	return o
}

// DeliverAt is DeliveryDate for a time.Time.
func (o *Options) DeliverAt(t time.Time, synchronous bool) *Options {
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return o.DeliveryDate(secs, synchronous)
}

// Sound plays the named system sound on delivery. Unknown names are muted.
func (o *Options) Sound(name string) *Options {
	o.sound = name
	return o
}

// waitsForActivation reports whether Send must block for the user's answer.
func (o *Options) waitsForActivation() bool {
	return o.deliveryDate != nil && o.deliveryDate.synchronous && o.mainButton != nil
}
