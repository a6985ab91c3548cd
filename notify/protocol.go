package notify

import (
	"strconv"
	"strings"

	"github.com/llehouerou/desknotify/internal/sound"
)

// Wire keys understood by native bridges, in wire order.
const (
	KeyMainButtonLabel  = "mainButtonLabel"
	KeyActions          = "actions"
	KeyCloseButtonLabel = "closeButtonLabel"
	KeyAppIcon          = "appIcon"
	KeyContentImage     = "contentImage"
	KeyGroupID          = "groupID"
	KeyResponse         = "response"
	KeyDeliveryDate     = "deliveryDate"
	KeySynchronous      = "synchronous"
	KeySound            = "sound"
)

const yes = "yes"

// Mapping is the flat string record handed to a native bridge. Booleans
// are "yes" or "", absent values are "".
type Mapping struct {
	MainButtonLabel  string
	Actions          string // escaped labels joined by ","; see SplitActions
	CloseButtonLabel string
	AppIcon          string
	ContentImage     string
	GroupID          string
	Response         string
	DeliveryDate     string // decimal seconds since the Unix epoch
	Synchronous      string
	Sound            string // a known sound name or "_mute"
}

// Field is one key/value pair of a Mapping.
type Field struct {
	Key   string
	Value string
}

// Fields returns the ten fields in wire order.
func (m Mapping) Fields() []Field {
	return []Field{
		{KeyMainButtonLabel, m.MainButtonLabel},
		{KeyActions, m.Actions},
		{KeyCloseButtonLabel, m.CloseButtonLabel},
		{KeyAppIcon, m.AppIcon},
		{KeyContentImage, m.ContentImage},
		{KeyGroupID, m.GroupID},
		{KeyResponse, m.Response},
		{KeyDeliveryDate, m.DeliveryDate},
		{KeySynchronous, m.Synchronous},
		{KeySound, m.Sound},
	}
}

// Map returns the fields as a map.
func (m Mapping) Map() map[string]string {
	fields := m.Fields()
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// IsResponse reports whether the main button is a text reply field.
func (m Mapping) IsResponse() bool {
	return m.Response == yes
}

// Encode flattens opts into a Mapping. It never fails; a nil opts encodes
// like NewOptions().
func Encode(opts *Options) Mapping {
	return encode(opts, sound.IsKnown)
}

func encode(opts *Options, knownSound func(string) bool) Mapping {
	if opts == nil {
		opts = NewOptions()
	}

	var (
		label      string
		actions    []string
		isResponse bool
	)
	switch b := opts.mainButton.(type) {
	case SingleAction:
		label = b.Label
	case DropdownActions:
		label, actions = b.Label, b.Actions
	case ResponseField:
		label, isResponse = b.Placeholder, true
	}

	m := Mapping{
		MainButtonLabel:  label,
		Actions:          joinActions(actions),
		CloseButtonLabel: opts.closeButton,
		AppIcon:          opts.appIcon,
		ContentImage:     opts.contentImage,
		GroupID:          opts.groupID,
		Sound:            sound.Mute,
	}
	if isResponse {
		m.Response = yes
	}
	if d := opts.deliveryDate; d != nil {
		m.DeliveryDate = strconv.FormatFloat(d.at, 'f', -1, 64)
		if d.synchronous {
			m.Synchronous = yes
		}
	}
	if opts.sound != "" && knownSound(opts.sound) {
		m.Sound = opts.sound
	}
	return m
}

var actionEscaper = strings.NewReplacer(`\`, `\\`, `,`, `\,`)

// joinActions escapes backslashes and commas in each label and joins them
// with commas, so labels containing commas survive the round trip.
func joinActions(actions []string) string {
	escaped := make([]string, len(actions))
	for i, a := range actions {
		escaped[i] = actionEscaper.Replace(a)
	}
	return strings.Join(escaped, ",")
}

// SplitActions decodes the actions field of a Mapping into labels.
func SplitActions(s string) []string {
	if s == "" {
		return nil
	}
	var (
		labels []string
		cur    strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == ',':
			labels = append(labels, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(labels, cur.String())
}
