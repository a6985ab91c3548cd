package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		ev   ActivationEvent
		want Response
	}{
		{
			name: "action clicked",
			ev:   ActivationEvent{"activationType": "actionClicked", "activationValue": "Reply"},
			want: Response{Kind: ActionButton, Value: "Reply"},
		},
		{
			name: "action clicked without value",
			ev:   ActivationEvent{"activationType": "actionClicked"},
			want: Response{Kind: ActionButton},
		},
		{
			name: "close clicked",
			ev:   ActivationEvent{"activationType": "closeClicked", "activationValue": "Later"},
			want: Response{Kind: CloseButton, Value: "Later"},
		},
		{
			name: "replied",
			ev:   ActivationEvent{"activationType": "replied", "activationValue": "on my way"},
			want: Response{Kind: Reply, Value: "on my way"},
		},
		{
			name: "replied empty",
			ev:   ActivationEvent{"activationType": "replied"},
			want: Response{Kind: Reply},
		},
		{
			name: "contents clicked ignores value",
			ev:   ActivationEvent{"activationType": "contentsClicked", "activationValue": "x"},
			want: Response{Kind: Click},
		},
		{
			name: "unknown type",
			ev:   ActivationEvent{"activationType": "additionalActionClicked", "activationValue": "x"},
			want: Response{Kind: None},
		},
		{
			name: "type is case sensitive",
			ev:   ActivationEvent{"activationType": "ActionClicked"},
			want: Response{Kind: None},
		},
		{
			name: "missing type",
			ev:   ActivationEvent{"activationValue": "x"},
			want: Response{Kind: None},
		},
		{
			name: "empty event",
			ev:   ActivationEvent{},
			want: Response{Kind: None},
		},
		{
			name: "nil event",
			ev:   nil,
			want: Response{Kind: None},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.ev))
		})
	}
}

func TestSingleActionRoundTrip(t *testing.T) {
	m := encode(NewOptions().MainButton(SingleAction{Label: "Reply"}), noSounds)

	got := Decode(ActivationEvent{
		KeyActivationType:  ActivationActionClicked,
		KeyActivationValue: m.MainButtonLabel,
	})

	assert.Equal(t, Response{Kind: ActionButton, Value: "Reply"}, got)
}

func TestResponseString(t *testing.T) {
	assert.Equal(t, "none", Response{}.String())
	assert.Equal(t, "click", Response{Kind: Click}.String())
	assert.Equal(t, `action("Open")`, Response{Kind: ActionButton, Value: "Open"}.String())
	assert.Equal(t, `close("Later")`, Response{Kind: CloseButton, Value: "Later"}.String())
	assert.Equal(t, `reply("hi")`, Response{Kind: Reply, Value: "hi"}.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
