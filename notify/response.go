package notify

import "fmt"

// ActivationEvent is the flat record a bridge reports when the user
// interacts with a notification.
type ActivationEvent map[string]string

// Activation event keys and activation types.
const (
	KeyActivationType  = "activationType"
	KeyActivationValue = "activationValue"

	ActivationActionClicked   = "actionClicked"
	ActivationCloseClicked    = "closeClicked"
	ActivationReplied         = "replied"
	ActivationContentsClicked = "contentsClicked"
)

// Kind identifies how the user interacted with a notification.
type Kind int

const (
	None         Kind = iota // no interaction
	ActionButton             // an action button; Value is its label
	CloseButton              // the close button; Value is its label
	Click                    // the notification itself
	Reply                    // the reply field; Value is the text
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case ActionButton:
		return "action"
	case CloseButton:
		return "close"
	case Click:
		return "click"
	case Reply:
		return "reply"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Response describes the user's interaction. The zero value is None.
type Response struct {
	Kind  Kind
	Value string
}

func (r Response) String() string {
	switch r.Kind {
	case ActionButton, CloseButton, Reply:
		return fmt.Sprintf("%s(%q)", r.Kind, r.Value)
	}
	return r.Kind.String()
}

// Decode converts an activation event into a Response. Unknown or missing
// activation types decode as None.
func Decode(ev ActivationEvent) Response {
	value := ev[KeyActivationValue]
	switch ev[KeyActivationType] {
	case ActivationActionClicked:
		return Response{Kind: ActionButton, Value: value}
	case ActivationCloseClicked:
		return Response{Kind: CloseButton, Value: value}
	case ActivationReplied:
		return Response{Kind: Reply, Value: value}
	case ActivationContentsClicked:
		return Response{Kind: Click}
	}
	return Response{Kind: None}
}
