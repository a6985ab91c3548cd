package notify

import (
	"errors"
	"fmt"
)

var (
	// ErrBridgeRejected is matched by every error a native bridge causes.
	ErrBridgeRejected = errors.New("notification rejected by native bridge")
	// ErrApplicationAlreadySet is returned by SetApplication once the
	// application identity is fixed.
	ErrApplicationAlreadySet = errors.New("application already set")

	errBridgeClosed = errors.New("bridge closed before activation")
)

// DeliveryError reports a failed notification request.
type DeliveryError struct {
	Op  string // "open bridge", "deliver" or "wait"
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("notify: %s: %v", e.Op, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is makes every DeliveryError match ErrBridgeRejected.
func (e *DeliveryError) Is(target error) bool {
	return target == ErrBridgeRejected
}
