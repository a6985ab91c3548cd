//go:build !linux && !darwin

package notify

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
)

// stubBridge rejects every notification on platforms without a bridge.
type stubBridge struct{}

func newPlatformBridge(_ Config, _ *log.Logger) (Bridge, error) {
	return stubBridge{}, nil
}

func (stubBridge) Deliver(Native) (<-chan ActivationEvent, error) {
	return nil, fmt.Errorf("no native notification center on %s", runtime.GOOS)
}

func (stubBridge) Close() error {
	return nil
}
