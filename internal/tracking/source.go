package tracking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputUnavailable means the input state could not be read this tick.
	ErrInputUnavailable = errors.New("input state unavailable")
	// ErrBackendUnsupported means the backend does not exist on this platform.
	ErrBackendUnsupported = errors.New("input backend not supported on this platform")
)

// Buttons is the physical state of the two controls at one instant.
type Buttons struct {
	Trigger bool
	Exit    bool
}

// InputSource reports whether the trigger and exit controls are held.
type InputSource interface {
	State() (Buttons, error)
	Close() error
}

const (
	BackendAuto = ""
	BackendPoll = "poll"
	BackendHook = "hook"
)

// NewSource opens the named backend. The empty name tries the polling
// backend first and falls back to the event hook where polling is not
// available. The returned name is the backend actually opened.
func NewSource(backend string, trigger uint16, exitKey string) (InputSource, string, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendPoll:
		return openPoll(trigger, exitKey)
	case BackendHook:
		return openHook(trigger, exitKey)
	case BackendAuto:
		src, name, err := openPoll(trigger, exitKey)
		if errors.Is(err, ErrBackendUnsupported) {
			return openHook(trigger, exitKey)
		}
		return src, name, err
	default:
		return nil, backend, fmt.Errorf("unknown input backend %q", backend)
	}
}

func openPoll(trigger uint16, exitKey string) (InputSource, string, error) {
	src, err := NewAsyncKeySource(trigger, exitKey)
	if err != nil {
		return nil, BackendPoll, err
	}
	return src, BackendPoll, nil
}

func openHook(trigger uint16, exitKey string) (InputSource, string, error) {
	src, err := NewHookSource(trigger, exitKey)
	if err != nil {
		return nil, BackendHook, err
	}
	return src, BackendHook, nil
}
