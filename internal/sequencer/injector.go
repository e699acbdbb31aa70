package sequencer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-vgo/robotgo"
)

// Injector synthesises pointer input.
type Injector interface {
	// MoveTo places the pointer at absolute screen coordinates.
	MoveTo(x, y int) error
	// Click issues a left press immediately followed by a release.
	Click() error
	// Release lifts the left button, whatever its current state.
	Release() error
}

// Injector backends.
const (
	InjectorAuto      = ""
	InjectorRobotgo   = "robotgo"
	InjectorSendInput = "sendinput"
)

// ErrInjectorUnsupported is returned for a backend this platform lacks.
var ErrInjectorUnsupported = errors.New("input injector not supported on this platform")

// InjectionError describes a single failed move or click.
type InjectionError struct {
	Index int
	X, Y  int
	Op    string
	Err   error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("%s at point %d (%d,%d): %v", e.Op, e.Index, e.X, e.Y, e.Err)
}

func (e *InjectionError) Unwrap() error {
	return e.Err
}

// NewInjector returns the named backend. The empty name selects SendInput
// on Windows and robotgo everywhere else.
func NewInjector(name string) (Injector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case InjectorAuto:
		if inj, err := newSendInputInjector(); err == nil {
			return inj, nil
		}
		return RobotInjector{}, nil
	case InjectorRobotgo:
		return RobotInjector{}, nil
	case InjectorSendInput:
		return newSendInputInjector()
	default:
		return nil, fmt.Errorf("unknown injector %q", name)
	}
}

// RobotInjector drives the pointer through robotgo.
type RobotInjector struct{}

func (RobotInjector) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (RobotInjector) Click() error {
	if err := robotgo.Toggle("left"); err != nil {
		return fmt.Errorf("press: %w", err)
	}
	if err := robotgo.Toggle("left", "up"); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	return nil
}

func (RobotInjector) Release() error {
	return robotgo.Toggle("left", "up")
}
