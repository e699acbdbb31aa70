package tracking

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	hook "github.com/robotn/gohook"
)

// HookSource keeps the held state of the trigger button and exit key from
// the global gohook event stream.
type HookSource struct {
	trigger uint16
	exitKey uint16

	triggerHeld atomic.Bool
	exitPressed atomic.Bool
	alive       atomic.Bool
	done        chan struct{}
}

// NewHookSource starts the global event hook.
func NewHookSource(trigger uint16, exitKey string) (*HookSource, error) {
	name := strings.ToLower(strings.TrimSpace(exitKey))
	if name == "escape" {
		name = "esc"
	}
	code, ok := hook.Keycode[name]
	if !ok {
		return nil, fmt.Errorf("unknown exit key %q", exitKey)
	}

	s := newHookSource(trigger, code)
	events := hook.Start()
	s.alive.Store(true)
	go s.consume(events)
	return s, nil
}

func newHookSource(trigger, exitKey uint16) *HookSource {
	return &HookSource{
		trigger: trigger,
		exitKey: exitKey,
		done:    make(chan struct{}),
	}
}

func (s *HookSource) consume(events <-chan hook.Event) {
	defer close(s.done)
	defer s.alive.Store(false)
	for ev := range events {
		s.handle(ev)
	}
}

func (s *HookSource) handle(ev hook.Event) {
	switch ev.Kind {
	// gohook reports a press as MouseHold; MouseDown and MouseUp both
	// arrive once the button is released.
	case hook.MouseHold:
		if ev.Button == s.trigger {
			s.triggerHeld.Store(true)
		}
	case hook.MouseDown, hook.MouseUp:
		if ev.Button == s.trigger {
			s.triggerHeld.Store(false)
		}
	case hook.KeyHold, hook.KeyDown:
		// Latched: a tap shorter than one poll interval still ends the process.
		if ev.Keycode == s.exitKey {
			s.exitPressed.Store(true)
		}
	}
}

// State reports the latest held state. Once the event stream has ended
// nothing is known about the controls and ErrInputUnavailable is returned.
func (s *HookSource) State() (Buttons, error) {
	if !s.alive.Load() {
		return Buttons{}, fmt.Errorf("%w: event hook is not running", ErrInputUnavailable)
	}
	return Buttons{
		Trigger: s.triggerHeld.Load(),
		Exit:    s.exitPressed.Load(),
	}, nil
}

// Close stops the global hook and waits briefly for the event stream to drain.
func (s *HookSource) Close() error {
	if !s.alive.Load() {
		return nil
	}
	hook.End()
	select {
	case <-s.done:
		return nil
	case <-time.After(time.Second):
		return fmt.Errorf("event hook did not stop")
	}
}
