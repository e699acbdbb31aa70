package tracking

import (
	"errors"
	"testing"

	hook "github.com/robotn/gohook"
)

const testExitKey uint16 = 1

func TestHookSourceTracksTrigger(t *testing.T) {
	s := newHookSource(ButtonSide1, testExitKey)
	s.alive.Store(true)

	steps := []struct {
		ev   hook.Event
		want Buttons
	}{
		{hook.Event{Kind: hook.MouseHold, Button: ButtonLeft}, Buttons{}},
		{hook.Event{Kind: hook.MouseHold, Button: ButtonSide1}, Buttons{Trigger: true}},
		{hook.Event{Kind: hook.MouseMove}, Buttons{Trigger: true}},
		{hook.Event{Kind: hook.MouseDown, Button: ButtonLeft}, Buttons{Trigger: true}},
		{hook.Event{Kind: hook.MouseDown, Button: ButtonSide1}, Buttons{}},
		{hook.Event{Kind: hook.MouseHold, Button: ButtonSide1}, Buttons{Trigger: true}},
		{hook.Event{Kind: hook.MouseUp, Button: ButtonSide1}, Buttons{}},
	}
	for i, step := range steps {
		s.handle(step.ev)
		got, err := s.State()
		if err != nil {
			t.Fatalf("step %d: state: %v", i, err)
		}
		if got != step.want {
			t.Fatalf("step %d: got %+v, want %+v", i, got, step.want)
		}
	}
}

func TestHookSourceLatchesExitKey(t *testing.T) {
	s := newHookSource(ButtonSide1, testExitKey)
	s.alive.Store(true)

	s.handle(hook.Event{Kind: hook.KeyHold, Keycode: 30})
	if got, _ := s.State(); got.Exit {
		t.Fatalf("unrelated key must not request exit")
	}
	s.handle(hook.Event{Kind: hook.KeyHold, Keycode: testExitKey})
	s.handle(hook.Event{Kind: hook.KeyUp, Keycode: testExitKey})
	if got, _ := s.State(); !got.Exit {
		t.Fatalf("expected exit to stay latched after release")
	}
}

func TestHookSourceUnavailableWhenStopped(t *testing.T) {
	s := newHookSource(ButtonSide1, testExitKey)
	if _, err := s.State(); !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("expected ErrInputUnavailable, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("closing a stopped source: %v", err)
	}
}

func TestHookSourceConsumeEndsStream(t *testing.T) {
	s := newHookSource(ButtonSide1, testExitKey)
	s.alive.Store(true)

	events := make(chan hook.Event, 2)
	events <- hook.Event{Kind: hook.MouseHold, Button: ButtonSide1}
	close(events)
	s.consume(events)

	<-s.done
	if _, err := s.State(); !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("expected ErrInputUnavailable after stream end, got %v", err)
	}
}
