package tracking

import (
	"errors"
	"testing"
	"time"

	"github.com/vedantwpatil/sideclick/internal/state"
)

// scriptedSource replays one result per State call and repeats the last.
type scriptedSource struct {
	results []result
	calls   int
	closed  bool
}

type result struct {
	buttons Buttons
	err     error
}

func (s *scriptedSource) State() (Buttons, error) {
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	return s.results[i].buttons, s.results[i].err
}

func (s *scriptedSource) Close() error {
	s.closed = true
	return nil
}

func held() result     { return result{buttons: Buttons{Trigger: true}} }
func released() result { return result{} }
func exit() result     { return result{buttons: Buttons{Exit: true}} }
func failed() result   { return result{err: ErrInputUnavailable} }

func newTestWatcher(t *testing.T, src InputSource, signals *state.Signals, sleeps *[]time.Duration) *Watcher {
	t.Helper()
	w, err := NewWatcher(Options{
		Source:            src,
		Signals:           signals,
		PollInterval:      2 * time.Millisecond,
		FailSafeThreshold: 3,
		Sleeper: func(d time.Duration) {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
		},
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	return w
}

func TestNewWatcherValidation(t *testing.T) {
	if _, err := NewWatcher(Options{Signals: state.NewSignals()}); err == nil {
		t.Fatalf("expected error without source")
	}
	if _, err := NewWatcher(Options{Source: &scriptedSource{}}); err == nil {
		t.Fatalf("expected error without signals")
	}
}

func TestPollTickFollowsTrigger(t *testing.T) {
	signals := state.NewSignals()
	src := &scriptedSource{results: []result{held(), held(), released(), held()}}
	w := newTestWatcher(t, src, signals, nil)

	want := []bool{true, true, false, true}
	for i, expected := range want {
		if w.PollTick() {
			t.Fatalf("tick %d: unexpected exit", i)
		}
		if got := signals.ShouldRun(); got != expected {
			t.Fatalf("tick %d: run=%v, want %v", i, got, expected)
		}
	}
}

func TestPollTickExitKey(t *testing.T) {
	signals := state.NewSignals()
	src := &scriptedSource{results: []result{held(), {buttons: Buttons{Trigger: true, Exit: true}}}}
	w := newTestWatcher(t, src, signals, nil)

	w.PollTick()
	if !w.PollTick() {
		t.Fatalf("expected exit to be reported")
	}
	if !signals.Exiting() {
		t.Fatalf("expected exit signal")
	}
	if signals.ShouldRun() {
		t.Fatalf("exit must clear the run flag even while the trigger is held")
	}
}

func TestRunStopsOnExitKey(t *testing.T) {
	signals := state.NewSignals()
	src := &scriptedSource{results: []result{released(), held(), held(), exit()}}
	var sleeps []time.Duration
	w := newTestWatcher(t, src, signals, &sleeps)

	done := make(chan struct{})
	go func() {
		w.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not stop")
	}

	if src.calls != 4 {
		t.Fatalf("expected 4 polls, got %d", src.calls)
	}
	if len(sleeps) != 3 {
		t.Fatalf("expected 3 poll sleeps, got %d", len(sleeps))
	}
	for _, d := range sleeps {
		if d != 2*time.Millisecond {
			t.Fatalf("unexpected poll interval %v", d)
		}
	}
}

func TestRunStopsOnExternalExit(t *testing.T) {
	signals := state.NewSignals()
	src := &scriptedSource{results: []result{released()}}
	w, err := NewWatcher(Options{
		Source:  src,
		Signals: signals,
		Sleeper: func(time.Duration) { signals.RequestExit() },
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	w.Run()
	if src.calls != 1 {
		t.Fatalf("expected a single poll before exit, got %d", src.calls)
	}
}

func TestFailSafeAfterRepeatedFailures(t *testing.T) {
	signals := state.NewSignals()
	src := &scriptedSource{results: []result{held(), failed(), failed(), failed(), failed(), held()}}
	w := newTestWatcher(t, src, signals, nil)

	w.PollTick()
	if !signals.ShouldRun() {
		t.Fatalf("expected run after trigger press")
	}

	// Below the threshold the last known state is kept.
	w.PollTick()
	w.PollTick()
	if !signals.ShouldRun() {
		t.Fatalf("run flag dropped before reaching the fail-safe threshold")
	}

	w.PollTick()
	if signals.ShouldRun() {
		t.Fatalf("expected run flag forced off after 3 failures")
	}
	w.PollTick()
	if signals.ShouldRun() {
		t.Fatalf("run flag must stay off while failures continue")
	}

	// Recovery resumes normal tracking.
	w.PollTick()
	if !signals.ShouldRun() {
		t.Fatalf("expected run flag after recovery")
	}
	if w.failures != 0 {
		t.Fatalf("expected failure streak to reset, got %d", w.failures)
	}
}

func TestFailuresNeverExit(t *testing.T) {
	signals := state.NewSignals()
	src := &scriptedSource{results: []result{{err: errors.New("device gone")}}}
	w := newTestWatcher(t, src, signals, nil)

	for i := 0; i < 250; i++ {
		if w.PollTick() {
			t.Fatalf("query failures must not end the watcher")
		}
	}
	if signals.Exiting() {
		t.Fatalf("query failures must not request exit")
	}
}
