package state

import "sync/atomic"

// Signals holds the two flags shared between the input watcher and the
// click sequencer. The watcher writes, the sequencer reads. Neither flag
// carries a payload, so plain atomic loads and stores are enough.
type Signals struct {
	run  atomic.Bool
	exit atomic.Bool
}

func NewSignals() *Signals {
	return &Signals{}
}

// SetRun records whether the trigger is held. Repeated stores of the same
// value have no further effect.
func (s *Signals) SetRun(run bool) {
	s.run.Store(run)
}

func (s *Signals) ShouldRun() bool {
	return s.run.Load()
}

// RequestExit sets the exit signal and clears the run flag. The exit
// signal is never cleared again.
func (s *Signals) RequestExit() {
	s.exit.Store(true)
	s.run.Store(false)
}

func (s *Signals) Exiting() bool {
	return s.exit.Load()
}

// Active reports whether clicking should continue right now.
func (s *Signals) Active() bool {
	return s.run.Load() && !s.exit.Load()
}
