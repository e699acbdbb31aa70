package sequencer

import "sync/atomic"

// Stats counts what the sequencer has done. Counters are only incremented
// by the sequencer goroutine but may be read from anywhere.
type Stats struct {
	rounds      atomic.Int64
	interrupted atomic.Int64
	clicks      atomic.Int64
	failures    atomic.Int64
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Rounds      int64
	Interrupted int64
	Clicks      int64
	Failures    int64
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Rounds:      s.rounds.Load(),
		Interrupted: s.interrupted.Load(),
		Clicks:      s.clicks.Load(),
		Failures:    s.failures.Load(),
	}
}
