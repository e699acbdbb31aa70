package sequencer

import (
	"errors"
	"log/slog"
	"time"

	"github.com/vedantwpatil/sideclick/internal/config"
	"github.com/vedantwpatil/sideclick/internal/state"
)

const (
	DefaultSlice        = 10 * time.Millisecond
	DefaultIdleInterval = 20 * time.Millisecond
)

// Options configure a Sequencer. Config, Signals and Injector are required.
type Options struct {
	Config   *config.ClickConfig
	Signals  *state.Signals
	Injector Injector
	Logger   *slog.Logger

	// Slice is the longest single sleep taken inside a configured delay.
	Slice time.Duration
	// IdleInterval is the back-off between checks while not running.
	IdleInterval time.Duration
	// Sleeper replaces time.Sleep, mainly for tests.
	Sleeper func(time.Duration)
}

// Sequencer walks the configured click points while the run flag is set.
type Sequencer struct {
	cfg      *config.ClickConfig
	signals  *state.Signals
	injector Injector
	logger   *slog.Logger
	slice    time.Duration
	idle     time.Duration
	sleep    func(time.Duration)
	stats    Stats
}

func NewSequencer(opts Options) (*Sequencer, error) {
	if opts.Config == nil {
		return nil, errors.New("click configuration is required")
	}
	if len(opts.Config.Points) == 0 {
		return nil, errors.New("click configuration has no points")
	}
	if opts.Signals == nil {
		return nil, errors.New("signals are required")
	}
	if opts.Injector == nil {
		return nil, errors.New("injector is required")
	}

	slice := opts.Slice
	if slice <= 0 {
		slice = DefaultSlice
	}
	idle := opts.IdleInterval
	if idle <= 0 {
		idle = DefaultIdleInterval
	}
	sleep := opts.Sleeper
	if sleep == nil {
		sleep = time.Sleep
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Sequencer{
		cfg:      opts.Config,
		signals:  opts.Signals,
		injector: opts.Injector,
		logger:   logger.With(slog.String("component", "sequencer")),
		slice:    slice,
		idle:     idle,
		sleep:    sleep,
	}, nil
}

// Run executes rounds while the run flag is set and idles otherwise. It
// returns once the exit signal is observed.
func (s *Sequencer) Run() {
	s.logger.Debug("sequencer started",
		slog.Int("points", len(s.cfg.Points)),
		slog.Duration("slice", s.slice),
		slog.Duration("idle", s.idle))

	clicking := false
	for !s.signals.Exiting() {
		if !s.signals.ShouldRun() {
			if clicking {
				clicking = false
				snap := s.stats.Snapshot()
				s.logger.Info("clicking stopped",
					slog.Int64("rounds", snap.Rounds),
					slog.Int64("clicks", snap.Clicks))
			}
			s.sleep(s.idle)
			continue
		}
		if !clicking {
			clicking = true
			s.logger.Info("clicking started")
		}
		s.RunRound()
	}

	s.logger.Debug("sequencer stopped")
}

// RunRound walks every point once, starting at point 0. It returns false
// when a stop or exit request cut the round short.
func (s *Sequencer) RunRound() bool {
	if !s.Sleep(s.cfg.RoundStartDelay) {
		return s.interrupted(-1)
	}
	for i, p := range s.cfg.Points {
		if !s.Sleep(p.PreDelay) {
			return s.interrupted(i)
		}
		// A failed injection skips only this point.
		_ = s.PerformClick(i, p)
		if !s.Sleep(p.PostDelay) {
			return s.interrupted(i)
		}
	}
	if !s.Sleep(s.cfg.RoundEndDelay) {
		return s.interrupted(len(s.cfg.Points))
	}
	s.stats.rounds.Add(1)
	return true
}

func (s *Sequencer) interrupted(at int) bool {
	s.stats.interrupted.Add(1)
	s.logger.Debug("round interrupted", slog.Int("point", at))
	return false
}

// Sleep waits for d in slices no longer than the configured slice and
// re-checks the signals before every slice. It returns false as soon as
// clicking should stop, abandoning the rest of the delay.
func (s *Sequencer) Sleep(d time.Duration) bool {
	for remaining := d; remaining > 0; {
		if !s.signals.Active() {
			return false
		}
		step := min(remaining, s.slice)
		s.sleep(step)
		remaining -= step
	}
	return s.signals.Active()
}

// PerformClick moves the pointer to the point and issues a left press and
// release there. Coordinates are passed through as configured. Nothing
// confirms the click was received.
func (s *Sequencer) PerformClick(index int, p config.ClickPoint) error {
	if err := s.injector.MoveTo(p.X, p.Y); err != nil {
		return s.injectionFailed(&InjectionError{Index: index, X: p.X, Y: p.Y, Op: "move", Err: err})
	}
	if err := s.injector.Click(); err != nil {
		return s.injectionFailed(&InjectionError{Index: index, X: p.X, Y: p.Y, Op: "click", Err: err})
	}
	s.stats.clicks.Add(1)
	return nil
}

func (s *Sequencer) injectionFailed(err *InjectionError) error {
	s.stats.failures.Add(1)
	s.logger.Warn("click injection failed, skipping point",
		slog.Int("point", err.Index),
		slog.Int("x", err.X),
		slog.Int("y", err.Y),
		slog.String("op", err.Op),
		slog.Any("error", err.Err))
	return err
}

// Stats returns a snapshot of the run counters.
func (s *Sequencer) Stats() Snapshot {
	return s.stats.Snapshot()
}
