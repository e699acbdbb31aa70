package tracking

import (
	"errors"
	"log/slog"
	"time"

	"github.com/vedantwpatil/sideclick/internal/state"
)

const (
	DefaultPollInterval      = 5 * time.Millisecond
	DefaultFailSafeThreshold = 3

	// A failure streak is logged on its first tick and every failureLogEvery
	// ticks after that.
	failureLogEvery = 100
)

// Options configure a Watcher. Source and Signals are required.
type Options struct {
	Source  InputSource
	Signals *state.Signals
	Logger  *slog.Logger

	PollInterval time.Duration
	// FailSafeThreshold is the number of consecutive failed queries after
	// which the run flag is forced off.
	FailSafeThreshold int
	Sleeper           func(time.Duration)
}

// Watcher turns the physical state of the trigger and exit controls into
// the shared run and exit flags.
type Watcher struct {
	source    InputSource
	signals   *state.Signals
	logger    *slog.Logger
	interval  time.Duration
	threshold int
	sleep     func(time.Duration)

	failures int
	held     bool
}

func NewWatcher(opts Options) (*Watcher, error) {
	if opts.Source == nil {
		return nil, errors.New("input source is required")
	}
	if opts.Signals == nil {
		return nil, errors.New("signals are required")
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	threshold := opts.FailSafeThreshold
	if threshold <= 0 {
		threshold = DefaultFailSafeThreshold
	}
	sleep := opts.Sleeper
	if sleep == nil {
		sleep = time.Sleep
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		source:    opts.Source,
		signals:   opts.Signals,
		logger:    logger.With(slog.String("component", "watcher")),
		interval:  interval,
		threshold: threshold,
		sleep:     sleep,
	}, nil
}

// Run polls until the exit control is pressed or the exit signal is set
// from elsewhere.
func (w *Watcher) Run() {
	w.logger.Debug("watcher started", slog.Duration("interval", w.interval))
	for !w.signals.Exiting() {
		if w.PollTick() {
			w.logger.Info("exit key pressed")
			return
		}
		w.sleep(w.interval)
	}
	w.logger.Debug("watcher stopped")
}

// PollTick reads the controls once and updates the signals. It reports
// whether the exit control was seen.
func (w *Watcher) PollTick() bool {
	buttons, err := w.source.State()
	if err != nil {
		w.queryFailed(err)
		return false
	}
	if w.failures > 0 {
		w.logger.Info("input query recovered", slog.Int("failed_ticks", w.failures))
		w.failures = 0
	}

	if buttons.Exit {
		w.signals.RequestExit()
		return true
	}

	if buttons.Trigger != w.held {
		w.held = buttons.Trigger
		if w.held {
			w.logger.Debug("trigger pressed")
		} else {
			w.logger.Debug("trigger released")
		}
	}
	w.signals.SetRun(buttons.Trigger)
	return false
}

func (w *Watcher) queryFailed(err error) {
	w.failures++
	if w.failures == 1 || w.failures%failureLogEvery == 0 {
		w.logger.Error("input query failed", slog.Int("attempt", w.failures), slog.Any("error", err))
	}
	if w.failures < w.threshold {
		return
	}
	if w.signals.ShouldRun() {
		w.logger.Warn("input unavailable, clicking forced off", slog.Int("failed_ticks", w.failures))
	}
	w.signals.SetRun(false)
	w.held = false
}
