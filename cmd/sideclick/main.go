package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vedantwpatil/sideclick/internal/config"
	"github.com/vedantwpatil/sideclick/internal/logging"
	"github.com/vedantwpatil/sideclick/internal/platform"
	"github.com/vedantwpatil/sideclick/internal/screen"
	"github.com/vedantwpatil/sideclick/internal/sequencer"
	"github.com/vedantwpatil/sideclick/internal/state"
	"github.com/vedantwpatil/sideclick/internal/tracking"
)

const (
	exitOK      = 0
	exitFailure = 1
)

var version = "dev"

type Application struct {
	settings config.Settings
	logger   *slog.Logger
	signals  *state.Signals
	stdout   io.Writer
	stderr   io.Writer
}

func NewApplication(stdout, stderr io.Writer) *Application {
	return &Application{
		signals: state.NewSignals(),
		stdout:  stdout,
		stderr:  stderr,
	}
}

// parseFlags applies command line overrides on top of the environment
// settings. It reports whether only the version was requested.
func parseFlags(args []string, s *config.Settings, stderr io.Writer) (bool, error) {
	fs := flag.NewFlagSet("sideclick", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", s.ConfigPath, "path to the click configuration (.json, .yaml or .yml)")
	logLevel := fs.String("log-level", s.LogLevel, "debug, info, warn or error")
	logFormat := fs.String("log-format", s.LogFormat, "console or json")
	printVersion := fs.Bool("version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: sideclick [flags]")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, config.SettingsUsage())
	}

	if err := fs.Parse(args); err != nil {
		return false, err
	}
	if fs.NArg() > 0 {
		return false, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	s.ConfigPath = *configPath
	s.LogLevel = *logLevel
	s.LogFormat = *logFormat
	return *printVersion, nil
}

// checkBackends rejects backend and injector names the tracking and
// sequencer packages do not know, before any file is read.
func checkBackends(s config.Settings) error {
	switch s.InputBackend {
	case tracking.BackendAuto, tracking.BackendPoll, tracking.BackendHook:
	default:
		return fmt.Errorf("unknown input backend %q", s.InputBackend)
	}
	switch s.Injector {
	case sequencer.InjectorAuto, sequencer.InjectorRobotgo, sequencer.InjectorSendInput:
	default:
		return fmt.Errorf("unknown injector %q", s.Injector)
	}
	return nil
}

func (app *Application) Run(args []string) int {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(app.stderr, "sideclick: %v\n", err)
		return exitFailure
	}
	showVersion, err := parseFlags(args, &settings, app.stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(app.stderr, "sideclick: %v\n", err)
		return exitFailure
	}
	if showVersion {
		fmt.Fprintf(app.stdout, "sideclick %s\n", version)
		return exitOK
	}
	if err := checkBackends(settings); err != nil {
		fmt.Fprintf(app.stderr, "sideclick: %v\n", err)
		return exitFailure
	}

	logger, err := logging.New(logging.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: app.stderr,
	})
	if err != nil {
		fmt.Fprintf(app.stderr, "sideclick: %v\n", err)
		return exitFailure
	}
	slog.SetDefault(logger)
	app.logger = logger
	app.settings = settings

	// Before anything reads or writes pointer coordinates.
	if err := platform.SetDPIAware(); err != nil {
		logger.Warn("could not enable DPI awareness, coordinates may be scaled", slog.Any("error", err))
	}

	cfg, err := config.Load(settings.ConfigPath)
	if err != nil {
		logger.Error("could not load click configuration",
			slog.String("path", settings.ConfigPath),
			slog.Any("error", err))
		return exitFailure
	}
	screen.Report(logger, cfg, screen.Displays())

	return app.run(cfg)
}

func (app *Application) run(cfg *config.ClickConfig) int {
	injector, err := sequencer.NewInjector(app.settings.Injector)
	if err != nil {
		app.logger.Error("could not create click injector", slog.Any("error", err))
		return exitFailure
	}
	source, backend, err := tracking.NewSource(app.settings.InputBackend, app.settings.TriggerButton, app.settings.ExitKey)
	if err != nil {
		app.logger.Error("could not start input backend",
			slog.String("backend", backend),
			slog.Any("error", err))
		return exitFailure
	}

	watcher, err := tracking.NewWatcher(tracking.Options{
		Source:            source,
		Signals:           app.signals,
		Logger:            app.logger,
		PollInterval:      app.settings.PollInterval,
		FailSafeThreshold: app.settings.FailSafeThreshold,
	})
	if err != nil {
		source.Close()
		app.logger.Error("could not create input watcher", slog.Any("error", err))
		return exitFailure
	}
	seq, err := sequencer.NewSequencer(sequencer.Options{
		Config:       cfg,
		Signals:      app.signals,
		Injector:     injector,
		Logger:       app.logger,
		Slice:        app.settings.Slice,
		IdleInterval: app.settings.IdleInterval,
	})
	if err != nil {
		source.Close()
		app.logger.Error("could not create sequencer", slog.Any("error", err))
		return exitFailure
	}

	printBanner(app.stdout, cfg, app.settings)
	app.logger.Info("ready",
		slog.String("config", cfg.Source),
		slog.String("input", backend),
		slog.Int("points", len(cfg.Points)))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go app.handleSignals(sigChan)

	seqDone := make(chan struct{})
	go func() {
		defer close(seqDone)
		seq.Run()
	}()

	watcher.Run()
	app.signals.RequestExit()

	select {
	case <-seqDone:
	case <-time.After(app.settings.ExitGrace):
		app.logger.Warn("sequencer did not stop in time", slog.Duration("grace", app.settings.ExitGrace))
	}

	// A click cut short by the exit must not leave the button held.
	if err := injector.Release(); err != nil {
		app.logger.Debug("release left button", slog.Any("error", err))
	}
	if err := source.Close(); err != nil {
		app.logger.Warn("could not close input backend", slog.Any("error", err))
	}

	printSummary(app.stdout, seq.Stats())
	return exitOK
}

func (app *Application) handleSignals(sigChan chan os.Signal) {
	sig, ok := <-sigChan
	if !ok {
		return
	}
	app.logger.Info("received signal, exiting", slog.String("signal", sig.String()))
	app.signals.RequestExit()
}

func main() {
	app := NewApplication(os.Stdout, os.Stderr)
	os.Exit(app.Run(os.Args[1:]))
}
