package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Bounds on the timing knobs. The slice and poll interval bound how long a
// release or the exit key can go unnoticed.
const (
	MinPollInterval = time.Millisecond
	MaxPollInterval = 10 * time.Millisecond
	MaxSlice        = 15 * time.Millisecond
	MaxIdleInterval = 100 * time.Millisecond
)

// Settings are the runtime knobs of the executable. They come from the
// environment and can be overridden by command line flags; the click
// plan itself lives in the file named by ConfigPath.
type Settings struct {
	ConfigPath string `env:"SIDECLICK_CONFIG" env-default:"config.json" env-description:"path to the click configuration file"`

	PollInterval      time.Duration `env:"SIDECLICK_POLL_INTERVAL" env-default:"5ms" env-description:"input watcher poll interval"`
	IdleInterval      time.Duration `env:"SIDECLICK_IDLE_INTERVAL" env-default:"20ms" env-description:"sequencer back-off while not running"`
	Slice             time.Duration `env:"SIDECLICK_SLICE" env-default:"10ms" env-description:"longest uninterrupted sleep inside a delay"`
	ExitGrace         time.Duration `env:"SIDECLICK_EXIT_GRACE" env-default:"500ms" env-description:"time the sequencer gets to stop on exit"`
	FailSafeThreshold int           `env:"SIDECLICK_FAILSAFE_THRESHOLD" env-default:"3" env-description:"consecutive input query failures before clicking is forced off"`

	InputBackend  string `env:"SIDECLICK_INPUT" env-description:"input backend: poll, hook or empty for the platform default"`
	TriggerButton uint16 `env:"SIDECLICK_TRIGGER_BUTTON" env-default:"4" env-description:"mouse button that runs the sequence (4 = side button 1)"`
	ExitKey       string `env:"SIDECLICK_EXIT_KEY" env-default:"esc" env-description:"key that ends the process"`
	Injector      string `env:"SIDECLICK_INJECTOR" env-description:"click injector: sendinput, robotgo or empty for the platform default"`

	LogLevel  string `env:"SIDECLICK_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	LogFormat string `env:"SIDECLICK_LOG_FORMAT" env-default:"console" env-description:"console or json"`
}

// LoadSettings reads Settings from the environment, applying defaults for
// anything unset.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := cleanenv.ReadEnv(&s); err != nil {
		return s, fmt.Errorf("read settings from environment: %w", err)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// SettingsUsage describes every environment variable LoadSettings reads.
func SettingsUsage() string {
	var s Settings
	text, err := cleanenv.GetDescription(&s, nil)
	if err != nil {
		return ""
	}
	return text
}

func (s *Settings) normalize() {
	s.ConfigPath = strings.TrimSpace(s.ConfigPath)
	s.InputBackend = strings.ToLower(strings.TrimSpace(s.InputBackend))
	s.ExitKey = strings.ToLower(strings.TrimSpace(s.ExitKey))
	s.Injector = strings.ToLower(strings.TrimSpace(s.Injector))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))
}

// Validate checks the timing and control settings. Backend and injector
// names are checked by the caller against the tracking and sequencer
// constants.
func (s Settings) Validate() error {
	if s.PollInterval < MinPollInterval || s.PollInterval > MaxPollInterval {
		return fmt.Errorf("poll interval must be between %v and %v, got %v", MinPollInterval, MaxPollInterval, s.PollInterval)
	}
	if s.IdleInterval <= 0 || s.IdleInterval > MaxIdleInterval {
		return fmt.Errorf("idle interval must be positive and at most %v, got %v", MaxIdleInterval, s.IdleInterval)
	}
	if s.Slice <= 0 || s.Slice > MaxSlice {
		return fmt.Errorf("sleep slice must be positive and at most %v, got %v", MaxSlice, s.Slice)
	}
	if s.ExitGrace < 0 {
		return errors.New("exit grace must not be negative")
	}
	if s.FailSafeThreshold < 1 {
		return errors.New("fail-safe threshold must be at least 1")
	}
	if s.TriggerButton == 0 {
		return errors.New("trigger button must be set")
	}
	if s.ExitKey == "" {
		return errors.New("exit key must be set")
	}
	return nil
}
