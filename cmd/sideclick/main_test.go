package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vedantwpatil/sideclick/internal/config"
	"github.com/vedantwpatil/sideclick/internal/sequencer"
)

func TestParseFlagsOverridesSettings(t *testing.T) {
	s := config.Settings{ConfigPath: "config.json", LogLevel: "info", LogFormat: "console"}
	var stderr bytes.Buffer

	showVersion, err := parseFlags([]string{"-config", "plan.yaml", "-log-level", "debug", "-log-format", "json"}, &s, &stderr)
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}
	if showVersion {
		t.Fatal("version was not requested")
	}
	if s.ConfigPath != "plan.yaml" || s.LogLevel != "debug" || s.LogFormat != "json" {
		t.Fatalf("flags not applied: %+v", s)
	}
}

func TestParseFlagsKeepsEnvironmentDefaults(t *testing.T) {
	s := config.Settings{ConfigPath: "from-env.json", LogLevel: "warn", LogFormat: "console"}
	if _, err := parseFlags(nil, &s, &bytes.Buffer{}); err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}
	if s.ConfigPath != "from-env.json" || s.LogLevel != "warn" {
		t.Fatalf("environment values lost: %+v", s)
	}
}

func TestParseFlagsVersionAndHelp(t *testing.T) {
	var s config.Settings
	showVersion, err := parseFlags([]string{"-version"}, &s, &bytes.Buffer{})
	if err != nil || !showVersion {
		t.Fatalf("expected version request, got %v, %v", showVersion, err)
	}

	var stderr bytes.Buffer
	_, err = parseFlags([]string{"-h"}, &s, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "SIDECLICK_CONFIG") {
		t.Fatalf("usage should list environment variables, got %q", stderr.String())
	}
}

func TestParseFlagsRejectsPositionalArguments(t *testing.T) {
	var s config.Settings
	if _, err := parseFlags([]string{"config.json"}, &s, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestRunExitsNonZeroOnBadConfig(t *testing.T) {
	t.Setenv("SIDECLICK_CONFIG", t.TempDir()+"/missing.json")
	var stdout, stderr bytes.Buffer
	app := NewApplication(&stdout, &stderr)

	if code := app.Run(nil); code != exitFailure {
		t.Fatalf("expected exit code %d, got %d", exitFailure, code)
	}
	if !strings.Contains(stderr.String(), "could not load click configuration") {
		t.Fatalf("expected config error in log, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("nothing should be printed before the workers start, got %q", stdout.String())
	}
}

func TestRunExitsBeforeWorkersOnThreeValuePoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	doc := `{"points": [[100, 200, 50]], "pre_round_delay": 0, "post_round_delay": 0}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var stdout, stderr bytes.Buffer
	app := NewApplication(&stdout, &stderr)

	if code := app.Run([]string{"-config", path}); code != exitFailure {
		t.Fatalf("expected exit code %d, got %d", exitFailure, code)
	}
	if !strings.Contains(stderr.String(), "invalid click configuration") {
		t.Fatalf("expected invalid configuration in log, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("banner printed, so workers were about to start: %q", stdout.String())
	}
	if app.signals.ShouldRun() {
		t.Fatal("run flag set after a rejected configuration")
	}
}

func TestCheckBackends(t *testing.T) {
	good := []config.Settings{
		{},
		{InputBackend: "poll", Injector: "sendinput"},
		{InputBackend: "hook", Injector: "robotgo"},
	}
	for _, s := range good {
		if err := checkBackends(s); err != nil {
			t.Errorf("checkBackends(%+v) returned error: %v", s, err)
		}
	}
	bad := []config.Settings{
		{InputBackend: "usb"},
		{Injector: "xdotool"},
	}
	for _, s := range bad {
		if err := checkBackends(s); err == nil {
			t.Errorf("checkBackends(%+v) accepted unknown name", s)
		}
	}
}

func TestRunExitsNonZeroOnUnknownBackend(t *testing.T) {
	t.Setenv("SIDECLICK_INPUT", "usb")
	var stdout, stderr bytes.Buffer
	if code := NewApplication(&stdout, &stderr).Run(nil); code != exitFailure {
		t.Fatalf("expected exit code %d, got %d", exitFailure, code)
	}
	if !strings.Contains(stderr.String(), `unknown input backend "usb"`) {
		t.Fatalf("expected backend error, got %q", stderr.String())
	}
}

func TestRunExitsNonZeroOnBadSettings(t *testing.T) {
	t.Setenv("SIDECLICK_SLICE", "0s")
	var stderr bytes.Buffer
	if code := NewApplication(&bytes.Buffer{}, &stderr).Run(nil); code != exitFailure {
		t.Fatalf("expected exit code %d, got %d", exitFailure, code)
	}
}

func TestRunVersion(t *testing.T) {
	var stdout bytes.Buffer
	if code := NewApplication(&stdout, &bytes.Buffer{}).Run([]string{"-version"}); code != exitOK {
		t.Fatalf("expected exit code %d, got %d", exitOK, code)
	}
	if !strings.HasPrefix(stdout.String(), "sideclick ") {
		t.Fatalf("unexpected version output %q", stdout.String())
	}
}

func TestPrintPoints(t *testing.T) {
	cfg := &config.ClickConfig{
		Points: []config.ClickPoint{
			{X: 100, Y: 200, PreDelay: 50 * time.Millisecond, PostDelay: 100 * time.Millisecond},
			{X: 300, Y: 400, PostDelay: 200 * time.Millisecond},
		},
		RoundStartDelay: time.Second,
		RoundEndDelay:   2 * time.Second,
	}
	var out bytes.Buffer
	printPoints(&out, cfg)

	for _, want := range []string{"100", "400", "50ms", "200ms", "1s", "2s"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("point table missing %q:\n%s", want, out.String())
		}
	}
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	printSummary(&out, sequencer.Snapshot{Rounds: 12, Interrupted: 1, Clicks: 25, Failures: 0})

	for _, want := range []string{"ROUNDS", "12", "25"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}
}
