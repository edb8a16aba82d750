package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevelEventsOnConfiguredLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triage.log")
	t.Setenv("TRIAGE_LOG_FILE", path)
	t.Setenv("TRIAGE_LOG_JSON", "1")
	t.Setenv("TRIAGE_LOG_LEVEL", "debug")
	Setup()
	defer func() {
		mu.Lock()
		logger = zerolog.Nop()
		mu.Unlock()
	}()

	Debug().Str("k", "v").Msg("debug line")
	Info().Msg("info line")
	Warn().Msg("warn line")
	Error().Msg("error line")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	for _, want := range []string{"debug line", "info line", "warn line", "error line"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSilentWithoutTarget(t *testing.T) {
	t.Setenv("TRIAGE_LOG_FILE", "")
	t.Setenv("TRIAGE_DEBUG", "")

	mu.Lock()
	logger = zerolog.Nop()
	mu.Unlock()
	Setup()

	// The nop logger never produces enabled events.
	if Info().Enabled() {
		t.Fatal("expected events to be disabled without a log target")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
