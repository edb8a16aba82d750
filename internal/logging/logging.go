// Package logging configures the process-wide zerolog logger. Diagnostics
// only: nothing in the drag hot path logs above debug level.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.Nop()
)

// Setup initializes the global logger. Output goes to TRIAGE_LOG_FILE when
// set, otherwise stderr. The TUI runs with a file target (or the nop logger)
// so log lines never corrupt the alternate screen.
func Setup() {
	var out io.Writer = os.Stderr
	if path := strings.TrimSpace(os.Getenv("TRIAGE_LOG_FILE")); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			out = f
		}
	} else if os.Getenv("TRIAGE_DEBUG") == "" {
		// No explicit target and not debugging: stay silent.
		return
	}

	if os.Getenv("TRIAGE_LOG_JSON") == "" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	level := parseLevel(os.Getenv("TRIAGE_LOG_LEVEL"))
	if os.Getenv("TRIAGE_DEBUG") != "" {
		level = zerolog.DebugLevel
	}

	mu.Lock()
	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	mu.Unlock()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug() *zerolog.Event { l := get(); return l.Debug() }
func Info() *zerolog.Event  { l := get(); return l.Info() }
func Warn() *zerolog.Event  { l := get(); return l.Warn() }
func Error() *zerolog.Event { l := get(); return l.Error() }
