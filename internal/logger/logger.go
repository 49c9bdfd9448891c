// Package logger provides leveled, structured logging for docchat.
// Records are written as slog text lines. Debug and Info records are only
// emitted in verbose mode (the --verbose flag); Warn and Error are always
// emitted.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	current           = build(os.Stderr, false)
)

func build(w io.Writer, v bool) *slog.Logger {
	level := slog.LevelWarn
	if v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamps make test output unstable and add noise on a terminal.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	current = build(output, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	current = build(output, verbose)
}

func active() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Debug logs msg with key/value args at debug level.
func Debug(msg string, args ...any) {
	active().Debug(msg, args...)
}

// Info logs msg with key/value args at info level.
func Info(msg string, args ...any) {
	active().Info(msg, args...)
}

// Warn logs msg with key/value args at warn level.
func Warn(msg string, args ...any) {
	active().Warn(msg, args...)
}

// Error logs msg with key/value args at error level.
func Error(msg string, args ...any) {
	active().Error(msg, args...)
}
