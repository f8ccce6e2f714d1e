// Package colors prints user-facing console messages and mirrors them into
// the structured logger.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ANSI color codes.
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled = isTruthy(os.Getenv("YAKARI_DEBUG"))
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output. A nil
// logger stops mirroring.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil writers restore the process
// stdout and stderr.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

func emit(toErr bool, format string, mirror func(Logger, string), msgs []string) {
	msg := strings.Join(msgs, " ")

	mu.RLock()
	l := logger
	w := stdout
	if toErr {
		w = stderr
	}
	mu.RUnlock()

	if l != nil {
		mirror(l, msg)
	}
	if _, err := fmt.Fprintf(w, format, msg); err != nil {
		// last resort, never recurse
		fmt.Fprintf(os.Stderr, "failed to print message: %v\n", err)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	emit(true, Red+"Error:"+Reset+" %s\n", func(l Logger, m string) { l.Error(m) }, msgs)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	emit(true, Yellow+"Warning:"+Reset+" %s\n", func(l Logger, m string) { l.Warn(m) }, msgs)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	emit(false, Green+checkmark+Reset+" %s\n", func(l Logger, m string) { l.Info(m, "type", "success") }, msgs)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	emit(false, Blue+"%s"+Reset+"\n", func(l Logger, m string) { l.Info(m) }, msgs)
}

// Debug outputs a debug message to stderr when debug is enabled.
func Debug(msgs ...string) {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	if !enabled {
		return
	}
	emit(true, Cyan+"Debug:"+Reset+" %s\n", func(l Logger, m string) { l.Debug(m) }, msgs)
}
