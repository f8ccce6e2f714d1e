// Package errors routes user-facing messages either to the console or to
// the status line of the TUI.
package errors

import (
	"errors"
	"sync"
)

// ErrorHandler is implemented by every message sink.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput prints colored console messages.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages to the console. Messages from concurrent
// callers are never interleaved.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
}

var _ ErrorHandler = (*CLIHandler)(nil)

// NewCLIHandler returns a handler printing through colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Success(msg)
}

// Warner is an error that should be reported as a warning.
type Warner interface {
	Warning() bool
}

// Report sends err to h. Errors implementing Warner with Warning() true are
// reported as warnings. A nil err is ignored.
func Report(h ErrorHandler, err error) {
	if err == nil {
		return
	}
	var w Warner
	if errors.As(err, &w) && w.Warning() {
		h.Warning(err.Error())
		return
	}
	h.Error(err.Error())
}
