package menu

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every *ConfigError through errors.Is.
var ErrConfig = errors.New("menu configuration error")

// ConfigError reports an invalid menu definition. Path locates the offending
// element, for example menus.a.arguments."-c".
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}
	if e.Path == "" {
		return fmt.Sprintf("invalid menu: %s", msg)
	}
	return fmt.Sprintf("invalid menu at %s: %s", e.Path, msg)
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfig) true for every ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErr(path, format string, args ...any) *ConfigError {
	return &ConfigError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func wrapConfigErr(path string, err error) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return err
	}
	return &ConfigError{Path: path, Err: err}
}
