// Package format provides output formatting for the yakari CLI commands that
// print lists: the available menus and the history of an argument.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/yakari/internal/source"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatMenus writes the menus available to the loader.
	FormatMenus(entries []source.Entry, writer io.Writer) error

	// FormatHistory writes the values stored for an argument, most recent first.
	FormatHistory(name string, values []string, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple prints one value per line.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable prints aligned columns with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON prints a JSON document.
	FormatterTypeJSON FormatterType = "json"
)

// Types lists the supported formatter types, for flag help.
func Types() []string {
	return []string{string(FormatterTypeSimple), string(FormatterTypeTable), string(FormatterTypeJSON)}
}

// ParseType validates a formatter type given on the command line.
func ParseType(s string) (FormatterType, error) {
	t := FormatterType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case FormatterTypeSimple, FormatterTypeTable, FormatterTypeJSON:
		return t, nil
	}
	return "", fmt.Errorf("unknown format %q (expected one of: %s)", s, strings.Join(Types(), ", "))
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter(DefaultTableConfig())
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		// Default to simple formatter for unknown types
		return NewSimpleFormatter()
	}
}
