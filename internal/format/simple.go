package format

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/yakari/internal/source"
)

// SimpleFormatter prints bare values, one per line, for use in scripts.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatMenus prints the menu names.
func (f *SimpleFormatter) FormatMenus(entries []source.Entry, writer io.Writer) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(writer, e.Name); err != nil {
			return err
		}
	}
	return nil
}

// FormatHistory prints the values.
func (f *SimpleFormatter) FormatHistory(_ string, values []string, writer io.Writer) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(writer, v); err != nil {
			return err
		}
	}
	return nil
}
