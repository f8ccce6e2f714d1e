package argument

import (
	"errors"
	"strconv"
)

// Flag is a literal token toggled on and off.
type Flag struct {
	Meta
	Flag string
	On   bool
}

// Kind returns KindFlag.
func (f *Flag) Kind() Kind { return KindFlag }

// Enabled reports whether the flag is on.
func (f *Flag) Enabled() bool { return f.On }

// Label returns the flag literal.
func (f *Flag) Label() string { return f.Flag }

// Toggle flips the flag state.
func (f *Flag) Toggle() { f.On = !f.On }

// Render returns the flag token when the flag is on.
func (f *Flag) Render() []string {
	if !f.On {
		return nil
	}
	if f.Template.IsSet() {
		return f.Template.render(f.fields())
	}
	return []string{f.Flag}
}

// Validate checks the flag literal and its template.
func (f *Flag) Validate() error {
	if f.Flag == "" {
		return errors.New("flag argument requires a non-empty flag")
	}
	return f.Template.check(f.fields())
}

func (f *Flag) fields() map[string]string {
	return map[string]string{
		"flag":        f.Flag,
		"on":          strconv.FormatBool(f.On),
		"description": f.Description,
		"group":       f.Group,
	}
}
