package argument

import (
	"errors"
	"fmt"
)

// Value is a named argument holding free-form input.
type Value struct {
	Meta
	Named
	Value       []string
	Password    bool
	Suggestions Suggestions
}

// Kind returns KindValue.
func (v *Value) Kind() Kind { return KindValue }

// Enabled reports whether a value is set.
func (v *Value) Enabled() bool { return len(v.Value) > 0 }

// Label returns the argument name.
func (v *Value) Label() string { return v.Name }

// Values returns the current values, or nil when disabled.
func (v *Value) Values() []string {
	if !v.Enabled() {
		return nil
	}
	return v.Value
}

// Set replaces the value. A nil or empty slice disables the argument. A
// single-valued argument keeps only the first element.
func (v *Value) Set(values []string) {
	if len(values) == 0 {
		v.Value = nil
		return
	}
	if !v.Multi {
		values = values[:1]
	}
	v.Value = append([]string(nil), values...)
}

// Clear disables the argument.
func (v *Value) Clear() { v.Value = nil }

// Render applies the custom template or the named rendering rule.
func (v *Value) Render() []string {
	values := v.Values()
	if values == nil {
		return nil
	}
	if v.Template.IsSet() {
		return v.Template.render(v.fields())
	}
	return v.Named.render(values)
}

// Validate checks the name, separator and template.
func (v *Value) Validate() error {
	if v.Name == "" {
		return errors.New("value argument requires a name")
	}
	if v.Separator != "" && !ValidSeparator(v.Separator) {
		return fmt.Errorf("value argument %s: invalid separator %q", v.Name, v.Separator)
	}
	if !v.Multi && len(v.Value) > 1 {
		return fmt.Errorf("value argument %s: multiple values require multi = true", v.Name)
	}
	return v.Template.check(v.fields())
}

func (v *Value) fields() map[string]string {
	f := v.Named.fields()
	f["value"] = v.joined(v.Value)
	f["description"] = v.Description
	f["group"] = v.Group
	return f
}
