package argument

import (
	"errors"
	"fmt"
)

// ErrInvalidSelection is returned when a selection is not a subset of the
// available choices.
var ErrInvalidSelection = errors.New("selection is not one of the available choices")

// ErrMultipleSelection is returned when several values are selected on a
// choice that is not multi.
var ErrMultipleSelection = errors.New("several selections require multi = true")

// Choice is a named argument whose values come from a fixed list.
type Choice struct {
	Meta
	Named
	Choices  []string
	Selected []string
}

// Kind returns KindChoice.
func (c *Choice) Kind() Kind { return KindChoice }

// Enabled reports whether at least one choice is selected.
func (c *Choice) Enabled() bool { return len(c.Selected) > 0 }

// Label returns the argument name.
func (c *Choice) Label() string { return c.Name }

// Values returns the selection, or nil when disabled.
func (c *Choice) Values() []string {
	if !c.Enabled() {
		return nil
	}
	return c.Selected
}

// Select replaces the selection. An empty selection disables the argument.
func (c *Choice) Select(values []string) error {
	if len(values) == 0 {
		c.Selected = nil
		return nil
	}
	if !c.Multi && len(values) > 1 {
		return fmt.Errorf("%s: %w", c.Name, ErrMultipleSelection)
	}
	if err := c.checkSubset(values); err != nil {
		return err
	}
	c.Selected = append([]string(nil), values...)
	return nil
}

// Clear disables the argument.
func (c *Choice) Clear() { c.Selected = nil }

// Render applies the custom template or the named rendering rule.
func (c *Choice) Render() []string {
	values := c.Values()
	if values == nil {
		return nil
	}
	if c.Template.IsSet() {
		return c.Template.render(c.fields())
	}
	return c.Named.render(values)
}

// Validate checks that choices are non-empty and the selection is a subset.
func (c *Choice) Validate() error {
	if c.Name == "" {
		return errors.New("choice argument requires a name")
	}
	if len(c.Choices) == 0 {
		return fmt.Errorf("choice argument %s requires at least one choice", c.Name)
	}
	if c.Separator != "" && !ValidSeparator(c.Separator) {
		return fmt.Errorf("choice argument %s: invalid separator %q", c.Name, c.Separator)
	}
	if err := c.checkSubset(c.Selected); err != nil {
		return err
	}
	return c.Template.check(c.fields())
}

// IsSelected reports whether choice is part of the selection.
func (c *Choice) IsSelected(choice string) bool {
	for _, s := range c.Selected {
		if s == choice {
			return true
		}
	}
	return false
}

func (c *Choice) checkSubset(values []string) error {
	allowed := make(map[string]bool, len(c.Choices))
	for _, ch := range c.Choices {
		allowed[ch] = true
	}
	for _, v := range values {
		if !allowed[v] {
			return fmt.Errorf("%s: %w: %q", c.Name, ErrInvalidSelection, v)
		}
	}
	return nil
}

func (c *Choice) fields() map[string]string {
	f := c.Named.fields()
	f["selected"] = c.joined(c.Selected)
	f["description"] = c.Description
	f["group"] = c.Group
	return f
}

// NormalizeSelection turns a decoded selection (nil, a string, or a list of
// strings) into a slice. A bare string becomes a one-element slice.
func NormalizeSelection(v any) ([]string, error) {
	switch typed := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{typed}, nil
	case []string:
		if len(typed) == 0 {
			return nil, nil
		}
		return append([]string(nil), typed...), nil
	case []any:
		if len(typed) == 0 {
			return nil, nil
		}
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string value, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string or list of strings, got %T", v)
	}
}
