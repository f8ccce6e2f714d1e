package argument

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnknownTemplateField is returned when a template references a field the
// argument does not have.
var ErrUnknownTemplateField = errors.New("unknown template field")

var fieldPattern = regexp.MustCompile(`\{self\.([A-Za-z_]+)\}`)

// Template is a custom rendering pattern referencing the argument's own
// fields as {self.<field>}. A template built from a single string renders
// one token; a template built from a list renders one token per part.
type Template struct {
	parts []string
	list  bool
}

// NewTemplate returns a single-token template.
func NewTemplate(pattern string) Template {
	return Template{parts: []string{pattern}}
}

// NewListTemplate returns a template producing one token per part.
func NewListTemplate(parts ...string) Template {
	cp := make([]string, len(parts))
	copy(cp, parts)
	return Template{parts: cp, list: true}
}

// IsSet reports whether a custom template was configured.
func (t Template) IsSet() bool {
	return len(t.parts) > 0 || t.list
}

// IsList reports whether the template renders one token per part.
func (t Template) IsList() bool {
	return t.list
}

// Parts returns a copy of the template parts.
func (t Template) Parts() []string {
	cp := make([]string, len(t.parts))
	copy(cp, t.parts)
	return cp
}

// Fields returns every field name referenced by the template.
func (t Template) Fields() []string {
	var names []string
	for _, part := range t.parts {
		for _, m := range fieldPattern.FindAllStringSubmatch(part, -1) {
			names = append(names, m[1])
		}
	}
	return names
}

// check verifies every referenced field exists in allowed.
func (t Template) check(allowed map[string]string) error {
	for _, name := range t.Fields() {
		if _, ok := allowed[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTemplateField, name)
		}
	}
	return nil
}

// render substitutes fields. Unknown fields are rejected by check at load
// time, so they are left untouched here.
func (t Template) render(fields map[string]string) []string {
	out := make([]string, 0, len(t.parts))
	for _, part := range t.parts {
		out = append(out, fieldPattern.ReplaceAllStringFunc(part, func(m string) string {
			name := fieldPattern.FindStringSubmatch(m)[1]
			if v, ok := fields[name]; ok {
				return v
			}
			return m
		}))
	}
	return out
}
