// Package argument models the arguments a menu exposes: flags, choices and
// free values, together with the rules that render them into command tokens.
package argument

import (
	"strings"
)

// Kind identifies the closed set of argument variants.
type Kind int

const (
	KindFlag Kind = iota
	KindChoice
	KindValue
)

// String returns the kind name used in menu definitions.
func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindChoice:
		return "choice"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

// Separator controls how a named argument joins its name and value.
type Separator string

const (
	// SeparatorSpace renders "--name value" as two tokens.
	SeparatorSpace Separator = "space"
	// SeparatorEqual renders "--name=value" as a single token.
	SeparatorEqual Separator = "equal"
)

// MultiStyleRepeat repeats the argument once per value. Any other multi style
// is used as the string joining all values into one token.
const MultiStyleRepeat = "repeat"

// Defaults applied when neither the argument nor any enclosing menu sets a value.
const (
	DefaultSeparator  = SeparatorSpace
	DefaultMultiStyle = MultiStyleRepeat
)

// ValidSeparator reports whether s is a known separator.
func ValidSeparator(s Separator) bool {
	return s == SeparatorSpace || s == SeparatorEqual
}

// Argument is implemented by *Flag, *Choice and *Value only.
type Argument interface {
	// Kind returns the variant of the argument.
	Kind() Kind
	// Enabled reports whether the argument contributes tokens to a command.
	Enabled() bool
	// Render returns the tokens for the argument, or nil when disabled.
	Render() []string
	// Label is the literal flag or name shown to the user.
	Label() string
	// Metadata returns the display metadata shared by all variants.
	Metadata() *Meta
	// Validate checks construction invariants.
	Validate() error
}

// Meta holds the fields shared by every argument variant.
type Meta struct {
	Template    Template
	Description string
	Group       string
}

// Metadata returns m.
func (m *Meta) Metadata() *Meta {
	return m
}

// Named holds the fields shared by choice and value arguments.
//
// Empty Separator and MultiStyle mean "not set": they are filled in by the
// enclosing menu configuration and fall back to the package defaults.
type Named struct {
	Name       string
	Separator  Separator
	Multi      bool
	MultiStyle string
}

// Positional reports whether the argument is rendered without its name.
func (n *Named) Positional() bool {
	return !strings.HasPrefix(n.Name, "-")
}

// Inherit fills separator and multi style when they were not set explicitly.
func (n *Named) Inherit(sep Separator, multiStyle string) {
	if n.Separator == "" {
		n.Separator = sep
	}
	if n.MultiStyle == "" {
		n.MultiStyle = multiStyle
	}
}

func (n *Named) separator() Separator {
	if n.Separator == "" {
		return DefaultSeparator
	}
	return n.Separator
}

func (n *Named) multiStyle() string {
	if n.MultiStyle == "" {
		return DefaultMultiStyle
	}
	return n.MultiStyle
}

// pair renders a single name/value occurrence.
func (n *Named) pair(value string) []string {
	if n.separator() == SeparatorEqual {
		return []string{n.Name + "=" + value}
	}
	return []string{n.Name, value}
}

// render applies the default rendering rule to values. A nil values slice
// means the argument is disabled.
func (n *Named) render(values []string) []string {
	if values == nil {
		return nil
	}
	style := n.multiStyle()

	if n.Positional() {
		if style == MultiStyleRepeat {
			out := make([]string, len(values))
			copy(out, values)
			return out
		}
		return []string{strings.Join(values, style)}
	}

	if !n.Multi {
		return n.pair(values[0])
	}

	if style == MultiStyleRepeat {
		out := make([]string, 0, len(values)*2)
		for _, v := range values {
			out = append(out, n.pair(v)...)
		}
		return out
	}
	return n.pair(strings.Join(values, style))
}

// joined flattens values for use inside custom templates.
func (n *Named) joined(values []string) string {
	style := n.multiStyle()
	if style == MultiStyleRepeat {
		style = " "
	}
	return strings.Join(values, style)
}

func (n *Named) fields() map[string]string {
	return map[string]string{
		"name":        n.Name,
		"separator":   string(n.separator()),
		"multi_style": n.multiStyle(),
	}
}
