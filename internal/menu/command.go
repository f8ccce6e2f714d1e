package menu

import (
	"github.com/cristianoliveira/yakari/internal/argument"
)

// Scope selects which arguments a MenuArguments selector sees.
type Scope string

const (
	// ScopeThis limits the selector to the menu's own arguments.
	ScopeThis Scope = "this"
	// ScopeAll adds the arguments of every ancestor menu.
	ScopeAll Scope = "all"
)

// IncludeAll selects every argument in scope.
const IncludeAll = "*"

// MenuArguments is a template element expanding to the enabled arguments
// of the menu the command is run from.
type MenuArguments struct {
	// Include lists shortcuts to keep. Nil or ["*"] keeps all of them.
	Include []string
	Exclude []string
	Scope   Scope
}

func (s *MenuArguments) includesAll() bool {
	return len(s.Include) == 0 || (len(s.Include) == 1 && s.Include[0] == IncludeAll)
}

// Resolve returns the arguments selected in m, ancestors first when the
// scope is ScopeAll, filtered by Include and Exclude.
func (s *MenuArguments) Resolve(m *Menu) Table[argument.Argument] {
	candidates := m.Arguments
	if s.Scope == ScopeAll {
		candidates = merge(m.ancestors, m.Arguments)
	}

	include := make(map[string]bool, len(s.Include))
	for _, k := range s.Include {
		include[k] = true
	}
	exclude := make(map[string]bool, len(s.Exclude))
	for _, k := range s.Exclude {
		exclude[k] = true
	}

	var out Table[argument.Argument]
	for _, e := range candidates {
		if !s.includesAll() && !include[e.Shortcut] {
			continue
		}
		if exclude[e.Shortcut] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ElementKind identifies the variants of a command template element.
type ElementKind int

const (
	ElementLiteral ElementKind = iota
	ElementSelector
	ElementArgument
)

// Element is one part of a command template: a literal token, a
// MenuArguments selector, or a dynamic argument private to the command.
type Element struct {
	Kind     ElementKind
	Literal  string
	Selector *MenuArguments
	Argument argument.Argument
}

// Literal returns a literal template element.
func Literal(s string) Element { return Element{Kind: ElementLiteral, Literal: s} }

// Select returns a selector template element.
func Select(s *MenuArguments) Element { return Element{Kind: ElementSelector, Selector: s} }

// Dynamic returns a dynamic argument template element.
func Dynamic(a argument.Argument) Element { return Element{Kind: ElementArgument, Argument: a} }

// Command is a runnable entry of a menu.
type Command struct {
	Name        string
	Description string
	Template    []Element
	// Inplace overrides the application in-place mode when set.
	Inplace *bool
}

// RunsInplace returns the effective in-place mode given the application default.
func (c *Command) RunsInplace(appDefault bool) bool {
	if c.Inplace == nil {
		return appDefault
	}
	return *c.Inplace
}
