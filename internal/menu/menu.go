// Package menu holds the tree of menus, arguments and commands a session
// navigates, and builds it from a decoded definition.
package menu

import (
	"github.com/cristianoliveira/yakari/internal/argument"
)

// Menu is a node of the menu tree.
type Menu struct {
	Name          string
	Description   string
	Arguments     Table[argument.Argument]
	Menus         Table[*Menu]
	Commands      Table[*Command]
	Configuration Configuration

	// ancestors holds the arguments of the enclosing menus while this menu
	// is the active screen. It is never part of the definition.
	ancestors Table[argument.Argument]
}

// CandidateKind identifies what a shortcut is bound to.
type CandidateKind int

const (
	CandidateArgument CandidateKind = iota
	CandidateMenu
	CandidateCommand
)

func (k CandidateKind) String() string {
	switch k {
	case CandidateArgument:
		return "argument"
	case CandidateMenu:
		return "menu"
	case CandidateCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Candidate is the target of a shortcut.
type Candidate struct {
	Kind     CandidateKind
	Argument argument.Argument
	Menu     *Menu
	Command  *Command
}

// Candidate returns the argument, sub-menu or command bound to shortcut.
func (m *Menu) Candidate(shortcut string) (Candidate, bool) {
	if a, ok := m.Arguments.Get(shortcut); ok {
		return Candidate{Kind: CandidateArgument, Argument: a}, true
	}
	if sub, ok := m.Menus.Get(shortcut); ok {
		return Candidate{Kind: CandidateMenu, Menu: sub}, true
	}
	if c, ok := m.Commands.Get(shortcut); ok {
		return Candidate{Kind: CandidateCommand, Command: c}, true
	}
	return Candidate{}, false
}

// Shortcuts returns every shortcut of the menu: arguments, then sub-menus,
// then commands.
func (m *Menu) Shortcuts() []string {
	out := make([]string, 0, len(m.Arguments)+len(m.Menus)+len(m.Commands))
	out = append(out, m.Arguments.Shortcuts()...)
	out = append(out, m.Menus.Shortcuts()...)
	out = append(out, m.Commands.Shortcuts()...)
	return out
}

// Ancestors returns the arguments inherited from the enclosing menus.
func (m *Menu) Ancestors() Table[argument.Argument] {
	return m.ancestors
}

// SetAncestors records the arguments of the enclosing menus. It is called
// when the menu becomes the active screen.
func (m *Menu) SetAncestors(args Table[argument.Argument]) {
	m.ancestors = args
}

// ClearAncestors drops the inherited arguments when the screen is left.
func (m *Menu) ClearAncestors() {
	m.ancestors = nil
}

// ChildAncestors returns the ancestors a sub-menu of m inherits: m's own
// ancestors overlaid with m's arguments.
func (m *Menu) ChildAncestors() Table[argument.Argument] {
	return merge(m.ancestors, m.Arguments)
}

// Walk calls fn for m and every sub-menu, depth first, with the shortcut
// path leading to each menu.
func (m *Menu) Walk(fn func(path []string, m *Menu)) {
	m.walk(nil, fn)
}

func (m *Menu) walk(path []string, fn func([]string, *Menu)) {
	fn(path, m)
	for _, e := range m.Menus {
		next := append(append([]string(nil), path...), e.Shortcut)
		e.Value.walk(next, fn)
	}
}
