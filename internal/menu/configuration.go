package menu

import "github.com/cristianoliveira/yakari/internal/argument"

// Configuration holds the display and rendering defaults of a menu. Zero
// fields are unset and inherit from the enclosing menu at load time.
type Configuration struct {
	SortArguments *bool
	SortMenus     *bool
	SortCommands  *bool
	Separator     argument.Separator
	MultiStyle    string
}

// inherit fills every unset field from parent.
func (c *Configuration) inherit(parent Configuration) {
	if c.SortArguments == nil {
		c.SortArguments = parent.SortArguments
	}
	if c.SortMenus == nil {
		c.SortMenus = parent.SortMenus
	}
	if c.SortCommands == nil {
		c.SortCommands = parent.SortCommands
	}
	if c.Separator == "" {
		c.Separator = parent.Separator
	}
	if c.MultiStyle == "" {
		c.MultiStyle = parent.MultiStyle
	}
}

// ShouldSortArguments reports whether arguments are displayed sorted by shortcut.
func (c Configuration) ShouldSortArguments() bool { return deref(c.SortArguments) }

// ShouldSortMenus reports whether sub-menus are displayed sorted by shortcut.
func (c Configuration) ShouldSortMenus() bool { return deref(c.SortMenus) }

// ShouldSortCommands reports whether commands are displayed sorted by shortcut.
func (c Configuration) ShouldSortCommands() bool { return deref(c.SortCommands) }

func deref(b *bool) bool { return b != nil && *b }

// Bool returns a pointer to b, for building configurations in code.
func Bool(b bool) *bool { return &b }
