package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/yakari/internal/argument"
	"github.com/cristianoliveira/yakari/internal/engine"
	"github.com/cristianoliveira/yakari/internal/errors"
	"github.com/cristianoliveira/yakari/internal/menu"
)

const defaultGroup = "Arguments"

// View renders the current state.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.menuView())

	switch {
	case m.value != nil:
		b.WriteString("\n\n" + m.valueView())
	case m.choice != nil:
		b.WriteString("\n\n" + m.choiceView())
	}

	if out := m.results.View(); out != "" {
		b.WriteString("\n\n" + out)
	}
	if m.hasStatus {
		b.WriteString("\n" + m.statusView())
	}
	b.WriteString("\n" + m.footerView())
	return b.String()
}

func (m *Model) menuView() string {
	screens := m.engine.Screens()
	top := screens[len(screens)-1]
	mn := top.Menu
	cfg := mn.Configuration

	names := make([]string, len(screens))
	for i, s := range screens {
		names[i] = s.Menu.Name
	}
	lines := []string{m.styles.Title.Render(strings.Join(names, " > "))}
	if mn.Description != "" {
		lines = append(lines, m.styles.Description.Render(mn.Description))
	}

	if len(mn.Menus) > 0 {
		lines = append(lines, m.styles.Section.Render("Menus"))
		for _, e := range mn.Menus.Sorted(cfg.ShouldSortMenus()) {
			lines = append(lines, m.row(top.Input, e.Shortcut, e.Value.Name, e.Value.Description, false))
		}
	}

	for _, g := range groupArguments(mn.Arguments.Sorted(cfg.ShouldSortArguments())) {
		lines = append(lines, m.styles.Section.Render(g.name))
		for _, e := range g.entries {
			lines = append(lines, m.row(top.Input, e.Shortcut, argumentLabel(e.Value), e.Value.Metadata().Description, e.Value.Enabled()))
		}
	}

	if len(mn.Commands) > 0 {
		lines = append(lines, m.styles.Section.Render("Commands"))
		for _, e := range mn.Commands.Sorted(cfg.ShouldSortCommands()) {
			lines = append(lines, m.row(top.Input, e.Shortcut, e.Value.Name, e.Value.Description, false))
		}
	}
	return strings.Join(lines, "\n")
}

// row renders one shortcut line. Keys not matching input are dimmed and the
// typed prefix is highlighted.
func (m *Model) row(input, shortcut, label, description string, enabled bool) string {
	var k string
	switch {
	case input == "":
		k = m.styles.Key.Render(shortcut)
	case strings.HasPrefix(shortcut, input):
		k = m.styles.KeyMatched.Render(input) + m.styles.Key.Render(shortcut[len(input):])
	default:
		k = m.styles.KeyDimmed.Render(shortcut)
	}
	pad := 6 - lipgloss.Width(shortcut)
	if pad < 1 {
		pad = 1
	}

	labelStyle := m.styles.Disabled
	if enabled {
		labelStyle = m.styles.Enabled
	}
	line := "  " + k + strings.Repeat(" ", pad) + labelStyle.Render(label)
	if description != "" {
		line += "  " + m.styles.Description.Render(description)
	}
	return line
}

type argumentGroup struct {
	name    string
	entries menu.Table[argument.Argument]
}

// groupArguments splits arguments by group, in order of first appearance.
func groupArguments(args menu.Table[argument.Argument]) []argumentGroup {
	var groups []argumentGroup
	index := make(map[string]int)
	for _, e := range args {
		name := e.Value.Metadata().Group
		if name == "" {
			name = defaultGroup
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, argumentGroup{name: name})
		}
		groups[i].entries = append(groups[i].entries, e)
	}
	return groups
}

// argumentLabel shows the argument with its current state.
func argumentLabel(a argument.Argument) string {
	switch v := a.(type) {
	case *argument.Flag:
		return v.Flag
	case *argument.Choice:
		if !v.Enabled() {
			return fmt.Sprintf("%s [%s]", v.Name, strings.Join(v.Choices, "|"))
		}
		return fmt.Sprintf("%s=%s", v.Name, strings.Join(v.Selected, ","))
	case *argument.Value:
		if !v.Enabled() {
			return v.Name
		}
		if v.Password {
			return v.Name + "=" + strings.Repeat("*", 6)
		}
		return fmt.Sprintf("%s=%s", v.Name, strings.Join(v.Value, ","))
	}
	return a.Label()
}

func (m *Model) valueView() string {
	v := m.value
	p := v.prompt
	lines := []string{m.promptTitle(p)}
	if len(v.tags) > 0 {
		tags := make([]string, len(v.tags))
		for i, t := range v.tags {
			tags[i] = m.styles.Tag.Render(t)
		}
		lines = append(lines, strings.Join(tags, " "))
	}
	lines = append(lines, v.input.View())

	entries, historyLen := v.visible()
	if len(entries) > 0 {
		for i, e := range entries {
			if i == historyLen && historyLen > 0 {
				lines = append(lines, m.styles.Separator.Render("  ───"))
			}
			prefix := "  "
			style := m.styles.Description
			if v.listFocused && i == v.cursor {
				prefix = "> "
				style = m.styles.Cursor
			}
			lines = append(lines, prefix+style.Render(e))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) choiceView() string {
	c := m.choice
	lines := []string{m.promptTitle(c.prompt)}
	for i, ch := range c.prompt.Choices {
		prefix := "  "
		if i == c.cursor {
			prefix = "> "
		}
		mark := ""
		if c.prompt.Multi {
			mark = "[ ] "
			if c.selected[ch] {
				mark = "[x] "
			}
		}
		style := m.styles.Description
		if i == c.cursor {
			style = m.styles.Cursor
		}
		lines = append(lines, prefix+style.Render(mark+ch))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) promptTitle(p *engine.Prompt) string {
	title := m.styles.Title.Render(p.Label)
	if p.Description != "" {
		title += "  " + m.styles.Description.Render(p.Description)
	}
	return title
}

func (m *Model) statusView() string {
	msg := m.statusMessage
	switch msg.Type {
	case errors.MessageTypeError:
		return m.styles.Error.Render("Error: " + msg.Text)
	case errors.MessageTypeWarning:
		return m.styles.Warning.Render("Warning: " + msg.Text)
	case errors.MessageTypeSuccess:
		return m.styles.Success.Render(msg.Text)
	default:
		return m.styles.Info.Render(msg.Text)
	}
}

func (m *Model) footerView() string {
	top := m.engine.Screen()
	mode := "toggle"
	if top.EditMode {
		mode = "edit"
	}
	path := strings.Join(m.engine.InputPath(), " ")

	bindings := m.keys.menuHelp(m.results.running())
	switch {
	case m.value != nil:
		bindings = m.keys.valueHelp(m.value.prompt.Multi, m.value.prompt.History != nil)
	case m.choice != nil:
		bindings = m.keys.choiceHelp(m.choice.prompt.Multi)
	}
	info := fmt.Sprintf("Input: %s  Mode: %s", path, mode)
	return m.styles.Footer.Render(info + "\n" + m.help.ShortHelpView(bindings))
}
