package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/yakari/internal/engine"
)

// choicePrompt picks one choice with enter, or several with space then
// enter when the argument is multi.
type choicePrompt struct {
	prompt   *engine.Prompt
	keys     keyMap
	cursor   int
	selected map[string]bool
}

func newChoicePrompt(p *engine.Prompt, keys keyMap) *choicePrompt {
	c := &choicePrompt{prompt: p, keys: keys, selected: make(map[string]bool)}
	for _, s := range p.Selected {
		c.selected[s] = true
	}
	if len(p.Selected) > 0 {
		for i, ch := range p.Choices {
			if ch == p.Selected[0] {
				c.cursor = i
				break
			}
		}
	}
	return c
}

func (c *choicePrompt) Update(msg tea.KeyMsg) (promptResult, tea.Cmd) {
	n := len(c.prompt.Choices)
	switch {
	case key.Matches(msg, c.keys.CancelInput):
		return promptResult{done: true}, nil
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyCtrlP, msg.String() == "k":
		c.cursor = (c.cursor - 1 + n) % n
	case msg.Type == tea.KeyDown, msg.Type == tea.KeyCtrlN, msg.String() == "j":
		c.cursor = (c.cursor + 1) % n
	case c.prompt.Multi && key.Matches(msg, c.keys.Toggle):
		ch := c.prompt.Choices[c.cursor]
		c.selected[ch] = !c.selected[ch]
	case key.Matches(msg, c.keys.Submit):
		if !c.prompt.Multi {
			return promptResult{done: true, values: []string{c.prompt.Choices[c.cursor]}}, nil
		}
		return promptResult{done: true, values: c.values()}, nil
	}
	return promptResult{}, nil
}

// values returns the selection in choice order.
func (c *choicePrompt) values() []string {
	out := []string{}
	for _, ch := range c.prompt.Choices {
		if c.selected[ch] {
			out = append(out, ch)
		}
	}
	return out
}
