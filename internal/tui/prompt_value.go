package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/yakari/internal/engine"
	"github.com/cristianoliveira/yakari/internal/search"
)

// promptResult is what a prompt returns once the user is done with it.
type promptResult struct {
	done   bool
	values []string
}

// valuePrompt collects free text. Multi prompts gather tags: enter adds the
// typed text as a tag, enter on an empty input submits the tags.
type valuePrompt struct {
	prompt *engine.Prompt
	keys   keyMap
	input  textinput.Model
	tags   []string

	history     []string
	suggestions []string
	// filter narrows the list to entries matching the typed text. Nil
	// keeps every entry.
	filter      search.Provider
	cursor      int
	listFocused bool
}

func newValuePrompt(p *engine.Prompt, keys keyMap, filter search.Provider) *valuePrompt {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = p.Label
	ti.ShowSuggestions = true
	// up and down walk the history
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))
	if p.Password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
		ti.ShowSuggestions = false
	}

	v := &valuePrompt{prompt: p, keys: keys, input: ti, filter: filter}
	if p.History != nil {
		v.history = p.History.Values()
		p.History.Restart()
	}
	v.suggestions = append([]string(nil), p.Suggestions...)
	if !p.Password {
		ti.SetSuggestions(append(append([]string(nil), v.history...), v.suggestions...))
	}

	switch {
	case p.Multi:
		v.tags = append([]string(nil), p.Seed...)
	case len(p.Seed) > 0:
		ti.SetValue(p.Seed[0])
		ti.CursorEnd()
	}
	ti.Focus()
	v.input = ti
	return v
}

func (v *valuePrompt) Update(msg tea.KeyMsg) (promptResult, tea.Cmd) {
	if key.Matches(msg, v.keys.CancelInput) {
		return promptResult{done: true}, nil
	}
	if v.listFocused {
		return v.updateList(msg), nil
	}

	switch {
	case key.Matches(msg, v.keys.Submit):
		return v.submit(), nil
	case key.Matches(msg, v.keys.FocusList):
		if entries, _ := v.visible(); len(entries) > 0 {
			v.listFocused = true
			v.cursor = 0
			v.input.Blur()
		}
		return promptResult{}, nil
	case key.Matches(msg, v.keys.HistoryPrev):
		if v.prompt.History != nil {
			if s, ok := v.prompt.History.Prev(); ok {
				v.input.SetValue(s)
				v.input.CursorEnd()
			}
		}
		return promptResult{}, nil
	case key.Matches(msg, v.keys.HistoryNext):
		if v.prompt.History != nil {
			if s, ok := v.prompt.History.Next(); ok {
				v.input.SetValue(s)
				v.input.CursorEnd()
			}
		}
		return promptResult{}, nil
	case msg.Type == tea.KeyBackspace && v.prompt.Multi && v.input.Value() == "" && len(v.tags) > 0:
		v.tags = v.tags[:len(v.tags)-1]
		return promptResult{}, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return promptResult{}, cmd
}

// visible returns the entries matching the typed text, history first, and
// how many of them come from history.
func (v *valuePrompt) visible() ([]string, int) {
	if v.prompt.Password {
		return nil, 0
	}
	query := strings.TrimSpace(v.input.Value())
	history := search.Filter(v.filter, v.history, query)
	suggestions := search.Filter(v.filter, v.suggestions, query)
	entries := make([]string, 0, len(history)+len(suggestions))
	entries = append(append(entries, history...), suggestions...)
	return entries, len(history)
}

func (v *valuePrompt) updateList(msg tea.KeyMsg) promptResult {
	entries, _ := v.visible()
	switch {
	case msg.Type == tea.KeyUp:
		v.cursor--
		if v.cursor < 0 {
			v.cursor = len(entries) - 1
		}
	case msg.Type == tea.KeyDown:
		v.cursor = (v.cursor + 1) % len(entries)
	case key.Matches(msg, v.keys.Submit):
		v.input.SetValue(entries[v.cursor])
		v.input.CursorEnd()
		v.focusInput()
	case key.Matches(msg, v.keys.FocusList), msg.Type == tea.KeyTab:
		v.focusInput()
	}
	return promptResult{}
}

func (v *valuePrompt) focusInput() {
	v.listFocused = false
	v.input.Focus()
}

func (v *valuePrompt) submit() promptResult {
	text := strings.TrimSpace(v.input.Value())
	if !v.prompt.Multi {
		return promptResult{done: true, values: []string{text}}
	}
	if text != "" {
		v.tags = append(v.tags, text)
		v.input.Reset()
		return promptResult{}
	}
	if len(v.tags) == 0 {
		return promptResult{done: true, values: []string{}}
	}
	return promptResult{done: true, values: append([]string(nil), v.tags...)}
}
