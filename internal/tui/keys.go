package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings that are not menu shortcuts. Plain runes always
// go to the menu, so every binding here uses a control or special key.
type keyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Complete   key.Binding
	Delete     key.Binding
	ToggleEdit key.Binding

	Submit      key.Binding
	CancelInput key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	FocusList   key.Binding
	Toggle      key.Binding

	ClearOutput  key.Binding
	ToggleOutput key.Binding
	StopCommand  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Delete:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete/back")),
		ToggleEdit: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "toggle edit")),

		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		CancelInput: key.NewBinding(key.WithKeys("ctrl+q", "esc"), key.WithHelp("ctrl+q", "cancel")),
		HistoryPrev: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "older")),
		HistoryNext: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "newer")),
		FocusList:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "suggestions")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),

		ClearOutput:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear output")),
		ToggleOutput: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "hide output")),
		StopCommand:  key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "stop command")),
	}
}

func (k keyMap) menuHelp(output bool) []key.Binding {
	out := []key.Binding{k.Back, k.Complete, k.ToggleEdit, k.Quit}
	if output {
		out = append(out, k.ClearOutput, k.ToggleOutput, k.StopCommand)
	}
	return out
}

func (k keyMap) valueHelp(multi, history bool) []key.Binding {
	submit := k.Submit
	if multi {
		submit.SetHelp("enter", "add, empty to submit")
	}
	out := []key.Binding{submit, k.CancelInput, k.FocusList}
	if history {
		out = append(out, k.HistoryPrev, k.HistoryNext)
	}
	return out
}

func (k keyMap) choiceHelp(multi bool) []key.Binding {
	if multi {
		return []key.Binding{k.Toggle, k.Submit, k.CancelInput}
	}
	pick := k.Submit
	pick.SetHelp("enter", "pick")
	return []key.Binding{pick, k.CancelInput}
}
