package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	Section     lipgloss.Style
	Key         lipgloss.Style
	KeyMatched  lipgloss.Style
	KeyDimmed   lipgloss.Style
	Enabled     lipgloss.Style
	Disabled    lipgloss.Style
	Footer      lipgloss.Style
	Cursor      lipgloss.Style
	Tag         lipgloss.Style
	Separator   lipgloss.Style
	Output      lipgloss.Style
	OutputErr   lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Info        lipgloss.Style
	Success     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle().Faint(true),
		Section:     lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
		Key:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		KeyMatched:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		KeyDimmed:   lipgloss.NewStyle().Faint(true),
		Enabled:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Disabled:    lipgloss.NewStyle().Faint(true),
		Footer:      lipgloss.NewStyle().Faint(true).MarginTop(1),
		Cursor:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Tag:         lipgloss.NewStyle().Background(lipgloss.Color("8")).Foreground(lipgloss.Color("15")).Padding(0, 1),
		Separator:   lipgloss.NewStyle().Faint(true),
		Output:      lipgloss.NewStyle(),
		OutputErr:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}
