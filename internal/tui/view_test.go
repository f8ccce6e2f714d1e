package tui

import (
	"testing"

	"github.com/cristianoliveira/yakari/internal/argument"
	"github.com/cristianoliveira/yakari/internal/engine"
	"github.com/cristianoliveira/yakari/internal/menu"
	"github.com/stretchr/testify/assert"
)

func TestMenuView(t *testing.T) {
	m := newTestModel(t, engine.Options{})

	view := m.View()
	for _, want := range []string{"demo", "A tour of every argument kind", "Menus", "arguments", "suggestions", "Commands", "show", "--parent=100", "--verbose", "Input:"} {
		assert.Contains(t, view, want)
	}

	send(m, runes("a"))
	view = m.View()
	for _, want := range []string{"demo > arguments", "Choices", "--single-choice [python|rust]", "--named-with-default=3", "echo target"} {
		assert.Contains(t, view, want)
	}
	assert.Contains(t, view, "Input: a  Mode: toggle")

	send(m, runes("--"))
	assert.Contains(t, m.View(), "Input: a --")
}

func TestGroupArgumentsKeepsFirstAppearanceOrder(t *testing.T) {
	args := menu.Table[argument.Argument]{
		{Shortcut: "-a", Value: &argument.Flag{Flag: "--a"}},
		{Shortcut: "-b", Value: &argument.Flag{Flag: "--b", Meta: argument.Meta{Group: "Other"}}},
		{Shortcut: "-c", Value: &argument.Flag{Flag: "--c"}},
	}

	groups := groupArguments(args)

	if assert.Len(t, groups, 2) {
		assert.Equal(t, defaultGroup, groups[0].name)
		assert.Equal(t, []string{"-a", "-c"}, groups[0].entries.Shortcuts())
		assert.Equal(t, "Other", groups[1].name)
	}
}

func TestArgumentLabel(t *testing.T) {
	tests := map[string]struct {
		arg  argument.Argument
		want string
	}{
		"flag":               {&argument.Flag{Flag: "--all"}, "--all"},
		"choice unset":       {&argument.Choice{Named: argument.Named{Name: "--c"}, Choices: []string{"a", "b"}}, "--c [a|b]"},
		"choice selected":    {&argument.Choice{Named: argument.Named{Name: "--c"}, Choices: []string{"a", "b"}, Selected: []string{"a", "b"}}, "--c=a,b"},
		"value unset":        {&argument.Value{Named: argument.Named{Name: "--v"}}, "--v"},
		"value set":          {&argument.Value{Named: argument.Named{Name: "--v"}, Value: []string{"x"}}, "--v=x"},
		"password is hidden": {&argument.Value{Named: argument.Named{Name: "--p"}, Password: true, Value: []string{"secret"}}, "--p=******"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, argumentLabel(tt.arg))
		})
	}
}
