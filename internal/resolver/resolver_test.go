package resolver

import (
	"errors"
	"testing"

	"github.com/cristianoliveira/yakari/internal/argument"
	"github.com/cristianoliveira/yakari/internal/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenu() *menu.Menu {
	parent := &menu.Menu{
		Arguments: menu.Table[argument.Argument]{
			{Shortcut: "-p", Value: &argument.Value{Named: argument.Named{Name: "--parent", Separator: argument.SeparatorEqual}, Value: []string{"100"}}},
		},
	}
	child := &menu.Menu{
		Arguments: menu.Table[argument.Argument]{
			{Shortcut: "-f", Value: &argument.Flag{Flag: "--flag", On: true}},
			{Shortcut: "-n", Value: &argument.Value{Named: argument.Named{Name: "--named"}}},
			{Shortcut: "-c", Value: &argument.Choice{Named: argument.Named{Name: "--choice"}, Choices: []string{"a", "b"}, Selected: []string{"b"}}},
		},
	}
	child.SetAncestors(parent.ChildAncestors())
	return child
}

func TestResolveLiteralsAndSelectors(t *testing.T) {
	m := testMenu()
	template := []menu.Element{
		menu.Literal("echo"),
		menu.Select(&menu.MenuArguments{Scope: menu.ScopeAll}),
		menu.Literal("--"),
		menu.Select(&menu.MenuArguments{Scope: menu.ScopeThis, Include: []string{"-c"}}),
	}

	tokens, ok, err := Resolve(m, template, func(argument.Argument) error {
		t.Fatal("no dynamic argument to process")
		return nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"echo", "--parent=100", "--flag", "--choice", "b", "--", "--choice", "b"}, tokens)
}

func TestResolveSkipsDisabledArguments(t *testing.T) {
	m := testMenu()
	m.Arguments[0].Value.(*argument.Flag).Toggle()

	tokens, ok, err := Resolve(m, []menu.Element{menu.Literal("echo"), menu.Select(&menu.MenuArguments{})}, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"echo", "--choice", "b"}, tokens)
}

func TestResolvePromptsForDynamicArguments(t *testing.T) {
	m := testMenu()
	target := &argument.Value{Named: argument.Named{Name: "target"}}
	template := []menu.Element{menu.Literal("echo"), menu.Dynamic(target)}

	var prompted []argument.Argument
	tokens, ok, err := Resolve(m, template, func(a argument.Argument) error {
		prompted = append(prompted, a)
		a.(*argument.Value).Set([]string{"world"})
		return nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"echo", "world"}, tokens)
	assert.Equal(t, []argument.Argument{target}, prompted)
}

func TestDynamicArgumentIsPromptedEvenWhenEnabled(t *testing.T) {
	target := &argument.Value{Named: argument.Named{Name: "target"}, Value: []string{"old"}}
	r := New(testMenu(), []menu.Element{menu.Dynamic(target)}, nil)

	step := r.Next()
	require.Equal(t, StepPrompt, step.Kind)
	assert.Same(t, target, step.Argument)
	assert.Same(t, target, r.Pending())

	step = r.Next()
	require.Equal(t, StepDone, step.Kind)
	assert.Equal(t, []string{"old"}, step.Tokens)
}

func TestResolveAbortKeepsEarlierMutations(t *testing.T) {
	first := &argument.Value{Named: argument.Named{Name: "first"}}
	second := &argument.Value{Named: argument.Named{Name: "second"}}
	template := []menu.Element{menu.Literal("echo"), menu.Dynamic(first), menu.Dynamic(second)}

	tokens, ok, err := Resolve(testMenu(), template, func(a argument.Argument) error {
		if a == argument.Argument(first) {
			first.Set([]string{"kept"})
			return nil
		}
		second.Set(nil)
		return nil
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, tokens)
	assert.Equal(t, []string{"kept"}, first.Value)
}

func TestResolutionStepsAfterAbort(t *testing.T) {
	r := New(testMenu(), []menu.Element{menu.Dynamic(&argument.Choice{Named: argument.Named{Name: "--c"}, Choices: []string{"x"}})}, nil)

	assert.Equal(t, StepPrompt, r.Next().Kind)
	assert.Equal(t, StepAborted, r.Next().Kind)
	assert.Equal(t, StepAborted, r.Next().Kind)
}

func TestResolveProcessorError(t *testing.T) {
	boom := errors.New("boom")
	_, ok, err := Resolve(testMenu(), []menu.Element{menu.Dynamic(&argument.Flag{Flag: "--x"})}, func(argument.Argument) error {
		return boom
	})
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestResolveEmptyTemplate(t *testing.T) {
	tokens, ok, err := Resolve(testMenu(), nil, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, tokens)
}

func TestStepKindString(t *testing.T) {
	assert.Equal(t, "prompt", StepPrompt.String())
	assert.Equal(t, "done", StepDone.String())
	assert.Equal(t, "aborted", StepAborted.String())
}
