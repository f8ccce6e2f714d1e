package engine

import (
	"context"
	"errors"
	"testing"

	assets "github.com/cristianoliveira/yakari"
	"github.com/cristianoliveira/yakari/internal/argument"
	"github.com/cristianoliveira/yakari/internal/history"
	"github.com/cristianoliveira/yakari/internal/menu"
	"github.com/cristianoliveira/yakari/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDemo(t *testing.T, opts Options) *Engine {
	t.Helper()
	loader := &source.Loader{Embedded: assets.Menus()}
	root, err := menu.Load(context.Background(), loader, "demo", menu.Options{})
	require.NoError(t, err)
	return New(root, opts)
}

// typeKeys presses every rune of s and returns the last outcome.
func typeKeys(t *testing.T, e *Engine, s string) Outcome {
	t.Helper()
	var out Outcome
	for _, k := range Keys(s) {
		out = e.Press(context.Background(), k)
	}
	return out
}

func submit(t *testing.T, e *Engine, values ...string) Outcome {
	t.Helper()
	out, err := e.Submit(context.Background(), values)
	require.NoError(t, err)
	return out
}

func requireCommand(t *testing.T, out Outcome) *Resolved {
	t.Helper()
	require.Equal(t, OutcomeCommand, out.Kind)
	require.NotNil(t, out.Command)
	return out.Command
}

func TestToggleFlagAndRun(t *testing.T) {
	e := newDemo(t, Options{})

	typeKeys(t, e, "a")
	assert.Equal(t, "arguments", e.Screen().Menu.Name)
	typeKeys(t, e, "-f")

	cmd := requireCommand(t, typeKeys(t, e, "d"))
	assert.Equal(t, []string{"echo", "--parent=100", "--flag", "--named-with-default=3"}, cmd.Tokens)
	assert.False(t, cmd.Inplace)
	assert.Equal(t, "echo", cmd.Command.Name)
}

func TestValuePromptAndRun(t *testing.T) {
	e := newDemo(t, Options{})

	out := typeKeys(t, e, "a-n")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.Equal(t, PromptValue, out.Prompt.Kind)
	assert.Equal(t, "--named", out.Prompt.Label)
	assert.False(t, out.Prompt.Multi)
	assert.Equal(t, "-n", e.Screen().Input, "the shortcut stays while the prompt is pending")
	assert.Equal(t, []string{"a", "-n"}, e.InputPath())

	assert.Equal(t, OutcomeNone, submit(t, e, "foo").Kind)
	assert.Nil(t, e.Pending())
	assert.Empty(t, e.Screen().Input)

	cmd := requireCommand(t, typeKeys(t, e, "d"))
	assert.Equal(t, []string{"echo", "--parent=100", "--named=foo", "--named-with-default=3"}, cmd.Tokens)
}

func TestMultiValuePrompt(t *testing.T) {
	e := newDemo(t, Options{})

	out := typeKeys(t, e, "a--mn")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.True(t, out.Prompt.Multi)
	assert.Equal(t, []string{"apple", "banana", "peach"}, out.Prompt.Suggestions)
	submit(t, e, "foo", "bar", "peach")

	cmd := requireCommand(t, typeKeys(t, e, "d"))
	assert.Equal(t, []string{
		"echo", "--parent=100", "--named-with-default=3",
		"--multi-named=foo", "--multi-named=bar", "--multi-named=peach",
	}, cmd.Tokens)
}

func TestChoicePrompts(t *testing.T) {
	e := newDemo(t, Options{})

	out := typeKeys(t, e, "a-c")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.Equal(t, PromptChoice, out.Prompt.Kind)
	assert.Equal(t, []string{"python", "rust"}, out.Prompt.Choices)
	assert.False(t, out.Prompt.Multi)
	submit(t, e, "rust")

	out = typeKeys(t, e, "--mc")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.True(t, out.Prompt.Multi)
	submit(t, e, "jazz", "npr news")

	cmd := requireCommand(t, typeKeys(t, e, "d"))
	assert.Equal(t, []string{
		"echo", "--parent=100", "--named-with-default=3",
		"--single-choice=rust", "--multi-choice=jazz", "--multi-choice=npr news",
	}, cmd.Tokens)
}

func TestInvalidChoiceKeepsPrompt(t *testing.T) {
	e := newDemo(t, Options{})
	typeKeys(t, e, "a-c")

	out, err := e.Submit(context.Background(), []string{"go"})
	require.ErrorIs(t, err, argument.ErrInvalidSelection)
	assert.Equal(t, OutcomePrompt, out.Kind)
	require.NotNil(t, e.Pending())

	out, err = e.Submit(context.Background(), []string{"python", "rust"})
	require.ErrorIs(t, err, argument.ErrMultipleSelection)
	assert.Equal(t, OutcomePrompt, out.Kind)
	c, _ := e.Screen().Menu.Arguments.Get("-c")
	assert.False(t, c.Enabled())

	submit(t, e, "python")
	assert.Nil(t, e.Pending())
}

func TestToggleModeDisablesEnabledArguments(t *testing.T) {
	e := newDemo(t, Options{})

	out := typeKeys(t, e, "a--nd")
	assert.Equal(t, OutcomeNone, out.Kind, "enabled value is cleared without a prompt")

	cmd := requireCommand(t, typeKeys(t, e, "d"))
	assert.Equal(t, []string{"echo", "--parent=100"}, cmd.Tokens)
}

func TestEditModeReopensPrompt(t *testing.T) {
	e := newDemo(t, Options{})
	typeKeys(t, e, "a")
	e.Press(context.Background(), Key{Kind: KeyToggleEdit})
	assert.True(t, e.Screen().EditMode)

	out := typeKeys(t, e, "--nd")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.Equal(t, []string{"3"}, out.Prompt.Seed)
	submit(t, e, "5")

	typeKeys(t, e, "-f")
	flag, _ := e.Screen().Menu.Arguments.Get("-f")
	assert.True(t, flag.Enabled(), "flags toggle in edit mode too")

	cmd := requireCommand(t, typeKeys(t, e, "d"))
	assert.Equal(t, []string{"echo", "--parent=100", "--flag", "--named-with-default=5"}, cmd.Tokens)
}

func TestEditModeIsPerScreen(t *testing.T) {
	e := newDemo(t, Options{})
	e.Press(context.Background(), Key{Kind: KeyToggleEdit})
	typeKeys(t, e, "a")

	assert.False(t, e.Screen().EditMode)
	assert.True(t, e.Screens()[0].EditMode)
}

func TestCancelledPromptDisablesArgument(t *testing.T) {
	e := newDemo(t, Options{})
	typeKeys(t, e, "a")
	e.Press(context.Background(), Key{Kind: KeyToggleEdit})
	typeKeys(t, e, "--nd")

	assert.Equal(t, OutcomeNone, submit(t, e).Kind)
	nd, _ := e.Screen().Menu.Arguments.Get("--nd")
	assert.False(t, nd.Enabled())
}

func TestEmptyInputIsDropped(t *testing.T) {
	e := newDemo(t, Options{})
	typeKeys(t, e, "a-n")
	submit(t, e, "")

	n, _ := e.Screen().Menu.Arguments.Get("-n")
	assert.False(t, n.Enabled())
}

func TestDynamicArgument(t *testing.T) {
	e := newDemo(t, Options{})

	out := typeKeys(t, e, "at")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.True(t, out.Prompt.Dynamic)
	assert.Equal(t, "target", out.Prompt.Label)

	assert.Equal(t, "t", e.Screen().Input)

	cmd := requireCommand(t, submit(t, e, "world"))
	assert.Equal(t, []string{"echo", "--named-with-default=3", "world"}, cmd.Tokens)
	assert.Empty(t, e.Screen().Input)
}

func TestDynamicArgumentAbort(t *testing.T) {
	e := newDemo(t, Options{})
	typeKeys(t, e, "at")

	assert.Equal(t, "t", e.Screen().Input)

	out := submit(t, e)
	assert.Equal(t, OutcomeNone, out.Kind)
	assert.Nil(t, e.Pending())
	assert.Equal(t, "arguments", e.Screen().Menu.Name, "menu stays active")
	assert.Empty(t, e.Screen().Input)

	out = typeKeys(t, e, "t")
	assert.Equal(t, OutcomePrompt, out.Kind, "the command can be retried")
}

func TestDynamicFlagTogglesWithoutPrompt(t *testing.T) {
	root := &menu.Menu{
		Name: "root",
		Commands: menu.Table[*menu.Command]{
			{Shortcut: "r", Value: &menu.Command{Name: "run", Template: []menu.Element{
				menu.Literal("ls"),
				menu.Dynamic(&argument.Flag{Flag: "-l"}),
				menu.Dynamic(&argument.Value{Named: argument.Named{Name: "dir"}}),
			}}},
		},
	}
	e := New(root, Options{Inplace: true})

	out := typeKeys(t, e, "r")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.Equal(t, "dir", out.Prompt.Label)

	cmd := requireCommand(t, submit(t, e, "/tmp"))
	assert.Equal(t, []string{"ls", "-l", "/tmp"}, cmd.Tokens)
	assert.True(t, cmd.Inplace)
}

func TestCommandInplaceOverride(t *testing.T) {
	e := newDemo(t, Options{})

	out := typeKeys(t, e, "s-j")
	require.Equal(t, OutcomePrompt, out.Kind)
	submit(t, e, "1", "2")

	out = typeKeys(t, e, "r")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.Equal(t, "message", out.Prompt.Label)

	cmd := requireCommand(t, submit(t, e, "hi"))
	assert.Equal(t, []string{"echo", "--jobs", "1,2", "hi"}, cmd.Tokens)
	assert.True(t, cmd.Inplace)
}

func TestKeyMatching(t *testing.T) {
	flags := map[string]*argument.Flag{}
	root := &menu.Menu{Name: "root"}
	for _, k := range []string{"-f", "-v", "-c", "--long-flag"} {
		f := &argument.Flag{Flag: k}
		flags[k] = f
		root.Arguments = append(root.Arguments, menu.Entry[argument.Argument]{Shortcut: k, Value: f})
	}
	ctx := context.Background()
	e := New(root, Options{})

	typeKeys(t, e, "--long")
	assert.Equal(t, "--long", e.Screen().Input)
	assert.Equal(t, []string{"--long-flag"}, e.Matches())

	typeKeys(t, e, "e")
	assert.Empty(t, e.Screen().Input, "unmatched input resets the buffer")

	typeKeys(t, e, "--long")
	e.Press(ctx, Key{Kind: KeyTab})
	assert.True(t, flags["--long-flag"].On, "tab completes the single match")
	assert.Empty(t, e.Screen().Input)

	typeKeys(t, e, "-")
	e.Press(ctx, Key{Kind: KeyTab})
	assert.Equal(t, "-", e.Screen().Input, "several matches do not complete")

	typeKeys(t, e, "v")
	assert.True(t, flags["-v"].On)
	typeKeys(t, e, "-v")
	assert.False(t, flags["-v"].On, "double toggle restores the flag")

	typeKeys(t, e, "-x")
	assert.Empty(t, e.Screen().Input)
	assert.False(t, flags["-f"].On)
}

func TestBackspaceAndCancel(t *testing.T) {
	ctx := context.Background()
	e := newDemo(t, Options{})
	root := e.Screen().Menu

	assert.Equal(t, OutcomeNone, e.Press(ctx, Key{Kind: KeyBackspace}).Kind, "no-op at the entrypoint")
	require.Len(t, e.Screens(), 1)

	typeKeys(t, e, "a")
	sub := e.Screen().Menu
	assert.Equal(t, []string{"-p", "-v"}, sub.Ancestors().Shortcuts())

	typeKeys(t, e, "--")
	assert.Equal(t, []string{"a", "--"}, e.InputPath())
	e.Press(ctx, Key{Kind: KeyBackspace})
	assert.Equal(t, "-", e.Screen().Input)
	e.Press(ctx, Key{Kind: KeyBackspace})
	assert.Empty(t, e.Screen().Input)
	require.Len(t, e.Screens(), 2)

	e.Press(ctx, Key{Kind: KeyBackspace})
	require.Len(t, e.Screens(), 1)
	assert.Same(t, root, e.Screen().Menu)
	assert.Empty(t, sub.Ancestors(), "ancestors are cleared when the screen is left")

	typeKeys(t, e, "s")
	assert.Equal(t, OutcomeNone, e.Press(ctx, Key{Kind: KeyCancel}).Kind)
	require.Len(t, e.Screens(), 1)

	assert.Equal(t, OutcomeExit, e.Press(ctx, Key{Kind: KeyCancel}).Kind)
}

func TestKeysIgnoredWhilePromptPending(t *testing.T) {
	e := newDemo(t, Options{})
	typeKeys(t, e, "a-n")
	require.NotNil(t, e.Pending())

	assert.Equal(t, OutcomeNone, typeKeys(t, e, "-f").Kind)
	assert.Equal(t, OutcomeNone, e.Press(context.Background(), Key{Kind: KeyCancel}).Kind)
	flag, _ := e.Screen().Menu.Arguments.Get("-f")
	assert.False(t, flag.Enabled())
}

func TestSubmitWithoutPrompt(t *testing.T) {
	e := newDemo(t, Options{})
	_, err := e.Submit(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, ErrNoPrompt)
}

func TestHistorySession(t *testing.T) {
	store := new(history.MockStore)
	store.On("Get", mock.Anything, "--named").Return([]string{"old"}, nil).Once()
	store.On("Set", mock.Anything, "--named", []string{"foo", "old"}).Return(nil).Once()

	e := newDemo(t, Options{History: store})
	out := typeKeys(t, e, "a-n")
	require.NotNil(t, out.Prompt.History)
	assert.Equal(t, []string{"old"}, out.Prompt.History.Values())

	submit(t, e, "foo")
	store.AssertExpectations(t)
}

func TestHistorySkipsPasswords(t *testing.T) {
	store := new(history.MockStore)
	e := newDemo(t, Options{History: store})

	out := typeKeys(t, e, "s-P")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.True(t, out.Prompt.Password)
	assert.Nil(t, out.Prompt.History)

	submit(t, e, "hunter2")
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoryFailuresDoNotBlockInput(t *testing.T) {
	store := new(history.MockStore)
	store.On("Get", mock.Anything, "--named").Return(nil, errors.New("locked")).Once()

	e := newDemo(t, Options{History: store})
	out := typeKeys(t, e, "a-n")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.Nil(t, out.Prompt.History)

	submit(t, e, "foo")
	n, _ := e.Screen().Menu.Arguments.Get("-n")
	assert.Equal(t, []string{"--named=foo"}, n.Render())
	store.AssertExpectations(t)
}

func TestHistoryWithMemoryStore(t *testing.T) {
	store := history.NewMemoryStore()
	e := newDemo(t, Options{History: store, HistoryMaxSize: 2})

	for _, v := range []string{"one", "two", "three"} {
		typeKeys(t, e, "a")
		e.Press(context.Background(), Key{Kind: KeyToggleEdit})
		typeKeys(t, e, "-n")
		submit(t, e, v)
		e.Press(context.Background(), Key{Kind: KeyCancel})
	}

	values, err := store.Get(context.Background(), "--named")
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "two"}, values)
}

func TestSuggestionsFailureIsReported(t *testing.T) {
	root := &menu.Menu{
		Name: "root",
		Arguments: menu.Table[argument.Argument]{
			{Shortcut: "-u", Value: &argument.Value{
				Named:       argument.Named{Name: "--user"},
				Suggestions: &argument.SuggestionsCommand{Command: "echo nope >&2"},
			}},
		},
	}
	e := New(root, Options{})

	out := typeKeys(t, e, "-u")
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.ErrorIs(t, out.Prompt.Err, argument.ErrSuggestionsCommand)
	assert.Empty(t, out.Prompt.Suggestions)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "tab", KeyTab.String())
	assert.Equal(t, "toggle-edit", KeyToggleEdit.String())
	assert.Equal(t, "command", OutcomeCommand.String())
	assert.Equal(t, "exit", OutcomeExit.String())
}
