package menu

import (
	"context"
	"testing"

	assets "github.com/cristianoliveira/yakari"
	"github.com/cristianoliveira/yakari/internal/argument"
	"github.com/cristianoliveira/yakari/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDemo(t *testing.T) *Menu {
	t.Helper()
	loader := &source.Loader{Embedded: assets.Menus()}
	m, err := Load(context.Background(), loader, "demo", Options{})
	require.NoError(t, err)
	return m
}

func fromTOML(t *testing.T, doc string) (*Menu, error) {
	t.Helper()
	def, err := source.DecodeTOML([]byte(doc))
	require.NoError(t, err)
	return FromSource(def, Options{Name: "test"})
}

func TestLoadDemo(t *testing.T) {
	m := loadDemo(t)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, []string{"-p", "-v", "a", "s", "x"}, m.Shortcuts())

	a, ok := m.Menus.Get("a")
	require.True(t, ok)
	assert.Equal(t, "arguments", a.Name)
	assert.Equal(t, []string{"-f", "-n", "--nd", "--mn", "-c", "--mc", "d", "t"}, a.Shortcuts())

	c, ok := a.Candidate("-c")
	require.True(t, ok)
	assert.Equal(t, CandidateArgument, c.Kind)
	choice := c.Argument.(*argument.Choice)
	assert.Equal(t, []string{"python", "rust"}, choice.Choices)
	assert.Equal(t, "Choices", choice.Group)

	d, ok := a.Candidate("d")
	require.True(t, ok)
	assert.Equal(t, CandidateCommand, d.Kind)
	require.Len(t, d.Command.Template, 2)
	assert.Equal(t, ElementSelector, d.Command.Template[1].Kind)
	assert.Equal(t, ScopeAll, d.Command.Template[1].Selector.Scope)

	_, ok = a.Candidate("zz")
	assert.False(t, ok)
}

func TestLoadUV(t *testing.T) {
	loader := &source.Loader{Embedded: assets.Menus()}
	m, err := Load(context.Background(), loader, "uv", Options{})
	require.NoError(t, err)
	assert.Equal(t, "uv", m.Name)
	assert.Len(t, m.Menus, 2)
}

func TestConfigurationPropagation(t *testing.T) {
	m := loadDemo(t)

	parent := m.Arguments[0].Value.(*argument.Value)
	assert.Equal(t, argument.SeparatorEqual, parent.Separator)
	assert.Equal(t, []string{"--parent=100"}, parent.Render())

	a, _ := m.Menus.Get("a")
	assert.Equal(t, argument.SeparatorEqual, a.Configuration.Separator)
	named, _ := a.Arguments.Get("--nd")
	assert.Equal(t, []string{"--named-with-default=3"}, named.Render())

	s, _ := m.Menus.Get("s")
	assert.Equal(t, argument.SeparatorSpace, s.Configuration.Separator, "explicit value wins")
	assert.True(t, s.Configuration.ShouldSortArguments())
	assert.False(t, m.Configuration.ShouldSortArguments())

	jobs, _ := s.Arguments.Get("-j")
	v := jobs.(*argument.Value)
	assert.Equal(t, ",", v.MultiStyle, "explicit multi style is kept")
	assert.Equal(t, argument.SeparatorSpace, v.Separator)

	r, _ := s.Commands.Get("r")
	dyn := r.Template[2].Argument.(*argument.Value)
	assert.Equal(t, argument.SeparatorSpace, dyn.Separator, "dynamic arguments inherit too")
}

func TestPropagationIsPerField(t *testing.T) {
	m, err := fromTOML(t, `
[configuration]
separator = "equal"
multi_style = ","
sort_menus = true

[menus.a.configuration]
multi_style = "repeat"

[menus.a.arguments."-x"]
name = "--x"
multi = true
separator = "space"
`)
	require.NoError(t, err)

	a, _ := m.Menus.Get("a")
	assert.Equal(t, argument.SeparatorEqual, a.Configuration.Separator)
	assert.Equal(t, "repeat", a.Configuration.MultiStyle)
	assert.True(t, a.Configuration.ShouldSortMenus())

	x, _ := a.Arguments.Get("-x")
	v := x.(*argument.Value)
	assert.Equal(t, argument.SeparatorSpace, v.Separator)
	assert.Equal(t, "repeat", v.MultiStyle)
}

func TestDefaultsApplyToRoot(t *testing.T) {
	def, err := source.DecodeTOML([]byte(`[arguments."-x"]
name = "--x"
value = "1"`))
	require.NoError(t, err)

	m, err := FromSource(def, Options{Name: "n", Defaults: Configuration{Separator: argument.SeparatorEqual, SortCommands: Bool(true)}})
	require.NoError(t, err)
	assert.Equal(t, "n", m.Name)
	assert.True(t, m.Configuration.ShouldSortCommands())
	x, _ := m.Arguments.Get("-x")
	assert.Equal(t, []string{"--x=1"}, x.Render())
}

func TestConfigErrors(t *testing.T) {
	cases := map[string]string{
		"duplicate shortcut": `
[arguments."a"]
flag = "--a"
[menus.a]
`,
		"duplicate command shortcut": `
[menus.d]
[commands.d]
template = ["echo"]
`,
		"selected not in choices": `
[arguments."-c"]
name = "--c"
choices = ["a"]
selected = "b"
`,
		"unknown template field": `
[arguments."-c"]
flag = "--c"
template = "{self.nope}"
`,
		"unknown include": `
[arguments."-a"]
flag = "--a"
[commands.d]
template = ["echo", { include = ["-b"] }]
`,
		"ancestor include needs scope all": `
[arguments."-a"]
flag = "--a"
[menus.m.commands.d]
template = ["echo", { include = ["-a"] }]
`,
		"invalid scope": `
[commands.d]
template = ["echo", { scope = "everything" }]
`,
		"unknown kind": `
[arguments."-a"]
kind = "toggle"
flag = "--a"
`,
		"cannot infer kind": `
[arguments."-a"]
description = "nothing"
`,
		"unknown field": `
[arguments."-a"]
flag = "--a"
colour = "red"
`,
		"missing template": `
[commands.d]
name = "echo"
`,
		"invalid separator": `
[configuration]
separator = "tab"
`,
		"empty choices": `
[arguments."-c"]
name = "--c"
choices = []
`,
		"multiple values without multi": `
[arguments."-v"]
name = "--v"
value = ["a", "b"]
`,
		"wrong type": `
[arguments."-f"]
flag = "--f"
on = "yes"
`,
		"empty suggestions command": `
[arguments."-v"]
name = "--v"
suggestions = { command = " " }
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fromTOML(t, doc)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrConfig)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
		})
	}
}

func TestConfigErrorPath(t *testing.T) {
	_, err := fromTOML(t, `
[menus.a.arguments."-c"]
name = "--c"
choices = ["x"]
selected = "y"
`)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, `menus.a.arguments."-c"`, ce.Path)
	assert.ErrorIs(t, err, argument.ErrInvalidSelection)
	assert.Contains(t, err.Error(), `invalid menu at menus.a.arguments."-c"`)
}

func TestLoadMissingDefinition(t *testing.T) {
	loader := &source.Loader{Dir: t.TempDir()}
	_, err := Load(context.Background(), loader, "nope", Options{})
	require.ErrorIs(t, err, ErrConfig)
	require.ErrorIs(t, err, source.ErrNotFound)
	assert.Contains(t, err.Error(), `no definition found for "nope"`)
}

func TestKindInferenceAndExplicitKind(t *testing.T) {
	m, err := fromTOML(t, `
[arguments."-f"]
flag = "--f"
[arguments."-c"]
name = "--c"
choices = ["a", 2]
selected = ["a"]
[arguments."-v"]
name = "--v"
value = 3
suggestions = ["x", "y"]
[arguments."-w"]
kind = "value"
name = "--w"
suggestions = { command = "echo hi", cache = true }
`)
	require.NoError(t, err)

	kinds := make([]argument.Kind, 0, len(m.Arguments))
	for _, e := range m.Arguments {
		kinds = append(kinds, e.Value.Kind())
	}
	assert.Equal(t, []argument.Kind{argument.KindFlag, argument.KindChoice, argument.KindValue, argument.KindValue}, kinds)

	c, _ := m.Arguments.Get("-c")
	assert.Equal(t, []string{"a", "2"}, c.(*argument.Choice).Choices)
	v, _ := m.Arguments.Get("-v")
	assert.Equal(t, []string{"3"}, v.(*argument.Value).Value)
	assert.Equal(t, argument.SuggestionsList{"x", "y"}, v.(*argument.Value).Suggestions)
	w, _ := m.Arguments.Get("-w")
	cmd, ok := w.(*argument.Value).Suggestions.(*argument.SuggestionsCommand)
	require.True(t, ok)
	assert.True(t, cmd.Cache)
}

func TestMenuArgumentsResolve(t *testing.T) {
	m := loadDemo(t)
	a, _ := m.Menus.Get("a")

	all := &MenuArguments{Scope: ScopeAll}
	assert.Equal(t, []string{"-f", "-n", "--nd", "--mn", "-c", "--mc"}, all.Resolve(a).Shortcuts(), "no ancestors before the screen is pushed")

	a.SetAncestors(m.ChildAncestors())
	defer a.ClearAncestors()

	assert.Equal(t, []string{"-p", "-v", "-f", "-n", "--nd", "--mn", "-c", "--mc"}, all.Resolve(a).Shortcuts())

	this := &MenuArguments{Scope: ScopeThis, Include: []string{"-c", "-f"}}
	assert.Equal(t, []string{"-f", "-c"}, this.Resolve(a).Shortcuts(), "menu order wins over include order")

	excl := &MenuArguments{Scope: ScopeAll, Include: []string{IncludeAll}, Exclude: []string{"-p", "--mn"}}
	assert.Equal(t, []string{"-v", "-f", "-n", "--nd", "-c", "--mc"}, excl.Resolve(a).Shortcuts())
}

func TestChildAncestorsOverride(t *testing.T) {
	m, err := fromTOML(t, `
[arguments."-x"]
flag = "--root"
[arguments."-y"]
flag = "--y"
[menus.a.arguments."-x"]
flag = "--child"
`)
	require.NoError(t, err)
	a, _ := m.Menus.Get("a")

	a.SetAncestors(m.ChildAncestors())
	got := a.ChildAncestors()
	require.Equal(t, []string{"-x", "-y"}, got.Shortcuts())
	x, _ := got.Get("-x")
	assert.Equal(t, "--child", x.Label())

	a.ClearAncestors()
	assert.Empty(t, a.Ancestors())
}

func TestTableSorted(t *testing.T) {
	tbl := Table[int]{{"b", 1}, {"a", 2}, {"c", 3}}
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Sorted(true).Shortcuts())
	assert.Equal(t, []string{"b", "a", "c"}, tbl.Sorted(false).Shortcuts())
	assert.Equal(t, []string{"b", "a", "c"}, tbl.Shortcuts(), "original untouched")
}

func TestCommandRunsInplace(t *testing.T) {
	c := &Command{}
	assert.True(t, c.RunsInplace(true))
	c.Inplace = Bool(false)
	assert.False(t, c.RunsInplace(true))
}

func TestWalk(t *testing.T) {
	m := loadDemo(t)
	var paths [][]string
	m.Walk(func(path []string, _ *Menu) { paths = append(paths, path) })
	assert.Equal(t, [][]string{nil, {"a"}, {"s"}}, paths)
}
