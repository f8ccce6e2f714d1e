//go:build integration
// +build integration

package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	assets "github.com/cristianoliveira/yakari"
	"github.com/cristianoliveira/yakari/internal/engine"
	"github.com/cristianoliveira/yakari/internal/history"
	"github.com/cristianoliveira/yakari/internal/menu"
	"github.com/cristianoliveira/yakari/internal/runner"
	"github.com/cristianoliveira/yakari/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, name string) *menu.Menu {
	t.Helper()
	m, err := menu.Load(context.Background(), &source.Loader{Embedded: assets.Menus()}, name, menu.Options{})
	require.NoError(t, err)
	return m
}

func press(t *testing.T, e *engine.Engine, keys string) engine.Outcome {
	t.Helper()
	var out engine.Outcome
	for _, k := range engine.Keys(keys) {
		out = e.Press(context.Background(), k)
	}
	return out
}

func TestSessionResolvesAndRunsInplaceCommand(t *testing.T) {
	ctx := context.Background()
	store, err := history.NewForBackend(history.BackendSQLite, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	e := engine.New(load(t, "demo"), engine.Options{History: store})
	out := press(t, e, "s-j")
	require.Equal(t, engine.OutcomePrompt, out.Kind)
	_, err = e.Submit(ctx, []string{"1", "2"})
	require.NoError(t, err)

	out = press(t, e, "r")
	require.Equal(t, engine.OutcomePrompt, out.Kind)
	out, err = e.Submit(ctx, []string{"hi there"})
	require.NoError(t, err)
	require.Equal(t, engine.OutcomeCommand, out.Kind)
	assert.True(t, out.Command.Inplace)
	assert.Equal(t, []string{"echo", "--jobs", "1,2", "hi there"}, out.Command.Tokens)

	p, err := runner.Start(ctx, out.Command.Tokens, runner.Options{})
	require.NoError(t, err)
	var lines []string
	for l := range p.Lines() {
		lines = append(lines, l.Text)
	}
	res := p.Wait()
	require.NoError(t, res.Err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, []string{"--jobs 1,2 hi there"}, lines)

	// a new session remembers what was typed
	e = engine.New(load(t, "demo"), engine.Options{History: store})
	out = press(t, e, "s-j")
	require.Equal(t, engine.OutcomePrompt, out.Kind)
	require.NotNil(t, out.Prompt.History)
	assert.Equal(t, []string{"2", "1"}, out.Prompt.History.Values())
}

func TestSessionInheritsParentArguments(t *testing.T) {
	ctx := context.Background()
	e := engine.New(load(t, "uv"), engine.Options{})

	press(t, e, "-qr-w")
	_, err := e.Submit(ctx, []string{"pandas", "numpy"})
	require.NoError(t, err)

	out := press(t, e, "r")
	require.Equal(t, engine.OutcomePrompt, out.Kind)
	out, err = e.Submit(ctx, []string{"python", "-V"})
	require.NoError(t, err)

	require.Equal(t, engine.OutcomeCommand, out.Kind)
	assert.Equal(t, []string{
		"uv", "run", "--quiet", "--with", "pandas", "--with", "numpy", "--", "python", "-V",
	}, out.Command.Tokens)
}

func TestCancelledCommandStopsWithinGracePeriod(t *testing.T) {
	p, err := runner.Start(context.Background(), []string{"sh", "-c", "trap '' INT; sleep 30"}, runner.Options{GracePeriod: 200 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	res := p.Cancel()

	assert.True(t, res.Cancelled)
	assert.Less(t, time.Since(start), 5*time.Second)
}
