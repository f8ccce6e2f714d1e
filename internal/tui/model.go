// Package tui is the terminal front end: it feeds key presses to the
// navigation engine and renders menus, prompts and command output.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/yakari/internal/engine"
	"github.com/cristianoliveira/yakari/internal/errors"
	"github.com/cristianoliveira/yakari/internal/logging"
	"github.com/cristianoliveira/yakari/internal/runner"
	"github.com/cristianoliveira/yakari/internal/search"
)

const statusClearDuration = 5 * time.Second

// clearStatusMsg hides the status line once its message expired.
type clearStatusMsg struct{}

// Options configure a Model.
type Options struct {
	// Start launches in-place commands. Defaults to runner.Start.
	Start StartFunc
	// Filter narrows value prompt suggestions to the typed text. Nil shows
	// them all.
	Filter search.Provider
	// DryRun shows in-place commands in the results view without running
	// them.
	DryRun bool
	Logger logging.Logger
}

type prompter interface {
	Update(msg tea.KeyMsg) (promptResult, tea.Cmd)
}

// Model is the bubbletea model of a session.
type Model struct {
	ctx    context.Context
	engine *engine.Engine
	keys   keyMap
	styles styles
	help   help.Model
	start  StartFunc
	filter search.Provider
	dryRun bool
	logger logging.Logger

	width  int
	height int

	value   *valuePrompt
	choice  *choicePrompt
	results *results

	status        *errors.TUIHandler
	statusMessage errors.Message
	hasStatus     bool

	command  []string
	quitting bool
}

// New returns a model driving e.
func New(ctx context.Context, e *engine.Engine, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logging.NewNoopLogger()
	}
	if opts.Start == nil {
		logger := opts.Logger
		opts.Start = func(ctx context.Context, tokens []string) (*runner.Process, error) {
			return runner.Start(ctx, tokens, runner.Options{Logger: logger})
		}
	}
	s := defaultStyles()
	m := &Model{
		ctx:     ctx,
		engine:  e,
		keys:    defaultKeyMap(),
		styles:  s,
		help:    help.New(),
		start:   opts.Start,
		filter:  opts.Filter,
		dryRun:  opts.DryRun,
		logger:  opts.Logger,
		width:   defaultWidth,
		results: newResults(s),
	}
	m.status = errors.NewTUIHandler(func(msg errors.Message) {
		m.statusMessage = msg
		m.hasStatus = msg.Text != ""
	})
	return m
}

// Run starts the program and returns the resolved command, or nil when the
// session ended without one.
func Run(ctx context.Context, e *engine.Engine, opts Options) ([]string, error) {
	m := New(ctx, e, opts)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	return m.Command(), nil
}

// Command returns the command resolved outside in-place mode.
func (m *Model) Command() []string { return m.command }

// Init initializes the TUI model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.results.setSize(msg.Width, resultsHeight(msg.Height))
		return m, nil
	case lineMsg, finishedMsg:
		return m, m.results.handle(msg)
	case clearStatusMsg:
		if _, ok := m.status.Latest(statusClearDuration); !ok {
			m.hasStatus = false
		}
		return m, nil
	}
	return m, nil
}

func resultsHeight(total int) int {
	h := total / 3
	if h < 3 {
		return 3
	}
	return h
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}
	if p := m.activePrompt(); p != nil {
		return m.handlePromptKey(p, msg)
	}

	if m.results.running() && key.Matches(msg, m.keys.StopCommand) {
		m.results.stop()
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.ClearOutput):
		m.results.clear()
		return m, nil
	case key.Matches(msg, m.keys.ToggleOutput):
		m.results.hidden = !m.results.hidden
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m.press(engine.Key{Kind: engine.KeyCancel})
	case tea.KeyTab:
		return m.press(engine.Key{Kind: engine.KeyTab})
	case tea.KeyBackspace:
		return m.press(engine.Key{Kind: engine.KeyBackspace})
	case tea.KeyCtrlE:
		return m.press(engine.Key{Kind: engine.KeyToggleEdit})
	case tea.KeyRunes:
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			_, cmd := m.press(engine.Rune(r))
			cmds = append(cmds, cmd)
			if m.quitting || m.activePrompt() != nil {
				break
			}
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m *Model) activePrompt() prompter {
	switch {
	case m.value != nil:
		return m.value
	case m.choice != nil:
		return m.choice
	}
	return nil
}

func (m *Model) handlePromptKey(p prompter, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res, cmd := p.Update(msg)
	if !res.done {
		return m, cmd
	}
	out, err := m.engine.Submit(m.ctx, res.values)
	if err != nil {
		m.status.Error(err.Error())
		return m, m.clearStatusLater()
	}
	m.value, m.choice = nil, nil
	return m.handleOutcome(out)
}

func (m *Model) press(k engine.Key) (tea.Model, tea.Cmd) {
	return m.handleOutcome(m.engine.Press(m.ctx, k))
}

func (m *Model) handleOutcome(out engine.Outcome) (tea.Model, tea.Cmd) {
	switch out.Kind {
	case engine.OutcomePrompt:
		return m, m.openPrompt(out.Prompt)
	case engine.OutcomeCommand:
		return m.runCommand(out.Command)
	case engine.OutcomeExit:
		return m.quit()
	}
	return m, nil
}

func (m *Model) openPrompt(p *engine.Prompt) tea.Cmd {
	if p.Kind == engine.PromptChoice {
		m.choice = newChoicePrompt(p, m.keys)
	} else {
		m.value = newValuePrompt(p, m.keys, m.filter)
	}
	if p.Err != nil {
		m.status.Warning(p.Err.Error())
		return m.clearStatusLater()
	}
	return nil
}

func (m *Model) runCommand(r *engine.Resolved) (tea.Model, tea.Cmd) {
	if !r.Inplace {
		m.command = r.Tokens
		return m.quit()
	}
	if m.dryRun {
		m.logger.Info("dry run, command not started", "tokens", r.Tokens)
		m.results.preview(r.Tokens)
		return m, nil
	}
	cmd, err := m.results.start(m.ctx, m.start, r.Tokens)
	if err != nil {
		m.logger.Error("command failed to start", "error", err)
		m.status.Error(err.Error())
		return m, m.clearStatusLater()
	}
	return m, cmd
}

// quit tears the session down, stopping any running command.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.results.stop()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) clearStatusLater() tea.Cmd {
	return tea.Tick(statusClearDuration, func(time.Time) tea.Msg { return clearStatusMsg{} })
}
