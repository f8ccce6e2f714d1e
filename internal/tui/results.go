package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/yakari/internal/runner"
)

const (
	defaultResultsHeight = 12
	defaultWidth         = 80
)

// StartFunc launches a command whose output is streamed into the results
// view.
type StartFunc func(ctx context.Context, tokens []string) (*runner.Process, error)

// lineMsg carries one output line of the process identified by id.
type lineMsg struct {
	id   int
	line runner.Line
}

// finishedMsg is sent once the process identified by id exited.
type finishedMsg struct {
	id     int
	result runner.Result
}

// results shows the output of in-place commands.
type results struct {
	styles   styles
	viewport viewport.Model
	lines    []string
	hidden   bool
	process  *runner.Process
	id       int
}

func newResults(s styles) *results {
	return &results{styles: s, viewport: viewport.New(defaultWidth, defaultResultsHeight)}
}

func (r *results) running() bool { return r.process != nil }

func (r *results) visible() bool { return !r.hidden && len(r.lines) > 0 }

func (r *results) setSize(width, height int) {
	r.viewport.Width = width
	r.viewport.Height = height
}

// start launches tokens, stopping any command still running.
func (r *results) start(ctx context.Context, start StartFunc, tokens []string) (tea.Cmd, error) {
	r.stop()
	p, err := start(ctx, tokens)
	if err != nil {
		return nil, err
	}
	r.id++
	r.process = p
	r.hidden = false
	r.append(r.styles.Title.Render("$> " + strings.Join(tokens, " ")))
	return waitForOutput(r.id, p), nil
}

// preview shows tokens as if they were started.
func (r *results) preview(tokens []string) {
	r.hidden = false
	r.append(r.styles.Title.Render("$> " + strings.Join(tokens, " ")))
}

// stop terminates the running command and waits for it.
func (r *results) stop() {
	if r.process == nil {
		return
	}
	res := r.process.Cancel()
	r.process = nil
	r.append(r.styles.Warning.Render(fmt.Sprintf("[Command stopped (%d)]", res.ExitCode)))
}

// handle applies a process message. Messages from stopped processes are
// dropped.
func (r *results) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case lineMsg:
		if msg.id != r.id || r.process == nil {
			return nil
		}
		style := r.styles.Output
		if msg.line.Stream == runner.Stderr {
			style = r.styles.OutputErr
		}
		r.append(style.Render(msg.line.Text))
		return waitForOutput(r.id, r.process)
	case finishedMsg:
		if msg.id != r.id || r.process == nil {
			return nil
		}
		r.process = nil
		text := fmt.Sprintf("[Command finished (%d)]", msg.result.ExitCode)
		if msg.result.Err != nil {
			text = fmt.Sprintf("[Command failed: %v]", msg.result.Err)
		}
		r.append(r.styles.Info.Render(text))
	}
	return nil
}

func (r *results) append(line string) {
	r.lines = append(r.lines, line)
	r.viewport.SetContent(strings.Join(r.lines, "\n"))
	r.viewport.GotoBottom()
}

func (r *results) clear() {
	r.lines = nil
	r.viewport.SetContent("")
}

func (r *results) View() string {
	if !r.visible() {
		return ""
	}
	return r.viewport.View()
}

// waitForOutput reads the next line, or reports the exit once the output
// is closed.
func waitForOutput(id int, p *runner.Process) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-p.Lines()
		if !ok {
			return finishedMsg{id: id, result: p.Wait()}
		}
		return lineMsg{id: id, line: line}
	}
}
