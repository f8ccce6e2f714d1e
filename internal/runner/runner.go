// Package runner executes resolved commands, either attached to the
// terminal or streaming their output line by line.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/yakari/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyCommand is returned when there is nothing to execute.
var ErrEmptyCommand = errors.New("empty command")

// Stream tells which output a line came from.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Line is one line of command output, without its trailing newline.
type Line struct {
	Stream Stream
	Text   string
}

// Result is how a command finished.
type Result struct {
	ExitCode  int
	Cancelled bool
	Err       error
}

// Defaults for streamed processes.
const (
	DefaultGracePeriod   = 2 * time.Second
	DefaultFlushInterval = 200 * time.Millisecond
)

// Options tune a streamed process.
type Options struct {
	Dir string
	Env []string
	// GracePeriod is how long Cancel waits after the interrupt before
	// killing the process.
	GracePeriod time.Duration
	// FlushInterval is how long an unterminated line may sit in the buffer
	// before it is emitted, so prompts without a newline show up.
	FlushInterval time.Duration
	Logger        logging.Logger
}

// Exec runs tokens attached to the given stdio and returns the exit code.
func Exec(ctx context.Context, tokens []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	if len(tokens) == 0 {
		return -1, ErrEmptyCommand
	}
	cmd := exec.CommandContext(ctx, tokens[0], tokens[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("run %s: %w", tokens[0], err)
	}
	return 0, nil
}

// Process is a running command whose output is streamed through Lines.
type Process struct {
	Tokens []string

	cmd    *exec.Cmd
	cancel context.CancelFunc
	lines  chan Line
	done   chan struct{}
	result Result
	logger logging.Logger

	mu       sync.Mutex
	partial  [2]bytes.Buffer
	touched  [2]time.Time
	open     int
	drained  chan struct{}
	canceled bool
}

// Start launches tokens. Output lines arrive on Lines, which is closed once
// the process exited and both streams were drained. Lines must be consumed
// for the process to finish.
func Start(ctx context.Context, tokens []string, opts Options) (*Process, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyCommand
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = DefaultFlushInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNoopLogger()
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, tokens[0], tokens[1:]...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = opts.GracePeriod

	// readers see EOF only after cmd.Wait returns and the writers are closed
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	cmd.Stdout, cmd.Stderr = outW, errW
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start %s: %w", tokens[0], err)
	}

	p := &Process{
		Tokens:  append([]string(nil), tokens...),
		cmd:     cmd,
		cancel:  cancel,
		lines:   make(chan Line, 64),
		done:    make(chan struct{}),
		logger:  opts.Logger,
		open:    2,
		drained: make(chan struct{}),
	}
	p.logger.Info("command started", "command", strings.Join(tokens, " "), "pid", cmd.Process.Pid)

	var g errgroup.Group
	g.Go(func() error { return p.read(Stdout, outR) })
	g.Go(func() error { return p.read(Stderr, errR) })
	g.Go(func() error {
		p.flushLoop(opts.FlushInterval)
		return nil
	})

	go func() {
		waitErr := cmd.Wait()
		outW.Close()
		errW.Close()
		readErr := g.Wait()
		p.finish(waitErr, readErr)
	}()
	return p, nil
}

// Lines returns the output channel.
func (p *Process) Lines() <-chan Line { return p.lines }

// Done is closed when the process finished.
func (p *Process) Done() <-chan struct{} { return p.done }

// Wait blocks until the process finished.
func (p *Process) Wait() Result {
	<-p.done
	return p.result
}

// Cancel interrupts the process, kills it after the grace period, and
// waits for it to finish. Output still pending is discarded.
func (p *Process) Cancel() Result {
	p.mu.Lock()
	p.canceled = true
	p.mu.Unlock()
	p.cancel()
	go func() {
		for range p.lines {
		}
	}()
	return p.Wait()
}

func (p *Process) read(stream Stream, r io.Reader) error {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			p.feed(stream, buf[:n])
		}
		if err != nil {
			p.closeStream(stream)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read %s: %w", stream, err)
		}
	}
}

// feed splits data into complete lines. The unterminated tail stays in the
// stream's buffer.
func (p *Process) feed(stream Stream, data []byte) {
	p.mu.Lock()
	buf := &p.partial[stream]
	buf.Write(data)
	var out []string
	for {
		i := bytes.IndexByte(buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		out = append(out, strings.TrimSuffix(string(buf.Next(i+1)[:i]), "\r"))
	}
	p.touched[stream] = time.Now()
	p.mu.Unlock()

	for _, text := range out {
		p.lines <- Line{Stream: stream, Text: text}
	}
}

func (p *Process) closeStream(stream Stream) {
	p.mu.Lock()
	text, ok := p.take(stream)
	p.open--
	if p.open == 0 {
		close(p.drained)
	}
	p.mu.Unlock()
	if ok {
		p.lines <- Line{Stream: stream, Text: text}
	}
}

// take empties the buffer of stream. Callers hold mu.
func (p *Process) take(stream Stream) (string, bool) {
	buf := &p.partial[stream]
	if buf.Len() == 0 {
		return "", false
	}
	text := buf.String()
	buf.Reset()
	return text, true
}

func (p *Process) flushLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.drained:
			return
		case now := <-ticker.C:
			var out []Line
			p.mu.Lock()
			for _, s := range []Stream{Stdout, Stderr} {
				if now.Sub(p.touched[s]) < interval {
					continue
				}
				if text, ok := p.take(s); ok {
					out = append(out, Line{Stream: s, Text: text})
				}
			}
			p.mu.Unlock()
			for _, l := range out {
				p.lines <- l
			}
		}
	}
}

func (p *Process) finish(waitErr, readErr error) {
	p.mu.Lock()
	cancelled := p.canceled
	p.mu.Unlock()

	res := Result{Cancelled: cancelled}
	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		res.ExitCode = 0
	case errors.As(waitErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = -1
		res.Err = waitErr
	}
	if res.Err == nil && readErr != nil {
		res.Err = readErr
	}
	if cancelled && errors.Is(res.Err, exec.ErrWaitDelay) {
		res.Err = nil
	}

	p.result = res
	p.cancel()
	close(p.lines)
	close(p.done)
	p.logger.Info("command finished", "command", p.Tokens[0], "code", res.ExitCode, "cancelled", res.Cancelled)
}
