package argument

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// ErrSuggestionsCommand is returned when a suggestions command writes to stderr.
var ErrSuggestionsCommand = errors.New("suggestions command failed")

// Suggestions is a source of candidate values for a value argument.
type Suggestions interface {
	Values(ctx context.Context) ([]string, error)
}

// waitDelay bounds how long output pipes are drained after the shell is
// killed, since its children may keep them open.
const waitDelay = 500 * time.Millisecond

// SuggestionsList is a static list of suggestions.
type SuggestionsList []string

// Values returns the list unchanged.
func (l SuggestionsList) Values(context.Context) ([]string, error) {
	return []string(l), nil
}

// SuggestionsCommand runs a shell command and uses each non-blank line of its
// output as a suggestion.
type SuggestionsCommand struct {
	Command string
	Cache   bool
	// Timeout bounds the command run. Zero means no timeout.
	Timeout time.Duration

	mu     sync.Mutex
	cached []string
	filled bool
}

// Values runs the command, or returns the memoized result when caching is on.
func (c *SuggestionsCommand) Values(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Cache && c.filled {
		return c.cached, nil
	}

	values, err := c.run(ctx)
	if err != nil {
		return nil, err
	}
	if c.Cache {
		c.cached = values
		c.filled = true
	}
	return values, nil
}

func (c *SuggestionsCommand) run(ctx context.Context) ([]string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", c.Command)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSuggestionsCommand, c.Command, ctx.Err())
	}
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("%w: %q: %s", ErrSuggestionsCommand, c.Command, strings.TrimSpace(stderr.String()))
	}
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		// the shell itself could not be started
		return nil, fmt.Errorf("%w: %q: %v", ErrSuggestionsCommand, c.Command, runErr)
	}

	var values []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values = append(values, line)
	}
	return values, nil
}
