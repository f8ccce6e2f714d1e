// Package resolver turns a command template into the argument vector handed
// to the executor.
package resolver

import (
	"github.com/cristianoliveira/yakari/internal/argument"
	"github.com/cristianoliveira/yakari/internal/logging"
	"github.com/cristianoliveira/yakari/internal/menu"
)

// StepKind identifies the state a resolution stopped in.
type StepKind int

const (
	// StepPrompt means a dynamic argument needs input before resolving further.
	StepPrompt StepKind = iota
	// StepDone means every element was resolved.
	StepDone
	// StepAborted means a dynamic argument was left disabled.
	StepAborted
)

func (k StepKind) String() string {
	switch k {
	case StepPrompt:
		return "prompt"
	case StepDone:
		return "done"
	case StepAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Step is the result of advancing a Resolution.
type Step struct {
	Kind StepKind
	// Argument is the dynamic argument to prompt for when Kind is StepPrompt.
	Argument argument.Argument
	// Tokens holds the resolved vector when Kind is StepDone.
	Tokens []string
}

// Resolution walks a template left to right. It stops at every dynamic
// argument so the caller can collect its value, then resumes on the next
// call to Next.
//
// An abort keeps whatever state earlier dynamic arguments received.
type Resolution struct {
	menu     *menu.Menu
	template []menu.Element
	pos      int
	tokens   []string
	pending  argument.Argument
	finished bool
	logger   logging.Logger
}

// New starts resolving template against m. A nil logger disables logging.
func New(m *menu.Menu, template []menu.Element, logger logging.Logger) *Resolution {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Resolution{menu: m, template: template, tokens: []string{}, logger: logger}
}

// Pending returns the dynamic argument awaiting input, if any.
func (r *Resolution) Pending() argument.Argument {
	return r.pending
}

// Next resumes the walk. When the previous step was a prompt, the pending
// argument is checked first: still disabled aborts, enabled appends its
// tokens. Calling Next after StepDone or StepAborted repeats that step.
func (r *Resolution) Next() Step {
	if r.finished {
		if r.pending != nil {
			return Step{Kind: StepAborted}
		}
		return Step{Kind: StepDone, Tokens: r.tokens}
	}

	if r.pending != nil {
		arg := r.pending
		if !arg.Enabled() {
			r.finished = true
			r.logger.Info("command resolution aborted", "argument", arg.Label())
			return Step{Kind: StepAborted}
		}
		r.pending = nil
		r.tokens = append(r.tokens, arg.Render()...)
	}

	for r.pos < len(r.template) {
		el := r.template[r.pos]
		r.pos++
		switch el.Kind {
		case menu.ElementLiteral:
			r.tokens = append(r.tokens, el.Literal)
		case menu.ElementSelector:
			for _, e := range el.Selector.Resolve(r.menu) {
				if e.Value.Enabled() {
					r.tokens = append(r.tokens, e.Value.Render()...)
				}
			}
		case menu.ElementArgument:
			r.pending = el.Argument
			return Step{Kind: StepPrompt, Argument: el.Argument}
		}
	}

	r.finished = true
	r.logger.Debug("command resolved", "tokens", r.tokens)
	return Step{Kind: StepDone, Tokens: r.tokens}
}

// Processor collects input for a dynamic argument, mutating it in place.
type Processor func(arg argument.Argument) error

// Resolve runs a whole resolution synchronously, calling process for every
// dynamic argument. It returns false when the resolution was aborted.
func Resolve(m *menu.Menu, template []menu.Element, process Processor) ([]string, bool, error) {
	r := New(m, template, nil)
	for {
		step := r.Next()
		switch step.Kind {
		case StepDone:
			return step.Tokens, true, nil
		case StepAborted:
			return nil, false, nil
		}
		if err := process(step.Argument); err != nil {
			return nil, false, err
		}
	}
}
