package engine

import (
	"github.com/cristianoliveira/yakari/internal/argument"
	"github.com/cristianoliveira/yakari/internal/history"
	"github.com/cristianoliveira/yakari/internal/menu"
)

// OutcomeKind tells the presentation layer what to do after an input event.
type OutcomeKind int

const (
	// OutcomeNone means the state changed, if at all, without further action.
	OutcomeNone OutcomeKind = iota
	// OutcomePrompt means input must be collected and passed to Submit.
	OutcomePrompt
	// OutcomeCommand carries a resolved command vector.
	OutcomeCommand
	// OutcomeExit means the user left the entrypoint.
	OutcomeExit
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomePrompt:
		return "prompt"
	case OutcomeCommand:
		return "command"
	case OutcomeExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Outcome is returned by Press and Submit.
type Outcome struct {
	Kind    OutcomeKind
	Prompt  *Prompt
	Command *Resolved
}

// PromptKind selects the input widget.
type PromptKind int

const (
	PromptChoice PromptKind = iota
	PromptValue
)

// Prompt describes the input the engine waits for.
type Prompt struct {
	Kind     PromptKind
	Argument argument.Argument
	// Label is the argument's flag or name.
	Label       string
	Description string
	// Dynamic is set for arguments embedded in a command template.
	Dynamic bool
	Multi   bool

	// Choices and Selected are set for choice prompts.
	Choices  []string
	Selected []string

	// Seed, Suggestions and History are set for value prompts. History is
	// nil for password arguments.
	Seed        []string
	Suggestions []string
	History     *history.History
	Password    bool

	// Err reports a suggestions source failure. The prompt stays usable.
	Err error
}

// Resolved is a command ready to be executed.
type Resolved struct {
	Command *menu.Command
	Tokens  []string
	Inplace bool
}
