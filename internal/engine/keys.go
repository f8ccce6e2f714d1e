package engine

// KeyKind identifies the actions the engine understands.
type KeyKind int

const (
	// KeyRune is a printable character appended to the input buffer.
	KeyRune KeyKind = iota
	// KeyTab completes the buffer when a single candidate matches it.
	KeyTab
	// KeyBackspace deletes a character, or leaves the screen when the
	// buffer is empty.
	KeyBackspace
	// KeyToggleEdit flips the edit mode of the current screen.
	KeyToggleEdit
	// KeyCancel leaves the screen, or exits at the entrypoint.
	KeyCancel
)

func (k KeyKind) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyTab:
		return "tab"
	case KeyBackspace:
		return "backspace"
	case KeyToggleEdit:
		return "toggle-edit"
	case KeyCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Key is one input event.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Rune returns the key for a printable character.
func Rune(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

// Keys returns the rune keys spelling s, handy for typing shortcuts.
func Keys(s string) []Key {
	out := make([]Key, 0, len(s))
	for _, r := range s {
		out = append(out, Rune(r))
	}
	return out
}
