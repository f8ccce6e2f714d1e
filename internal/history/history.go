// Package history keeps the values previously entered for each argument,
// most recent first, and persists them through a pluggable Store.
package history

// DefaultMaxSize bounds a History when no size is configured.
const DefaultMaxSize = 20

// noCursor marks a history that has not been restarted yet.
const noCursor = -2

// History is a bounded, recency-ordered set of distinct non-empty values.
// Values()[0] is the most recently added value.
type History struct {
	values  []string
	maxSize int
	cursor  int
}

// New returns an empty history bounded to maxSize values. A non-positive
// maxSize uses DefaultMaxSize.
func New(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &History{maxSize: maxSize, cursor: noCursor}
}

// FromValues builds a history from values ordered most recent first.
func FromValues(values []string, maxSize int) *History {
	h := New(maxSize)
	for i := len(values) - 1; i >= 0; i-- {
		h.Add(values[i])
	}
	return h
}

// Add records value as the most recent entry. Empty values are ignored, an
// existing value is moved to the front, and the oldest entry is evicted when
// the history grows beyond its bound.
func (h *History) Add(value string) {
	if value == "" {
		return
	}
	for i, v := range h.values {
		if v == value {
			h.values = append(h.values[:i], h.values[i+1:]...)
			break
		}
	}
	h.values = append([]string{value}, h.values...)
	if len(h.values) > h.maxSize {
		h.values = h.values[:h.maxSize]
	}
	if h.cursor >= len(h.values) {
		h.cursor = len(h.values) - 1
	}
}

// Values returns a copy of the entries, most recent first.
func (h *History) Values() []string {
	out := make([]string, len(h.values))
	copy(out, h.values)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.values) }

// MaxSize returns the bound of the history.
func (h *History) MaxSize() int { return h.maxSize }

// Restart positions the cursor before the most recent entry.
func (h *History) Restart() {
	if len(h.values) == 0 {
		h.cursor = noCursor
		return
	}
	h.cursor = -1
}

// Current returns the entry under the cursor.
func (h *History) Current() (string, bool) {
	if h.cursor < 0 || h.cursor >= len(h.values) {
		return "", false
	}
	return h.values[h.cursor], true
}

// Prev moves the cursor to an older entry, wrapping to the most recent one.
func (h *History) Prev() (string, bool) {
	if h.cursor == noCursor || len(h.values) == 0 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.values) {
		h.cursor = 0
	}
	return h.values[h.cursor], true
}

// Next moves the cursor to a newer entry, wrapping to the oldest one.
func (h *History) Next() (string, bool) {
	if h.cursor == noCursor || len(h.values) == 0 {
		return "", false
	}
	h.cursor--
	if h.cursor < 0 {
		h.cursor = len(h.values) - 1
	}
	return h.values[h.cursor], true
}
