package menu

import "sort"

// Entry is one shortcut of a menu table.
type Entry[T any] struct {
	Shortcut string
	Value    T
}

// Table is a shortcut-keyed mapping that keeps definition order.
type Table[T any] []Entry[T]

// Get returns the value bound to shortcut.
func (t Table[T]) Get(shortcut string) (T, bool) {
	for _, e := range t {
		if e.Shortcut == shortcut {
			return e.Value, true
		}
	}
	var zero T
	return zero, false
}

// Shortcuts returns the shortcuts in order.
func (t Table[T]) Shortcuts() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Shortcut
	}
	return out
}

// Sorted returns a copy ordered by shortcut when sorted is true, or the
// definition order otherwise.
func (t Table[T]) Sorted(sorted bool) Table[T] {
	out := make(Table[T], len(t))
	copy(out, t)
	if sorted {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Shortcut < out[j].Shortcut })
	}
	return out
}

// merge returns base overlaid with over. A shortcut present in both keeps
// its position in base and takes the value from over.
func merge[T any](base, over Table[T]) Table[T] {
	out := make(Table[T], len(base), len(base)+len(over))
	copy(out, base)
	for _, e := range over {
		replaced := false
		for i := range out {
			if out[i].Shortcut == e.Shortcut {
				out[i].Value = e.Value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, e)
		}
	}
	return out
}
