// Package source decodes menu definitions into order-preserving nested
// mappings and locates them on disk or in the embedded menus.
package source

import (
	"fmt"
	"strings"
)

// Map is a string-keyed mapping that remembers insertion order. Values are
// string, int64, float64, bool, []any or *Map.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. A new key is appended to the order; an
// existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// String returns the string stored under key, or def when absent.
func (m *Map) String(key, def string) (string, error) {
	v, ok := m.Get(key)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %s", key, TypeName(v))
	}
	return s, nil
}

// Bool returns the bool stored under key, or def when absent.
func (m *Map) Bool(key string, def bool) (bool, error) {
	v, ok := m.Get(key)
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: expected bool, got %s", key, TypeName(v))
	}
	return b, nil
}

// OptionalBool returns a pointer to the bool stored under key, or nil.
func (m *Map) OptionalBool(key string) (*bool, error) {
	if !m.Has(key) {
		return nil, nil
	}
	b, err := m.Bool(key, false)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Map returns the nested mapping stored under key, or nil when absent.
func (m *Map) Map(key string) (*Map, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, nil
	}
	sub, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("%s: expected table, got %s", key, TypeName(v))
	}
	return sub, nil
}

// List returns the array stored under key, or nil when absent.
func (m *Map) List(key string) ([]any, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected array, got %s", key, TypeName(v))
	}
	return list, nil
}

// Plain converts m into nested map[string]any values, dropping key order.
func (m *Map) Plain() map[string]any {
	out := make(map[string]any, m.Len())
	for _, k := range m.keys {
		out[k] = plain(m.values[k])
	}
	return out
}

func plain(v any) any {
	switch typed := v.(type) {
	case *Map:
		return typed.Plain()
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

// TypeName names the decoded type of v for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "string"
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []any:
		return "array"
	case *Map:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// JoinPath renders a key path as used in error messages.
func JoinPath(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		if strings.ContainsAny(p, ". ") || strings.HasPrefix(p, "-") {
			fmt.Fprintf(&b, "%q", p)
			continue
		}
		b.WriteString(p)
	}
	return b.String()
}
