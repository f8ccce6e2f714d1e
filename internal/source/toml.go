package source

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// ErrDuplicateKey is returned when a document defines the same key twice.
var ErrDuplicateKey = errors.New("duplicate key")

// DecodeTOML parses a TOML document into a Map keeping document order.
// The document is validated by the regular decoder first so syntax errors
// carry their position.
func DecodeTOML(data []byte) (*Map, error) {
	var check map[string]any
	if err := toml.Unmarshal(data, &check); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("toml: line %d column %d: %s", row, col, derr.Error())
		}
		return nil, fmt.Errorf("toml: %w", err)
	}

	root := NewMap()
	current := root

	p := unstable.Parser{}
	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table:
			path := keyPath(expr.Key())
			table, err := descend(root, path)
			if err != nil {
				return nil, fmt.Errorf("toml: [%s]: %w", strings.Join(path, "."), err)
			}
			current = table
		case unstable.ArrayTable:
			path := keyPath(expr.Key())
			table, err := appendArrayTable(root, path)
			if err != nil {
				return nil, fmt.Errorf("toml: [[%s]]: %w", strings.Join(path, "."), err)
			}
			current = table
		case unstable.KeyValue:
			if err := setKeyValue(current, expr); err != nil {
				return nil, fmt.Errorf("toml: %w", err)
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	return root, nil
}

func keyPath(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// descend walks path from m creating tables as needed. A path element
// naming an array of tables continues into its last element.
func descend(m *Map, path []string) (*Map, error) {
	for _, key := range path {
		v, ok := m.Get(key)
		if !ok {
			next := NewMap()
			m.Set(key, next)
			m = next
			continue
		}
		switch typed := v.(type) {
		case *Map:
			m = typed
		case []any:
			if len(typed) == 0 {
				return nil, fmt.Errorf("%s: %w", key, ErrDuplicateKey)
			}
			last, ok := typed[len(typed)-1].(*Map)
			if !ok {
				return nil, fmt.Errorf("%s: %w", key, ErrDuplicateKey)
			}
			m = last
		default:
			return nil, fmt.Errorf("%s: %w", key, ErrDuplicateKey)
		}
	}
	return m, nil
}

func appendArrayTable(root *Map, path []string) (*Map, error) {
	parent, err := descend(root, path[:len(path)-1])
	if err != nil {
		return nil, err
	}
	key := path[len(path)-1]
	table := NewMap()
	v, ok := parent.Get(key)
	if !ok {
		parent.Set(key, []any{table})
		return table, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrDuplicateKey)
	}
	parent.Set(key, append(list, table))
	return table, nil
}

func setKeyValue(m *Map, node *unstable.Node) error {
	path := keyPath(node.Key())
	table, err := descend(m, path[:len(path)-1])
	if err != nil {
		return err
	}
	key := path[len(path)-1]
	if table.Has(key) {
		return fmt.Errorf("%s: %w", strings.Join(path, "."), ErrDuplicateKey)
	}
	value, err := tomlValue(node.Value())
	if err != nil {
		return fmt.Errorf("%s: %w", strings.Join(path, "."), err)
	}
	table.Set(key, value)
	return nil
}

func tomlValue(node *unstable.Node) (any, error) {
	switch node.Kind {
	case unstable.String:
		return string(node.Data), nil
	case unstable.Bool:
		return string(node.Data) == "true", nil
	case unstable.Integer:
		return parseInteger(string(node.Data))
	case unstable.Float:
		return parseFloat(string(node.Data))
	case unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		return string(node.Data), nil
	case unstable.Array:
		list := []any{}
		it := node.Children()
		for it.Next() {
			v, err := tomlValue(it.Node())
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case unstable.InlineTable:
		table := NewMap()
		it := node.Children()
		for it.Next() {
			if err := setKeyValue(table, it.Node()); err != nil {
				return nil, err
			}
		}
		return table, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %s", node.Kind)
	}
}

func parseInteger(raw string) (int64, error) {
	s := strings.ReplaceAll(raw, "_", "")
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return n, nil
}

func parseFloat(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, "_", "")
	switch strings.TrimPrefix(s, "+") {
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "-nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", raw)
	}
	return f, nil
}
