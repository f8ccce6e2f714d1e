package source

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML document into a Map keeping document order.
func DecodeYAML(data []byte) (*Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	v, err := yamlValue(&doc)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if v == nil {
		return NewMap(), nil
	}
	m, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("yaml: top level must be a mapping, got %s", TypeName(v))
	}
	return m, nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return yamlValue(node.Content[0])
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Tag == "!!merge" {
				return nil, fmt.Errorf("line %d: merge keys are not supported", keyNode.Line)
			}
			if m.Has(keyNode.Value) {
				return nil, fmt.Errorf("line %d: %s: %w", keyNode.Line, keyNode.Value, ErrDuplicateKey)
			}
			v, err := yamlValue(valueNode)
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		list := []any{}
		for _, item := range node.Content {
			v, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported node", node.Line)
	}
}

func yamlScalar(node *yaml.Node) (any, error) {
	var (
		v   any
		err error
	)
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err = node.Decode(&b)
		v = b
	case "!!int":
		var n int64
		err = node.Decode(&n)
		v = n
	case "!!float":
		var f float64
		err = node.Decode(&f)
		v = f
	default:
		// strings, timestamps and custom tags keep their text
		return node.Value, nil
	}
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return v, nil
}
