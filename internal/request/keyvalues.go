package request

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml/ast"
)

// KeyValue is one name/value entry for headers or query parameters.
type KeyValue struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// KeyValues preserves insertion order for headers and query fields.
type KeyValues []KeyValue

// Get returns the last value for an exact name match.
func (entries KeyValues) Get(name string) (string, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Name == name {
			return entries[i].Value, true
		}
	}
	return "", false
}

// UnmarshalYAML supports both mapping and sequence forms:
//
//	headers:
//	  Accept: application/json
//
// or:
//
//	headers:
//	  - name: Accept
//	    value: application/json
func (entries *KeyValues) UnmarshalYAML(node ast.Node) error {
	switch n := node.(type) {
	case *ast.MappingNode:
		out := make(KeyValues, 0, len(n.Values))
		for _, pair := range n.Values {
			keyNode, ok := pair.Key.(*ast.StringNode)
			if !ok {
				return fmt.Errorf("%w: entry name must be string", ErrRequestFile)
			}

			value, err := scalarToString(pair.Value)
			if err != nil {
				return fmt.Errorf("%w: invalid value for %q: %v", ErrRequestFile, keyNode.Value, err)
			}

			out = append(out, KeyValue{Name: keyNode.Value, Value: value})
		}
		*entries = out
		return nil
	case *ast.SequenceNode:
		out := make(KeyValues, 0, len(n.Values))
		for index, item := range n.Values {
			mapNode, ok := item.(*ast.MappingNode)
			if !ok {
				return fmt.Errorf("%w: entry at index %d must be mapping", ErrRequestFile, index)
			}

			entry, err := decodeEntry(mapNode)
			if err != nil {
				return fmt.Errorf("%w: entry at index %d: %v", ErrRequestFile, index, err)
			}
			out = append(out, entry)
		}
		*entries = out
		return nil
	default:
		return fmt.Errorf("%w: headers/query must be mapping or sequence", ErrRequestFile)
	}
}

func decodeEntry(node *ast.MappingNode) (KeyValue, error) {
	var (
		entry   KeyValue
		hasName bool
	)

	for _, pair := range node.Values {
		fieldNode, ok := pair.Key.(*ast.StringNode)
		if !ok {
			return KeyValue{}, fmt.Errorf("field name must be string")
		}

		switch fieldNode.Value {
		case "name":
			strNode, ok := pair.Value.(*ast.StringNode)
			if !ok {
				return KeyValue{}, fmt.Errorf("name must be string")
			}
			entry.Name = strNode.Value
			hasName = true
		case "value":
			value, err := scalarToString(pair.Value)
			if err != nil {
				return KeyValue{}, fmt.Errorf("invalid value: %v", err)
			}
			entry.Value = value
		default:
			return KeyValue{}, fmt.Errorf("unknown field %q", fieldNode.Value)
		}
	}

	if !hasName {
		return KeyValue{}, fmt.Errorf("missing name")
	}
	return entry, nil
}

func scalarToString(node ast.Node) (string, error) {
	switch n := node.(type) {
	case *ast.NullNode:
		return "", nil
	case *ast.StringNode:
		return n.Value, nil
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return strconv.FormatInt(v, 10), nil
		case uint64:
			return strconv.FormatUint(v, 10), nil
		default:
			return "", fmt.Errorf("unexpected integer type %T", n.Value)
		}
	case *ast.FloatNode:
		return strconv.FormatFloat(n.Value, 'f', -1, 64), nil
	case *ast.BoolNode:
		return strconv.FormatBool(n.Value), nil
	default:
		return "", fmt.Errorf("value must be scalar, got %T", node)
	}
}
