package record

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var errEmptyDocument = errors.New("empty document")

// DecodeYAML decodes a YAML or JSON record. Mappings become named values
// with key order preserved, sequences become unnamed values and a scalar
// document becomes a one-element value.
func DecodeYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("decode yaml: %w", errEmptyDocument)
	}
	item, err := nodeItem(doc.Content[0])
	if err != nil {
		return nil, err
	}
	return asValue(item), nil
}

func nodeItem(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return nodeItem(node.Alias)
	case yaml.ScalarNode:
		var v interface{}
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode yaml scalar at line %d: %w", node.Line, err)
		}
		return v, nil
	case yaml.SequenceNode:
		ret := &Value{}
		for _, child := range node.Content {
			item, err := nodeItem(child)
			if err != nil {
				return nil, err
			}
			ret.Items = append(ret.Items, item)
		}
		return ret, nil
	case yaml.MappingNode:
		ret := &Value{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			item, err := nodeItem(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			ret.Names = append(ret.Names, node.Content[i].Value)
			ret.Items = append(ret.Items, item)
		}
		return ret, nil
	}
	return nil, fmt.Errorf("decode yaml: unsupported node kind %v at line %d", node.Kind, node.Line)
}
