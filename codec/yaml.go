package codec

import (
	"fmt"
	"time"

	"github.com/nicwaller/gelfconv"
	"gopkg.in/yaml.v3"
)

// Yaml decodes one YAML document per frame, using the same keys as Json.
func Yaml() gelfconv.DecoderPlugin {
	return &yamlCodec{}
}

type yamlCodec struct{}

func (p *yamlCodec) Decode(dat []byte) (gelfconv.LogEvent, error) {
	// decode into a node rather than a map so property order survives
	var doc yaml.Node
	if err := yaml.Unmarshal(dat, &doc); err != nil {
		return gelfconv.LogEvent{}, fmt.Errorf("yaml codec: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return gelfconv.LogEvent{}, fmt.Errorf("yaml codec: empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return gelfconv.LogEvent{}, fmt.Errorf("yaml codec: expected a mapping at line %d", root.Line)
	}

	var b eventBuilder
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, valueNode := root.Content[i], root.Content[i+1]
		value, err := yamlValue(valueNode)
		if err != nil {
			return gelfconv.LogEvent{}, fmt.Errorf("yaml codec: %w", err)
		}
		// other keys keep timestamps as text so they survive as properties
		if isTimestampKey(key.Value) && valueNode.ShortTag() == "!!timestamp" {
			var when time.Time
			if err := valueNode.Decode(&when); err != nil {
				return gelfconv.LogEvent{}, fmt.Errorf("yaml codec: line %d: %w", valueNode.Line, err)
			}
			value = when
		}
		if err := b.set(key.Value, value); err != nil {
			return gelfconv.LogEvent{}, fmt.Errorf("yaml codec: %w", err)
		}
	}
	return b.finish(), nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.MappingNode:
		fields := make([]gelfconv.Property, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			fields = append(fields, gelfconv.Property{Key: node.Content[i].Value, Value: v})
		}
		return fields, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!str", "!!timestamp", "!!binary":
			return node.Value, nil
		case "!!null":
			return nil, nil
		}
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected yaml node", node.Line)
	}
}
