package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Serialization formats accepted by Serialize.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// MarshalJSON encodes every field under its logical name in declaration
// order. Computed fields are derived at encoding time; validated fields
// appear as their current value only.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.order {
		val, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", name, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node with the same content and order as
// MarshalJSON.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range r.order {
		val, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		var valNode yaml.Node
		if err := valNode.Encode(val); err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&valNode,
		)
	}
	return node, nil
}

// Serialize renders r in the given format ("json" or "yaml").
// Returns ErrUnknownFormat for anything else.
func Serialize(r *Record, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(r, "", "  ")
	case FormatYAML:
		return yaml.Marshal(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
