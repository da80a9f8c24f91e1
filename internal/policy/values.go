package policy

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Values is a list of strings that is written as a bare string when it
// holds exactly one element, and accepts either shape when read
type Values []string

// MarshalJSON implements json.Marshaler
func (v Values) MarshalJSON() ([]byte, error) {
	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(v))
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Values) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = Values{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*v = Values(list)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (v Values) MarshalYAML() (interface{}, error) {
	if len(v) == 1 {
		return v[0], nil
	}
	if v == nil {
		return []string{}, nil
	}
	return []string(v), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*v = Values{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*v = Values(list)
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}
