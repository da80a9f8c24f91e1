package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SelectionSchema returns the JSON Schema describing selection documents
func SelectionSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&SelectionFile{})
	schema.Title = "Policy selection"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
