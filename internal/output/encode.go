package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iam-policy-generator/internal/policy"
	"gopkg.in/yaml.v3"
)

// Supported output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode renders doc in the given format. A nil doc encodes as JSON null
// or an empty YAML document. Indent is the number of spaces per level;
// zero gives compact JSON.
func Encode(doc *policy.Document, format string, indent int) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return encodeJSON(doc, indent)
	case FormatYAML:
		return encodeYAML(doc, indent)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// ContentType returns the MIME type for format
func ContentType(format string) string {
	if format == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

func encodeJSON(doc *policy.Document, indent int) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent > 0 {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode policy as json: %w", err)
	}
	return append(data, '\n'), nil
}

func encodeYAML(doc *policy.Document, indent int) ([]byte, error) {
	if doc == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent >= 2 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode policy as yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode policy as yaml: %w", err)
	}
	return buf.Bytes(), nil
}
