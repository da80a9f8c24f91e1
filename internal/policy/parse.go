package policy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is wrapped by every ParseDocument validation error
var ErrInvalidDocument = errors.New("invalid policy document")

// supportedVersions are the IAM policy language versions accepted on input
var supportedVersions = map[string]bool{
	"2012-10-17": true,
	"2008-10-17": true,
}

// ParseDocument parses a JSON or YAML policy document. Action and Resource
// may each be a string or a list. Only Allow statements are accepted.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidDocument)
	}

	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	} else if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func validateDocument(doc *Document) error {
	if !supportedVersions[doc.Version] {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidDocument, doc.Version)
	}
	if len(doc.Statement) == 0 {
		return fmt.Errorf("%w: no statements", ErrInvalidDocument)
	}
	for i, stmt := range doc.Statement {
		if stmt.Effect != EffectAllow {
			return fmt.Errorf("%w: statement[%d]: effect must be Allow", ErrInvalidDocument, i)
		}
		if len(stmt.Action) == 0 {
			return fmt.Errorf("%w: statement[%d]: action is required", ErrInvalidDocument, i)
		}
		if len(stmt.Resource) == 0 {
			return fmt.Errorf("%w: statement[%d]: resource is required", ErrInvalidDocument, i)
		}
	}
	return nil
}
