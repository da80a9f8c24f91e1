// Package arn validates user-supplied resource identifiers and expands them
// into the resource patterns each AWS service needs in a policy statement.
package arn

import (
	"regexp"
	"strings"

	awsarn "github.com/aws/aws-sdk-go-v2/aws/arn"
)

// Wildcard is the scope used when no valid identifier is available
const Wildcard = "*"

// shapeRegex matches arn:partition:service:region:account:resource.
// Region and account may be empty, the resource part may not.
var shapeRegex = regexp.MustCompile(`^arn:[^:]+:[^:]+:[^:]*:[^:]*:.+$`)

// IsValid reports whether s is well-formed enough to scope a statement.
// Only the syntax is checked; the resource is never looked up.
func IsValid(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return shapeRegex.MatchString(s)
}

// serviceResources maps the service segment of an ARN to the catalog
// resource id that owns it
var serviceResources = map[string]string{
	"logs":       "cloudwatch",
	"monitoring": "cloudwatch",
}

// ResourceID returns the catalog resource id an identifier belongs to,
// or "" when the identifier cannot be parsed
func ResourceID(identifier string) string {
	if !IsValid(identifier) {
		return ""
	}
	parsed, err := awsarn.Parse(strings.TrimSpace(identifier))
	if err != nil {
		return ""
	}
	if id, ok := serviceResources[parsed.Service]; ok {
		return id
	}
	return parsed.Service
}

// GroupByService groups identifiers by the resource id they belong to.
// Invalid entries are skipped and input order is kept within each group.
func GroupByService(identifiers []string) map[string][]string {
	groups := make(map[string][]string)
	for _, identifier := range identifiers {
		id := ResourceID(identifier)
		if id == "" {
			continue
		}
		groups[id] = append(groups[id], strings.TrimSpace(identifier))
	}
	return groups
}
