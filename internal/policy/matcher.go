package policy

import (
	"regexp"
	"strings"
	"sync"
)

// patternCache holds compiled wildcard patterns keyed by pattern text
var patternCache sync.Map

// MatchAction checks if the given action matches any of the action patterns.
// IAM action names are case-insensitive.
func MatchAction(action string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchPattern(strings.ToLower(action), strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// MatchResource checks if the given resource ARN matches any of the resource patterns
func MatchResource(resource string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchPattern(resource, pattern) {
			return true
		}
	}
	return false
}

// matchPattern matches a string against a pattern with wildcards
// Supports:
// - "*" matches any sequence of characters
// - "?" matches any single character
func matchPattern(str, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?") {
		return str == pattern
	}
	return compilePattern(pattern).MatchString(str)
}

func compilePattern(pattern string) *regexp.Regexp {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile("^" + patternToRegex(pattern) + "$")
	patternCache.Store(pattern, re)
	return re
}

// patternToRegex converts an IAM-style pattern to a regex pattern
func patternToRegex(pattern string) string {
	var result strings.Builder
	for _, ch := range pattern {
		switch ch {
		case '*':
			result.WriteString(".*")
		case '?':
			result.WriteString(".")
		default:
			result.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	return result.String()
}
