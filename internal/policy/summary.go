package policy

import "github.com/iam-policy-generator/internal/catalog"

// ScopeKind describes which resources a set of statements applies to
type ScopeKind string

const (
	ScopeNone     ScopeKind = "none"
	ScopeAll      ScopeKind = "all"
	ScopeSpecific ScopeKind = "specific"
	ScopeMixed    ScopeKind = "mixed"
)

// Summary is a short description of a generated policy
type Summary struct {
	SelectedActions int       `json:"selectedActions"`
	PermissionCodes int       `json:"permissionCodes"`
	Statements      int       `json:"statements"`
	Scope           ScopeKind `json:"scope"`
}

// Summarize counts the selected actions of selected resources, the IAM
// action codes they expand to, and classifies the scope of statements
func Summarize(cat *catalog.Catalog, sel *Selection, statements []Statement) Summary {
	var actions []catalog.Action
	if cat != nil && sel != nil {
		for _, resourceID := range sel.SelectedResources() {
			actions = append(actions, selectedActions(cat, sel, resourceID)...)
		}
	}

	return Summary{
		SelectedActions: len(actions),
		PermissionCodes: len(PermissionCodes(actions)),
		Statements:      len(statements),
		Scope:           ScopeOf(statements),
	}
}

// ScopeOf classifies statements as none, all (wildcard only), specific
// (identifier scoped only) or mixed
func ScopeOf(statements []Statement) ScopeKind {
	var wildcard, specific bool
	for _, s := range statements {
		if s.IsWildcard() {
			wildcard = true
		} else {
			specific = true
		}
	}

	switch {
	case wildcard && specific:
		return ScopeMixed
	case wildcard:
		return ScopeAll
	case specific:
		return ScopeSpecific
	default:
		return ScopeNone
	}
}
