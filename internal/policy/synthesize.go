package policy

import (
	"sort"
	"strings"

	"github.com/iam-policy-generator/internal/arn"
	"github.com/iam-policy-generator/internal/catalog"
)

// Synthesize builds the statements for a selection.
//
// Each selected resource with a valid identifier and at least one selected
// action gets its own statement scoped to the expanded identifier, in
// selection order. The actions of all remaining selected resources are
// merged into a single trailing statement scoped to "*". Synthesize never
// modifies its inputs and is safe to call concurrently.
func Synthesize(cat *catalog.Catalog, sel *Selection) []Statement {
	statements := []Statement{}
	if cat == nil || sel == nil || sel.ActionCount() == 0 {
		return statements
	}

	var withID, withoutID []string
	for _, resourceID := range sel.SelectedResources() {
		if arn.IsValid(sel.Identifier(resourceID)) {
			withID = append(withID, resourceID)
		} else {
			withoutID = append(withoutID, resourceID)
		}
	}

	for _, resourceID := range withID {
		codes := PermissionCodes(selectedActions(cat, sel, resourceID))
		if len(codes) == 0 {
			continue
		}
		identifier := strings.TrimSpace(sel.Identifier(resourceID))
		statements = append(statements, Statement{
			Effect:   EffectAllow,
			Action:   codes,
			Resource: arn.Expand(resourceID, identifier),
		})
	}

	var wildcard []catalog.Action
	for _, resourceID := range withoutID {
		wildcard = append(wildcard, selectedActions(cat, sel, resourceID)...)
	}
	if codes := PermissionCodes(wildcard); len(codes) > 0 {
		statements = append(statements, Statement{
			Effect:   EffectAllow,
			Action:   codes,
			Resource: Values{arn.Wildcard},
		})
	}

	return statements
}

// Generate wraps the synthesized statements in a document.
// It returns nil when nothing would be granted.
func Generate(cat *catalog.Catalog, sel *Selection) *Document {
	statements := Synthesize(cat, sel)
	if len(statements) == 0 {
		return nil
	}
	return &Document{
		Version:   Version,
		Statement: statements,
	}
}

// PermissionCodes returns the sorted, de-duplicated union of the permission
// and dependency codes of the given actions
func PermissionCodes(actions []catalog.Action) []string {
	set := make(map[string]struct{})
	for _, a := range actions {
		for _, code := range a.Permissions {
			set[code] = struct{}{}
		}
		for _, code := range a.DependsOn {
			set[code] = struct{}{}
		}
	}

	codes := make([]string, 0, len(set))
	for code := range set {
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// selectedActions returns the selected catalog actions of a resource in
// catalog order; ids the catalog does not know for that resource are ignored
func selectedActions(cat *catalog.Catalog, sel *Selection, resourceID string) []catalog.Action {
	var out []catalog.Action
	for _, a := range cat.ActionsFor(resourceID) {
		if sel.IsActionSelected(resourceID, a.ID) {
			out = append(out, a)
		}
	}
	return out
}
