package policy

// Evaluate checks whether the document grants action on resource.
// It follows IAM evaluation for Allow-only documents:
// 1. Default deny
// 2. Any statement matching both the action and the resource allows
func (d *Document) Evaluate(action, resource string) *Decision {
	if d == nil {
		return DefaultDenyDecision()
	}

	for i := range d.Statement {
		if statementMatches(&d.Statement[i], action, resource) {
			return NewAllowDecision(i)
		}
	}

	return DefaultDenyDecision()
}

// Allows is shorthand for Evaluate(action, resource).Allowed
func (d *Document) Allows(action, resource string) bool {
	return d.Evaluate(action, resource).Allowed
}

// statementMatches checks if a statement matches the request
func statementMatches(stmt *Statement, action, resource string) bool {
	if stmt.Effect != EffectAllow {
		return false
	}
	if !MatchAction(action, stmt.Action) {
		return false
	}
	return MatchResource(resource, stmt.Resource)
}
