package policy

// Version is the IAM policy language version written into every document
const Version = "2012-10-17"

// Effect represents the effect of a statement. Only Allow is generated.
type Effect string

const (
	EffectAllow Effect = "Allow"
)

// Document is an IAM policy document
type Document struct {
	Version   string      `json:"Version" yaml:"Version"`
	Statement []Statement `json:"Statement" yaml:"Statement"`
}

// Statement is a single policy statement.
// Action is sorted and never empty; Resource is either the wildcard, a
// single pattern, or a list of patterns.
type Statement struct {
	Sid      string `json:"Sid,omitempty" yaml:"Sid,omitempty"`
	Effect   Effect `json:"Effect" yaml:"Effect"`
	Action   Values `json:"Action" yaml:"Action"`
	Resource Values `json:"Resource" yaml:"Resource"`
}

// IsWildcard reports whether the statement applies to every resource
func (s Statement) IsWildcard() bool {
	return len(s.Resource) == 1 && s.Resource[0] == "*"
}

// Decision is the result of evaluating a request against a document
type Decision struct {
	Allowed bool `json:"allowed"`
	// Statement is the index of the first matching statement, -1 if none
	Statement int `json:"statement"`
}

// NewAllowDecision creates an allow decision for the matching statement
func NewAllowDecision(statement int) *Decision {
	return &Decision{
		Allowed:   true,
		Statement: statement,
	}
}

// DefaultDenyDecision returns the decision used when no statement matches
func DefaultDenyDecision() *Decision {
	return &Decision{
		Allowed:   false,
		Statement: -1,
	}
}
