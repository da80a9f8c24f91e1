package catalog

// Category groups actions for display and bulk selection
type Category string

const (
	CategoryRead  Category = "read"
	CategoryWrite Category = "write"
	CategoryAdmin Category = "admin"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryRead, CategoryWrite, CategoryAdmin:
		return true
	default:
		return false
	}
}

// Resource is a selectable AWS service
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// Action is a grantable capability of a resource.
// Permissions are the IAM action codes it grants; DependsOn lists the raw
// IAM action codes that must always be granted alongside them.
type Action struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Permissions []string `json:"permissions"`
	DependsOn   []string `json:"dependsOn,omitempty"`
}

func (a Action) clone() Action {
	a.Permissions = append([]string(nil), a.Permissions...)
	if a.DependsOn != nil {
		a.DependsOn = append([]string(nil), a.DependsOn...)
	}
	return a
}
