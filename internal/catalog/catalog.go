package catalog

import (
	"fmt"
	"strings"
)

// Version identifies the revision of the built-in catalog data
const Version = "2024-06-01"

// Catalog is an immutable table of resources and their actions.
// It is safe for concurrent use; every accessor returns copies.
type Catalog struct {
	resources []Resource
	actions   map[string][]Action
	resByID   map[string]int
	actByID   map[string]actionRef
}

type actionRef struct {
	resourceID string
	index      int
}

// New builds a catalog from resources in display order and the actions
// available for each resource id
func New(resources []Resource, actions map[string][]Action) (*Catalog, error) {
	c := &Catalog{
		resources: make([]Resource, 0, len(resources)),
		actions:   make(map[string][]Action, len(actions)),
		resByID:   make(map[string]int, len(resources)),
		actByID:   make(map[string]actionRef),
	}

	for i, r := range resources {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("resources[%d]: id is required", i)
		}
		if _, dup := c.resByID[r.ID]; dup {
			return nil, fmt.Errorf("resources[%d]: duplicate resource id %q", i, r.ID)
		}
		c.resByID[r.ID] = len(c.resources)
		c.resources = append(c.resources, r)
	}

	for resourceID, list := range actions {
		if _, ok := c.resByID[resourceID]; !ok {
			return nil, fmt.Errorf("actions[%s]: unknown resource", resourceID)
		}
		copied := make([]Action, 0, len(list))
		for j, a := range list {
			if a.ID == "" {
				return nil, fmt.Errorf("actions[%s][%d]: id is required", resourceID, j)
			}
			if prev, dup := c.actByID[a.ID]; dup {
				return nil, fmt.Errorf("actions[%s][%d]: action id %q already defined for %s", resourceID, j, a.ID, prev.resourceID)
			}
			if !a.Category.Valid() {
				return nil, fmt.Errorf("actions[%s][%d]: invalid category %q", resourceID, j, a.Category)
			}
			if len(a.Permissions) == 0 {
				return nil, fmt.Errorf("actions[%s][%d]: permissions are required", resourceID, j)
			}
			c.actByID[a.ID] = actionRef{resourceID: resourceID, index: len(copied)}
			copied = append(copied, a.clone())
		}
		c.actions[resourceID] = copied
	}

	return c, nil
}

// MustNew is like New but panics on invalid catalog data
func MustNew(resources []Resource, actions map[string][]Action) *Catalog {
	c, err := New(resources, actions)
	if err != nil {
		panic("catalog: " + err.Error())
	}
	return c
}

// Resources returns all resources in display order
func (c *Catalog) Resources() []Resource {
	return append([]Resource(nil), c.resources...)
}

// Resource looks up a resource by id
func (c *Catalog) Resource(id string) (Resource, bool) {
	i, ok := c.resByID[id]
	if !ok {
		return Resource{}, false
	}
	return c.resources[i], true
}

// ActionsFor returns the actions of a resource in catalog order.
// An unknown resource id yields an empty slice.
func (c *Catalog) ActionsFor(resourceID string) []Action {
	list := c.actions[resourceID]
	out := make([]Action, len(list))
	for i, a := range list {
		out[i] = a.clone()
	}
	return out
}

// ActionsByCategory returns the actions of a resource that belong to category
func (c *Catalog) ActionsByCategory(resourceID string, category Category) []Action {
	var out []Action
	for _, a := range c.actions[resourceID] {
		if a.Category == category {
			out = append(out, a.clone())
		}
	}
	return out
}

// Action looks up an action by id and reports the resource it belongs to
func (c *Catalog) Action(id string) (Action, string, bool) {
	ref, ok := c.actByID[id]
	if !ok {
		return Action{}, "", false
	}
	return c.actions[ref.resourceID][ref.index].clone(), ref.resourceID, true
}

// HasAction reports whether actionID belongs to resourceID
func (c *Catalog) HasAction(resourceID, actionID string) bool {
	ref, ok := c.actByID[actionID]
	return ok && ref.resourceID == resourceID
}
