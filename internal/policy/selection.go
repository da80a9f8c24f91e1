package policy

import (
	"fmt"
	"sort"

	"github.com/iam-policy-generator/internal/catalog"
	"github.com/iam-policy-generator/internal/config"
)

// Selection is the caller-owned state of which resources and actions are
// chosen and which identifier each resource carries. It is kept apart from
// the immutable catalog and is not safe for concurrent mutation.
type Selection struct {
	order       []string
	selected    map[string]bool
	identifiers map[string]string
	actions     map[string]map[string]bool
}

// NewSelection returns an empty selection
func NewSelection() *Selection {
	return &Selection{
		selected:    make(map[string]bool),
		identifiers: make(map[string]string),
		actions:     make(map[string]map[string]bool),
	}
}

// SelectResource marks a resource as selected. Newly selected resources are
// appended to the selection order.
func (s *Selection) SelectResource(resourceID string) {
	if s.selected[resourceID] {
		return
	}
	s.selected[resourceID] = true
	s.order = append(s.order, resourceID)
}

// DeselectResource removes a resource and clears all of its actions.
// The identifier is kept so re-selecting restores it.
func (s *Selection) DeselectResource(resourceID string) {
	if !s.selected[resourceID] {
		return
	}
	delete(s.selected, resourceID)
	delete(s.actions, resourceID)
	for i, id := range s.order {
		if id == resourceID {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// ToggleResource flips the selection state of a resource
func (s *Selection) ToggleResource(resourceID string) {
	if s.selected[resourceID] {
		s.DeselectResource(resourceID)
		return
	}
	s.SelectResource(resourceID)
}

// IsResourceSelected reports whether a resource is selected
func (s *Selection) IsResourceSelected(resourceID string) bool {
	return s.selected[resourceID]
}

// SelectedResources returns selected resource ids in selection order
func (s *Selection) SelectedResources() []string {
	return append([]string(nil), s.order...)
}

// SetIdentifier stores the raw identifier typed for a resource
func (s *Selection) SetIdentifier(resourceID, identifier string) {
	if identifier == "" {
		delete(s.identifiers, resourceID)
		return
	}
	s.identifiers[resourceID] = identifier
}

// Identifier returns the raw identifier of a resource, "" if none
func (s *Selection) Identifier(resourceID string) string {
	return s.identifiers[resourceID]
}

// SelectAction marks an action of a resource as selected
func (s *Selection) SelectAction(resourceID, actionID string) {
	set, ok := s.actions[resourceID]
	if !ok {
		set = make(map[string]bool)
		s.actions[resourceID] = set
	}
	set[actionID] = true
}

// DeselectAction clears an action of a resource
func (s *Selection) DeselectAction(resourceID, actionID string) {
	set, ok := s.actions[resourceID]
	if !ok {
		return
	}
	delete(set, actionID)
	if len(set) == 0 {
		delete(s.actions, resourceID)
	}
}

// ToggleAction flips the selection state of an action
func (s *Selection) ToggleAction(resourceID, actionID string) {
	if s.IsActionSelected(resourceID, actionID) {
		s.DeselectAction(resourceID, actionID)
		return
	}
	s.SelectAction(resourceID, actionID)
}

// IsActionSelected reports whether an action of a resource is selected
func (s *Selection) IsActionSelected(resourceID, actionID string) bool {
	return s.actions[resourceID][actionID]
}

// SelectedActionIDs returns the selected action ids of a resource, sorted
func (s *Selection) SelectedActionIDs(resourceID string) []string {
	ids := make([]string, 0, len(s.actions[resourceID]))
	for id := range s.actions[resourceID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActionCount returns the number of selected actions across all resources
func (s *Selection) ActionCount() int {
	n := 0
	for _, set := range s.actions {
		n += len(set)
	}
	return n
}

// SetCategory selects or clears every action of one category of a resource
func (s *Selection) SetCategory(cat *catalog.Catalog, resourceID string, category catalog.Category, selected bool) {
	for _, a := range cat.ActionsByCategory(resourceID, category) {
		if selected {
			s.SelectAction(resourceID, a.ID)
		} else {
			s.DeselectAction(resourceID, a.ID)
		}
	}
}

// SetAllActions selects or clears every action of a resource
func (s *Selection) SetAllActions(cat *catalog.Catalog, resourceID string, selected bool) {
	for _, a := range cat.ActionsFor(resourceID) {
		if selected {
			s.SelectAction(resourceID, a.ID)
		} else {
			s.DeselectAction(resourceID, a.ID)
		}
	}
}

// Clone returns a deep copy of the selection
func (s *Selection) Clone() *Selection {
	c := NewSelection()
	c.order = append([]string(nil), s.order...)
	for k, v := range s.selected {
		c.selected[k] = v
	}
	for k, v := range s.identifiers {
		c.identifiers[k] = v
	}
	for resourceID, set := range s.actions {
		copied := make(map[string]bool, len(set))
		for k, v := range set {
			copied[k] = v
		}
		c.actions[resourceID] = copied
	}
	return c
}

// SelectionFromConfig builds a selection from a parsed selection document.
// Unknown resources and actions that do not belong to their resource are
// rejected.
func SelectionFromConfig(cat *catalog.Catalog, file *config.SelectionFile) (*Selection, error) {
	sel := NewSelection()
	if file == nil {
		return sel, nil
	}

	for i, r := range file.Resources {
		if _, ok := cat.Resource(r.ID); !ok {
			return nil, fmt.Errorf("resources[%d]: unknown resource %q", i, r.ID)
		}
		sel.SelectResource(r.ID)
		sel.SetIdentifier(r.ID, r.Identifier)

		for j, actionID := range r.Actions {
			if !cat.HasAction(r.ID, actionID) {
				return nil, fmt.Errorf("resources[%d].actions[%d]: action %q is not available for %s", i, j, actionID, r.ID)
			}
			sel.SelectAction(r.ID, actionID)
		}
		for _, c := range r.Categories {
			sel.SetCategory(cat, r.ID, catalog.Category(c), true)
		}
	}

	return sel, nil
}
