package pricing

import (
	"sort"

	"menu-bot/internal/catalog"
)

// Selection is the set of chosen option ids per param group.
// It is never modified after construction; a new one replaces it on every input.
type Selection struct {
	groups map[string]map[string]struct{}
}

// NewSelection builds a selection from raw form data (param id -> checked option ids).
// Groups missing from raw are treated as having nothing selected.
func NewSelection(raw map[string][]string) Selection {
	groups := make(map[string]map[string]struct{}, len(raw))
	for paramID, optionIDs := range raw {
		set := make(map[string]struct{}, len(optionIDs))
		for _, optionID := range optionIDs {
			set[optionID] = struct{}{}
		}
		groups[paramID] = set
	}
	return Selection{groups: groups}
}

// DefaultSelection is what a freshly rendered form has checked: every default option.
func DefaultSelection(p *catalog.Product) Selection {
	raw := make(map[string][]string, len(p.Params))
	for paramID, group := range p.Params {
		for optionID, option := range group.Options {
			if option.Default {
				raw[paramID] = append(raw[paramID], optionID)
			}
		}
	}
	return NewSelection(raw)
}

// Has reports whether optionID is chosen in paramID.
func (s Selection) Has(paramID, optionID string) bool {
	_, ok := s.groups[paramID][optionID]
	return ok
}

// Options returns the chosen option ids of a group, sorted. Never nil.
func (s Selection) Options(paramID string) []string {
	ids := make([]string, 0, len(s.groups[paramID]))
	for id := range s.groups[paramID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Raw returns the selection as form data. Groups with nothing chosen are omitted.
func (s Selection) Raw() map[string][]string {
	raw := make(map[string][]string, len(s.groups))
	for paramID := range s.groups {
		if ids := s.Options(paramID); len(ids) > 0 {
			raw[paramID] = ids
		}
	}
	return raw
}
