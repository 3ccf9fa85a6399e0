package bot

import "menu-bot/internal/catalog"

// toggleOption applies one option tap to the raw form data the way the matching input
// control would: radios and selects switch to the tapped option, checkboxes flip it.
// The input map is not modified.
func toggleOption(group catalog.ParamGroup, raw map[string][]string, paramID, optionID string) map[string][]string {
	next := make(map[string][]string, len(raw)+1)
	for id, options := range raw {
		next[id] = append([]string(nil), options...)
	}

	if group.Single() {
		next[paramID] = []string{optionID}
		return next
	}

	current := next[paramID]
	for i, id := range current {
		if id == optionID {
			next[paramID] = append(current[:i], current[i+1:]...)
			return next
		}
	}
	next[paramID] = append(current, optionID)
	return next
}
