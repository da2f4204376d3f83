package usecase

// SelectionSet tracks the order ids the user has marked for bulk action.
// Membership is independent of the currently visible page: ids stay
// selected across filter, sort, and page changes and are removed only by
// explicit action or a completed bulk mutation.
type SelectionSet struct {
	ids map[string]struct{}
}

// NewSelectionSet returns an empty selection.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[string]struct{})}
}

// Toggle flips membership of a single id.
func (s *SelectionSet) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAllVisible applies the header-checkbox rule to the visible rows:
// if every given id is already selected they are all removed, otherwise
// all of them are added. A partial selection therefore always completes
// to select-all before it can clear.
func (s *SelectionSet) ToggleAllVisible(visible []string) {
	if len(visible) == 0 {
		return
	}
	if s.AllVisibleSelected(visible) {
		for _, id := range visible {
			delete(s.ids, id)
		}
		return
	}
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

// Clear drops the whole selection.
func (s *SelectionSet) Clear() {
	s.ids = make(map[string]struct{})
}

// Contains reports whether id is selected.
func (s *SelectionSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected ids.
func (s *SelectionSet) Count() int { return len(s.ids) }

// IDs returns the selected ids. Order is unspecified.
func (s *SelectionSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// AllVisibleSelected reports whether every visible row is selected.
// An empty visible set never counts as fully selected.
func (s *SelectionSet) AllVisibleSelected(visible []string) bool {
	if len(visible) == 0 {
		return false
	}
	for _, id := range visible {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// SomeVisibleSelected reports the indeterminate-checkbox state: at least
// one visible row selected, but not all of them.
func (s *SelectionSet) SomeVisibleSelected(visible []string) bool {
	if s.AllVisibleSelected(visible) {
		return false
	}
	for _, id := range visible {
		if s.Contains(id) {
			return true
		}
	}
	return false
}
