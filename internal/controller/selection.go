package controller

import (
	"sync"

	"github.com/polkiloo/orderdesk/internal/usecase"
)

// SelectionController is the single writer of the selection set. Other
// components read snapshots; only the controller (and the mutation
// coordinator through it) changes membership.
type SelectionController struct {
	mu  sync.Mutex
	set *usecase.SelectionSet
}

// NewSelectionController returns a controller with an empty selection.
func NewSelectionController() *SelectionController {
	return &SelectionController{set: usecase.NewSelectionSet()}
}

// Toggle flips membership of one order id.
func (c *SelectionController) Toggle(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set.Toggle(id)
}

// ToggleAllVisible applies the add-dominant header-checkbox rule to the
// given visible ids.
func (c *SelectionController) ToggleAllVisible(visible []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set.ToggleAllVisible(visible)
}

// Clear drops the whole selection.
func (c *SelectionController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set.Clear()
}

// IDs returns the selected ids.
func (c *SelectionController) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.IDs()
}

// Count returns the number of selected ids.
func (c *SelectionController) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Count()
}

// Contains reports whether id is selected.
func (c *SelectionController) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Contains(id)
}

// VisibleState returns the header-checkbox state for the visible ids:
// fully selected and indeterminate.
func (c *SelectionController) VisibleState(visible []string) (all, some bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.AllVisibleSelected(visible), c.set.SomeVisibleSelected(visible)
}
