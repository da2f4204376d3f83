package dto

// ToggleRequest flips one row in or out of the selection.
type ToggleRequest struct {
	ID string `json:"id"`
}
