package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

// SelectionHandler manages the row selection endpoints. Selection is a
// pure in-memory state change, so every endpoint replies with the
// updated view immediately.
type SelectionHandler struct {
	facade DeskFacade
}

// NewSelectionHandler constructs SelectionHandler.
func NewSelectionHandler(facade DeskFacade) *SelectionHandler {
	return &SelectionHandler{facade: facade}
}

// Toggle handles POST /api/selection/toggle.
func (h *SelectionHandler) Toggle(c *gin.Context) {
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "order id required"})
		return
	}
	h.facade.ToggleSelection(req.ID)
	writeView(c, h.facade, http.StatusOK, "")
}

// ToggleAll handles POST /api/selection/toggle-all.
func (h *SelectionHandler) ToggleAll(c *gin.Context) {
	h.facade.ToggleAllVisible()
	writeView(c, h.facade, http.StatusOK, "")
}

// Clear handles DELETE /api/selection.
func (h *SelectionHandler) Clear(c *gin.Context) {
	h.facade.ClearSelection()
	writeView(c, h.facade, http.StatusOK, "")
}
