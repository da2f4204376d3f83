package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

// ViewHandler manages the list view endpoints.
type ViewHandler struct {
	facade DeskFacade
}

// NewViewHandler constructs ViewHandler.
func NewViewHandler(facade DeskFacade) *ViewHandler {
	return &ViewHandler{facade: facade}
}

// Show handles GET /api/view.
func (h *ViewHandler) Show(c *gin.Context) {
	writeView(c, h.facade, http.StatusOK, "")
}

// Refresh handles POST /api/view/refresh.
func (h *ViewHandler) Refresh(c *gin.Context) {
	respondAfterViewChange(c, h.facade, h.facade.Refresh(c.Request.Context()))
}

// SetFilter handles POST /api/view/filter.
func (h *ViewHandler) SetFilter(c *gin.Context) {
	var req dto.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	err := h.facade.SetFilter(c.Request.Context(), model.Filter(req.Filter))
	respondAfterViewChange(c, h.facade, err)
}

// SetSort handles POST /api/view/sort. Sorting is page-local and never
// triggers a fetch.
func (h *ViewHandler) SetSort(c *gin.Context) {
	var req dto.SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	respondAfterViewChange(c, h.facade, h.facade.SetSort(model.SortKey(req.Key)))
}

// SetPage handles POST /api/view/page.
func (h *ViewHandler) SetPage(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	respondAfterViewChange(c, h.facade, h.facade.SetPage(c.Request.Context(), req.Page))
}

// SetPageSize handles POST /api/view/page-size.
func (h *ViewHandler) SetPageSize(c *gin.Context) {
	var req dto.PageSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	respondAfterViewChange(c, h.facade, h.facade.SetPageSize(c.Request.Context(), req.PageSize))
}
