package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

// OrderHandler manages order creation and mutation endpoints.
type OrderHandler struct {
	facade DeskFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade DeskFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.facade.SubmitOrder(c.Request.Context(), toDraft(req))

	var vErr *domainErrors.ValidationError
	var mErr *domainErrors.MutationError
	var fErr *domainErrors.FetchError

	switch {
	case err == nil, domainErrors.IsStale(err):
		writeView(c, h.facade, http.StatusCreated, "")
	case errors.Is(err, domainErrors.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "a submission is already in flight"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: vErr.Error()})
	case errors.As(err, &mErr):
		status := http.StatusBadGateway
		if mErr.Status >= 400 && mErr.Status < 500 {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, dto.ErrorResponse{Error: mutationMessage(mErr)})
	case errors.As(err, &fErr):
		// The order was created; only the follow-up page load failed.
		writeView(c, h.facade, http.StatusCreated, fErr.Error())
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

// Delete handles DELETE /api/orders.
func (h *OrderHandler) Delete(c *gin.Context) {
	var req dto.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	respondAfterMutation(c, h.facade, h.facade.DeleteOrders(c.Request.Context(), req.IDs))
}

// Duplicate handles POST /api/orders/duplicate.
func (h *OrderHandler) Duplicate(c *gin.Context) {
	var req dto.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	respondAfterMutation(c, h.facade, h.facade.DuplicateOrders(c.Request.Context(), req.IDs))
}

// UpdateStatus handles PUT /api/orders/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	status := model.ParseOrderStatus(req.Status)
	if !strings.EqualFold(string(status), strings.TrimSpace(req.Status)) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown status"})
		return
	}
	respondAfterMutation(c, h.facade, h.facade.UpdateOrderStatus(c.Request.Context(), req.IDs, status))
}

func toDraft(req dto.CreateOrderRequest) model.OrderDraft {
	draft := model.DefaultDraft()
	draft.CustomerName = req.CustomerName
	draft.CustomerEmail = req.CustomerEmail
	draft.CustomerAvatar = req.CustomerAvatar
	draft.OrderDate = req.OrderDate
	draft.TotalAmount = decimal.NewFromFloat(req.TotalAmount)
	if strings.TrimSpace(req.Status) != "" {
		draft.Status = model.ParseOrderStatus(req.Status)
	}
	if strings.TrimSpace(req.PaymentStatus) != "" {
		draft.PaymentStatus = model.ParsePaymentStatus(req.PaymentStatus)
	}
	return draft
}
