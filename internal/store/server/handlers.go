package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/store/postgres"
)

// OrderRepository is the storage surface the handlers depend on.
type OrderRepository interface {
	List(ctx context.Context, filter string, page, limit int) ([]postgres.Order, int, error)
	Get(ctx context.Context, id string) (*postgres.Order, error)
	Create(ctx context.Context, in postgres.OrderInput) (*postgres.Order, error)
	Update(ctx context.Context, id string, in postgres.OrderInput) (*postgres.Order, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status string) (int, error)
	BulkDuplicate(ctx context.Context, ids []string) ([]postgres.Order, error)
	Stats(ctx context.Context) (*postgres.Stats, error)
}

// OrderHandler serves the order store endpoints.
type OrderHandler struct {
	repo OrderRepository
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(repo OrderRepository) *OrderHandler {
	return &OrderHandler{repo: repo}
}

var knownFilters = map[string]struct{}{
	"": {}, "all": {}, "incomplete": {}, "overdue": {}, "ongoing": {}, "finished": {},
}

func validStatus(s string) bool {
	switch s {
	case "pending", "completed", "refunded":
		return true
	}
	return false
}

func validPaymentStatus(s string) bool {
	return s == "paid" || s == "unpaid"
}

func dbError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "Database error: " + err.Error()})
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	filter := c.DefaultQuery("status", "all")
	if _, ok := knownFilters[filter]; !ok {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "Invalid status filter"})
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "9"))
	if err != nil || limit < 1 {
		limit = 9
	}

	orders, total, err := h.repo.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		dbError(c, err)
		return
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	c.JSON(http.StatusOK, ListResponse{
		Orders:     toOrderResponses(orders),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

// Stats handles GET /orders/stats.
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		dbError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatsResponse{
		TotalOrdersThisMonth: stats.OrdersThisMonth,
		PendingOrders:        stats.PendingCount,
		ShippedOrders:        stats.ShippedCount,
		RefundedOrders:       stats.RefundedCount,
	})
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, DetailResponse{Detail: "Order not found"})
			return
		}
		dbError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Create handles POST /orders.
func (h *OrderHandler) Create(c *gin.Context) {
	in, ok := h.bindOrderInput(c)
	if !ok {
		return
	}
	order, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		dbError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Update handles PUT /orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	in, ok := h.bindOrderInput(c)
	if !ok {
		return
	}
	order, err := h.repo.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, DetailResponse{Detail: "Order not found"})
			return
		}
		dbError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, DetailResponse{Detail: "Order not found"})
			return
		}
		dbError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete handles DELETE /orders/bulk.
func (h *OrderHandler) BulkDelete(c *gin.Context) {
	ids, ok := bindBulkIDs(c)
	if !ok {
		return
	}
	count, err := h.repo.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		dbError(c, err)
		return
	}
	c.JSON(http.StatusOK, BulkDeleteResponse{DeletedCount: count})
}

// BulkDuplicate handles POST /orders/bulk/duplicate.
func (h *OrderHandler) BulkDuplicate(c *gin.Context) {
	ids, ok := bindBulkIDs(c)
	if !ok {
		return
	}
	duplicates, err := h.repo.BulkDuplicate(c.Request.Context(), ids)
	if err != nil {
		dbError(c, err)
		return
	}
	c.JSON(http.StatusOK, BulkDuplicateResponse{
		DuplicatedCount: len(duplicates),
		Orders:          toOrderResponses(duplicates),
	})
}

// BulkUpdateStatus handles PUT /orders/bulk/status.
func (h *OrderHandler) BulkUpdateStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid request body"})
		return
	}
	if len(req.OrderIDs) == 0 {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "order_ids required"})
		return
	}
	if !validStatus(req.Status) {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "Invalid status"})
		return
	}
	count, err := h.repo.BulkUpdateStatus(c.Request.Context(), req.OrderIDs, req.Status)
	if err != nil {
		dbError(c, err)
		return
	}
	c.JSON(http.StatusOK, BulkStatusResponse{UpdatedCount: count})
}

func bindBulkIDs(c *gin.Context) ([]string, bool) {
	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid request body"})
		return nil, false
	}
	if len(req.OrderIDs) == 0 {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "order_ids required"})
		return nil, false
	}
	return req.OrderIDs, true
}

func (h *OrderHandler) bindOrderInput(c *gin.Context) (postgres.OrderInput, bool) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid request body"})
		return postgres.OrderInput{}, false
	}
	if strings.TrimSpace(req.Customer.Name) == "" {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "customer name required"})
		return postgres.OrderInput{}, false
	}
	status := req.Status
	if status == "" {
		status = "pending"
	}
	if !validStatus(status) {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "Invalid status"})
		return postgres.OrderInput{}, false
	}
	payment := req.PaymentStatus
	if payment == "" {
		payment = "unpaid"
	}
	if !validPaymentStatus(payment) {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "Invalid payment_status"})
		return postgres.OrderInput{}, false
	}

	var orderDate *time.Time
	if req.OrderDate != nil && *req.OrderDate != "" {
		parsed, err := parseDate(*req.OrderDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, DetailResponse{Detail: "Invalid order_date"})
			return postgres.OrderInput{}, false
		}
		orderDate = &parsed
	}

	return postgres.OrderInput{
		CustomerName:   req.Customer.Name,
		CustomerEmail:  req.Customer.Email,
		CustomerAvatar: req.Customer.Avatar,
		OrderDate:      orderDate,
		Status:         status,
		TotalAmount:    decimal.NewFromFloat(req.TotalAmount),
		PaymentStatus:  payment,
	}, true
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
