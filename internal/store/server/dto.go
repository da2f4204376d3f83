package server

import (
	"time"

	"github.com/polkiloo/orderdesk/internal/store/postgres"
)

// CustomerPayload is the nested customer object of the wire format.
type CustomerPayload struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
}

// OrderResponse is one order in the wire format.
type OrderResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Customer      CustomerPayload `json:"customer"`
	CustomerName  string          `json:"customer_name"`
	OrderDate     string          `json:"order_date"`
	Status        string          `json:"status"`
	TotalAmount   float64         `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// ListResponse is one page of orders with pagination totals.
type ListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// StatsResponse carries the dashboard aggregates.
type StatsResponse struct {
	TotalOrdersThisMonth int `json:"total_orders_this_month"`
	PendingOrders        int `json:"pending_orders"`
	ShippedOrders        int `json:"shipped_orders"`
	RefundedOrders       int `json:"refunded_orders"`
}

// OrderRequest is the create/update payload.
type OrderRequest struct {
	Customer      CustomerPayload `json:"customer"`
	OrderDate     *string         `json:"order_date"`
	Status        string          `json:"status"`
	TotalAmount   float64         `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"`
}

// BulkIDsRequest targets a set of orders by id.
type BulkIDsRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// BulkStatusRequest changes the status of a set of orders.
type BulkStatusRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
}

// BulkDeleteResponse reports how many orders were removed.
type BulkDeleteResponse struct {
	DeletedCount int `json:"deleted_count"`
}

// BulkStatusResponse reports how many orders were updated.
type BulkStatusResponse struct {
	UpdatedCount int `json:"updated_count"`
}

// BulkDuplicateResponse reports the created copies.
type BulkDuplicateResponse struct {
	DuplicatedCount int             `json:"duplicated_count"`
	Orders          []OrderResponse `json:"orders"`
}

// DetailResponse reports a failed operation.
type DetailResponse struct {
	Detail string `json:"detail"`
}

func toOrderResponse(o postgres.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.Number,
		Customer: CustomerPayload{
			Name:   o.CustomerName,
			Email:  o.CustomerEmail,
			Avatar: o.CustomerAvatar,
		},
		CustomerName:  o.CustomerName,
		OrderDate:     o.OrderDate.UTC().Format(time.RFC3339),
		Status:        o.Status,
		TotalAmount:   o.TotalAmount.InexactFloat64(),
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toOrderResponses(orders []postgres.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, toOrderResponse(o))
	}
	return result
}
