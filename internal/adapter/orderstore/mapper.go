package orderstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Wire payloads of the order store API. Raw orders are deliberately
// loose: the store may send ids as strings or numbers, the customer name
// nested or flat, and the amount under either of two keys. normalizeOrder
// is the single place that turns this into the closed model.Order type.

type listResponse struct {
	Orders     []rawOrder `json:"orders"`
	Total      int        `json:"total"`
	TotalPages int        `json:"total_pages"`
}

type statsResponse struct {
	TotalOrdersThisMonth int `json:"total_orders_this_month"`
	PendingOrders        int `json:"pending_orders"`
	ShippedOrders        int `json:"shipped_orders"`
	RefundedOrders       int `json:"refunded_orders"`
}

type rawCustomer struct {
	Name string `json:"name"`
}

type rawOrder struct {
	ID            any          `json:"id"`
	OrderNumber   string       `json:"order_number"`
	Customer      *rawCustomer `json:"customer"`
	CustomerName  string       `json:"customer_name"`
	OrderDate     string       `json:"order_date"`
	Status        string       `json:"status"`
	TotalAmount   *float64     `json:"total_amount"`
	Total         *float64     `json:"total"`
	PaymentStatus string       `json:"payment_status"`
}

type customerPayload struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
}

type createRequest struct {
	Customer      customerPayload `json:"customer"`
	TotalAmount   float64         `json:"total_amount"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	OrderDate     *string         `json:"order_date"`
}

type bulkIDsRequest struct {
	OrderIDs []string `json:"order_ids"`
}

type bulkStatusRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
}

// normalizeOrder maps a raw store payload into the internal Order value,
// applying the default rules: missing status becomes pending, missing
// payment status paid, missing customer "Unknown", unparseable dates the
// supplied now. Status and payment status are normalized independently.
func normalizeOrder(raw rawOrder, now time.Time) model.Order {
	name := raw.CustomerName
	if raw.Customer != nil && raw.Customer.Name != "" {
		name = raw.Customer.Name
	}
	if name == "" {
		name = "Unknown"
	}

	amount := decimal.Zero
	switch {
	case raw.TotalAmount != nil:
		amount = decimal.NewFromFloat(*raw.TotalAmount)
	case raw.Total != nil:
		amount = decimal.NewFromFloat(*raw.Total)
	}

	return model.Order{
		ID:            stringifyID(raw.ID),
		Number:        raw.OrderNumber,
		CustomerName:  name,
		OrderDate:     parseOrderDate(raw.OrderDate, now),
		Status:        model.ParseOrderStatus(raw.Status),
		TotalAmount:   amount,
		PaymentStatus: model.ParsePaymentStatus(raw.PaymentStatus),
	}
}

var orderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseOrderDate(raw string, now time.Time) time.Time {
	if raw == "" {
		return now.UTC()
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now.UTC()
}

func stringifyID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
