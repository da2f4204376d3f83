package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order fulfillment state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusRefunded  OrderStatus = "Refunded"
)

// PaymentStatus describes payment state. It is set independently of
// OrderStatus; neither is ever derived from the other.
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "Paid"
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
)

// ParseOrderStatus normalizes a lowercase wire value into the display
// form. Unknown or empty input defaults to pending.
func ParseOrderStatus(raw string) OrderStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed":
		return OrderStatusCompleted
	case "refunded":
		return OrderStatusRefunded
	default:
		return OrderStatusPending
	}
}

// ParsePaymentStatus normalizes a lowercase wire value into the display
// form. Unknown or empty input defaults to paid.
func ParsePaymentStatus(raw string) PaymentStatus {
	if strings.EqualFold(strings.TrimSpace(raw), "unpaid") {
		return PaymentStatusUnpaid
	}
	return PaymentStatusPaid
}

// Wire returns the lowercase form the order store expects.
func (s OrderStatus) Wire() string { return strings.ToLower(string(s)) }

// Wire returns the lowercase form the order store expects.
func (p PaymentStatus) Wire() string { return strings.ToLower(string(p)) }

// Order is a purchase record as the view layer sees it. Instances are
// produced only by the order store mapper; downstream code never touches
// raw payloads.
type Order struct {
	ID            string
	Number        string
	CustomerName  string
	OrderDate     time.Time
	Status        OrderStatus
	TotalAmount   decimal.Decimal
	PaymentStatus PaymentStatus
}

// OrderDraft carries new-order form input prior to validation and
// submission.
type OrderDraft struct {
	CustomerName   string
	CustomerEmail  string
	CustomerAvatar string
	OrderDate      string
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	TotalAmount    decimal.Decimal
}

// DefaultDraft returns the form state the create workflow resets to.
func DefaultDraft() OrderDraft {
	return OrderDraft{
		Status:        OrderStatusPending,
		PaymentStatus: PaymentStatusUnpaid,
		TotalAmount:   decimal.Zero,
	}
}
