package dto

// CreateOrderRequest is the new-order form payload.
type CreateOrderRequest struct {
	CustomerName   string  `json:"customer_name"`
	CustomerEmail  string  `json:"customer_email"`
	CustomerAvatar string  `json:"customer_avatar"`
	OrderDate      string  `json:"order_date"`
	Status         string  `json:"status"`
	PaymentStatus  string  `json:"payment_status"`
	TotalAmount    float64 `json:"total_amount"`
}

// BulkRequest targets a set of orders. An empty IDs list means the
// current selection.
type BulkRequest struct {
	IDs []string `json:"ids"`
}

// StatusRequest changes the status of a set of orders.
type StatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// ErrorResponse reports a failed operation.
type ErrorResponse struct {
	Error string `json:"error"`
}
