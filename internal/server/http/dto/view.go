package dto

// OrderRowResponse is one rendered row of the order list.
type OrderRowResponse struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"order_number"`
	CustomerName  string `json:"customer_name"`
	OrderDate     string `json:"order_date"`
	Status        string `json:"status"`
	TotalAmount   string `json:"total_amount"`
	PaymentStatus string `json:"payment_status"`
	Selected      bool   `json:"selected"`
}

// StatsResponse carries the dashboard counters.
type StatsResponse struct {
	OrdersThisMonth int `json:"orders_this_month"`
	PendingCount    int `json:"pending_count"`
	ShippedCount    int `json:"shipped_count"`
	RefundedCount   int `json:"refunded_count"`
}

// ViewResponse is the full list-screen state returned by every view and
// selection endpoint. FetchError carries the message of a failed data
// fetch while the rows keep their last successfully loaded values.
type ViewResponse struct {
	Orders              []OrderRowResponse `json:"orders"`
	TotalCount          int                `json:"total_count"`
	TotalPages          int                `json:"total_pages"`
	Page                int                `json:"page"`
	PageSize            int                `json:"page_size"`
	Filter              string             `json:"filter"`
	SortKey             string             `json:"sort_key,omitempty"`
	SortDirection       string             `json:"sort_direction,omitempty"`
	SelectedCount       int                `json:"selected_count"`
	AllVisibleSelected  bool               `json:"all_visible_selected"`
	SomeVisibleSelected bool               `json:"some_visible_selected"`
	Stats               StatsResponse      `json:"stats"`
	Submitting          bool               `json:"submitting"`
	FetchError          string             `json:"fetch_error,omitempty"`
	SubmitError         string             `json:"submit_error,omitempty"`
}

// FilterRequest selects the active list filter.
type FilterRequest struct {
	Filter string `json:"filter"`
}

// SortRequest selects the column to sort by; repeating the current
// column flips the direction.
type SortRequest struct {
	Key string `json:"key"`
}

// PageRequest navigates to a page.
type PageRequest struct {
	Page int `json:"page"`
}

// PageSizeRequest changes the rows-per-page setting.
type PageSizeRequest struct {
	PageSize int `json:"page_size"`
}
