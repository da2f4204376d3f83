package model

// Filter selects which orders the store returns. Filters are evaluated
// server-side; the client sends the value verbatim.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterIncomplete Filter = "incomplete"
	FilterOverdue    Filter = "overdue"
	FilterOngoing    Filter = "ongoing"
	FilterFinished   Filter = "finished"
)

// ValidFilter reports whether f is one of the known view filters.
func ValidFilter(f Filter) bool {
	switch f {
	case FilterAll, FilterIncomplete, FilterOverdue, FilterOngoing, FilterFinished:
		return true
	}
	return false
}

// SortKey names the column the loaded page is ordered by.
type SortKey string

const (
	SortNone          SortKey = ""
	SortOrderNumber   SortKey = "orderNumber"
	SortCustomerName  SortKey = "customerName"
	SortOrderDate     SortKey = "orderDate"
	SortTotalAmount   SortKey = "totalAmount"
	SortPaymentStatus SortKey = "paymentStatus"
)

// ValidSortKey reports whether k names a sortable column.
func ValidSortKey(k SortKey) bool {
	switch k {
	case SortNone, SortOrderNumber, SortCustomerName, SortOrderDate, SortTotalAmount, SortPaymentStatus:
		return true
	}
	return false
}

// SortDirection orders the comparator result.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// ViewQuery is the combination of filter, sort, and pagination driving
// what is fetched and displayed. Transitions are pure: each returns the
// next state and performs no I/O.
type ViewQuery struct {
	Filter   Filter
	SortKey  SortKey
	SortDir  SortDirection
	Page     int
	PageSize int
}

// DefaultPageSize matches the reference list view.
const DefaultPageSize = 9

// NewViewQuery returns the initial query state.
func NewViewQuery(pageSize int) ViewQuery {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return ViewQuery{
		Filter:   FilterAll,
		SortKey:  SortNone,
		SortDir:  SortAscending,
		Page:     1,
		PageSize: pageSize,
	}
}

// WithFilter selects a filter and resets pagination to the first page.
func (q ViewQuery) WithFilter(f Filter) ViewQuery {
	q.Filter = f
	q.Page = 1
	return q
}

// WithSort toggles direction when key is already active, otherwise
// switches to key ascending. Sorting never changes which rows are
// fetched, only their order within the loaded page.
func (q ViewQuery) WithSort(key SortKey) ViewQuery {
	if q.SortKey == key {
		if q.SortDir == SortAscending {
			q.SortDir = SortDescending
		} else {
			q.SortDir = SortAscending
		}
		return q
	}
	q.SortKey = key
	q.SortDir = SortAscending
	return q
}

// WithPage moves to page n. Values below 1 are pinned to 1; the upper
// bound is enforced against server-reported totals after each fetch.
func (q ViewQuery) WithPage(n int) ViewQuery {
	if n < 1 {
		n = 1
	}
	q.Page = n
	return q
}

// WithPageSize changes the page size and resets to the first page.
func (q ViewQuery) WithPageSize(n int) ViewQuery {
	if n < 1 {
		n = 1
	}
	q.PageSize = n
	q.Page = 1
	return q
}

// ClampPage pins Page into [1, totalPages] and reports whether it moved.
func (q ViewQuery) ClampPage(totalPages int) (ViewQuery, bool) {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case q.Page > totalPages:
		q.Page = totalPages
		return q, true
	case q.Page < 1:
		q.Page = 1
		return q, true
	}
	return q, false
}

// ListPage is one server-paginated page of orders plus the totals the
// store reported for the active filter. It is replaced wholesale on
// every successful fetch, never partially mutated.
type ListPage struct {
	Orders     []Order
	TotalCount int
	TotalPages int
}
