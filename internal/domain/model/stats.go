package model

// Stats holds the dashboard counters. They are separate aggregates
// refreshed independently of the list; nothing relates them to the
// currently visible page.
type Stats struct {
	OrdersThisMonth int
	PendingCount    int
	ShippedCount    int
	RefundedCount   int
}
