package usecase

import (
	"sort"
	"strings"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// SortPage orders a copy of the loaded page by the chosen key. Sorting
// is page-scoped: the store paginates in its own order and this never
// moves rows across page boundaries. Strings compare case-sensitively,
// dates chronologically, amounts numerically; descending reverses the
// comparator.
func SortPage(orders []model.Order, key model.SortKey, dir model.SortDirection) []model.Order {
	out := make([]model.Order, len(orders))
	copy(out, orders)
	if key == model.SortNone {
		return out
	}

	less := comparator(key)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == model.SortDescending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func comparator(key model.SortKey) func(a, b model.Order) bool {
	switch key {
	case model.SortOrderNumber:
		return func(a, b model.Order) bool { return strings.Compare(a.Number, b.Number) < 0 }
	case model.SortCustomerName:
		return func(a, b model.Order) bool { return strings.Compare(a.CustomerName, b.CustomerName) < 0 }
	case model.SortOrderDate:
		return func(a, b model.Order) bool { return a.OrderDate.Before(b.OrderDate) }
	case model.SortTotalAmount:
		return func(a, b model.Order) bool { return a.TotalAmount.Cmp(b.TotalAmount) < 0 }
	case model.SortPaymentStatus:
		return func(a, b model.Order) bool {
			return strings.Compare(string(a.PaymentStatus), string(b.PaymentStatus)) < 0
		}
	default:
		return func(a, b model.Order) bool { return false }
	}
}
