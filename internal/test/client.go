package test

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// StoreClientStub provides controllable behaviour for the order store
// client used by controller and app tests.
type StoreClientStub struct {
	ListFn             func(context.Context, model.ViewQuery) (*model.ListPage, error)
	StatsFn            func(context.Context) (*model.Stats, error)
	CreateFn           func(context.Context, model.OrderDraft) (*model.Order, error)
	BulkDeleteFn       func(context.Context, []string) error
	BulkDuplicateFn    func(context.Context, []string) error
	BulkUpdateStatusFn func(context.Context, []string, model.OrderStatus) error
}

// List delegates to the configured function or returns an empty page.
func (s StoreClientStub) List(ctx context.Context, query model.ViewQuery) (*model.ListPage, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, query)
	}
	return &model.ListPage{TotalPages: 1}, nil
}

// Stats delegates to the configured function or returns zero counters.
func (s StoreClientStub) Stats(ctx context.Context) (*model.Stats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return &model.Stats{}, nil
}

// Create delegates to the configured function or echoes a created order.
func (s StoreClientStub) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	return &model.Order{ID: "created", CustomerName: draft.CustomerName}, nil
}

// BulkDelete delegates to the configured function or succeeds.
func (s StoreClientStub) BulkDelete(ctx context.Context, ids []string) error {
	if s.BulkDeleteFn != nil {
		return s.BulkDeleteFn(ctx, ids)
	}
	return nil
}

// BulkDuplicate delegates to the configured function or succeeds.
func (s StoreClientStub) BulkDuplicate(ctx context.Context, ids []string) error {
	if s.BulkDuplicateFn != nil {
		return s.BulkDuplicateFn(ctx, ids)
	}
	return nil
}

// BulkUpdateStatus delegates to the configured function or succeeds.
func (s StoreClientStub) BulkUpdateStatus(ctx context.Context, ids []string, status model.OrderStatus) error {
	if s.BulkUpdateStatusFn != nil {
		return s.BulkUpdateStatusFn(ctx, ids, status)
	}
	return nil
}

// SampleOrders builds n distinct orders for list fixtures.
func SampleOrders(n int) []model.Order {
	base := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Order, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Order{
			ID:            "ord-" + strconv.Itoa(i+1),
			Number:        "#ORD" + strconv.Itoa(1000+i+1),
			CustomerName:  RandomASCIIString(5, 12),
			OrderDate:     base.AddDate(0, 0, i),
			Status:        model.OrderStatusPending,
			TotalAmount:   decimal.NewFromInt(int64(10 * (i + 1))),
			PaymentStatus: model.PaymentStatusUnpaid,
		})
	}
	return out
}
