package handlers

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/app"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// ViewFacade exposes list query operations to the view endpoints.
type ViewFacade interface {
	View() app.ViewState
	Refresh(ctx context.Context) error
	SetFilter(ctx context.Context, filter model.Filter) error
	SetSort(key model.SortKey) error
	SetPage(ctx context.Context, page int) error
	SetPageSize(ctx context.Context, size int) error
}

// SelectionFacade exposes row selection operations.
type SelectionFacade interface {
	ToggleSelection(id string)
	ToggleAllVisible()
	ClearSelection()
}

// MutationFacade exposes order mutations and creation.
type MutationFacade interface {
	DeleteOrders(ctx context.Context, ids []string) error
	DuplicateOrders(ctx context.Context, ids []string) error
	UpdateOrderStatus(ctx context.Context, ids []string, status model.OrderStatus) error
	SubmitOrder(ctx context.Context, draft model.OrderDraft) error
}

// DeskFacade aggregates the full set of operations used across handlers.
type DeskFacade interface {
	ViewFacade
	SelectionFacade
	MutationFacade
}
