package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/orderdesk/internal/controller"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	testhelpers "github.com/polkiloo/orderdesk/internal/test"
)

func newFacadeFixture(client testhelpers.StoreClientStub) *OrderDeskFacade {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	list := controller.NewListController(client, 9, logger)
	selection := controller.NewSelectionController()
	mutations := controller.NewMutationCoordinator(client, list, selection, logger)
	create := controller.NewCreateWorkflow(client, list)
	stats := controller.NewStatsFeed(client, time.Minute, logger)
	return NewOrderDeskFacade(list, selection, mutations, create, stats)
}

func TestViewReflectsCommittedPageAndSelection(t *testing.T) {
	orders := testhelpers.SampleOrders(3)
	client := testhelpers.StoreClientStub{
		ListFn: func(context.Context, model.ViewQuery) (*model.ListPage, error) {
			return &model.ListPage{Orders: orders, TotalCount: 3, TotalPages: 1}, nil
		},
	}

	f := newFacadeFixture(client)
	if err := f.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.ToggleSelection(orders[0].ID)
	f.ToggleSelection(orders[1].ID)

	state := f.View()
	if len(state.Orders) != 3 || state.TotalCount != 3 || state.TotalPages != 1 {
		t.Fatalf("unexpected list state: %+v", state)
	}
	if len(state.SelectedIDs) != 2 {
		t.Fatalf("expected 2 selected, got %v", state.SelectedIDs)
	}
	if state.AllVisible || !state.SomeVisible {
		t.Fatalf("expected partial selection, got all=%v some=%v", state.AllVisible, state.SomeVisible)
	}
}

func TestToggleAllVisibleCompletesPartialSelection(t *testing.T) {
	orders := testhelpers.SampleOrders(3)
	client := testhelpers.StoreClientStub{
		ListFn: func(context.Context, model.ViewQuery) (*model.ListPage, error) {
			return &model.ListPage{Orders: orders, TotalCount: 3, TotalPages: 1}, nil
		},
	}

	f := newFacadeFixture(client)
	if err := f.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.ToggleSelection(orders[0].ID)

	f.ToggleAllVisible()
	if state := f.View(); !state.AllVisible {
		t.Fatalf("expected all visible selected, got %+v", state.SelectedIDs)
	}

	f.ToggleAllVisible()
	if state := f.View(); len(state.SelectedIDs) != 0 {
		t.Fatalf("expected selection cleared, got %v", state.SelectedIDs)
	}
}

func TestMutationsFallBackToSelection(t *testing.T) {
	orders := testhelpers.SampleOrders(2)
	var deleted []string
	client := testhelpers.StoreClientStub{
		ListFn: func(context.Context, model.ViewQuery) (*model.ListPage, error) {
			return &model.ListPage{Orders: orders, TotalCount: 2, TotalPages: 1}, nil
		},
		BulkDeleteFn: func(_ context.Context, ids []string) error {
			deleted = ids
			return nil
		},
	}

	f := newFacadeFixture(client)
	if err := f.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.ToggleSelection(orders[1].ID)
	if err := f.DeleteOrders(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(deleted) != 1 || deleted[0] != orders[1].ID {
		t.Fatalf("expected selection used as target, got %v", deleted)
	}
	if state := f.View(); len(state.SelectedIDs) != 0 {
		t.Fatalf("expected selection cleared after mutation, got %v", state.SelectedIDs)
	}
}

func TestExplicitIDsBypassSelection(t *testing.T) {
	var duplicated []string
	client := testhelpers.StoreClientStub{
		ListFn: func(context.Context, model.ViewQuery) (*model.ListPage, error) {
			return &model.ListPage{TotalPages: 1}, nil
		},
		BulkDuplicateFn: func(_ context.Context, ids []string) error {
			duplicated = ids
			return nil
		},
	}

	f := newFacadeFixture(client)
	f.ToggleSelection("other")

	if err := f.DuplicateOrders(context.Background(), []string{"ord-7"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(duplicated) != 1 || duplicated[0] != "ord-7" {
		t.Fatalf("expected explicit id to win, got %v", duplicated)
	}
}
