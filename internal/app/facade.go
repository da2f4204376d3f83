package app

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/controller"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// OrderDeskFacade is the single entry point the HTTP layer talks to. It
// aggregates the controllers behind one surface so handlers never reach
// into controller internals or coordinate them by hand.
type OrderDeskFacade struct {
	list      *controller.ListController
	selection *controller.SelectionController
	mutations *controller.MutationCoordinator
	create    *controller.CreateWorkflow
	stats     *controller.StatsFeed
}

func NewOrderDeskFacade(
	list *controller.ListController,
	selection *controller.SelectionController,
	mutations *controller.MutationCoordinator,
	create *controller.CreateWorkflow,
	stats *controller.StatsFeed,
) *OrderDeskFacade {
	return &OrderDeskFacade{
		list:      list,
		selection: selection,
		mutations: mutations,
		create:    create,
		stats:     stats,
	}
}

// ViewState is a consistent read of everything the list screen renders.
type ViewState struct {
	Query           model.ViewQuery
	Orders          []model.Order
	TotalCount      int
	TotalPages      int
	SelectedIDs     []string
	AllVisible      bool
	SomeVisible     bool
	Stats           model.Stats
	Draft           model.OrderDraft
	Submitting      bool
	LastSubmitError error
}

// View assembles the current view state. Selection header state is
// computed against the visible rows, so rows selected on other pages
// never mark the current page as fully selected.
func (f *OrderDeskFacade) View() ViewState {
	page := f.list.Page()
	visible := f.list.Visible()

	ids := make([]string, 0, len(visible))
	for _, o := range visible {
		ids = append(ids, o.ID)
	}
	all, some := f.selection.VisibleState(ids)

	draft, submitting, lastErr := f.create.State()

	return ViewState{
		Query:           f.list.Query(),
		Orders:          visible,
		TotalCount:      page.TotalCount,
		TotalPages:      page.TotalPages,
		SelectedIDs:     f.selection.IDs(),
		AllVisible:      all,
		SomeVisible:     some,
		Stats:           f.stats.Stats(),
		Draft:           draft,
		Submitting:      submitting,
		LastSubmitError: lastErr,
	}
}

func (f *OrderDeskFacade) Refresh(ctx context.Context) error {
	return f.list.Refresh(ctx)
}

func (f *OrderDeskFacade) SetFilter(ctx context.Context, filter model.Filter) error {
	return f.list.SetFilter(ctx, filter)
}

func (f *OrderDeskFacade) SetSort(key model.SortKey) error {
	return f.list.SetSort(key)
}

func (f *OrderDeskFacade) SetPage(ctx context.Context, page int) error {
	return f.list.SetPage(ctx, page)
}

func (f *OrderDeskFacade) SetPageSize(ctx context.Context, size int) error {
	return f.list.SetPageSize(ctx, size)
}

func (f *OrderDeskFacade) ToggleSelection(id string) {
	f.selection.Toggle(id)
}

// ToggleAllVisible applies the header checkbox to the rows currently on
// screen: any unselected visible row gets selected, and only when every
// visible row is already selected does the set of visible rows clear.
func (f *OrderDeskFacade) ToggleAllVisible() {
	visible := f.list.Visible()
	ids := make([]string, 0, len(visible))
	for _, o := range visible {
		ids = append(ids, o.ID)
	}
	f.selection.ToggleAllVisible(ids)
}

func (f *OrderDeskFacade) ClearSelection() {
	f.selection.Clear()
}

// resolveIDs falls back to the current selection when the caller names
// no explicit targets.
func (f *OrderDeskFacade) resolveIDs(ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	return f.selection.IDs()
}

func (f *OrderDeskFacade) DeleteOrders(ctx context.Context, ids []string) error {
	return f.mutations.Delete(ctx, f.resolveIDs(ids))
}

func (f *OrderDeskFacade) DuplicateOrders(ctx context.Context, ids []string) error {
	return f.mutations.Duplicate(ctx, f.resolveIDs(ids))
}

func (f *OrderDeskFacade) UpdateOrderStatus(ctx context.Context, ids []string, status model.OrderStatus) error {
	return f.mutations.SetStatus(ctx, f.resolveIDs(ids), status)
}

func (f *OrderDeskFacade) SubmitOrder(ctx context.Context, draft model.OrderDraft) error {
	return f.create.Submit(ctx, draft)
}

func (f *OrderDeskFacade) RefreshStats(ctx context.Context) error {
	return f.stats.Refresh(ctx)
}
