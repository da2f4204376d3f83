package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	testhelpers "github.com/polkiloo/orderdesk/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRefreshCommitsPage(t *testing.T) {
	orders := testhelpers.SampleOrders(3)
	client := testhelpers.StoreClientStub{
		ListFn: func(_ context.Context, q model.ViewQuery) (*model.ListPage, error) {
			if q.Filter != model.FilterAll || q.Page != 1 || q.PageSize != 9 {
				t.Fatalf("unexpected query %+v", q)
			}
			return &model.ListPage{Orders: orders, TotalCount: 3, TotalPages: 1}, nil
		},
	}

	c := NewListController(client, 9, testLogger())
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page := c.Page()
	if page.TotalCount != 3 || len(page.Orders) != 3 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestRefreshFailureLeavesPageUntouched(t *testing.T) {
	calls := 0
	client := testhelpers.StoreClientStub{
		ListFn: func(context.Context, model.ViewQuery) (*model.ListPage, error) {
			calls++
			if calls == 1 {
				return &model.ListPage{Orders: testhelpers.SampleOrders(2), TotalCount: 2, TotalPages: 1}, nil
			}
			return nil, &domainErrors.FetchError{Op: "list orders", Status: 503}
		},
	}

	c := NewListController(client, 9, testLogger())
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}

	err := c.Refresh(context.Background())
	var fetchErr *domainErrors.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if page := c.Page(); page.TotalCount != 2 || len(page.Orders) != 2 {
		t.Fatalf("failed refresh must keep last-known-good page, got %+v", page)
	}
}

func TestLastIssuedQueryWins(t *testing.T) {
	firstEntered := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls atomic.Int32

	client := testhelpers.StoreClientStub{
		ListFn: func(_ context.Context, q model.ViewQuery) (*model.ListPage, error) {
			if calls.Add(1) == 1 {
				close(firstEntered)
				// Ignore cancellation entirely: the late result must
				// still be rejected by the token check.
				<-releaseFirst
				return &model.ListPage{Orders: testhelpers.SampleOrders(1), TotalCount: 111, TotalPages: 9}, nil
			}
			return &model.ListPage{Orders: testhelpers.SampleOrders(2), TotalCount: 222, TotalPages: 1}, nil
		},
	}

	c := NewListController(client, 9, testLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = c.Refresh(context.Background())
	}()

	<-firstEntered
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
	close(releaseFirst)
	wg.Wait()

	if !domainErrors.IsStale(firstErr) {
		t.Fatalf("expected stale result for superseded query, got %v", firstErr)
	}
	if page := c.Page(); page.TotalCount != 222 {
		t.Fatalf("stale response must not overwrite later commit, got %+v", page)
	}
}

func TestCancelledFetchIsNotAnError(t *testing.T) {
	client := testhelpers.StoreClientStub{
		ListFn: func(ctx context.Context, _ model.ViewQuery) (*model.ListPage, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	c := NewListController(client, 9, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Refresh(ctx)
	if !domainErrors.IsStale(err) {
		t.Fatalf("cancellation must surface as staleness, got %v", err)
	}
	var fetchErr *domainErrors.FetchError
	if errors.As(err, &fetchErr) {
		t.Fatal("cancellation must not be a FetchError")
	}
}

func TestOutOfRangePageClampsWithOneCorrectiveFetch(t *testing.T) {
	var pages []int
	client := testhelpers.StoreClientStub{
		ListFn: func(_ context.Context, q model.ViewQuery) (*model.ListPage, error) {
			pages = append(pages, q.Page)
			return &model.ListPage{Orders: testhelpers.SampleOrders(1), TotalCount: 19, TotalPages: 3}, nil
		},
	}

	c := NewListController(client, 9, testLogger())
	if err := c.SetPage(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pages) != 2 || pages[0] != 7 || pages[1] != 3 {
		t.Fatalf("expected fetch at 7 then corrective fetch at 3, got %v", pages)
	}
	if q := c.Query(); q.Page != 3 {
		t.Fatalf("expected clamped page 3, got %d", q.Page)
	}
}

func TestSetSortDoesNotFetch(t *testing.T) {
	var calls atomic.Int32
	client := testhelpers.StoreClientStub{
		ListFn: func(context.Context, model.ViewQuery) (*model.ListPage, error) {
			calls.Add(1)
			return &model.ListPage{Orders: testhelpers.SampleOrders(3), TotalCount: 3, TotalPages: 1}, nil
		},
	}

	c := NewListController(client, 9, testLogger())
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := calls.Load()

	if err := c.SetSort(model.SortTotalAmount); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.SetSort(model.SortTotalAmount); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != before {
		t.Fatal("sort changes must not hit the store")
	}
	if q := c.Query(); q.SortKey != model.SortTotalAmount || q.SortDir != model.SortDescending {
		t.Fatalf("expected toggled sort, got %+v", q)
	}
}

func TestVisibleAppliesPageScopedSort(t *testing.T) {
	orders := testhelpers.SampleOrders(3)
	client := testhelpers.StoreClientStub{
		ListFn: func(context.Context, model.ViewQuery) (*model.ListPage, error) {
			return &model.ListPage{Orders: orders, TotalCount: 3, TotalPages: 1}, nil
		},
	}

	c := NewListController(client, 9, testLogger())
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.SetSort(model.SortTotalAmount); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.SetSort(model.SortTotalAmount); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	visible := c.Visible()
	if visible[0].ID != "ord-3" || visible[2].ID != "ord-1" {
		t.Fatalf("expected descending amounts, got %v %v %v", visible[0].ID, visible[1].ID, visible[2].ID)
	}
	// The committed page keeps server order; only the view is sorted.
	if page := c.Page(); page.Orders[0].ID != "ord-1" {
		t.Fatalf("committed page must keep server order, got %v", page.Orders[0].ID)
	}
}

func TestFilterPaginationFlow(t *testing.T) {
	var queries []model.ViewQuery
	client := testhelpers.StoreClientStub{
		ListFn: func(_ context.Context, q model.ViewQuery) (*model.ListPage, error) {
			queries = append(queries, q)
			count := q.PageSize
			if q.Page == 2 {
				count = 3
			}
			return &model.ListPage{Orders: testhelpers.SampleOrders(count), TotalCount: 12, TotalPages: 2}, nil
		},
	}

	c := NewListController(client, 9, testLogger())
	if err := c.SetFilter(context.Background(), model.FilterOngoing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page := c.Page(); len(page.Orders) != 9 || page.TotalCount != 12 || page.TotalPages != 2 {
		t.Fatalf("unexpected first page %+v", page)
	}

	if err := c.SetPage(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page := c.Page(); len(page.Orders) != 3 {
		t.Fatalf("expected page replaced wholesale, got %d rows", len(page.Orders))
	}

	last := queries[len(queries)-1]
	if last.Filter != model.FilterOngoing || last.Page != 2 || last.PageSize != 9 {
		t.Fatalf("expected page 2 of ongoing, got %+v", last)
	}
}

func TestSetFilterValidatesInput(t *testing.T) {
	c := NewListController(testhelpers.StoreClientStub{}, 9, testLogger())

	err := c.SetFilter(context.Background(), "bogus")
	var vErr *domainErrors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if err := c.SetSort("bogus"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
