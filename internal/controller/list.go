package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/polkiloo/orderdesk/internal/adapter/orderstore"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/usecase"
)

// ListController owns the view query state and the current list page.
// All query transitions go through it, and it enforces the staleness
// protocol: every fetch carries a monotonically increasing token, issuing
// a new fetch cancels the previous one, and a response whose token is no
// longer current is discarded without touching committed state.
type ListController struct {
	client orderstore.Client
	logger *slog.Logger

	mu     sync.Mutex
	query  model.ViewQuery
	page   model.ListPage
	token  uint64
	cancel context.CancelFunc
}

// NewListController constructs the controller with an empty page and the
// initial query.
func NewListController(client orderstore.Client, pageSize int, logger *slog.Logger) *ListController {
	return &ListController{
		client: client,
		logger: logger,
		query:  model.NewViewQuery(pageSize),
		page:   model.ListPage{TotalPages: 1},
	}
}

// Query returns the current view query state.
func (c *ListController) Query() model.ViewQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Page returns the last committed list page.
func (c *ListController) Page() model.ListPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Visible returns the committed page ordered for display by the active
// sort. Sorting happens here, client-side, over the already-paginated
// rows; it never changes which rows belong to the page.
func (c *ListController) Visible() []model.Order {
	c.mu.Lock()
	query, page := c.query, c.page
	c.mu.Unlock()
	return usecase.SortPage(page.Orders, query.SortKey, query.SortDir)
}

// SetFilter applies a filter change and refetches. The page resets to 1.
func (c *ListController) SetFilter(ctx context.Context, f model.Filter) error {
	if !model.ValidFilter(f) {
		return &domainErrors.ValidationError{Field: "filter", Reason: "unknown filter"}
	}
	c.mu.Lock()
	c.query = c.query.WithFilter(f)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetSort applies the toggle rule to the sort state. No fetch is issued:
// sort only reorders the rows already loaded.
func (c *ListController) SetSort(key model.SortKey) error {
	if !model.ValidSortKey(key) {
		return &domainErrors.ValidationError{Field: "sort key", Reason: "unknown column"}
	}
	c.mu.Lock()
	c.query = c.query.WithSort(key)
	c.mu.Unlock()
	return nil
}

// SetPage moves to another page and refetches.
func (c *ListController) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	c.query = c.query.WithPage(n)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetPageSize changes the page size, resets to page 1, and refetches.
func (c *ListController) SetPageSize(ctx context.Context, n int) error {
	c.mu.Lock()
	c.query = c.query.WithPageSize(n)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh fetches the page for the current query and commits it if the
// request is still the latest one. Returns ErrStaleQuery when the result
// was superseded; staleness is not a failure. On failure the committed
// page is left untouched.
func (c *ListController) Refresh(ctx context.Context) error {
	return c.refresh(ctx, true)
}

func (c *ListController) refresh(ctx context.Context, allowCorrection bool) error {
	c.mu.Lock()
	c.token++
	token := c.token
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	query := c.query
	c.mu.Unlock()

	page, err := c.client.List(reqCtx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domainErrors.ErrStaleQuery
		}
		c.logger.Error("list refresh failed",
			slog.String("filter", string(query.Filter)),
			slog.Int("page", query.Page),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.mu.Lock()
	if token != c.token {
		c.mu.Unlock()
		return domainErrors.ErrStaleQuery
	}
	c.page = *page

	clamped, moved := c.query.ClampPage(page.TotalPages)
	if moved && allowCorrection {
		c.query = clamped
		c.mu.Unlock()
		// One corrective re-issue after the server shrank the page range.
		return c.refresh(ctx, false)
	}
	c.query = clamped
	c.mu.Unlock()
	return nil
}

// Stop cancels any in-flight fetch, for when the list view goes away.
func (c *ListController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
