package orderstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Client exposes operations against the order store service.
type Client interface {
	List(ctx context.Context, query model.ViewQuery) (*model.ListPage, error)
	Stats(ctx context.Context) (*model.Stats, error)
	Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	BulkDelete(ctx context.Context, ids []string) error
	BulkDuplicate(ctx context.Context, ids []string) error
	BulkUpdateStatus(ctx context.Context, ids []string, status model.OrderStatus) error
}

// HTTPClient implements Client via the store HTTP API.
type HTTPClient struct {
	baseURL     *url.URL
	httpClient  *http.Client
	logger      *slog.Logger
	readRetries int
	backoff     time.Duration
}

const defaultReadBackoff = 250 * time.Millisecond

// NewHTTPClient creates a store client. readRetries bounds extra attempts
// for idempotent reads; mutations are issued exactly once.
func NewHTTPClient(baseURL string, timeout time.Duration, readRetries int, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse order store url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("order store url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if readRetries < 0 {
		readRetries = 0
	}
	return &HTTPClient{
		baseURL:     parsed,
		logger:      logger,
		readRetries: readRetries,
		backoff:     defaultReadBackoff,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *HTTPClient) endpoint(parts ...string) string {
	u := *c.baseURL
	u.Path = path.Join(append([]string{u.Path}, parts...)...)
	return u.String()
}

// List fetches one server-paginated page for the given query. Sort is
// not part of the request: the store paginates, the view orders rows
// within the page.
func (c *HTTPClient) List(ctx context.Context, query model.ViewQuery) (*model.ListPage, error) {
	endpoint := c.endpoint("/orders")
	params := url.Values{}
	params.Set("status", string(query.Filter))
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(query.PageSize))
	endpoint = endpoint + "?" + params.Encode()

	var data listResponse
	if err := c.getJSON(ctx, "list orders", endpoint, &data); err != nil {
		return nil, err
	}

	now := time.Now()
	orders := make([]model.Order, 0, len(data.Orders))
	for _, raw := range data.Orders {
		orders = append(orders, normalizeOrder(raw, now))
	}

	totalPages := data.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	return &model.ListPage{
		Orders:     orders,
		TotalCount: data.Total,
		TotalPages: totalPages,
	}, nil
}

// Stats fetches the dashboard aggregates. Missing counters default to 0.
func (c *HTTPClient) Stats(ctx context.Context) (*model.Stats, error) {
	var data statsResponse
	if err := c.getJSON(ctx, "fetch stats", c.endpoint("/orders/stats"), &data); err != nil {
		return nil, err
	}
	return &model.Stats{
		OrdersThisMonth: data.TotalOrdersThisMonth,
		PendingCount:    data.PendingOrders,
		ShippedCount:    data.ShippedOrders,
		RefundedCount:   data.RefundedOrders,
	}, nil
}

// Create submits a new order. The non-2xx response body is returned
// verbatim inside the MutationError so the form can display it.
func (c *HTTPClient) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	body, err := c.mutate(ctx, "create order", http.MethodPost, c.endpoint("/orders"), draftPayload(draft))
	if err != nil {
		return nil, err
	}
	return decodeOrder("create order", body)
}

// Get fetches a single order by id.
func (c *HTTPClient) Get(ctx context.Context, id string) (*model.Order, error) {
	var raw rawOrder
	if err := c.getJSON(ctx, "get order", c.endpoint("/orders", id), &raw); err != nil {
		return nil, err
	}
	order := normalizeOrder(raw, time.Now())
	return &order, nil
}

// Update replaces a single order with the draft contents and returns the
// stored result.
func (c *HTTPClient) Update(ctx context.Context, id string, draft model.OrderDraft) (*model.Order, error) {
	body, err := c.mutate(ctx, "update order", http.MethodPut, c.endpoint("/orders", id), draftPayload(draft))
	if err != nil {
		return nil, err
	}
	return decodeOrder("update order", body)
}

// Delete removes a single order.
func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	_, err := c.mutate(ctx, "delete order", http.MethodDelete, c.endpoint("/orders", id), struct{}{})
	return err
}

func draftPayload(draft model.OrderDraft) createRequest {
	payload := createRequest{
		Customer: customerPayload{
			Name:  draft.CustomerName,
			Email: draft.CustomerEmail,
		},
		TotalAmount:   draft.TotalAmount.InexactFloat64(),
		Status:        draft.Status.Wire(),
		PaymentStatus: draft.PaymentStatus.Wire(),
	}
	if draft.CustomerAvatar != "" {
		payload.Customer.Avatar = &draft.CustomerAvatar
	}
	if draft.OrderDate != "" {
		payload.OrderDate = &draft.OrderDate
	}
	return payload
}

func decodeOrder(op string, body []byte) (*model.Order, error) {
	var raw rawOrder
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &domainErrors.FetchError{Op: op, Err: err}
	}
	order := normalizeOrder(raw, time.Now())
	return &order, nil
}

// BulkDelete removes the given orders.
func (c *HTTPClient) BulkDelete(ctx context.Context, ids []string) error {
	_, err := c.mutate(ctx, "bulk delete", http.MethodDelete, c.endpoint("/orders/bulk"), bulkIDsRequest{OrderIDs: ids})
	return err
}

// BulkDuplicate clones the given orders with fresh ids and numbers.
func (c *HTTPClient) BulkDuplicate(ctx context.Context, ids []string) error {
	_, err := c.mutate(ctx, "bulk duplicate", http.MethodPost, c.endpoint("/orders/bulk/duplicate"), bulkIDsRequest{OrderIDs: ids})
	return err
}

// BulkUpdateStatus moves the given orders to status.
func (c *HTTPClient) BulkUpdateStatus(ctx context.Context, ids []string, status model.OrderStatus) error {
	payload := bulkStatusRequest{OrderIDs: ids, Status: status.Wire()}
	_, err := c.mutate(ctx, "bulk status", http.MethodPut, c.endpoint("/orders/bulk/status"), payload)
	return err
}

// getJSON performs an idempotent read with bounded retry. Transport
// failures and 5xx responses are retried; parse failures and client
// errors are not. Context cancellation stops retrying immediately and is
// passed through untouched so callers can tell staleness from failure.
func (c *HTTPClient) getJSON(ctx context.Context, op, endpoint string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.readRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		retryable, err := c.getJSONOnce(ctx, op, endpoint, out)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		lastErr = err
		if !retryable {
			return err
		}
		c.logger.Warn("read attempt failed",
			slog.String("op", op),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}
	return lastErr
}

func (c *HTTPClient) getJSONOnce(ctx context.Context, op, endpoint string, out any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, &domainErrors.FetchError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, &domainErrors.FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode >= http.StatusInternalServerError,
			&domainErrors.FetchError{Op: op, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &domainErrors.FetchError{Op: op, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, &domainErrors.FetchError{Op: op, Err: err}
	}
	return false, nil
}

// mutate issues a write exactly once. A replayed duplicate or create
// would double apply, so there is no retry path here.
func (c *HTTPClient) mutate(ctx context.Context, op, method, endpoint string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, &domainErrors.MutationError{Op: op, Body: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, &domainErrors.MutationError{Op: op, Body: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &domainErrors.MutationError{Op: op, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("mutation failed",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, &domainErrors.MutationError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
