package controller

import (
	"context"
	"log/slog"

	"github.com/polkiloo/orderdesk/internal/adapter/orderstore"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// MutationCoordinator executes bulk mutations against the store and then
// resynchronizes the list. There is no optimistic edit: the server owns
// pagination counts and filter membership, so the page shown after a
// mutation is always a fresh read. On failure nothing local changes and
// the error is returned to the caller, not swallowed.
type MutationCoordinator struct {
	client    orderstore.Client
	list      *ListController
	selection *SelectionController
	logger    *slog.Logger
}

// NewMutationCoordinator constructs the coordinator.
func NewMutationCoordinator(client orderstore.Client, list *ListController, selection *SelectionController, logger *slog.Logger) *MutationCoordinator {
	return &MutationCoordinator{client: client, list: list, selection: selection, logger: logger}
}

// Delete removes the given orders, then clears the selection and
// refreshes with the query state current at resync time.
func (m *MutationCoordinator) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return domainErrors.ErrEmptySelection
	}
	if err := m.client.BulkDelete(ctx, ids); err != nil {
		return err
	}
	return m.resync(ctx, "bulk delete")
}

// Duplicate clones the given orders, then clears the selection and
// refreshes.
func (m *MutationCoordinator) Duplicate(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return domainErrors.ErrEmptySelection
	}
	if err := m.client.BulkDuplicate(ctx, ids); err != nil {
		return err
	}
	return m.resync(ctx, "bulk duplicate")
}

// SetStatus moves the given orders to status, then clears the selection
// and refreshes.
func (m *MutationCoordinator) SetStatus(ctx context.Context, ids []string, status model.OrderStatus) error {
	if len(ids) == 0 {
		return domainErrors.ErrEmptySelection
	}
	switch status {
	case model.OrderStatusPending, model.OrderStatusCompleted, model.OrderStatusRefunded:
	default:
		return &domainErrors.ValidationError{Field: "status", Reason: "unknown status"}
	}
	if err := m.client.BulkUpdateStatus(ctx, ids, status); err != nil {
		return err
	}
	return m.resync(ctx, "bulk status")
}

// resync runs after a successful mutation: the selection that targeted
// it is cleared and the list is re-read using whatever query state is
// active now, not a snapshot from when the mutation started. A failed
// refresh here does not undo the mutation; the stale page stays until
// the next successful read.
func (m *MutationCoordinator) resync(ctx context.Context, op string) error {
	m.selection.Clear()
	if err := m.list.Refresh(ctx); err != nil && !domainErrors.IsStale(err) {
		m.logger.Error("resync after mutation failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}
