package controller

import (
	"context"
	"sync"

	"github.com/polkiloo/orderdesk/internal/adapter/orderstore"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/usecase"
)

// CreateWorkflow drives the new-order form: Idle, one submission in
// flight at most, and on failure the submitted draft stays with the
// error attached so the user can correct and retry. Only a successful
// submission resets the form.
type CreateWorkflow struct {
	client orderstore.Client
	list   *ListController

	mu         sync.Mutex
	submitting bool
	draft      model.OrderDraft
	lastErr    error
}

// NewCreateWorkflow constructs the workflow with a default draft.
func NewCreateWorkflow(client orderstore.Client, list *ListController) *CreateWorkflow {
	return &CreateWorkflow{
		client: client,
		list:   list,
		draft:  model.DefaultDraft(),
	}
}

// State reports the current draft, whether a submission is in flight,
// and the error from the last failed attempt.
func (w *CreateWorkflow) State() (draft model.OrderDraft, submitting bool, lastErr error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft, w.submitting, w.lastErr
}

// Submit validates and sends the draft. Validation failures never reach
// the network. On success the view query resets to page 1 and the list
// is re-read; on failure the draft is retained with the error.
func (w *CreateWorkflow) Submit(ctx context.Context, draft model.OrderDraft) error {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return domainErrors.ErrSubmitInFlight
	}
	w.draft = draft
	if err := usecase.ValidateDraft(draft); err != nil {
		w.lastErr = err
		w.mu.Unlock()
		return err
	}
	w.submitting = true
	w.lastErr = nil
	w.mu.Unlock()

	_, err := w.client.Create(ctx, draft)

	w.mu.Lock()
	w.submitting = false
	if err != nil {
		w.lastErr = err
		w.mu.Unlock()
		return err
	}
	w.draft = model.DefaultDraft()
	w.lastErr = nil
	w.mu.Unlock()

	// The new order lands at the top of the store ordering; show it.
	if err := w.list.SetPage(ctx, 1); err != nil && !domainErrors.IsStale(err) {
		return err
	}
	return nil
}
