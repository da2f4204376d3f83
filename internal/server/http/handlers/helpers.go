package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/app"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

func toViewResponse(state app.ViewState, fetchErr string) dto.ViewResponse {
	selected := make(map[string]struct{}, len(state.SelectedIDs))
	for _, id := range state.SelectedIDs {
		selected[id] = struct{}{}
	}

	rows := make([]dto.OrderRowResponse, 0, len(state.Orders))
	for _, o := range state.Orders {
		_, isSelected := selected[o.ID]
		rows = append(rows, dto.OrderRowResponse{
			ID:            o.ID,
			OrderNumber:   o.Number,
			CustomerName:  o.CustomerName,
			OrderDate:     o.OrderDate.Format(time.RFC3339),
			Status:        string(o.Status),
			TotalAmount:   o.TotalAmount.StringFixed(2),
			PaymentStatus: string(o.PaymentStatus),
			Selected:      isSelected,
		})
	}

	submitError := ""
	if state.LastSubmitError != nil {
		submitError = state.LastSubmitError.Error()
	}

	return dto.ViewResponse{
		Orders:              rows,
		TotalCount:          state.TotalCount,
		TotalPages:          state.TotalPages,
		Page:                state.Query.Page,
		PageSize:            state.Query.PageSize,
		Filter:              string(state.Query.Filter),
		SortKey:             string(state.Query.SortKey),
		SortDirection:       string(state.Query.SortDir),
		SelectedCount:       len(state.SelectedIDs),
		AllVisibleSelected:  state.AllVisible,
		SomeVisibleSelected: state.SomeVisible,
		Stats: dto.StatsResponse{
			OrdersThisMonth: state.Stats.OrdersThisMonth,
			PendingCount:    state.Stats.PendingCount,
			ShippedCount:    state.Stats.ShippedCount,
			RefundedCount:   state.Stats.RefundedCount,
		},
		Submitting:  state.Submitting,
		FetchError:  fetchErr,
		SubmitError: submitError,
	}
}

func writeView(c *gin.Context, facade ViewFacade, status int, fetchErr string) {
	c.JSON(status, toViewResponse(facade.View(), fetchErr))
}

// respondAfterViewChange maps the outcome of a query-state transition.
// A superseded fetch and a failed fetch both leave the last committed
// rows in place; the latter additionally reports the failure message.
func respondAfterViewChange(c *gin.Context, facade ViewFacade, err error) {
	var vErr *domainErrors.ValidationError
	var fErr *domainErrors.FetchError

	switch {
	case err == nil, domainErrors.IsStale(err):
		writeView(c, facade, http.StatusOK, "")
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: vErr.Error()})
	case errors.As(err, &fErr):
		writeView(c, facade, http.StatusOK, fErr.Error())
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

// respondAfterMutation maps the outcome of a bulk or single mutation.
// A rejected mutation surfaces the store's message verbatim; a failed
// resync after an applied mutation degrades to a stale view with a
// fetch error instead of masking the success.
func respondAfterMutation(c *gin.Context, facade ViewFacade, err error) {
	var vErr *domainErrors.ValidationError
	var mErr *domainErrors.MutationError
	var fErr *domainErrors.FetchError

	switch {
	case err == nil, domainErrors.IsStale(err):
		writeView(c, facade, http.StatusOK, "")
	case errors.Is(err, domainErrors.ErrEmptySelection):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "no orders selected"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: vErr.Error()})
	case errors.As(err, &mErr):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: mutationMessage(mErr)})
	case errors.As(err, &fErr):
		writeView(c, facade, http.StatusOK, fErr.Error())
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

func mutationMessage(err *domainErrors.MutationError) string {
	if err.Body != "" {
		return err.Body
	}
	return err.Error()
}
