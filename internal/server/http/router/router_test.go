package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/app"
	"github.com/polkiloo/orderdesk/internal/controller"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/orderdesk/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client := testhelpers.StoreClientStub{
		ListFn: func(context.Context, model.ViewQuery) (*model.ListPage, error) {
			return &model.ListPage{Orders: testhelpers.SampleOrders(2), TotalCount: 2, TotalPages: 1}, nil
		},
	}

	list := controller.NewListController(client, 9, logger)
	selection := controller.NewSelectionController()
	mutations := controller.NewMutationCoordinator(client, list, selection, logger)
	create := controller.NewCreateWorkflow(client, list)
	stats := controller.NewStatsFeed(client, time.Minute, logger)
	facade := app.NewOrderDeskFacade(list, selection, mutations, create, stats)

	engine := Setup(facade, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for view, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/view/refresh", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for refresh, got %d", resp.Code)
	}

	body, _ := json.Marshal(map[string]string{"filter": "finished"})
	req = httptest.NewRequest(http.MethodPost, "/api/view/filter", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for filter, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/selection/toggle-all", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for toggle-all, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/selection", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for clear selection, got %d", resp.Code)
	}
}

var _ handlers.DeskFacade = (*app.OrderDeskFacade)(nil)
