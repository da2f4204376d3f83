package controller

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/adapter/orderstore"
	"github.com/polkiloo/orderdesk/internal/config"
)

// Module provides the view-state controllers to the fx container.
var Module = fx.Provide(
	newListController,
	NewSelectionController,
	NewMutationCoordinator,
	NewCreateWorkflow,
	newStatsFeed,
)

type listParams struct {
	fx.In

	Client orderstore.Client
	Config *config.Config
	Logger *slog.Logger
}

func newListController(p listParams) *ListController {
	return NewListController(p.Client, p.Config.PageSize, p.Logger)
}

type statsParams struct {
	fx.In

	Client orderstore.Client
	Config *config.Config
	Logger *slog.Logger
}

func newStatsFeed(p statsParams) *StatsFeed {
	return NewStatsFeed(p.Client, p.Config.StatsRefreshInterval, p.Logger)
}
