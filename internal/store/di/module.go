package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/logger"
	"github.com/polkiloo/orderdesk/internal/store/app"
	"github.com/polkiloo/orderdesk/internal/store/postgres"
	"github.com/polkiloo/orderdesk/internal/store/server"
)

// Module assembles the order store dependency graph.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		server.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
