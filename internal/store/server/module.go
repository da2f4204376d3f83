package server

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/store/postgres"
)

// Module registers the order store router for the fx runtime.
var Module = fx.Options(
	fx.Provide(func(s *postgres.Storage) OrderRepository { return s }),
	fx.Provide(Setup),
)
