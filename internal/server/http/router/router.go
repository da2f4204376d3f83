package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/server/http/handlers"
	"github.com/polkiloo/orderdesk/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.DeskFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	viewHandler := handlers.NewViewHandler(facade)
	selectionHandler := handlers.NewSelectionHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")

	view := api.Group("/view")
	view.GET("", viewHandler.Show)
	view.POST("/refresh", viewHandler.Refresh)
	view.POST("/filter", viewHandler.SetFilter)
	view.POST("/sort", viewHandler.SetSort)
	view.POST("/page", viewHandler.SetPage)
	view.POST("/page-size", viewHandler.SetPageSize)

	selection := api.Group("/selection")
	selection.POST("/toggle", selectionHandler.Toggle)
	selection.POST("/toggle-all", selectionHandler.ToggleAll)
	selection.DELETE("", selectionHandler.Clear)

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.DELETE("", orderHandler.Delete)
	orders.POST("/duplicate", orderHandler.Duplicate)
	orders.PUT("/status", orderHandler.UpdateStatus)

	return engine
}
