package server

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/server/http/middleware"
)

// Setup configures the gin router of the order store.
func Setup(repo OrderRepository, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	handler := NewOrderHandler(repo)

	orders := engine.Group("/orders")
	orders.GET("", handler.List)
	orders.GET("/stats", handler.Stats)
	orders.POST("", handler.Create)
	orders.GET("/:id", handler.Get)
	orders.PUT("/:id", handler.Update)
	orders.DELETE("/:id", handler.Delete)
	orders.DELETE("/bulk", handler.BulkDelete)
	orders.POST("/bulk/duplicate", handler.BulkDuplicate)
	orders.PUT("/bulk/status", handler.BulkUpdateStatus)

	return engine
}
