package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// RouterConfig carries the router's dependencies.
type RouterConfig struct {
	Shelf   *Shelf
	Backend string
	Version string
	Logger  *slog.Logger
	// AccessLog enables gin's per-request log line.
	AccessLog bool
}

// NewRouter builds the JSON API:
//
//	GET    /health
//	GET    /api/books?q=
//	GET    /api/books/:id
//	POST   /api/books
//	PUT    /api/books/:id
//	POST   /api/books/:id/toggle
//	DELETE /api/books/:id
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	if cfg.AccessLog {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(RequestID())

	health := NewHealthController(cfg.Shelf, cfg.Backend, cfg.Version)
	router.GET("/health", health.Status)

	books := NewBooksController(cfg.Shelf, logger)
	api := router.Group("/api/books")
	{
		api.GET("", books.List)
		api.GET("/:id", books.Get)
		api.POST("", books.Create)
		api.PUT("/:id", books.Update)
		api.POST("/:id/toggle", books.Toggle)
		api.DELETE("/:id", books.Delete)
	}

	return router
}
