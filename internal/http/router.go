package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger())
	router.Use(Recovery())
	router.Use(SecurityHeadersMiddleware())
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(CORSMiddleware(cfg.CORSAllowedOrigins))
	}
	if cfg.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = cfg.MaxMultipartMemory
	}

	health := NewHealthController(cfg.Database, cfg.Uploads, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	books := NewBooksController(cfg.Service)
	router.POST("/books", books.Create)
	router.GET("/books", books.List)
	router.GET("/books/:id", books.Get)
	router.PUT("/books/:id", books.Update)
	router.DELETE("/books/:id", books.Delete)
	router.GET("/books/:id/download", books.Download)

	router.NoRoute(func(c *gin.Context) {
		respondNotFound(c, "Not found")
	})

	return router
}
