package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

// RouterConfig collects everything the router mounts. Metrics and MCP are optional.
type RouterConfig struct {
	Handler     *Handler
	Admin       *AdminHandler
	AdminSecret string

	Observer       HTTPObserver
	MetricsHandler http.Handler
	MCPHandler     http.Handler

	Logger *logging.Logger
}

// NewRouter builds the gin engine with middleware and every route
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	router := gin.New()
	router.Use(
		RequestIDMiddleware(),
		LoggerMiddleware(logger.Named("http")),
		RecoveryMiddleware(logger),
	)
	if cfg.Observer != nil {
		router.Use(MetricsMiddleware(cfg.Observer))
	}

	router.NoRoute(func(c *gin.Context) {
		notFound(c, "route not found")
	})

	router.GET("/healthz", cfg.Handler.Health)
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}
	if cfg.MCPHandler != nil {
		router.Any("/mcp/stream", gin.WrapH(cfg.MCPHandler))
	}

	api := router.Group("/api")
	{
		api.GET("/jobs", cfg.Handler.ListJobs)
		api.GET("/jobs/:id", cfg.Handler.GetJob)
		api.GET("/categories/:slug", cfg.Handler.JobsByCategory)
		api.GET("/locations/:slug", cfg.Handler.JobsByLocation)
		api.GET("/search", cfg.Handler.Search)

		if cfg.Admin != nil {
			admin := api.Group("/admin", AdminAuthMiddleware(cfg.AdminSecret))
			{
				admin.GET("/api-config", cfg.Admin.GetConfig)
				admin.POST("/api-config", cfg.Admin.UpdateConfig)
				admin.GET("/api-status", cfg.Admin.GetStatus)
			}
		}
	}

	return router
}
