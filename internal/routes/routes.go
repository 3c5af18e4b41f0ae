package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"essaylab_backend/internal/handlers"
	"essaylab_backend/internal/middleware"
	"essaylab_backend/ws"
)

// RegisterRoutes mounts the HTTP API and the realtime endpoint.
//
// Layout:
//
//	/api/v1/auth/...      public
//	/api/v1/...           authenticated (per-handler middleware)
//	/api/v1/admin/...     admin only
//	/ws                   websocket, token via query parameter
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, manager *ws.WebSocketManager) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.CollegeHandler.RegisterRoutes(api)
		appHandlers.EssayHandler.RegisterRoutes(api)
		appHandlers.AnalysisHandler.RegisterRoutes(api)
		appHandlers.AnalyticsHandler.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		appHandlers.UserHandler.RegisterAdminRoutes(admin)
		appHandlers.CollegeHandler.RegisterAdminRoutes(admin)
		appHandlers.EssayHandler.RegisterAdminRoutes(admin)
		appHandlers.PortfolioHandler.RegisterAdminRoutes(admin)
		appHandlers.TrainingHandler.RegisterAdminRoutes(admin)
		appHandlers.AnalyticsHandler.RegisterAdminRoutes(admin)
	}

	// The websocket handshake carries the token as a query parameter, so
	// the handler authenticates itself instead of using AuthMiddleware.
	router.GET("/ws", ws.Handler(manager))
}
