package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/slide-archive/histogramd/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Settings endpoints. Reads are public; updates require an
		// admin caller. Registered before /:id so "settings" never
		// binds as a record ID.
		v1.GET("/histogram/settings", handler.GetSettings)
		v1.PUT("/histogram/settings", middleware.Auth(authCfg), handler.SetSettings)

		// Record listing (public records visible without credentials)
		v1.GET("/histogram", middleware.OptionalAuth(authCfg), handler.ListHistograms)

		// Submission (requires authentication)
		v1.POST("/histogram", middleware.Auth(authCfg), handler.CreateHistogram)

		// Single record endpoints
		v1.GET("/histogram/:id", middleware.OptionalAuth(authCfg), handler.GetHistogram)
		v1.DELETE("/histogram/:id", middleware.Auth(authCfg), handler.DeleteHistogram)

		// Record ACL endpoints (require admin level on the record)
		v1.GET("/histogram/:id/access", middleware.Auth(authCfg), handler.GetHistogramAccess)
		v1.PUT("/histogram/:id/access", middleware.Auth(authCfg), handler.SetHistogramAccess)
	}
}
