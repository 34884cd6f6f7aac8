// api/router.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Annany2002/nebula-connector/api/handlers"
	"github.com/Annany2002/nebula-connector/api/middleware"
	"github.com/Annany2002/nebula-connector/config"
)

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(cfg *config.Config, open handlers.Opener) *gin.Engine {
	router := gin.Default() // Includes Logger and Recovery

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:   []string{"X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.RateLimit, time.Minute)))
	router.Use(middleware.ErrorHandler())

	tableHandler := handlers.NewTableHandler(cfg, open)

	// --- Public Routes ---
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	// --- Protected Routes ---
	apiRoutes := router.Group("/api/v1")
	apiRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		apiRoutes.POST("/tables", tableHandler.CreateTable)
		apiRoutes.POST("/connections/endpoint", tableHandler.Endpoint)
	}

	return router
}
