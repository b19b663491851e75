package routes

import (
	"clinic-perf-cache/internal/auth"
	"clinic-perf-cache/internal/cache"
	"clinic-perf-cache/internal/handlers"
	"clinic-perf-cache/internal/metrics"
	"clinic-perf-cache/internal/middleware"
	"clinic-perf-cache/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the shared components the router hands to handlers.
type Dependencies struct {
	Store   *cache.Store
	DB      *gorm.DB
	Tokens  *auth.Manager
	Metrics *metrics.Metrics
	Hub     *realtime.Hub
}

func SetupRoutes(deps Dependencies) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	if deps.Metrics != nil {
		ginRouter.Use(middleware.RequestMetrics(deps.Metrics))
	}

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Cache")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Clinic performance cache is running",
		})
	})

	if deps.Metrics != nil {
		ginRouter.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	authHandler := handlers.NewAuthHandler(deps.Tokens)
	cacheHandler := handlers.NewCacheHandler(deps.Store)
	directoryHandler := handlers.NewDirectoryHandler(deps.DB, cache.NewDomains(deps.Store))

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		api.GET("/cache/stats", cacheHandler.GetStats)
		api.GET("/cache/entries/:key", cacheHandler.GetEntry)

		api.GET("/clinics/:id", directoryHandler.GetClinic)
		api.GET("/doctors/:id", directoryHandler.GetDoctor)
		api.GET("/search", directoryHandler.SearchDoctors)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware(deps.Tokens))
	{
		protectedRoutes.PUT("/cache/entries/:key", cacheHandler.SetEntry)
		protectedRoutes.DELETE("/cache/entries/:key", cacheHandler.DeleteEntry)
		protectedRoutes.DELETE("/cache", cacheHandler.Clear)
		protectedRoutes.POST("/cache/cleanup", cacheHandler.Cleanup)
		protectedRoutes.POST("/cache/preload", cacheHandler.Preload)
	}

	if deps.Hub != nil {
		ws := ginRouter.Group("/ws")
		ws.Use(middleware.JWTAuthMiddleware(deps.Tokens))
		ws.GET("/stats", handlers.StatsStreamHandler(deps.Hub))
	}

	return ginRouter
}
