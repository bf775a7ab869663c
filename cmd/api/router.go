package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"auction-backend/internal/shared/middleware"
	"auction-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupLotRoutes(v1, c)
		setupBidRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// LOT ROUTES (PUBLIC)
// ========================================
func setupLotRoutes(v1 *gin.RouterGroup, c *container.Container) {
	lots := v1.Group("/lots")
	{
		lots.GET("", c.LotHandler.ListFrontPage)
		lots.GET("/:id", c.LotHandler.GetLot)
	}
}

// ========================================
// BID ROUTES (AUTHENTICATED)
// ========================================
func setupBidRoutes(v1 *gin.RouterGroup, c *container.Container) {
	bids := v1.Group("/lots/:id/bids")
	bids.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		bids.POST("", c.BidHandler.PlaceBid)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.AdminMiddleware(),
	)
	{
		admin.POST("/lots", c.LotHandler.CreateLot)
		admin.GET("/lots", c.LotHandler.ListAdmin)
		admin.PUT("/lots/:id", c.LotHandler.UpdateLot)
		admin.DELETE("/lots/:id/bids/:bidId", c.BidHandler.RemoveBid)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
