package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/api/handlers"
	"github.com/scottsawyer/commerce-printful/internal/config"
	"github.com/scottsawyer/commerce-printful/internal/service"
)

// Services bundles the service dependencies of the HTTP layer.
type Services struct {
	ProductIntegrator *service.ProductIntegrator
	OrderIntegrator   *service.OrderIntegrator
	ShippingRates     *service.ShippingRateService
	Stores            *service.StoreService
	Webhooks          *service.WebhookProcessor
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, services Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Printful webhook callback. All webhook calls are performed using POST.
	router.POST(service.WebhookPath, handlers.HandleWebhook(services.Webhooks, logger))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.POST("/orders/paid", handlers.HandleOrderPaid(services.OrderIntegrator, logger))
		v1.POST("/rates", handlers.HandleCalculateRates(services.ShippingRates, logger))

		adminRoutes := v1.Group("/admin")
		{
			adminRoutes.POST("/stores/:id/sync", handlers.HandleSyncStore(services.ProductIntegrator, logger))
			adminRoutes.GET("/stores/:id/info", handlers.HandleStoreInfo(services.Stores, logger))
			adminRoutes.POST("/stores/:id/webhooks", handlers.HandleSyncWebhooks(services.Stores, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
