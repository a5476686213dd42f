package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/printful"
	"github.com/scottsawyer/commerce-printful/internal/service"
)

// HandleWebhook handles POST /printful/webhooks
func HandleWebhook(processor *service.WebhookProcessor, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event printful.WebhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data provided in request"})
			return
		}

		if event.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event type parameter missing"})
			return
		}

		if !processor.Supported(event.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported event type"})
			return
		}

		if err := processor.Process(c.Request.Context(), event); err != nil {
			logger.Error("Failed to process webhook",
				zap.String("type", event.Type),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.String(http.StatusOK, "OK")
	}
}
