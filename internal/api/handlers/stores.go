package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/service"
	pkgerrors "github.com/scottsawyer/commerce-printful/pkg/errors"
)

// SyncResponse reports the outcome of a synchronization run.
type SyncResponse struct {
	Synced int    `json:"synced"`
	Total  int    `json:"total"`
	Done   bool   `json:"done"`
	Detail string `json:"detail"`
}

// HandleSyncStore handles POST /v1/admin/stores/:id/sync. It drives a
// full synchronization run server-side, stepping the integrator until the
// remote catalog is exhausted.
func HandleSyncStore(integrator *service.ProductIntegrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Param("id")
		update := c.Query("update") == "1"

		ctx := c.Request.Context()
		cursor := service.SyncCursor{}
		for {
			next, err := integrator.SyncStep(ctx, storeID, update, cursor)
			if err != nil {
				status := http.StatusBadGateway
				var cfgErr *pkgerrors.ErrConfiguration
				if stderrors.As(err, &cfgErr) {
					status = http.StatusBadRequest
				}
				logger.Error("Synchronization run aborted",
					zap.String("printful_store", storeID),
					zap.Error(err),
				)
				c.JSON(status, gin.H{"error": err.Error()})
				return
			}
			cursor = next
			if cursor.Done() {
				break
			}
		}

		c.JSON(http.StatusOK, SyncResponse{
			Synced: cursor.Synced,
			Total:  cursor.Total,
			Done:   true,
			Detail: cursor.Message(),
		})
	}
}

// HandleStoreInfo handles GET /v1/admin/stores/:id/info. Used to validate
// a store's API credentials.
func HandleStoreInfo(stores *service.StoreService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := stores.ValidateConnection(c.Request.Context(), c.Param("id"))
		if err != nil {
			var cfgErr *pkgerrors.ErrConfiguration
			if stderrors.As(err, &cfgErr) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Store connection check failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, info)
	}
}

// HandleSyncWebhooks handles POST /v1/admin/stores/:id/webhooks,
// replacing the remote webhook configuration with the configured one.
func HandleSyncWebhooks(stores *service.StoreService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := stores.SyncWebhooks(c.Request.Context(), c.Param("id")); err != nil {
			var cfgErr *pkgerrors.ErrConfiguration
			if stderrors.As(err, &cfgErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Webhook reconfiguration failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
