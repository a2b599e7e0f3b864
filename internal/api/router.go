package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lucas0204/Fin-API/internal/api/handler"
	"github.com/Lucas0204/Fin-API/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	ledgerHandler *handler.LedgerHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Account operations
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("/:id", accountHandler.GetByID)
			accounts.GET("/:id/balance", ledgerHandler.GetBalance)
			accounts.GET("/:id/operations", accountHandler.ListOperations)
			accounts.POST("/:id/deposit", ledgerHandler.Deposit)
			accounts.POST("/:id/withdraw", ledgerHandler.Withdraw)
		}

		// Transfer operations
		transfers := v1.Group("/transfers")
		{
			transfers.POST("", ledgerHandler.Transfer)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
