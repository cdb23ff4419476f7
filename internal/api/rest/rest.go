package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-collection-ledger/internal/api/middleware"
	"github.com/feral-file/ff-collection-ledger/internal/ratelimit"
)

// SetupRoutes configures all REST API routes. Authenticated routes are rate limited
// per caller; limiter may be nil.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, limiter ratelimit.Limiter) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.Auth(authCfg)
	limit := middleware.RateLimit(limiter)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/collections", handler.ListCollections)
		v1.POST("/collections", auth, limit, handler.CreateCollection)

		collection := v1.Group("/collections/:id")

		// Reads (public)
		collection.GET("", handler.GetCollection)
		collection.GET("/tokens/:index", handler.GetToken)
		collection.GET("/tokens/:index/royalty", handler.GetRoyalty)
		collection.GET("/balances/:address", handler.GetBalance)
		collection.GET("/operators/:owner/:operator", handler.GetOperatorApproval)
		collection.GET("/events", handler.GetEvents)

		// Ledger calls (the token subject is the caller)
		calls := collection.Group("", auth, limit)
		calls.POST("/mint", handler.Mint)
		calls.POST("/batch-mint", handler.BatchMint)
		calls.POST("/transfer", handler.Transfer)
		calls.POST("/approve", handler.Approve)
		calls.POST("/approval-for-all", handler.SetApprovalForAll)
		calls.POST("/burn", handler.Burn)
		calls.PUT("/royalty-receiver", handler.SetRoyaltyReceiver)
		calls.PUT("/metadata-base", handler.SetMetadataBase)
		calls.PUT("/contract-uri", handler.SetContractURI)
		calls.PUT("/admin", handler.TransferAdmin)
	}
}
