package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/openlot/marketplace/internal/api/middleware"
	"github.com/openlot/marketplace/internal/identity"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, verifier identity.Verifier) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.Auth(verifier)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public catalog reads
		v1.GET("/nfts", handler.ListAssets)
		v1.GET("/nfts/listings", handler.ListListings)
		v1.GET("/nfts/listing", handler.GetListing)

		// Asset lifecycle (requires authentication)
		v1.POST("/nfts", auth, handler.Mint)
		v1.POST("/nfts/buy", auth, handler.Buy)
		v1.POST("/nfts/sell", auth, handler.Sell)
		v1.POST("/nfts/sell/cancel", auth, handler.CancelSale)

		// Caller-scoped reads (requires authentication)
		v1.GET("/nfts/owned", auth, handler.ListOwned)
		v1.GET("/nfts/created", auth, handler.ListCreated)
		v1.GET("/nfts/on-sale", auth, handler.ListOnSale)
		v1.GET("/nfts/history/bought", auth, handler.GetBuyHistory)
	}
}
