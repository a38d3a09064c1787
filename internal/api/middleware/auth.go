package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openlot/marketplace/internal/identity"
	"github.com/openlot/marketplace/internal/logger"
)

const (
	// WALLET_ADDRESS_KEY is the gin context key holding the verified caller wallet
	WALLET_ADDRESS_KEY = "wallet_address"
)

// Auth returns a gin middleware that verifies the caller's bearer token and
// stores the resolved wallet address in the request context. Unverified
// requests are rejected before any handler runs.
func Auth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		verification := verifier.Verify(c.GetHeader("Authorization"))

		if !verification.IsVerified {
			logger.Warn("Authentication failed",
				zap.String("reason", verification.Message),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "Authentication failed",
			})
			return
		}

		c.Set(WALLET_ADDRESS_KEY, verification.WalletAddress)
		c.Next()
	}
}

// WalletAddress returns the verified wallet address stored by Auth
func WalletAddress(c *gin.Context) string {
	return c.GetString(WALLET_ADDRESS_KEY)
}
