package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupCORS allows cross-origin requests from any frontend.
// FIXME: restrict AllowAllOrigins once the web client domains are fixed.
func SetupCORS() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Accept", "Authorization")
	config.MaxAge = time.Hour
	return cors.New(config)
}
