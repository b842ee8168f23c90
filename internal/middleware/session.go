package middleware

import (
	"net/http"                 // HTTP status codes
	"pixel_map/internal/utils" // Session token utilities

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionAuthMiddleware resolves the session cookie into a verified user
// identity and injects it into the request context
func SessionAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(utils.SessionCookieName) // Read the session cookie
		// Check that a session cookie is present
		if err != nil || tokenStr == "" {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Verify the session token
		if err != nil {
			// If verification fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			return
		}
		c.Set("userID", claims.UserID) // Store userID in context
		c.Next()                       // Proceed to the next handler
	}
}
