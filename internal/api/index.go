package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// IndexHandler describes the service and its endpoints
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Pixel Map Backend is working. Use the provided endpoints to interact with the application.",
			"endpoints": gin.H{
				"register":          "/register (POST)",
				"login":             "/login (POST)",
				"logout":            "/logout (POST)",
				"update_pixels":     "/api/update_pixels (POST)",
				"get_map":           "/api/get_map (GET)",
				"user_stats":        "/api/user_stats (GET)",
				"next_allowed_time": "/api/next_allowed_time (GET)",
			},
		})
	}
}
