package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health returns a simple status payload useful for uptime probes.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Server is running",
		})
	}
}
