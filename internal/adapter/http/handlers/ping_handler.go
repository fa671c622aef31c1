package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping is the liveness check.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
