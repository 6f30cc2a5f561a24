package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the root endpoint; set at startup from build flags
var Version = "dev"

// Get handles version requests
// @Summary      Service info
// @Description  Name and version of the running service
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Waveform Comments API",
			"version":     Version,
			"description": "Time-anchored comments and markers for audio tracks",
			"status":      "running",
		})
	}
}
