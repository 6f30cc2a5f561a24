package tracks

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/waveform-comments/api/types"
)

// RegisterRoutes registers track routes; creation goes through requireAuth
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, requireAuth gin.HandlerFunc) {
	router.GET("", GetTracks(deps))
	router.GET("/:id", GetTrack(deps))
	router.POST("", requireAuth, CreateTrack(deps))
}
