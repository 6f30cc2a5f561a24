package comments

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/waveform-comments/api/types"
)

// RegisterRoutes registers comment routes; writes go through requireAuth
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, requireAuth gin.HandlerFunc) {
	router.GET("/tracks/:id/comments", GetTrackComments(deps))

	commentsGroup := router.Group("/comments")
	commentsGroup.Use(requireAuth)
	{
		commentsGroup.POST("", CreateComment(deps))
		commentsGroup.DELETE("/:id", DeleteComment(deps))
	}
}
