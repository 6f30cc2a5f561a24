package comments

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/waveform-comments/api/auth"
	"github.com/killallgit/waveform-comments/api/types"
	commentsService "github.com/killallgit/waveform-comments/internal/services/comments"
)

// GetTrackComments lists every comment and marker on a track
// @Summary      Get comments for track
// @Description  Retrieve all comments on a track with their markers, newest first
// @Tags         comments
// @Produce      json
// @Param        id path int true "Track ID"
// @Success      200 {object} types.CommentsResponse "Comments with markers"
// @Failure      400 {object} types.ErrorResponse "Invalid track ID"
// @Failure      404 {object} types.ErrorResponse "Track not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/tracks/{id}/comments [get]
func GetTrackComments(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return // Error response already sent by utility
		}

		comments, err := deps.CommentService.ListComments(c.Request.Context(), trackID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		list := types.FromCommentModels(comments)
		types.SendSuccess(c, types.CommentsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Comments retrieved"},
			Comments:     list,
			Count:        len(list),
		})
	}
}

// CreateComment posts a comment with its marker
// @Summary      Create comment with marker
// @Description  Create a comment anchored at a time offset on a track; the author is taken from the bearer token
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        comment body types.CreateCommentRequest true "Comment and marker data"
// @Success      201 {object} types.CommentResponse "Created comment"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      401 {object} types.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} types.ErrorResponse "Track not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/comments [post]
func CreateComment(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.CurrentUserID(c)
		if !ok {
			types.SendUnauthorized(c, "Authentication required")
			return
		}

		var req types.CreateCommentRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		comment, err := deps.CommentService.CreateComment(c.Request.Context(), commentsService.CreateInput{
			TrackID:   req.TrackID,
			UserID:    userID,
			Content:   req.Content,
			Time:      req.Time,
			RegionID:  req.RegionID,
			Color:     req.Color,
			Draggable: req.Draggable,
			Resizable: req.Resizable,
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.CommentResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Comment created"},
			Comment:      types.FromCommentModel(comment),
		})
	}
}

// DeleteComment removes a comment and its marker
// @Summary      Delete comment
// @Description  Delete a comment and its marker; only the author may delete it
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Comment ID"
// @Success      200 {object} types.BaseResponse "Comment deleted"
// @Failure      400 {object} types.ErrorResponse "Invalid comment ID"
// @Failure      401 {object} types.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} types.ErrorResponse "Not the author"
// @Failure      404 {object} types.ErrorResponse "Comment not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/comments/{id} [delete]
func DeleteComment(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.CurrentUserID(c)
		if !ok {
			types.SendUnauthorized(c, "Authentication required")
			return
		}

		commentID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.CommentService.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.BaseResponse{Status: types.StatusOK, Message: "Comment deleted"})
	}
}
