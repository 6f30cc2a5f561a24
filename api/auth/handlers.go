package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/waveform-comments/api/types"
	"github.com/killallgit/waveform-comments/internal/services/auth"
	"github.com/killallgit/waveform-comments/internal/services/users"
)

const (
	claimsKey   = "claims"
	userIDKey   = "user_id"
	userNameKey = "user_name"
)

// Handler manages auth endpoints
type Handler struct {
	tokens *auth.Service
	users  users.Service
}

// NewHandler creates a new auth handler
func NewHandler(tokens *auth.Service, users users.Service) *Handler {
	return &Handler{
		tokens: tokens,
		users:  users,
	}
}

// Me returns the user the bearer token was issued to
// @Summary Get current user
// @Description Get the comment author identified by the bearer token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} types.UserResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		types.SendUnauthorized(c, "Authentication required")
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		types.SendError(c, err)
		return
	}

	types.SendSuccess(c, types.UserResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Current user"},
		User:         &types.User{ID: user.ID, Name: user.Name},
	})
}

// AuthMiddleware validates HS256 bearer tokens
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			types.SendUnauthorized(c, "Authorization header required")
			return
		}

		// Check Bearer prefix
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			types.SendUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := h.tokens.ValidateToken(parts[1])
		if err != nil {
			message := "Invalid token"
			if err == auth.ErrTokenExpired {
				message = "Token expired"
			}
			types.SendUnauthorized(c, message)
			return
		}

		// Store claims in context
		c.Set(claimsKey, claims)
		c.Set(userIDKey, claims.UserID)
		c.Set(userNameKey, claims.Name)

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id set by AuthMiddleware
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id != 0
}

// RegisterRoutes registers the routes that describe the caller
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	router.GET("/me", h.AuthMiddleware(), h.Me)
}
