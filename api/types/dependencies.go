package types

import (
	"github.com/killallgit/waveform-comments/internal/database"
	"github.com/killallgit/waveform-comments/internal/services/auth"
	"github.com/killallgit/waveform-comments/internal/services/comments"
	"github.com/killallgit/waveform-comments/internal/services/tracks"
	"github.com/killallgit/waveform-comments/internal/services/users"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB             *database.DB
	TrackService   tracks.Service
	CommentService comments.Service
	UserService    users.Service
	TokenService   *auth.Service
}
