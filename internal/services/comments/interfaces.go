package comments

import (
	"context"

	"github.com/killallgit/waveform-comments/internal/models"
)

// Repository defines the interface for comment data access
type Repository interface {
	// CreateComment stores a comment and its marker in one transaction
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	// GetCommentsByTrackID returns a track's comments newest first, with author and marker
	GetCommentsByTrackID(ctx context.Context, trackID uint) ([]models.Comment, error)
	// DeleteComment removes a comment together with its marker
	DeleteComment(ctx context.Context, id uint) error
}

// TrackLookup resolves the track a comment is posted on
type TrackLookup interface {
	GetTrack(ctx context.Context, id uint) (*models.Track, error)
}

// Service defines the interface for comment business logic
type Service interface {
	ListComments(ctx context.Context, trackID uint) ([]models.Comment, error)
	CreateComment(ctx context.Context, input CreateInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, id, userID uint) error
}

// CreateInput is a new comment anchored at a point on a track
type CreateInput struct {
	TrackID   uint
	UserID    uint
	Content   string
	Time      float64
	RegionID  string
	Color     string
	Draggable bool
	Resizable bool
}
