package tracks

import (
	"context"

	"github.com/killallgit/waveform-comments/internal/models"
)

// Repository defines the interface for track data access
type Repository interface {
	CreateTrack(ctx context.Context, track *models.Track) error
	GetTrackByID(ctx context.Context, id uint) (*models.Track, error)
	ListTracks(ctx context.Context, limit, offset int) ([]models.Track, error)
}

// Service defines the interface for track business logic
type Service interface {
	CreateTrack(ctx context.Context, title, filePath string, duration float64) (*models.Track, error)
	GetTrack(ctx context.Context, id uint) (*models.Track, error)
	ListTracks(ctx context.Context, limit, offset int) ([]models.Track, error)
}
