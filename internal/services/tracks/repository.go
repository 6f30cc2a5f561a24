package tracks

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/waveform-comments/internal/models"
	"gorm.io/gorm"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new track repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateTrack inserts a new track
func (r *RepositoryImpl) CreateTrack(ctx context.Context, track *models.Track) error {
	if err := r.db.WithContext(ctx).Create(track).Error; err != nil {
		return fmt.Errorf("creating track: %w", err)
	}
	return nil
}

// GetTrackByID retrieves a track by its ID
func (r *RepositoryImpl) GetTrackByID(ctx context.Context, id uint) (*models.Track, error) {
	var track models.Track
	if err := r.db.WithContext(ctx).First(&track, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("getting track: %w", err)
	}
	return &track, nil
}

// ListTracks returns tracks ordered by creation, oldest first
func (r *RepositoryImpl) ListTracks(ctx context.Context, limit, offset int) ([]models.Track, error) {
	var tracks []models.Track
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&tracks).Error; err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}
	return tracks, nil
}
