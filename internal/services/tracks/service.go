package tracks

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"github.com/killallgit/waveform-comments/internal/models"
	apperrors "github.com/killallgit/waveform-comments/pkg/errors"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new track service
func NewService(repository Repository) Service {
	return &ServiceImpl{repository: repository}
}

// CreateTrack validates and stores a new track
func (s *ServiceImpl) CreateTrack(ctx context.Context, title, filePath string, duration float64) (*models.Track, error) {
	title = strings.TrimSpace(title)
	filePath = strings.TrimSpace(filePath)

	if title == "" {
		return nil, newValidationError("title", "is required")
	}
	if filePath == "" {
		return nil, newValidationError("file_path", "is required")
	}
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, newValidationError("duration", "must be a positive number of seconds")
	}

	track := &models.Track{Title: title, FilePath: filePath, Duration: duration}
	if err := s.repository.CreateTrack(ctx, track); err != nil {
		return nil, apperrors.DatabaseError("create track", err)
	}
	log.Printf("[INFO] Created track %d (%s, %.1fs)", track.ID, track.Title, track.Duration)
	return track, nil
}

// GetTrack retrieves a track by its ID
func (s *ServiceImpl) GetTrack(ctx context.Context, id uint) (*models.Track, error) {
	if id == 0 {
		return nil, NewNotFoundError(id)
	}
	track, err := s.repository.GetTrackByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTrackNotFound) {
			return nil, NewNotFoundError(id)
		}
		return nil, apperrors.DatabaseError("get track", err)
	}
	return track, nil
}

// ListTracks returns a page of tracks; limit is clamped to [1, MaxLimit]
func (s *ServiceImpl) ListTracks(ctx context.Context, limit, offset int) ([]models.Track, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	tracks, err := s.repository.ListTracks(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError("list tracks", err)
	}
	return tracks, nil
}
