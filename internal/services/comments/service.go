package comments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/killallgit/waveform-comments/internal/models"
	apperrors "github.com/killallgit/waveform-comments/pkg/errors"
	"github.com/patrickmn/go-cache"
)

const (
	MaxContentLength = 2000

	defaultCacheTTL     = 5 * time.Minute
	defaultCacheCleanup = 10 * time.Minute
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
	tracks     TrackLookup
	cache      *cache.Cache
}

// ServiceOption is a functional option for configuring the service
type ServiceOption func(*ServiceImpl)

// WithCache sets how long a track's comment list is served from memory
func WithCache(ttl, cleanup time.Duration) ServiceOption {
	return func(s *ServiceImpl) {
		if ttl <= 0 {
			s.cache = nil
			return
		}
		s.cache = cache.New(ttl, cleanup)
	}
}

// NewService creates a new comment service
func NewService(repository Repository, tracks TrackLookup, opts ...ServiceOption) Service {
	s := &ServiceImpl{
		repository: repository,
		tracks:     tracks,
		cache:      cache.New(defaultCacheTTL, defaultCacheCleanup),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func trackKey(trackID uint) string {
	return fmt.Sprintf("track:%d", trackID)
}

// ListComments returns a track's comments newest first
func (s *ServiceImpl) ListComments(ctx context.Context, trackID uint) ([]models.Comment, error) {
	if _, err := s.tracks.GetTrack(ctx, trackID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(trackKey(trackID)); ok {
			return copyComments(cached.([]models.Comment)), nil
		}
	}

	comments, err := s.repository.GetCommentsByTrackID(ctx, trackID)
	if err != nil {
		return nil, apperrors.DatabaseError("list comments", err)
	}
	if s.cache != nil {
		s.cache.SetDefault(trackKey(trackID), copyComments(comments))
	}
	return comments, nil
}

// CreateComment validates and stores a comment with its marker
func (s *ServiceImpl) CreateComment(ctx context.Context, input CreateInput) (*models.Comment, error) {
	content := strings.TrimSpace(input.Content)
	switch {
	case input.UserID == 0:
		return nil, apperrors.Unauthorized("a signed-in user is required")
	case input.TrackID == 0:
		return nil, newValidationError("track_id", "is required")
	case content == "":
		return nil, newValidationError("content", "cannot be empty")
	case utf8.RuneCountInString(content) > MaxContentLength:
		return nil, newValidationError("content", fmt.Sprintf("cannot exceed %d characters", MaxContentLength))
	case input.Time < 0 || math.IsNaN(input.Time) || math.IsInf(input.Time, 0):
		return nil, newValidationError("time", "must be a finite, non-negative number of seconds")
	case strings.TrimSpace(input.RegionID) == "":
		return nil, newValidationError("region_id", "is required")
	}

	track, err := s.tracks.GetTrack(ctx, input.TrackID)
	if err != nil {
		return nil, err
	}
	if track.Duration > 0 && input.Time > track.Duration {
		return nil, newValidationError("time", "is past the end of the track")
	}

	comment := &models.Comment{
		TrackID: input.TrackID,
		UserID:  input.UserID,
		Content: content,
		Marker: &models.Marker{
			Time:      input.Time,
			RegionID:  strings.TrimSpace(input.RegionID),
			Color:     input.Color,
			Draggable: input.Draggable,
			Resizable: input.Resizable,
		},
	}
	if err := s.repository.CreateComment(ctx, comment); err != nil {
		return nil, apperrors.DatabaseError("create comment", err)
	}
	s.invalidate(input.TrackID)

	log.Printf("[INFO] Created comment %d on track %d at %.2fs by user %d",
		comment.ID, comment.TrackID, input.Time, comment.UserID)
	return comment, nil
}

// DeleteComment removes a comment; only its author may do so
func (s *ServiceImpl) DeleteComment(ctx context.Context, id, userID uint) error {
	comment, err := s.repository.GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return newNotFoundError(id)
		}
		return apperrors.DatabaseError("get comment", err)
	}
	if comment.UserID != userID {
		return newForbiddenError(id)
	}

	if err := s.repository.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return newNotFoundError(id)
		}
		return apperrors.DatabaseError("delete comment", err)
	}
	s.invalidate(comment.TrackID)

	log.Printf("[INFO] Deleted comment %d on track %d", id, comment.TrackID)
	return nil
}

func (s *ServiceImpl) invalidate(trackID uint) {
	if s.cache != nil {
		s.cache.Delete(trackKey(trackID))
	}
}

func copyComments(in []models.Comment) []models.Comment {
	out := make([]models.Comment, len(in))
	copy(out, in)
	return out
}
