package comments

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

// NewRepository creates a new comment repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateComment creates the comment and its marker, then loads the author
func (r *RepositoryImpl) CreateComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.First(&comment.User, comment.UserID).Error
	})
	if err != nil {
		return fmt.Errorf("creating comment: %w", err)
	}
	return nil
}

// GetCommentByID retrieves a comment by its ID
func (r *RepositoryImpl) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Marker").
		First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	return &comment, nil
}

// GetCommentsByTrackID retrieves all comments for a track, newest first
func (r *RepositoryImpl) GetCommentsByTrackID(ctx context.Context, trackID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Marker").
		Where("track_id = ?", trackID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("getting comments for track: %w", err)
	}
	return comments, nil
}

// DeleteComment deletes a comment and hard-deletes its marker
func (r *RepositoryImpl) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("comment_id = ?", id).Delete(&models.Marker{}).Error; err != nil {
			return fmt.Errorf("deleting marker: %w", err)
		}
		result := tx.Delete(&models.Comment{}, id)
		if result.Error != nil {
			return fmt.Errorf("deleting comment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCommentNotFound
		}
		return nil
	})
}
