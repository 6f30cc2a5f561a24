package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/killallgit/waveform-comments/internal/models"
	"gorm.io/gorm"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateUser inserts a new user
func (r *RepositoryImpl) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by its ID
func (r *RepositoryImpl) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &user, nil
}

// GetUserByName retrieves a user by its unique name
func (r *RepositoryImpl) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &user, nil
}

// TouchUser records that the user was just seen
func (r *RepositoryImpl) TouchUser(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("last_seen_at", time.Now().UTC())
	if result.Error != nil {
		return fmt.Errorf("updating user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
