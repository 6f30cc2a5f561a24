package users

import (
	"context"

	"github.com/killallgit/waveform-comments/internal/models"
)

// Repository defines the interface for user data access
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	TouchUser(ctx context.Context, id uint) error
}

// Service defines the interface for user business logic
type Service interface {
	// GetOrCreate returns the user with the given name, creating it on first use
	GetOrCreate(ctx context.Context, name string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}
