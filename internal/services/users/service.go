package users

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/killallgit/waveform-comments/internal/models"
	apperrors "github.com/killallgit/waveform-comments/pkg/errors"
)

const maxNameLength = 64

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new user service
func NewService(repository Repository) Service {
	return &ServiceImpl{repository: repository}
}

// GetOrCreate looks a user up by name and registers it when missing
func (s *ServiceImpl) GetOrCreate(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("is required")
	}
	if len(name) > maxNameLength {
		return nil, newValidationError("is too long")
	}

	user, err := s.repository.GetUserByName(ctx, name)
	switch {
	case err == nil:
		if err := s.repository.TouchUser(ctx, user.ID); err != nil {
			log.Printf("[WARN] Failed to update last seen for user %d: %v", user.ID, err)
		}
		return user, nil
	case !errors.Is(err, ErrUserNotFound):
		return nil, apperrors.DatabaseError("get user", err)
	}

	user = &models.User{Name: name}
	if err := s.repository.CreateUser(ctx, user); err != nil {
		// Lost a race with another request registering the same name
		if existing, getErr := s.repository.GetUserByName(ctx, name); getErr == nil {
			return existing, nil
		}
		return nil, apperrors.DatabaseError("create user", err)
	}
	log.Printf("[INFO] Registered user %d (%s)", user.ID, user.Name)
	return user, nil
}

// GetUser retrieves a user by its ID
func (s *ServiceImpl) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, newNotFoundError(id)
		}
		return nil, apperrors.DatabaseError("get user", err)
	}
	return user, nil
}
