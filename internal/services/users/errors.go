package users

import (
	"errors"

	apperrors "github.com/killallgit/waveform-comments/pkg/errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidName  = errors.New("invalid user name")
)

func newNotFoundError(id interface{}) error {
	return apperrors.Wrap(ErrUserNotFound, apperrors.ErrCodeNotFound, "user not found").
		WithDetail("id", id)
}

func newValidationError(reason string) error {
	return apperrors.Wrap(ErrInvalidName, apperrors.ErrCodeValidation, "name "+reason).
		WithDetail("field", "name")
}
