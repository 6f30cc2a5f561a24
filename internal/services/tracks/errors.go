package tracks

import (
	"errors"
	"fmt"

	apperrors "github.com/killallgit/waveform-comments/pkg/errors"
)

var (
	ErrTrackNotFound = errors.New("track not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// NewNotFoundError reports a missing track
func NewNotFoundError(id interface{}) error {
	return apperrors.Wrap(ErrTrackNotFound, apperrors.ErrCodeNotFound, "track not found").
		WithDetail("id", id)
}

func newValidationError(field, reason string) error {
	return apperrors.Wrap(ErrInvalidInput, apperrors.ErrCodeValidation, fmt.Sprintf("%s %s", field, reason)).
		WithDetail("field", field)
}
