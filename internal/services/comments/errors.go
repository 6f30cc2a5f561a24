package comments

import (
	"errors"
	"fmt"

	apperrors "github.com/killallgit/waveform-comments/pkg/errors"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotAuthor       = errors.New("only the author may change a comment")
)

func newNotFoundError(id interface{}) error {
	return apperrors.Wrap(ErrCommentNotFound, apperrors.ErrCodeNotFound, "comment not found").
		WithDetail("id", id)
}

func newValidationError(field, reason string) error {
	return apperrors.Wrap(ErrInvalidInput, apperrors.ErrCodeValidation, fmt.Sprintf("%s %s", field, reason)).
		WithDetail("field", field)
}

func newForbiddenError(id uint) error {
	return apperrors.Wrap(ErrNotAuthor, apperrors.ErrCodeForbidden, ErrNotAuthor.Error()).
		WithDetail("id", id)
}
