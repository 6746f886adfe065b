package errors

import (
	"net/http"
	"testing"

	"cinegraph/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_IsMatchesByKindAndID(t *testing.T) {
	err := errors.Wrap(NewNotFoundError(KindGenre, 7), "insert film genres")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, ErrGenreNotFound))
	assert.True(t, errors.Is(err, NewNotFoundError(KindGenre, 7)))
	assert.False(t, errors.Is(err, ErrMpaNotFound))
	assert.False(t, errors.Is(err, NewNotFoundError(KindGenre, 8)))

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "GENRE_NOT_FOUND", appErr.ErrorCode())
}

func TestDuplicateEmailError_Is(t *testing.T) {
	err := NewDuplicateEmailError("a@example.com")

	assert.True(t, errors.Is(err, ErrDuplicateEmail))
	assert.True(t, errors.Is(err, NewDuplicateEmailError("a@example.com")))
	assert.False(t, errors.Is(err, NewDuplicateEmailError("b@example.com")))
	assert.Equal(t, http.StatusConflict, err.HTTPCode())
}

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	err := ErrValidationFailed.WithDetails("login: must not contain whitespace")

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrSelfReference))
	assert.Contains(t, err.Error(), "login")
}

func TestIntegrityViolationError_Unwrap(t *testing.T) {
	cause := errors.New("fk violated")
	err := NewIntegrityViolationError("likes", cause)

	assert.True(t, errors.Is(err, ErrIntegrityViolation))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "likes", err.Details())
}
