package postgres

import (
	"strings"

	domainerrors "cinegraph/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for constraint error checking. TranslateError covers the
// drivers that implement gorm.ErrorTranslator; the message patterns catch
// PostgreSQL and SQLite errors that reach us untranslated.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "foreign key") ||
		strings.Contains(errMsg, "23503")
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502")
}

// mapWriteError converts a failed write on relation into a domain error.
// Domain errors raised inside a transaction callback pass through unchanged.
func mapWriteError(err error, relation, details string) error {
	var appErr domainerrors.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case isForeignKeyConstraintViolation(err):
		return domainerrors.NewIntegrityViolationError(relation, err)
	case isNotNullConstraintViolation(err):
		return domainerrors.NewIntegrityViolationError(relation, err)
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

// mapReadError wraps a failed read as an opaque database error.
func mapReadError(err error, details string) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}
