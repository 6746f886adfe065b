package errors

import (
	"fmt"
	"net/http"
	"strings"

	"cinegraph/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches another BaseError carrying the same business code, so that
// copies produced by WithDetails still satisfy errors.Is against the
// predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrSelfReference is returned when a user tries to befriend themselves.
	ErrSelfReference = NewBaseError(
		http.StatusBadRequest,
		"SELF_REFERENCE",
		"a user cannot be their own friend",
		"",
	)

	// ErrValidationFailed marks caller input rejected at the edge.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// EntityKind names the type of record a NotFoundError refers to.
type EntityKind string

const (
	KindUser  EntityKind = "User"
	KindFilm  EntityKind = "Film"
	KindGenre EntityKind = "Genre"
	KindMpa   EntityKind = "Mpa"
)

// NotFoundError reports a missing User, Film, Genre or Mpa record.
// A zero Kind or ID on the target of errors.Is acts as a wildcard, so
// errors.Is(err, ErrUserNotFound) matches any missing user.
type NotFoundError struct {
	Kind EntityKind
	ID   int64
}

// Sentinels for errors.Is matching by kind.
var (
	ErrNotFound      = &NotFoundError{}
	ErrUserNotFound  = &NotFoundError{Kind: KindUser}
	ErrFilmNotFound  = &NotFoundError{Kind: KindFilm}
	ErrGenreNotFound = &NotFoundError{Kind: KindGenre}
	ErrMpaNotFound   = &NotFoundError{Kind: KindMpa}
)

// NewNotFoundError creates a NotFoundError for the given kind and id.
func NewNotFoundError(kind EntityKind, id int64) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}

	return (t.Kind == "" || t.Kind == e.Kind) && (t.ID == 0 || t.ID == e.ID)
}

func (e *NotFoundError) HTTPCode() int { return http.StatusNotFound }

func (e *NotFoundError) ErrorCode() string {
	if e.Kind == "" {
		return "NOT_FOUND"
	}

	return strings.ToUpper(string(e.Kind)) + "_NOT_FOUND"
}

func (e *NotFoundError) Message() string { return e.Error() }

func (e *NotFoundError) Details() string { return "" }

// DuplicateEmailError is returned when an email is already registered to another user.
type DuplicateEmailError struct {
	Email string
}

// ErrDuplicateEmail matches any DuplicateEmailError through errors.Is.
var ErrDuplicateEmail = &DuplicateEmailError{}

func NewDuplicateEmailError(email string) *DuplicateEmailError {
	return &DuplicateEmailError{Email: email}
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email %q is already in use", e.Email)
}

func (e *DuplicateEmailError) Is(target error) bool {
	t, ok := target.(*DuplicateEmailError)
	if !ok {
		return false
	}

	return t.Email == "" || t.Email == e.Email
}

func (e *DuplicateEmailError) HTTPCode() int     { return http.StatusConflict }
func (e *DuplicateEmailError) ErrorCode() string { return "DUPLICATE_EMAIL" }
func (e *DuplicateEmailError) Message() string   { return "this email is already in use" }
func (e *DuplicateEmailError) Details() string   { return e.Email }

// IntegrityViolationError is returned when a relation write references a row
// that no longer exists, typically because a concurrent delete won the race.
type IntegrityViolationError struct {
	Relation string
	err      error
}

// ErrIntegrityViolation matches any IntegrityViolationError through errors.Is.
var ErrIntegrityViolation = &IntegrityViolationError{}

func NewIntegrityViolationError(relation string, err error) *IntegrityViolationError {
	return &IntegrityViolationError{Relation: relation, err: err}
}

func (e *IntegrityViolationError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("integrity violation on %s", e.Relation)
	}

	return fmt.Sprintf("integrity violation on %s: %v", e.Relation, e.err)
}

func (e *IntegrityViolationError) Unwrap() error { return e.err }

func (e *IntegrityViolationError) Is(target error) bool {
	t, ok := target.(*IntegrityViolationError)
	if !ok {
		return false
	}

	return t.Relation == "" || t.Relation == e.Relation
}

func (e *IntegrityViolationError) HTTPCode() int     { return http.StatusConflict }
func (e *IntegrityViolationError) ErrorCode() string { return "INTEGRITY_VIOLATION" }
func (e *IntegrityViolationError) Message() string   { return "referenced record no longer exists" }
func (e *IntegrityViolationError) Details() string   { return e.Relation }

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	if e.err == nil {
		return "database execution failed: " + e.details
	}

	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error for logging.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
