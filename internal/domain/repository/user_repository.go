// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
// Every implementation (in-memory and relational) must pass the same contract suite in repotest.
package repository

import (
	"context"

	"cinegraph/internal/domain/entity"
)

// UserRepository owns User records and enforces email uniqueness.
type UserRepository interface {
	// Create assigns a new ID to user and persists it.
	// Fails with DuplicateEmailError when the email is already registered.
	Create(ctx context.Context, user *entity.User) error

	// Update replaces every scalar field of the stored user with the given values.
	// Fails with NotFoundError{User} when the id is absent and with
	// DuplicateEmailError when the new email belongs to another user.
	Update(ctx context.Context, user *entity.User) error

	// FindByID fails with NotFoundError{User} when absent.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindAll returns every user ordered by ascending id.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// Delete removes the user together with all friendships (both directions) and likes.
	Delete(ctx context.Context, id int64) error
}
