// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"cinegraph/internal/domain/entity"
)

// UserUsecase defines user management and the friend graph.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// CreateUser stores a new user; an empty name falls back to the login.
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)

	// UpdateUser replaces every field of an existing user.
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)

	GetUser(ctx context.Context, id int64) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// DeleteUser removes the user together with its friendships and likes.
	DeleteUser(ctx context.Context, id int64) error

	// AddFriend records that userID lists friendID as a friend. The reverse
	// direction is not implied.
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	ListFriends(ctx context.Context, userID int64) ([]*entity.User, error)
	ListCommonFriends(ctx context.Context, userID, otherID int64) ([]*entity.User, error)
}
