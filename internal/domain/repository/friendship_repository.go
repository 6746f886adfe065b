package repository

import (
	"context"

	"cinegraph/internal/domain/entity"
)

// FriendshipRepository owns the directed friend relation between users.
type FriendshipRepository interface {
	// AddFriend stores the edge userID -> friendID. Idempotent.
	// Fails with NotFoundError{User} when either user is absent and with
	// ErrSelfReference when both ids are equal.
	AddFriend(ctx context.Context, userID, friendID int64) error

	// RemoveFriend deletes the edge userID -> friendID. Idempotent.
	RemoveFriend(ctx context.Context, userID, friendID int64) error

	// FindFriends resolves the users that userID lists as friends, ascending by id.
	FindFriends(ctx context.Context, userID int64) ([]*entity.User, error)

	// FindCommonFriends resolves the intersection of both friend sets, ascending by id.
	FindCommonFriends(ctx context.Context, userID, otherID int64) ([]*entity.User, error)
}
