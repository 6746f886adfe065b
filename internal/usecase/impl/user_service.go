// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "cinegraph/internal/delivery/context"
	"cinegraph/internal/domain/entity"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo       repository.UserRepository
	friendshipRepo repository.FriendshipRepository
	logger         *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo       repository.UserRepository
	FriendshipRepo repository.FriendshipRepository
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:       params.UserRepo,
		friendshipRepo: params.FriendshipRepo,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	created := user.Clone()
	created.ID = 0
	created.Normalize()

	if err := srv.userRepo.Create(ctx, created); err != nil {
		srv.log(ctx).Warn("Failed to create user", slog.String("email", created.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("User created", slog.Int64("userID", created.ID))

	return created, nil
}

func (srv *userService) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	updated := user.Clone()
	updated.Normalize()

	if err := srv.userRepo.Update(ctx, updated); err != nil {
		srv.log(ctx).Warn("Failed to update user", slog.Int64("userID", updated.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user")
	}

	return updated, nil
}

func (srv *userService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	return user, nil
}

func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

func (srv *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Int64("userID", id))

	return nil
}

func (srv *userService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if err := srv.friendshipRepo.AddFriend(ctx, userID, friendID); err != nil {
		srv.log(ctx).Warn("Failed to add friend",
			slog.Int64("userID", userID), slog.Int64("friendID", friendID), slog.Any("error", err))

		return errors.Wrap(err, "failed to add friend")
	}

	return nil
}

func (srv *userService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := srv.friendshipRepo.RemoveFriend(ctx, userID, friendID); err != nil {
		return errors.Wrap(err, "failed to remove friend")
	}

	return nil
}

func (srv *userService) ListFriends(ctx context.Context, userID int64) ([]*entity.User, error) {
	friends, err := srv.friendshipRepo.FindFriends(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list friends")
	}

	return friends, nil
}

func (srv *userService) ListCommonFriends(ctx context.Context, userID, otherID int64) ([]*entity.User, error) {
	common, err := srv.friendshipRepo.FindCommonFriends(ctx, userID, otherID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list common friends")
	}

	return common, nil
}
