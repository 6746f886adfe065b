package postgres

import (
	"context"

	"cinegraph/internal/domain/entity"
	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// friendshipRepository implements repository.FriendshipRepository using GORM.
// Each row of 'friendships' is one directed edge user_id -> friend_id.
type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository is the constructor for friendshipRepository.
func NewFriendshipRepository(db *gorm.DB) repository.FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (repo *friendshipRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUsers(tx, userID, friendID); err != nil {
			return err
		}
		if userID == friendID {
			return domainerrors.ErrSelfReference
		}

		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.FriendshipModel{UserID: userID, FriendID: friendID}).Error
	})
	if err != nil {
		return mapWriteError(err, "friendships", "failed to add friend")
	}

	return nil
}

func (repo *friendshipRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&model.FriendshipModel{}).Error
	if err != nil {
		return mapWriteError(err, "friendships", "failed to remove friend")
	}

	return nil
}

func (repo *friendshipRepository) FindFriends(ctx context.Context, userID int64) ([]*entity.User, error) {
	var userMs []*model.UserModel
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUsers(tx, userID); err != nil {
			return err
		}

		return tx.Model(&model.UserModel{}).
			Joins("JOIN friendships ON friendships.friend_id = users.id").
			Where("friendships.user_id = ?", userID).
			Order("users.id").
			Find(&userMs).Error
	})
	if err != nil {
		return nil, mapReadError(err, "failed to list friends")
	}

	return toUserDomains(userMs), nil
}

func (repo *friendshipRepository) FindCommonFriends(ctx context.Context, userID, otherID int64) ([]*entity.User, error) {
	var userMs []*model.UserModel
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUsers(tx, userID, otherID); err != nil {
			return err
		}

		return tx.Model(&model.UserModel{}).
			Joins("JOIN friendships AS mine ON mine.friend_id = users.id AND mine.user_id = ?", userID).
			Joins("JOIN friendships AS theirs ON theirs.friend_id = users.id AND theirs.user_id = ?", otherID).
			Order("users.id").
			Find(&userMs).Error
	})
	if err != nil {
		return nil, mapReadError(err, "failed to list common friends")
	}

	return toUserDomains(userMs), nil
}
