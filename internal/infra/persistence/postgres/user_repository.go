package postgres

import (
	"context"

	"cinegraph/internal/domain/entity"
	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create checks the email first and keeps the unique index as the backstop for
// concurrent registrations.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	userM.ID = 0

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireFreeEmail(tx, user.Email, 0); err != nil {
			return err
		}

		return tx.Create(userM).Error
	})
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDuplicateEmailError(user.Email)
		}

		return mapWriteError(err, "users", "failed to create user")
	}

	user.ID = userM.ID

	return nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUsers(tx, user.ID); err != nil {
			return err
		}
		if err := requireFreeEmail(tx, user.Email, user.ID); err != nil {
			return err
		}

		return tx.Model(&model.UserModel{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"email":    user.Email,
				"login":    user.Login,
				"name":     user.Name,
				"birthday": user.Birthday,
			}).Error
	})
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDuplicateEmailError(user.Email)
		}

		return mapWriteError(err, "users", "failed to update user")
	}

	return nil
}

func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NewNotFoundError(domainerrors.KindUser, id)
		}

		return nil, mapReadError(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var userMs []*model.UserModel
	if err := repo.db.WithContext(ctx).Order("id").Find(&userMs).Error; err != nil {
		return nil, mapReadError(err, "failed to list users")
	}

	return toUserDomains(userMs), nil
}

// Delete removes the user's edges and likes explicitly, so the result does not
// depend on the database enforcing ON DELETE CASCADE.
func (repo *userRepository) Delete(ctx context.Context, id int64) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUsers(tx, id); err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&model.FriendshipModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.UserModel{}, id).Error
	})
	if err != nil {
		return mapWriteError(err, "users", "failed to delete user")
	}

	return nil
}

// requireFreeEmail fails when email belongs to a user other than ownerID.
func requireFreeEmail(tx *gorm.DB, email string, ownerID int64) error {
	var count int64
	err := tx.Model(&model.UserModel{}).
		Where("email = ? AND id <> ?", email, ownerID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.NewDuplicateEmailError(email)
	}

	return nil
}

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:       m.ID,
		Email:    m.Email,
		Login:    m.Login,
		Name:     m.Name,
		Birthday: m.Birthday,
	}
}

func toUserDomains(ms []*model.UserModel) []*entity.User {
	users := make([]*entity.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, toUserDomain(m))
	}

	return users
}

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: u.Birthday,
	}
}
