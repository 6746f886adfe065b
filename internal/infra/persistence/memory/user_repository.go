package memory

import (
	"context"

	"cinegraph/internal/domain/entity"
	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/domain/repository"
)

type userRepository struct {
	store *Store
}

// NewUserRepository returns a UserRepository backed by store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	s := repo.store
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return domainerrors.NewDuplicateEmailError(user.Email)
	}

	user.ID = s.userIDs.Next()
	s.users[user.ID] = user.Clone()
	s.emails[user.Email] = user.ID

	return nil
}

func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	s := repo.store
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return domainerrors.NewNotFoundError(domainerrors.KindUser, user.ID)
	}
	if owner, taken := s.emails[user.Email]; taken && owner != user.ID {
		return domainerrors.NewDuplicateEmailError(user.Email)
	}

	delete(s.emails, stored.Email)
	s.emails[user.Email] = user.ID
	s.users[user.ID] = user.Clone()

	return nil
}

func (repo *userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	s := repo.store
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domainerrors.NewNotFoundError(domainerrors.KindUser, id)
	}

	return u.Clone(), nil
}

func (repo *userRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	s := repo.store
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	users := make([]*entity.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		users = append(users, s.users[id].Clone())
	}

	return users, nil
}

// Delete takes all three collection locks so that no like or friend edge can
// reference the user once it is gone.
func (repo *userRepository) Delete(_ context.Context, id int64) error {
	s := repo.store
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domainerrors.NewNotFoundError(domainerrors.KindUser, id)
	}

	s.filmsMu.Lock()
	defer s.filmsMu.Unlock()
	s.friendsMu.Lock()
	defer s.friendsMu.Unlock()

	for _, likers := range s.likes {
		delete(likers, id)
	}
	delete(s.friends, id)
	for _, edges := range s.friends {
		delete(edges, id)
	}
	delete(s.emails, u.Email)
	delete(s.users, id)

	return nil
}

// lookupUsers clones the requested users in the order given.
// The caller must hold usersMu.
func (s *Store) lookupUsers(ids []int64) []*entity.User {
	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u.Clone())
		}
	}

	return users
}
