package memory

import (
	"context"
	"time"

	"cinegraph/internal/domain/entity"
	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/domain/repository"
)

type friendshipRepository struct {
	store *Store
}

// NewFriendshipRepository returns a FriendshipRepository backed by store.
func NewFriendshipRepository(store *Store) repository.FriendshipRepository {
	return &friendshipRepository{store: store}
}

// requireUsers reports the first id that has no user. The caller must hold usersMu.
func (s *Store) requireUsers(ids ...int64) error {
	for _, id := range ids {
		if _, ok := s.users[id]; !ok {
			return domainerrors.NewNotFoundError(domainerrors.KindUser, id)
		}
	}

	return nil
}

func (repo *friendshipRepository) AddFriend(_ context.Context, userID, friendID int64) error {
	s := repo.store
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	if err := s.requireUsers(userID, friendID); err != nil {
		return err
	}
	if userID == friendID {
		return domainerrors.ErrSelfReference
	}

	s.friendsMu.Lock()
	defer s.friendsMu.Unlock()

	edges, ok := s.friends[userID]
	if !ok {
		edges = make(map[int64]time.Time)
		s.friends[userID] = edges
	}
	if _, exists := edges[friendID]; !exists {
		edges[friendID] = s.now()
	}

	return nil
}

func (repo *friendshipRepository) RemoveFriend(_ context.Context, userID, friendID int64) error {
	s := repo.store
	s.friendsMu.Lock()
	defer s.friendsMu.Unlock()

	if edges, ok := s.friends[userID]; ok {
		delete(edges, friendID)
		if len(edges) == 0 {
			delete(s.friends, userID)
		}
	}

	return nil
}

func (repo *friendshipRepository) FindFriends(_ context.Context, userID int64) ([]*entity.User, error) {
	s := repo.store
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	if err := s.requireUsers(userID); err != nil {
		return nil, err
	}

	s.friendsMu.RLock()
	defer s.friendsMu.RUnlock()

	return s.lookupUsers(sortedKeys(s.friends[userID])), nil
}

func (repo *friendshipRepository) FindCommonFriends(_ context.Context, userID, otherID int64) ([]*entity.User, error) {
	s := repo.store
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	if err := s.requireUsers(userID, otherID); err != nil {
		return nil, err
	}

	s.friendsMu.RLock()
	defer s.friendsMu.RUnlock()

	other := s.friends[otherID]
	common := make([]int64, 0)
	for _, id := range sortedKeys(s.friends[userID]) {
		if _, ok := other[id]; ok {
			common = append(common, id)
		}
	}

	return s.lookupUsers(common), nil
}
