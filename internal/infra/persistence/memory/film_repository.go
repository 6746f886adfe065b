package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"cinegraph/internal/domain/entity"
	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/domain/repository"
)

type filmRepository struct {
	store *Store
}

// NewFilmRepository returns a FilmRepository backed by store.
func NewFilmRepository(store *Store) repository.FilmRepository {
	return &filmRepository{store: store}
}

// resolveReferences checks the MPA rating first, then each genre in ascending order.
func (s *Store) resolveReferences(film *entity.Film) error {
	if _, ok := s.mpa[film.MpaID]; !ok {
		return domainerrors.NewNotFoundError(domainerrors.KindMpa, film.MpaID)
	}
	for _, id := range film.GenreIDs {
		if _, ok := s.genres[id]; !ok {
			return domainerrors.NewNotFoundError(domainerrors.KindGenre, id)
		}
	}

	return nil
}

func (repo *filmRepository) Create(_ context.Context, film *entity.Film) error {
	s := repo.store
	film.Normalize()
	if err := s.resolveReferences(film); err != nil {
		return err
	}

	s.filmsMu.Lock()
	defer s.filmsMu.Unlock()

	film.ID = s.filmIDs.Next()
	s.films[film.ID] = film.Clone()

	return nil
}

func (repo *filmRepository) Update(_ context.Context, film *entity.Film) error {
	s := repo.store
	film.Normalize()

	s.filmsMu.Lock()
	defer s.filmsMu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return domainerrors.NewNotFoundError(domainerrors.KindFilm, film.ID)
	}
	if err := s.resolveReferences(film); err != nil {
		return err
	}
	s.films[film.ID] = film.Clone()

	return nil
}

func (repo *filmRepository) FindByID(_ context.Context, id int64) (*entity.Film, error) {
	s := repo.store
	s.filmsMu.RLock()
	defer s.filmsMu.RUnlock()

	f, ok := s.films[id]
	if !ok {
		return nil, domainerrors.NewNotFoundError(domainerrors.KindFilm, id)
	}

	return f.Clone(), nil
}

func (repo *filmRepository) FindAll(_ context.Context) ([]*entity.Film, error) {
	s := repo.store
	s.filmsMu.RLock()
	defer s.filmsMu.RUnlock()

	films := make([]*entity.Film, 0, len(s.films))
	for _, id := range sortedKeys(s.films) {
		films = append(films, s.films[id].Clone())
	}

	return films, nil
}

func (repo *filmRepository) Delete(_ context.Context, id int64) error {
	s := repo.store
	s.filmsMu.Lock()
	defer s.filmsMu.Unlock()

	if _, ok := s.films[id]; !ok {
		return domainerrors.NewNotFoundError(domainerrors.KindFilm, id)
	}
	delete(s.likes, id)
	delete(s.films, id)

	return nil
}

// AddLike holds the users read lock for the whole call, so the liking user
// cannot be deleted between the existence check and the insert.
func (repo *filmRepository) AddLike(_ context.Context, filmID, userID int64) error {
	s := repo.store
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	s.filmsMu.Lock()
	defer s.filmsMu.Unlock()

	if _, ok := s.films[filmID]; !ok {
		return domainerrors.NewNotFoundError(domainerrors.KindFilm, filmID)
	}
	if _, ok := s.users[userID]; !ok {
		return domainerrors.NewNotFoundError(domainerrors.KindUser, userID)
	}

	likers, ok := s.likes[filmID]
	if !ok {
		likers = make(map[int64]time.Time)
		s.likes[filmID] = likers
	}
	if _, liked := likers[userID]; !liked {
		likers[userID] = s.now()
	}

	return nil
}

func (repo *filmRepository) RemoveLike(_ context.Context, filmID, userID int64) error {
	s := repo.store
	s.filmsMu.Lock()
	defer s.filmsMu.Unlock()

	if likers, ok := s.likes[filmID]; ok {
		delete(likers, userID)
		if len(likers) == 0 {
			delete(s.likes, filmID)
		}
	}

	return nil
}

func (repo *filmRepository) FindLikes(_ context.Context, filmID int64) ([]int64, error) {
	s := repo.store
	s.filmsMu.RLock()
	defer s.filmsMu.RUnlock()

	if _, ok := s.films[filmID]; !ok {
		return nil, domainerrors.NewNotFoundError(domainerrors.KindFilm, filmID)
	}

	userIDs := sortedKeys(s.likes[filmID])
	if userIDs == nil {
		userIDs = []int64{}
	}

	return userIDs, nil
}

func (repo *filmRepository) CountLikes(_ context.Context, filmIDs []int64) (map[int64]int, error) {
	s := repo.store
	s.filmsMu.RLock()
	defer s.filmsMu.RUnlock()

	counts := make(map[int64]int, len(filmIDs))
	for _, id := range filmIDs {
		counts[id] = len(s.likes[id])
	}

	return counts, nil
}

func (repo *filmRepository) FindPopular(_ context.Context, count int) ([]*entity.Film, error) {
	if count <= 0 {
		return []*entity.Film{}, nil
	}

	s := repo.store
	s.filmsMu.RLock()
	defer s.filmsMu.RUnlock()

	ids := sortedKeys(s.films)
	slices.SortStableFunc(ids, func(a, b int64) int {
		return cmp.Compare(len(s.likes[b]), len(s.likes[a]))
	})
	if count < len(ids) {
		ids = ids[:count]
	}

	films := make([]*entity.Film, 0, len(ids))
	for _, id := range ids {
		films = append(films, s.films[id].Clone())
	}

	return films, nil
}
