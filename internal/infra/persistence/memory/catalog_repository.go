package memory

import (
	"context"

	"cinegraph/internal/domain/entity"
	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/domain/repository"
)

type genreRepository struct {
	store *Store
}

// NewGenreRepository returns a read-only GenreRepository over the seeded genres.
func NewGenreRepository(store *Store) repository.GenreRepository {
	return &genreRepository{store: store}
}

func (repo *genreRepository) FindByID(_ context.Context, id int64) (*entity.Genre, error) {
	g, ok := repo.store.genres[id]
	if !ok {
		return nil, domainerrors.NewNotFoundError(domainerrors.KindGenre, id)
	}

	return &g, nil
}

func (repo *genreRepository) FindAll(_ context.Context) ([]*entity.Genre, error) {
	genres := make([]*entity.Genre, 0, len(repo.store.genres))
	for _, id := range sortedKeys(repo.store.genres) {
		g := repo.store.genres[id]
		genres = append(genres, &g)
	}

	return genres, nil
}

type mpaRepository struct {
	store *Store
}

// NewMpaRepository returns a read-only MpaRepository over the seeded ratings.
func NewMpaRepository(store *Store) repository.MpaRepository {
	return &mpaRepository{store: store}
}

func (repo *mpaRepository) FindByID(_ context.Context, id int64) (*entity.MpaRating, error) {
	r, ok := repo.store.mpa[id]
	if !ok {
		return nil, domainerrors.NewNotFoundError(domainerrors.KindMpa, id)
	}

	return &r, nil
}

func (repo *mpaRepository) FindAll(_ context.Context) ([]*entity.MpaRating, error) {
	ratings := make([]*entity.MpaRating, 0, len(repo.store.mpa))
	for _, id := range sortedKeys(repo.store.mpa) {
		r := repo.store.mpa[id]
		ratings = append(ratings, &r)
	}

	return ratings, nil
}
