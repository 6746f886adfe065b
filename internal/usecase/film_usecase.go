package usecase

import (
	"context"

	"cinegraph/internal/domain/entity"
)

// FilmUsecase defines catalog management, likes and the popularity ranking.
// Read operations return the composite FilmDetails view.
type FilmUsecase interface {
	CreateFilm(ctx context.Context, film *entity.Film) (*entity.FilmDetails, error)
	UpdateFilm(ctx context.Context, film *entity.Film) (*entity.FilmDetails, error)
	GetFilm(ctx context.Context, id int64) (*entity.FilmDetails, error)
	ListFilms(ctx context.Context) ([]*entity.FilmDetails, error)
	DeleteFilm(ctx context.Context, id int64) error

	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error

	// PopularFilms returns up to count films ordered by like count, then id.
	PopularFilms(ctx context.Context, count int) ([]*entity.FilmDetails, error)
}

// CatalogUsecase exposes the read-only genre and MPA reference data.
type CatalogUsecase interface {
	ListGenres(ctx context.Context) ([]*entity.Genre, error)
	GetGenre(ctx context.Context, id int64) (*entity.Genre, error)
	ListMpaRatings(ctx context.Context) ([]*entity.MpaRating, error)
	GetMpaRating(ctx context.Context, id int64) (*entity.MpaRating, error)
}
