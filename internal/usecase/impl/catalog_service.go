package impl

import (
	"context"

	"cinegraph/internal/domain/entity"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/usecase"

	"github.com/pkg/errors"
)

type catalogService struct {
	genreRepo repository.GenreRepository
	mpaRepo   repository.MpaRepository
}

// NewCatalogService creates the read-only reference data service.
func NewCatalogService(genreRepo repository.GenreRepository, mpaRepo repository.MpaRepository) usecase.CatalogUsecase {
	return &catalogService{
		genreRepo: genreRepo,
		mpaRepo:   mpaRepo,
	}
}

func (srv *catalogService) ListGenres(ctx context.Context) ([]*entity.Genre, error) {
	genres, err := srv.genreRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list genres")
	}

	return genres, nil
}

func (srv *catalogService) GetGenre(ctx context.Context, id int64) (*entity.Genre, error) {
	genre, err := srv.genreRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get genre")
	}

	return genre, nil
}

func (srv *catalogService) ListMpaRatings(ctx context.Context) ([]*entity.MpaRating, error) {
	ratings, err := srv.mpaRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list MPA ratings")
	}

	return ratings, nil
}

func (srv *catalogService) GetMpaRating(ctx context.Context, id int64) (*entity.MpaRating, error) {
	rating, err := srv.mpaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get MPA rating")
	}

	return rating, nil
}
