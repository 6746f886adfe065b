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

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository is the constructor for the read-only genre catalog.
func NewGenreRepository(db *gorm.DB) repository.GenreRepository {
	return &genreRepository{db: db}
}

func (repo *genreRepository) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	var genreM model.GenreModel
	if err := repo.db.WithContext(ctx).First(&genreM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NewNotFoundError(domainerrors.KindGenre, id)
		}

		return nil, mapReadError(err, "failed to find genre by id")
	}

	return &entity.Genre{ID: genreM.ID, Name: genreM.Name}, nil
}

func (repo *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	var genreMs []model.GenreModel
	if err := repo.db.WithContext(ctx).Order("id").Find(&genreMs).Error; err != nil {
		return nil, mapReadError(err, "failed to list genres")
	}

	genres := make([]*entity.Genre, 0, len(genreMs))
	for _, m := range genreMs {
		genres = append(genres, &entity.Genre{ID: m.ID, Name: m.Name})
	}

	return genres, nil
}

type mpaRepository struct {
	db *gorm.DB
}

// NewMpaRepository is the constructor for the read-only MPA rating catalog.
func NewMpaRepository(db *gorm.DB) repository.MpaRepository {
	return &mpaRepository{db: db}
}

func (repo *mpaRepository) FindByID(ctx context.Context, id int64) (*entity.MpaRating, error) {
	var mpaM model.MpaModel
	if err := repo.db.WithContext(ctx).First(&mpaM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NewNotFoundError(domainerrors.KindMpa, id)
		}

		return nil, mapReadError(err, "failed to find MPA rating by id")
	}

	return &entity.MpaRating{ID: mpaM.ID, Name: mpaM.Name}, nil
}

func (repo *mpaRepository) FindAll(ctx context.Context) ([]*entity.MpaRating, error) {
	var mpaMs []model.MpaModel
	if err := repo.db.WithContext(ctx).Order("id").Find(&mpaMs).Error; err != nil {
		return nil, mapReadError(err, "failed to list MPA ratings")
	}

	ratings := make([]*entity.MpaRating, 0, len(mpaMs))
	for _, m := range mpaMs {
		ratings = append(ratings, &entity.MpaRating{ID: m.ID, Name: m.Name})
	}

	return ratings, nil
}
