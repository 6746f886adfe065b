package repository

import (
	"context"

	"cinegraph/internal/domain/entity"
)

// GenreRepository is a read-only view of the genre reference table.
type GenreRepository interface {
	// FindByID fails with NotFoundError{Genre} when absent.
	FindByID(ctx context.Context, id int64) (*entity.Genre, error)

	// FindAll returns all genres ordered by id.
	FindAll(ctx context.Context) ([]*entity.Genre, error)
}

// MpaRepository is a read-only view of the MPA rating reference table.
type MpaRepository interface {
	// FindByID fails with NotFoundError{Mpa} when absent.
	FindByID(ctx context.Context, id int64) (*entity.MpaRating, error)

	// FindAll returns all ratings ordered by id.
	FindAll(ctx context.Context) ([]*entity.MpaRating, error)
}
