package repository

import (
	"context"

	"cinegraph/internal/domain/entity"
)

// FilmRepository owns Film records, their genre associations and the Like relation.
type FilmRepository interface {
	// Create resolves the MPA rating and all genres before inserting anything.
	// Fails with NotFoundError{Mpa} or NotFoundError{Genre}; on failure no film is stored.
	Create(ctx context.Context, film *entity.Film) error

	// Update replaces the scalar fields and then the whole genre set.
	Update(ctx context.Context, film *entity.Film) error

	// FindByID fails with NotFoundError{Film} when absent.
	FindByID(ctx context.Context, id int64) (*entity.Film, error)

	// FindAll returns every film ordered by ascending id.
	FindAll(ctx context.Context) ([]*entity.Film, error)

	// Delete removes the film with its likes and genre associations.
	Delete(ctx context.Context, id int64) error

	// AddLike is idempotent. Fails with NotFoundError when the film or the user is absent.
	AddLike(ctx context.Context, filmID, userID int64) error

	// RemoveLike is idempotent; removing a missing like is not an error.
	RemoveLike(ctx context.Context, filmID, userID int64) error

	// FindLikes returns the ids of users who liked the film, ascending.
	FindLikes(ctx context.Context, filmID int64) ([]int64, error)

	// CountLikes returns the number of likes for each requested film id.
	// Films without likes map to zero.
	CountLikes(ctx context.Context, filmIDs []int64) (map[int64]int, error)

	// FindPopular returns up to count films ordered by like count descending,
	// then id ascending. count <= 0 yields an empty slice.
	FindPopular(ctx context.Context, count int) ([]*entity.Film, error)
}
