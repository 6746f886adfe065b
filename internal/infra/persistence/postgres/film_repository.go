package postgres

import (
	"context"

	"cinegraph/internal/domain/entity"
	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// filmRepository implements repository.FilmRepository using GORM.
type filmRepository struct {
	db *gorm.DB
}

// NewFilmRepository is the constructor for filmRepository.
func NewFilmRepository(db *gorm.DB) repository.FilmRepository {
	return &filmRepository{db: db}
}

// Create resolves the MPA rating and every genre before the first insert, so a
// missing reference leaves no partial film behind.
func (repo *filmRepository) Create(ctx context.Context, film *entity.Film) error {
	film.Normalize()
	filmM := fromFilmDomain(film)
	filmM.ID = 0

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireReferences(tx, film); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(filmM).Error; err != nil {
			return err
		}

		return insertFilmGenres(tx, filmM.ID, film.GenreIDs)
	})
	if err != nil {
		return mapWriteError(err, "films", "failed to create film")
	}

	film.ID = filmM.ID

	return nil
}

// Update replaces the scalar columns, then the whole genre set.
func (repo *filmRepository) Update(ctx context.Context, film *entity.Film) error {
	film.Normalize()

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireFilm(tx, film.ID); err != nil {
			return err
		}
		if err := requireReferences(tx, film); err != nil {
			return err
		}

		err := tx.Model(&model.FilmModel{}).
			Where("id = ?", film.ID).
			Updates(map[string]any{
				"name":         film.Name,
				"description":  film.Description,
				"release_date": film.ReleaseDate,
				"duration":     film.Duration,
				"mpa_id":       film.MpaID,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("film_id = ?", film.ID).Delete(&model.FilmGenreModel{}).Error; err != nil {
			return err
		}

		return insertFilmGenres(tx, film.ID, film.GenreIDs)
	})
	if err != nil {
		return mapWriteError(err, "film_genres", "failed to update film")
	}

	return nil
}

func (repo *filmRepository) FindByID(ctx context.Context, id int64) (*entity.Film, error) {
	var film *entity.Film
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var filmM model.FilmModel
		if err := tx.First(&filmM, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.NewNotFoundError(domainerrors.KindFilm, id)
			}

			return err
		}

		films, err := withGenres(tx, []*model.FilmModel{&filmM})
		if err != nil {
			return err
		}
		film = films[0]

		return nil
	})
	if err != nil {
		return nil, mapReadError(err, "failed to find film by id")
	}

	return film, nil
}

func (repo *filmRepository) FindAll(ctx context.Context) ([]*entity.Film, error) {
	var films []*entity.Film
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var filmMs []*model.FilmModel
		if err := tx.Order("id").Find(&filmMs).Error; err != nil {
			return err
		}

		var err error
		films, err = withGenres(tx, filmMs)

		return err
	})
	if err != nil {
		return nil, mapReadError(err, "failed to list films")
	}

	return films, nil
}

func (repo *filmRepository) Delete(ctx context.Context, id int64) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireFilm(tx, id); err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&model.FilmGenreModel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.FilmModel{}, id).Error
	})
	if err != nil {
		return mapWriteError(err, "films", "failed to delete film")
	}

	return nil
}

// AddLike ignores an existing (film, user) row, so repeated likes count once.
func (repo *filmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireFilm(tx, filmID); err != nil {
			return err
		}
		if err := requireUsers(tx, userID); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.LikeModel{FilmID: filmID, UserID: userID}).Error
	})
	if err != nil {
		return mapWriteError(err, "likes", "failed to add like")
	}

	return nil
}

func (repo *filmRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	err := repo.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&model.LikeModel{}).Error
	if err != nil {
		return mapWriteError(err, "likes", "failed to remove like")
	}

	return nil
}

func (repo *filmRepository) FindLikes(ctx context.Context, filmID int64) ([]int64, error) {
	userIDs := []int64{}
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireFilm(tx, filmID); err != nil {
			return err
		}

		return tx.Model(&model.LikeModel{}).
			Where("film_id = ?", filmID).
			Order("user_id").
			Pluck("user_id", &userIDs).Error
	})
	if err != nil {
		return nil, mapReadError(err, "failed to list likes")
	}

	return userIDs, nil
}

type likeCountRow struct {
	FilmID int64
	Total  int
}

func (repo *filmRepository) CountLikes(ctx context.Context, filmIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(filmIDs))
	if len(filmIDs) == 0 {
		return counts, nil
	}

	var rows []likeCountRow
	err := repo.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Select("film_id, COUNT(*) AS total").
		Where("film_id IN ?", filmIDs).
		Group("film_id").
		Scan(&rows).Error
	if err != nil {
		return nil, mapReadError(err, "failed to count likes")
	}

	for _, id := range filmIDs {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.FilmID] = row.Total
	}

	return counts, nil
}

// FindPopular ranks every film, liked or not, by like count and breaks ties by id.
func (repo *filmRepository) FindPopular(ctx context.Context, count int) ([]*entity.Film, error) {
	if count <= 0 {
		return []*entity.Film{}, nil
	}

	var films []*entity.Film
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var filmMs []*model.FilmModel
		err := tx.Model(&model.FilmModel{}).
			Select("films.*").
			Joins("LEFT JOIN likes ON likes.film_id = films.id").
			Group("films.id").
			Order("COUNT(likes.user_id) DESC").
			Order("films.id ASC").
			Limit(count).
			Find(&filmMs).Error
		if err != nil {
			return err
		}

		films, err = withGenres(tx, filmMs)

		return err
	})
	if err != nil {
		return nil, mapReadError(err, "failed to find popular films")
	}

	return films, nil
}

func requireReferences(tx *gorm.DB, film *entity.Film) error {
	if err := requireMpa(tx, film.MpaID); err != nil {
		return err
	}

	return requireGenres(tx, film.GenreIDs)
}

func insertFilmGenres(tx *gorm.DB, filmID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}

	rows := make([]model.FilmGenreModel, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		rows = append(rows, model.FilmGenreModel{FilmID: filmID, GenreID: genreID})
	}

	return tx.Omit(clause.Associations).Create(&rows).Error
}

// withGenres maps films to domain entities with their genre ids attached,
// using one query for all films.
func withGenres(tx *gorm.DB, filmMs []*model.FilmModel) ([]*entity.Film, error) {
	films := make([]*entity.Film, 0, len(filmMs))
	if len(filmMs) == 0 {
		return films, nil
	}

	ids := make([]int64, 0, len(filmMs))
	for _, m := range filmMs {
		ids = append(ids, m.ID)
	}

	var links []model.FilmGenreModel
	err := tx.Where("film_id IN ?", ids).
		Order("film_id").
		Order("genre_id").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	genres := make(map[int64][]int64, len(filmMs))
	for _, link := range links {
		genres[link.FilmID] = append(genres[link.FilmID], link.GenreID)
	}
	for _, m := range filmMs {
		films = append(films, toFilmDomain(m, genres[m.ID]))
	}

	return films, nil
}

func toFilmDomain(m *model.FilmModel, genreIDs []int64) *entity.Film {
	if genreIDs == nil {
		genreIDs = []int64{}
	}

	return &entity.Film{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ReleaseDate: m.ReleaseDate,
		Duration:    m.Duration,
		MpaID:       m.MpaID,
		GenreIDs:    genreIDs,
	}
}

func fromFilmDomain(f *entity.Film) *model.FilmModel {
	return &model.FilmModel{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate,
		Duration:    f.Duration,
		MpaID:       f.MpaID,
	}
}
