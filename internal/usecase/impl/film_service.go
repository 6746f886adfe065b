package impl

import (
	"context"
	"log/slog"

	"cinegraph/config"
	deliverycontext "cinegraph/internal/delivery/context"
	"cinegraph/internal/domain/entity"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// filmService implements the FilmUsecase interface.
type filmService struct {
	filmRepo        repository.FilmRepository
	genreRepo       repository.GenreRepository
	mpaRepo         repository.MpaRepository
	maxPopularCount int
	logger          *slog.Logger
}

// FilmServiceParams holds dependencies for FilmService, injected by Fx.
type FilmServiceParams struct {
	fx.In

	FilmRepo  repository.FilmRepository
	GenreRepo repository.GenreRepository
	MpaRepo   repository.MpaRepository
	Config    *config.Config `optional:"true"`
	Logger    *slog.Logger
}

// NewFilmService is the constructor for filmService.
func NewFilmService(params FilmServiceParams) usecase.FilmUsecase {
	maxPopularCount := 0
	if params.Config != nil {
		maxPopularCount = params.Config.Catalog.MaxPopularCount
	}

	return &filmService{
		filmRepo:        params.FilmRepo,
		genreRepo:       params.GenreRepo,
		mpaRepo:         params.MpaRepo,
		maxPopularCount: maxPopularCount,
		logger:          params.Logger,
	}
}

func (srv *filmService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *filmService) CreateFilm(ctx context.Context, film *entity.Film) (*entity.FilmDetails, error) {
	created := film.Clone()
	created.ID = 0

	if err := srv.filmRepo.Create(ctx, created); err != nil {
		srv.log(ctx).Warn("Failed to create film", slog.String("name", created.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create film")
	}

	srv.log(ctx).Debug("Film created", slog.Int64("filmID", created.ID))

	return srv.detailsOf(ctx, created)
}

func (srv *filmService) UpdateFilm(ctx context.Context, film *entity.Film) (*entity.FilmDetails, error) {
	updated := film.Clone()

	if err := srv.filmRepo.Update(ctx, updated); err != nil {
		srv.log(ctx).Warn("Failed to update film", slog.Int64("filmID", updated.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update film")
	}

	return srv.detailsOf(ctx, updated)
}

func (srv *filmService) GetFilm(ctx context.Context, id int64) (*entity.FilmDetails, error) {
	film, err := srv.filmRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get film")
	}

	return srv.detailsOf(ctx, film)
}

func (srv *filmService) ListFilms(ctx context.Context) ([]*entity.FilmDetails, error) {
	films, err := srv.filmRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list films")
	}

	return srv.details(ctx, films)
}

func (srv *filmService) DeleteFilm(ctx context.Context, id int64) error {
	if err := srv.filmRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete film")
	}

	srv.log(ctx).Info("Film deleted", slog.Int64("filmID", id))

	return nil
}

func (srv *filmService) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := srv.filmRepo.AddLike(ctx, filmID, userID); err != nil {
		srv.log(ctx).Warn("Failed to add like",
			slog.Int64("filmID", filmID), slog.Int64("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to add like")
	}

	return nil
}

func (srv *filmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := srv.filmRepo.RemoveLike(ctx, filmID, userID); err != nil {
		return errors.Wrap(err, "failed to remove like")
	}

	return nil
}

// PopularFilms caps count at catalog.maxPopularCount when one is configured.
func (srv *filmService) PopularFilms(ctx context.Context, count int) ([]*entity.FilmDetails, error) {
	if srv.maxPopularCount > 0 && count > srv.maxPopularCount {
		count = srv.maxPopularCount
	}

	films, err := srv.filmRepo.FindPopular(ctx, count)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find popular films")
	}

	return srv.details(ctx, films)
}

func (srv *filmService) detailsOf(ctx context.Context, film *entity.Film) (*entity.FilmDetails, error) {
	details, err := srv.details(ctx, []*entity.Film{film})
	if err != nil {
		return nil, err
	}

	return details[0], nil
}

// details resolves the MPA rating, the genres and the like count of each film,
// keeping the input order. Reference data and counts are fetched once per call.
func (srv *filmService) details(ctx context.Context, films []*entity.Film) ([]*entity.FilmDetails, error) {
	out := make([]*entity.FilmDetails, 0, len(films))
	if len(films) == 0 {
		return out, nil
	}

	ratings, err := srv.mpaRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load MPA ratings")
	}
	genres, err := srv.genreRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load genres")
	}

	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}
	counts, err := srv.filmRepo.CountLikes(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count likes")
	}

	ratingByID := make(map[int64]entity.MpaRating, len(ratings))
	for _, r := range ratings {
		ratingByID[r.ID] = *r
	}
	genreByID := make(map[int64]entity.Genre, len(genres))
	for _, g := range genres {
		genreByID[g.ID] = *g
	}

	for _, f := range films {
		d := &entity.FilmDetails{
			Film:      *f.Clone(),
			Mpa:       entity.MpaRating{ID: f.MpaID},
			Genres:    make([]entity.Genre, 0, len(f.GenreIDs)),
			LikeCount: counts[f.ID],
		}
		if r, ok := ratingByID[f.MpaID]; ok {
			d.Mpa = r
		}
		for _, id := range f.GenreIDs {
			if g, ok := genreByID[id]; ok {
				d.Genres = append(d.Genres, g)
			}
		}
		out = append(out, d)
	}

	return out, nil
}
