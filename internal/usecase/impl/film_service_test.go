package impl

import (
	"context"
	"testing"

	"cinegraph/config"
	"cinegraph/internal/domain/entity"
	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/domain/repository/repotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFilmService_CreateFilm_ResolvesDetails(t *testing.T) {
	fx := createTestServices(t, nil)
	ctx := context.Background()

	input := repotest.NewFilm("Heat", entity.MpaR, entity.GenreThriller, entity.GenreDrama, entity.GenreThriller)

	details, err := fx.films.CreateFilm(ctx, input)
	require.NoError(t, err)
	assert.NotZero(t, details.ID)
	assert.Equal(t, entity.MpaRating{ID: entity.MpaR, Name: "R"}, details.Mpa)
	assert.Equal(t, []entity.Genre{
		{ID: entity.GenreDrama, Name: "Drama"},
		{ID: entity.GenreThriller, Name: "Thriller"},
	}, details.Genres)
	assert.Equal(t, []int64{entity.GenreDrama, entity.GenreThriller}, details.GenreIDs)
	assert.Zero(t, details.LikeCount)
}

func TestFilmService_CreateFilm_UnknownReferences(t *testing.T) {
	fx := createTestServices(t, nil)
	ctx := context.Background()

	_, err := fx.films.CreateFilm(ctx, repotest.NewFilm("Bad MPA", 99))
	assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindMpa, 99)))

	_, err = fx.films.CreateFilm(ctx, repotest.NewFilm("Bad genre", entity.MpaG, entity.GenreComedy, 77))
	assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindGenre, 77)))

	films, err := fx.films.ListFilms(ctx)
	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestFilmService_UpdateFilm_ReplacesGenres(t *testing.T) {
	fx := createTestServices(t, nil)
	ctx := context.Background()

	created, err := fx.films.CreateFilm(ctx, repotest.NewFilm("Up", entity.MpaPG, entity.GenreCartoon, entity.GenreComedy))
	require.NoError(t, err)

	change := created.Film.Clone()
	change.Name = "Up (2009)"
	change.MpaID = entity.MpaG
	change.GenreIDs = []int64{entity.GenreDrama}

	updated, err := fx.films.UpdateFilm(ctx, change)
	require.NoError(t, err)
	assert.Equal(t, "Up (2009)", updated.Name)
	assert.Equal(t, "G", updated.Mpa.Name)
	assert.Equal(t, []entity.Genre{{ID: entity.GenreDrama, Name: "Drama"}}, updated.Genres)
}

func TestFilmService_LikesAndPopular(t *testing.T) {
	fx := createTestServices(t, nil)
	ctx := context.Background()

	var userIDs []int64
	for i := 1; i <= 3; i++ {
		u, err := fx.users.CreateUser(ctx, repotest.NewUser(i))
		require.NoError(t, err)
		userIDs = append(userIDs, u.ID)
	}

	a, err := fx.films.CreateFilm(ctx, repotest.NewFilm("A", entity.MpaG))
	require.NoError(t, err)
	b, err := fx.films.CreateFilm(ctx, repotest.NewFilm("B", entity.MpaG))
	require.NoError(t, err)

	for _, uid := range userIDs {
		require.NoError(t, fx.films.AddLike(ctx, b.ID, uid))
	}
	require.NoError(t, fx.films.AddLike(ctx, b.ID, userIDs[0]))
	require.NoError(t, fx.films.AddLike(ctx, a.ID, userIDs[0]))

	popular, err := fx.films.PopularFilms(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, b.ID, popular[0].ID)
	assert.Equal(t, 3, popular[0].LikeCount)
	assert.Equal(t, a.ID, popular[1].ID)
	assert.Equal(t, 1, popular[1].LikeCount)

	require.NoError(t, fx.films.RemoveLike(ctx, b.ID, userIDs[1]))
	got, err := fx.films.GetFilm(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LikeCount)

	err = fx.films.AddLike(ctx, a.ID, 404)
	assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindUser, 404)))

	empty, err := fx.films.PopularFilms(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFilmService_PopularFilms_CappedByConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Catalog.MaxPopularCount = 2
	fx := createTestServices(t, cfg)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := fx.films.CreateFilm(ctx, repotest.NewFilm(name, entity.MpaG))
		require.NoError(t, err)
	}

	popular, err := fx.films.PopularFilms(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, popular, 2)
}

func TestFilmService_PopularFilms_UncappedReturnsWholePopulation(t *testing.T) {
	cfg := &config.Config{}
	cfg.Catalog.MaxPopularCount = 0
	fx := createTestServices(t, cfg)
	ctx := context.Background()

	const population = 1005
	for range population {
		require.NoError(t, fx.repos.Films.Create(ctx, repotest.NewFilm("Film", entity.MpaG)))
	}

	popular, err := fx.films.PopularFilms(ctx, 2000)
	require.NoError(t, err)
	assert.Len(t, popular, population)
}

func TestFilmService_DeleteFilm(t *testing.T) {
	fx := createTestServices(t, nil)
	ctx := context.Background()

	created, err := fx.films.CreateFilm(ctx, repotest.NewFilm("Gone", entity.MpaG))
	require.NoError(t, err)

	require.NoError(t, fx.films.DeleteFilm(ctx, created.ID))

	_, err = fx.films.GetFilm(ctx, created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrFilmNotFound))

	err = fx.films.DeleteFilm(ctx, created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrFilmNotFound))
}

func TestFilmService_StorageFailures(t *testing.T) {
	ctx := context.Background()
	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to query films")
	film := &entity.Film{ID: 1, Name: "A", MpaID: entity.MpaG, GenreIDs: []int64{}}

	t.Run("FindByID", func(t *testing.T) {
		fx := createMockedServices(t)
		fx.filmRepo.EXPECT().FindByID(ctx, int64(1)).Return(nil, dbErr)

		details, err := fx.films.GetFilm(ctx, 1)
		assert.Nil(t, details)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("CountLikes", func(t *testing.T) {
		fx := createMockedServices(t)
		fx.filmRepo.EXPECT().FindByID(ctx, int64(1)).Return(film, nil)
		fx.mpaRepo.EXPECT().FindAll(ctx).Return([]*entity.MpaRating{{ID: entity.MpaG, Name: "G"}}, nil)
		fx.genreRepo.EXPECT().FindAll(ctx).Return([]*entity.Genre{}, nil)
		fx.filmRepo.EXPECT().CountLikes(ctx, []int64{1}).Return(nil, dbErr)

		details, err := fx.films.GetFilm(ctx, 1)
		assert.Nil(t, details)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("CatalogLookup", func(t *testing.T) {
		fx := createMockedServices(t)
		fx.filmRepo.EXPECT().FindAll(ctx).Return([]*entity.Film{film}, nil)
		fx.mpaRepo.EXPECT().FindAll(ctx).Return(nil, dbErr)

		films, err := fx.films.ListFilms(ctx)
		assert.Nil(t, films)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("EmptyListSkipsLookups", func(t *testing.T) {
		fx := createMockedServices(t)
		fx.filmRepo.EXPECT().FindPopular(ctx, 5).Return([]*entity.Film{}, nil)

		films, err := fx.films.PopularFilms(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, films)
	})

	t.Run("CreateRacedDelete", func(t *testing.T) {
		fx := createMockedServices(t)
		raced := domainerrors.NewIntegrityViolationError("film_genres", nil)
		fx.filmRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Film")).Return(raced)

		_, err := fx.films.CreateFilm(ctx, film)
		assert.True(t, errors.Is(err, domainerrors.ErrIntegrityViolation))
	})
}

func TestCatalogService(t *testing.T) {
	fx := createTestServices(t, nil)
	ctx := context.Background()

	genres, err := fx.catalog.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, len(entity.DefaultGenres()))

	genre, err := fx.catalog.GetGenre(ctx, entity.GenreAction)
	require.NoError(t, err)
	assert.Equal(t, "Action", genre.Name)

	ratings, err := fx.catalog.ListMpaRatings(ctx)
	require.NoError(t, err)
	assert.Len(t, ratings, len(entity.DefaultMpaRatings()))

	_, err = fx.catalog.GetMpaRating(ctx, 42)
	assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindMpa, 42)))
}

func TestCatalogService_StorageFailure(t *testing.T) {
	fx := createMockedServices(t)
	ctx := context.Background()
	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("timeout"), "failed to list genres")

	fx.genreRepo.EXPECT().FindAll(ctx).Return(nil, dbErr)

	_, err := fx.catalog.ListGenres(ctx)
	assert.ErrorIs(t, err, dbErr)
}
