// Package repotest is the behavioural contract for repository implementations.
// Each backend runs Run from its own tests with a factory returning a fresh,
// seeded (entity.DefaultGenres / entity.DefaultMpaRatings) set of repositories.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"cinegraph/internal/domain/entity"
	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty, seeded backend. It is called once per subtest.
type Factory func(t *testing.T) repository.Repositories

// Run executes the whole contract against the backend built by newRepos.
func Run(t *testing.T, newRepos Factory) {
	t.Run("Catalogs", func(t *testing.T) { runCatalogs(t, newRepos) })
	t.Run("Users", func(t *testing.T) { runUsers(t, newRepos) })
	t.Run("Films", func(t *testing.T) { runFilms(t, newRepos) })
	t.Run("Likes", func(t *testing.T) { runLikes(t, newRepos) })
	t.Run("Popular", func(t *testing.T) { runPopular(t, newRepos) })
	t.Run("Friendships", func(t *testing.T) { runFriendships(t, newRepos) })
	t.Run("Cascades", func(t *testing.T) { runCascades(t, newRepos) })
	t.Run("Concurrency", func(t *testing.T) { runConcurrency(t, newRepos) })
}

// NewUser builds a valid, unsaved user whose email is derived from n.
func NewUser(n int) *entity.User {
	return &entity.User{
		Email:    fmt.Sprintf("user%d@example.com", n),
		Login:    fmt.Sprintf("user%d", n),
		Name:     fmt.Sprintf("User %d", n),
		Birthday: time.Date(1990, time.January, 1+n%28, 0, 0, 0, 0, time.UTC),
	}
}

// NewFilm builds a valid, unsaved film.
func NewFilm(name string, mpaID int64, genreIDs ...int64) *entity.Film {
	return &entity.Film{
		Name:        name,
		Description: "description of " + name,
		ReleaseDate: time.Date(2001, time.March, 14, 0, 0, 0, 0, time.UTC),
		Duration:    120,
		MpaID:       mpaID,
		GenreIDs:    genreIDs,
	}
}

// AssertSameUser compares users field by field, dates by instant.
func AssertSameUser(t *testing.T, want, got *entity.User) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.Login, got.Login)
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.Birthday.Equal(got.Birthday), "birthday: want %s, got %s", want.Birthday, got.Birthday)
}

// AssertSameFilm compares films field by field, dates by instant.
func AssertSameFilm(t *testing.T, want, got *entity.Film) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Description, got.Description)
	assert.True(t, want.ReleaseDate.Equal(got.ReleaseDate), "release date: want %s, got %s", want.ReleaseDate, got.ReleaseDate)
	assert.Equal(t, want.Duration, got.Duration)
	assert.Equal(t, want.MpaID, got.MpaID)
	assert.Equal(t, entity.NormalizeIDs(want.GenreIDs), got.GenreIDs)
}

func userIDs(users []*entity.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	return ids
}

func filmIDs(films []*entity.Film) []int64 {
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}

	return ids
}

func createUsers(t *testing.T, repos repository.Repositories, n int) []*entity.User {
	t.Helper()
	users := make([]*entity.User, 0, n)
	for i := 0; i < n; i++ {
		u := NewUser(i)
		require.NoError(t, repos.Users.Create(context.Background(), u))
		users = append(users, u)
	}

	return users
}

func likeCount(t *testing.T, repos repository.Repositories, filmID int64) int {
	t.Helper()
	counts, err := repos.Films.CountLikes(context.Background(), []int64{filmID})
	require.NoError(t, err)

	return counts[filmID]
}

func runCatalogs(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("GenresOrderedByID", func(t *testing.T) {
		repos := newRepos(t)
		genres, err := repos.Genres.FindAll(ctx)
		require.NoError(t, err)
		want := entity.DefaultGenres()
		require.Len(t, genres, len(want))
		for i := range want {
			assert.Equal(t, want[i], *genres[i])
		}
	})

	t.Run("MpaOrderedByID", func(t *testing.T) {
		repos := newRepos(t)
		ratings, err := repos.Mpa.FindAll(ctx)
		require.NoError(t, err)
		want := entity.DefaultMpaRatings()
		require.Len(t, ratings, len(want))
		for i := range want {
			assert.Equal(t, want[i], *ratings[i])
		}
	})

	t.Run("FindByID", func(t *testing.T) {
		repos := newRepos(t)
		genre, err := repos.Genres.FindByID(ctx, entity.GenreDrama)
		require.NoError(t, err)
		assert.Equal(t, "Drama", genre.Name)

		mpa, err := repos.Mpa.FindByID(ctx, entity.MpaPG13)
		require.NoError(t, err)
		assert.Equal(t, "PG-13", mpa.Name)
	})

	t.Run("UnknownIDsAreNotFound", func(t *testing.T) {
		repos := newRepos(t)
		_, err := repos.Genres.FindByID(ctx, 999)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindGenre, 999)), "got %v", err)

		_, err = repos.Mpa.FindByID(ctx, 999)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindMpa, 999)), "got %v", err)
	})
}

func runUsers(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("CreateRoundTrip", func(t *testing.T) {
		repos := newRepos(t)
		u := NewUser(1)
		require.NoError(t, repos.Users.Create(ctx, u))
		assert.NotZero(t, u.ID)

		got, err := repos.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		AssertSameUser(t, u, got)
	})

	t.Run("CreateAssignsIncreasingIDs", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 3)
		assert.Less(t, users[0].ID, users[1].ID)
		assert.Less(t, users[1].ID, users[2].ID)
	})

	t.Run("DuplicateEmailRejected", func(t *testing.T) {
		repos := newRepos(t)
		first := NewUser(1)
		require.NoError(t, repos.Users.Create(ctx, first))

		second := NewUser(2)
		second.Email = first.Email
		err := repos.Users.Create(ctx, second)
		assert.True(t, errors.Is(err, domainerrors.NewDuplicateEmailError(first.Email)), "got %v", err)

		all, err := repos.Users.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("EmailMatchIsCaseSensitive", func(t *testing.T) {
		repos := newRepos(t)
		lower := NewUser(1)
		lower.Email = "same@example.com"
		upper := NewUser(2)
		upper.Email = "SAME@example.com"

		require.NoError(t, repos.Users.Create(ctx, lower))
		require.NoError(t, repos.Users.Create(ctx, upper))
	})

	t.Run("UpdateIsFullReplace", func(t *testing.T) {
		repos := newRepos(t)
		u := NewUser(1)
		require.NoError(t, repos.Users.Create(ctx, u))

		updated := &entity.User{
			ID:       u.ID,
			Email:    "changed@example.com",
			Login:    "changed",
			Name:     "",
			Birthday: time.Date(1985, time.May, 5, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repos.Users.Update(ctx, updated))

		got, err := repos.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		AssertSameUser(t, updated, got)
	})

	t.Run("UpdateKeepsOwnEmail", func(t *testing.T) {
		repos := newRepos(t)
		u := NewUser(1)
		require.NoError(t, repos.Users.Create(ctx, u))

		u.Login = "renamed"
		require.NoError(t, repos.Users.Update(ctx, u))
	})

	t.Run("UpdateEmailCollisionRejected", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 2)

		changed := users[1].Clone()
		changed.Email = users[0].Email
		err := repos.Users.Update(ctx, changed)
		assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail), "got %v", err)

		got, err := repos.Users.FindByID(ctx, users[1].ID)
		require.NoError(t, err)
		AssertSameUser(t, users[1], got)
	})

	t.Run("UpdateMissingIsNotFound", func(t *testing.T) {
		repos := newRepos(t)
		u := NewUser(1)
		u.ID = 4242
		err := repos.Users.Update(ctx, u)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindUser, 4242)), "got %v", err)
	})

	t.Run("FindByIDMissingIsNotFound", func(t *testing.T) {
		repos := newRepos(t)
		_, err := repos.Users.FindByID(ctx, 77)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindUser, 77)), "got %v", err)
	})

	t.Run("FindAllOrderedByID", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 4)

		all, err := repos.Users.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, userIDs(users), userIDs(all))
	})

	t.Run("DeleteMissingIsNotFound", func(t *testing.T) {
		repos := newRepos(t)
		err := repos.Users.Delete(ctx, 5)
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound), "got %v", err)
	})

	t.Run("IDsAreNotReused", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 2)
		newest := users[1]
		require.NoError(t, repos.Users.Delete(ctx, newest.ID))

		next := NewUser(10)
		require.NoError(t, repos.Users.Create(ctx, next))
		assert.Greater(t, next.ID, newest.ID)
	})

	t.Run("ReturnedUsersAreDetached", func(t *testing.T) {
		repos := newRepos(t)
		u := NewUser(1)
		require.NoError(t, repos.Users.Create(ctx, u))

		got, err := repos.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		got.Email = "mutated@example.com"

		again, err := repos.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, again.Email)
	})
}

func runFilms(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("CreateRoundTripNormalizesGenres", func(t *testing.T) {
		repos := newRepos(t)
		f := NewFilm("Heat", entity.MpaR, entity.GenreThriller, entity.GenreDrama, entity.GenreThriller)
		require.NoError(t, repos.Films.Create(ctx, f))
		assert.NotZero(t, f.ID)
		assert.Equal(t, []int64{entity.GenreDrama, entity.GenreThriller}, f.GenreIDs)

		got, err := repos.Films.FindByID(ctx, f.ID)
		require.NoError(t, err)
		AssertSameFilm(t, f, got)
	})

	t.Run("IDsAreNotReused", func(t *testing.T) {
		repos := newRepos(t)
		first := NewFilm("First", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, first))
		newest := NewFilm("Newest", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, newest))
		require.NoError(t, repos.Films.Delete(ctx, newest.ID))

		next := NewFilm("Next", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, next))
		assert.Greater(t, next.ID, newest.ID)
	})

	t.Run("CreateWithoutGenres", func(t *testing.T) {
		repos := newRepos(t)
		f := NewFilm("Silent", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, f))

		got, err := repos.Films.FindByID(ctx, f.ID)
		require.NoError(t, err)
		assert.Empty(t, got.GenreIDs)
	})

	t.Run("CreateUnknownMpaLeavesNothing", func(t *testing.T) {
		repos := newRepos(t)
		err := repos.Films.Create(ctx, NewFilm("Ghost", 99, entity.GenreComedy))
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindMpa, 99)), "got %v", err)

		all, err := repos.Films.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("CreateUnknownGenreLeavesNothing", func(t *testing.T) {
		repos := newRepos(t)
		err := repos.Films.Create(ctx, NewFilm("Ghost", entity.MpaG, entity.GenreComedy, 99))
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindGenre, 99)), "got %v", err)

		all, err := repos.Films.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("UpdateReplacesGenreSet", func(t *testing.T) {
		repos := newRepos(t)
		f := NewFilm("Mixed", entity.MpaPG, entity.GenreComedy, entity.GenreDrama)
		require.NoError(t, repos.Films.Create(ctx, f))

		f.GenreIDs = []int64{entity.GenreDrama, entity.GenreThriller}
		require.NoError(t, repos.Films.Update(ctx, f))

		got, err := repos.Films.FindByID(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{entity.GenreDrama, entity.GenreThriller}, got.GenreIDs)
	})

	t.Run("UpdateIsFullReplace", func(t *testing.T) {
		repos := newRepos(t)
		f := NewFilm("Before", entity.MpaPG, entity.GenreComedy)
		require.NoError(t, repos.Films.Create(ctx, f))

		updated := &entity.Film{
			ID:          f.ID,
			Name:        "After",
			Description: "",
			ReleaseDate: time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC),
			Duration:    90,
			MpaID:       entity.MpaNC17,
		}
		require.NoError(t, repos.Films.Update(ctx, updated))

		got, err := repos.Films.FindByID(ctx, f.ID)
		require.NoError(t, err)
		AssertSameFilm(t, updated, got)
	})

	t.Run("UpdateUnknownReferencesLeavesFilmUnchanged", func(t *testing.T) {
		repos := newRepos(t)
		f := NewFilm("Stable", entity.MpaPG, entity.GenreComedy)
		require.NoError(t, repos.Films.Create(ctx, f))

		badGenre := f.Clone()
		badGenre.Name = "Changed"
		badGenre.GenreIDs = []int64{entity.GenreDrama, 99}
		err := repos.Films.Update(ctx, badGenre)
		assert.True(t, errors.Is(err, domainerrors.ErrGenreNotFound), "got %v", err)

		badMpa := f.Clone()
		badMpa.Name = "Changed"
		badMpa.MpaID = 99
		err = repos.Films.Update(ctx, badMpa)
		assert.True(t, errors.Is(err, domainerrors.ErrMpaNotFound), "got %v", err)

		got, err := repos.Films.FindByID(ctx, f.ID)
		require.NoError(t, err)
		AssertSameFilm(t, f, got)
	})

	t.Run("UpdateMissingIsNotFound", func(t *testing.T) {
		repos := newRepos(t)
		f := NewFilm("Nowhere", entity.MpaG)
		f.ID = 31
		err := repos.Films.Update(ctx, f)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindFilm, 31)), "got %v", err)
	})

	t.Run("FindAllOrderedByID", func(t *testing.T) {
		repos := newRepos(t)
		var want []int64
		for i := 0; i < 3; i++ {
			f := NewFilm(fmt.Sprintf("Film %d", i), entity.MpaG, entity.GenreAction)
			require.NoError(t, repos.Films.Create(ctx, f))
			want = append(want, f.ID)
		}

		all, err := repos.Films.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, filmIDs(all))
		for _, f := range all {
			assert.Equal(t, []int64{entity.GenreAction}, f.GenreIDs)
		}
	})

	t.Run("DeleteMissingIsNotFound", func(t *testing.T) {
		repos := newRepos(t)
		err := repos.Films.Delete(ctx, 8)
		assert.True(t, errors.Is(err, domainerrors.ErrFilmNotFound), "got %v", err)
	})
}

func runLikes(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("AddThenRemoveRestoresCount", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 2)
		f := NewFilm("Liked", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, f))
		require.NoError(t, repos.Films.AddLike(ctx, f.ID, users[1].ID))
		before := likeCount(t, repos, f.ID)

		require.NoError(t, repos.Films.AddLike(ctx, f.ID, users[0].ID))
		require.NoError(t, repos.Films.AddLike(ctx, f.ID, users[0].ID))
		assert.Equal(t, before+1, likeCount(t, repos, f.ID))

		require.NoError(t, repos.Films.RemoveLike(ctx, f.ID, users[0].ID))
		require.NoError(t, repos.Films.RemoveLike(ctx, f.ID, users[0].ID))
		assert.Equal(t, before, likeCount(t, repos, f.ID))
	})

	t.Run("FindLikesAscending", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 3)
		f := NewFilm("Liked", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, f))
		for i := len(users) - 1; i >= 0; i-- {
			require.NoError(t, repos.Films.AddLike(ctx, f.ID, users[i].ID))
		}

		likes, err := repos.Films.FindLikes(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, userIDs(users), likes)
	})

	t.Run("AddLikeRequiresExistingEntities", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 1)
		f := NewFilm("Liked", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, f))

		err := repos.Films.AddLike(ctx, 999, users[0].ID)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindFilm, 999)), "got %v", err)

		err = repos.Films.AddLike(ctx, f.ID, 999)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindUser, 999)), "got %v", err)

		assert.Zero(t, likeCount(t, repos, f.ID))
	})

	t.Run("RemoveMissingLikeIsNoop", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 1)
		f := NewFilm("Unliked", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, f))

		assert.NoError(t, repos.Films.RemoveLike(ctx, f.ID, users[0].ID))
	})

	t.Run("CountLikesDefaultsToZero", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 1)
		a := NewFilm("A", entity.MpaG)
		b := NewFilm("B", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, a))
		require.NoError(t, repos.Films.Create(ctx, b))
		require.NoError(t, repos.Films.AddLike(ctx, a.ID, users[0].ID))

		counts, err := repos.Films.CountLikes(ctx, []int64{a.ID, b.ID})
		require.NoError(t, err)
		assert.Equal(t, map[int64]int{a.ID: 1, b.ID: 0}, counts)
	})
}

func runPopular(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	// seed creates films A(3 likes), B(3 likes), C(5 likes), D(0 likes) in that order.
	seed := func(t *testing.T) (repository.Repositories, []*entity.Film, []*entity.User) {
		repos := newRepos(t)
		users := createUsers(t, repos, 5)
		likes := []int{3, 3, 5, 0}
		films := make([]*entity.Film, 0, len(likes))
		for i, n := range likes {
			f := NewFilm(fmt.Sprintf("Film %c", 'A'+i), entity.MpaG)
			require.NoError(t, repos.Films.Create(ctx, f))
			for _, u := range users[:n] {
				require.NoError(t, repos.Films.AddLike(ctx, f.ID, u.ID))
			}
			films = append(films, f)
		}

		return repos, films, users
	}

	t.Run("OrderedByLikesThenID", func(t *testing.T) {
		repos, films, _ := seed(t)
		popular, err := repos.Films.FindPopular(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, []int64{films[2].ID, films[0].ID, films[1].ID}, filmIDs(popular))
	})

	t.Run("CountLargerThanPopulationReturnsAll", func(t *testing.T) {
		repos, films, _ := seed(t)
		popular, err := repos.Films.FindPopular(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, []int64{films[2].ID, films[0].ID, films[1].ID, films[3].ID}, filmIDs(popular))
	})

	t.Run("NonPositiveCountIsEmpty", func(t *testing.T) {
		repos, _, _ := seed(t)
		for _, count := range []int{0, -3} {
			popular, err := repos.Films.FindPopular(ctx, count)
			require.NoError(t, err)
			assert.Empty(t, popular)
		}
	})

	t.Run("AddingLikeNeverLowersRank", func(t *testing.T) {
		repos, films, users := seed(t)
		// B ties A at 3 likes; one more like lifts B above A.
		require.NoError(t, repos.Films.AddLike(ctx, films[1].ID, users[4].ID))

		popular, err := repos.Films.FindPopular(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, []int64{films[2].ID, films[1].ID, films[0].ID, films[3].ID}, filmIDs(popular))
	})

	t.Run("PopularFilmsCarryGenres", func(t *testing.T) {
		repos := newRepos(t)
		f := NewFilm("Genred", entity.MpaG, entity.GenreDocumentary)
		require.NoError(t, repos.Films.Create(ctx, f))

		popular, err := repos.Films.FindPopular(ctx, 1)
		require.NoError(t, err)
		require.Len(t, popular, 1)
		AssertSameFilm(t, f, popular[0])
	})
}

func runFriendships(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("EdgesAreDirected", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 2)
		a, b := users[0], users[1]
		require.NoError(t, repos.Friendships.AddFriend(ctx, a.ID, b.ID))

		friends, err := repos.Friendships.FindFriends(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, friends, 1)
		AssertSameUser(t, b, friends[0])

		reverse, err := repos.Friendships.FindFriends(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, reverse)
	})

	t.Run("AddIsIdempotent", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 2)
		require.NoError(t, repos.Friendships.AddFriend(ctx, users[0].ID, users[1].ID))
		require.NoError(t, repos.Friendships.AddFriend(ctx, users[0].ID, users[1].ID))

		friends, err := repos.Friendships.FindFriends(ctx, users[0].ID)
		require.NoError(t, err)
		assert.Len(t, friends, 1)
	})

	t.Run("SelfFriendRejected", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 1)
		err := repos.Friendships.AddFriend(ctx, users[0].ID, users[0].ID)
		assert.True(t, errors.Is(err, domainerrors.ErrSelfReference), "got %v", err)
	})

	t.Run("MissingUsersAreNotFound", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 1)

		err := repos.Friendships.AddFriend(ctx, users[0].ID, 500)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindUser, 500)), "got %v", err)

		err = repos.Friendships.AddFriend(ctx, 501, users[0].ID)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindUser, 501)), "got %v", err)

		_, err = repos.Friendships.FindFriends(ctx, 502)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindUser, 502)), "got %v", err)

		_, err = repos.Friendships.FindCommonFriends(ctx, users[0].ID, 503)
		assert.True(t, errors.Is(err, domainerrors.NewNotFoundError(domainerrors.KindUser, 503)), "got %v", err)
	})

	t.Run("RemoveIsIdempotent", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 2)
		require.NoError(t, repos.Friendships.AddFriend(ctx, users[0].ID, users[1].ID))
		require.NoError(t, repos.Friendships.RemoveFriend(ctx, users[0].ID, users[1].ID))
		require.NoError(t, repos.Friendships.RemoveFriend(ctx, users[0].ID, users[1].ID))

		friends, err := repos.Friendships.FindFriends(ctx, users[0].ID)
		require.NoError(t, err)
		assert.Empty(t, friends)
	})

	t.Run("CommonFriendsIsSymmetricIntersection", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 5)
		a, b := users[0], users[1]
		// a -> {2, 3, 4}, b -> {3, 4, a}
		for _, f := range users[2:] {
			require.NoError(t, repos.Friendships.AddFriend(ctx, a.ID, f.ID))
		}
		require.NoError(t, repos.Friendships.AddFriend(ctx, b.ID, users[3].ID))
		require.NoError(t, repos.Friendships.AddFriend(ctx, b.ID, users[4].ID))
		require.NoError(t, repos.Friendships.AddFriend(ctx, b.ID, a.ID))

		ab, err := repos.Friendships.FindCommonFriends(ctx, a.ID, b.ID)
		require.NoError(t, err)
		ba, err := repos.Friendships.FindCommonFriends(ctx, b.ID, a.ID)
		require.NoError(t, err)

		assert.Equal(t, []int64{users[3].ID, users[4].ID}, userIDs(ab))
		assert.Equal(t, userIDs(ab), userIDs(ba))
	})

	t.Run("CommonFriendsEmptyWithoutOverlap", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 4)
		require.NoError(t, repos.Friendships.AddFriend(ctx, users[0].ID, users[2].ID))
		require.NoError(t, repos.Friendships.AddFriend(ctx, users[1].ID, users[3].ID))

		common, err := repos.Friendships.FindCommonFriends(ctx, users[0].ID, users[1].ID)
		require.NoError(t, err)
		assert.Empty(t, common)
	})
}

func runCascades(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("DeleteUserRemovesEdgesAndLikes", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 3)
		gone, stay, other := users[0], users[1], users[2]
		f := NewFilm("Liked", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, f))

		require.NoError(t, repos.Friendships.AddFriend(ctx, gone.ID, stay.ID))
		require.NoError(t, repos.Friendships.AddFriend(ctx, stay.ID, gone.ID))
		require.NoError(t, repos.Friendships.AddFriend(ctx, other.ID, gone.ID))
		require.NoError(t, repos.Friendships.AddFriend(ctx, other.ID, stay.ID))
		require.NoError(t, repos.Films.AddLike(ctx, f.ID, gone.ID))
		require.NoError(t, repos.Films.AddLike(ctx, f.ID, stay.ID))

		require.NoError(t, repos.Users.Delete(ctx, gone.ID))

		_, err := repos.Users.FindByID(ctx, gone.ID)
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound), "got %v", err)

		all, err := repos.Users.FindAll(ctx)
		require.NoError(t, err)
		for _, u := range all {
			friends, err := repos.Friendships.FindFriends(ctx, u.ID)
			require.NoError(t, err)
			assert.NotContains(t, userIDs(friends), gone.ID)
		}

		otherFriends, err := repos.Friendships.FindFriends(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{stay.ID}, userIDs(otherFriends))

		likes, err := repos.Films.FindLikes(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{stay.ID}, likes)

		// the email is free again
		reused := NewUser(0)
		assert.NoError(t, repos.Users.Create(ctx, reused))
	})

	t.Run("DeleteFilmRemovesLikes", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 1)
		f := NewFilm("Doomed", entity.MpaG, entity.GenreDrama)
		require.NoError(t, repos.Films.Create(ctx, f))
		require.NoError(t, repos.Films.AddLike(ctx, f.ID, users[0].ID))

		require.NoError(t, repos.Films.Delete(ctx, f.ID))

		_, err := repos.Films.FindByID(ctx, f.ID)
		assert.True(t, errors.Is(err, domainerrors.ErrFilmNotFound), "got %v", err)

		popular, err := repos.Films.FindPopular(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, popular)
	})
}

func runConcurrency(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("ConcurrentLikesAreAllCounted", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 16)
		f := NewFilm("Hot", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, f))

		var wg sync.WaitGroup
		errs := make(chan error, len(users)*2)
		for _, u := range users {
			for range 2 {
				wg.Add(1)
				go func(userID int64) {
					defer wg.Done()
					errs <- repos.Films.AddLike(ctx, f.ID, userID)
				}(u.ID)
			}
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		assert.Equal(t, len(users), likeCount(t, repos, f.ID))
	})

	t.Run("ConcurrentDuplicateEmailsCreateOne", func(t *testing.T) {
		repos := newRepos(t)

		var wg sync.WaitGroup
		results := make(chan error, 8)
		for i := range 8 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				u := NewUser(n)
				u.Email = "race@example.com"
				results <- repos.Users.Create(ctx, u)
			}(i)
		}
		wg.Wait()
		close(results)

		created := 0
		for err := range results {
			if err == nil {
				created++

				continue
			}
			assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail), "got %v", err)
		}
		assert.Equal(t, 1, created)
	})

	t.Run("ConcurrentFriendAddsAreIdempotent", func(t *testing.T) {
		repos := newRepos(t)
		users := createUsers(t, repos, 2)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, repos.Friendships.AddFriend(ctx, users[0].ID, users[1].ID))
			}()
		}
		wg.Wait()

		friends, err := repos.Friendships.FindFriends(ctx, users[0].ID)
		require.NoError(t, err)
		assert.Len(t, friends, 1)
	})

	t.Run("LikeRacingUserDeleteLeavesNoDanglingLike", func(t *testing.T) {
		repos := newRepos(t)
		f := NewFilm("Contested", entity.MpaG)
		require.NoError(t, repos.Films.Create(ctx, f))

		for i := range 10 {
			u := NewUser(100 + i)
			require.NoError(t, repos.Users.Create(ctx, u))

			var (
				wg      sync.WaitGroup
				likeErr error
			)
			wg.Add(2)
			go func() {
				defer wg.Done()
				likeErr = repos.Films.AddLike(ctx, f.ID, u.ID)
			}()
			go func() {
				defer wg.Done()
				assert.NoError(t, repos.Users.Delete(ctx, u.ID))
			}()
			wg.Wait()

			if likeErr != nil {
				assert.True(t,
					errors.Is(likeErr, domainerrors.ErrUserNotFound) || errors.Is(likeErr, domainerrors.ErrIntegrityViolation),
					"got %v", likeErr)
			}
		}

		likers, err := repos.Films.FindLikes(ctx, f.ID)
		require.NoError(t, err)
		assert.Empty(t, likers)
	})
}
