package impl

import (
	"log/slog"
	"testing"

	"cinegraph/config"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/infra/persistence/memory"
	mockRepo "cinegraph/internal/mocks/repository"
	"cinegraph/internal/usecase"
)

var testLogger = slog.New(slog.DiscardHandler)

// serviceFixtures wires every service onto one fresh in-memory store.
type serviceFixtures struct {
	repos   repository.Repositories
	users   usecase.UserUsecase
	films   usecase.FilmUsecase
	catalog usecase.CatalogUsecase
}

func createTestServices(t *testing.T, cfg *config.Config) serviceFixtures {
	t.Helper()

	repos := memory.NewStore().Repositories()

	return serviceFixtures{
		repos: repos,
		users: NewUserService(UserServiceParams{
			UserRepo:       repos.Users,
			FriendshipRepo: repos.Friendships,
			Logger:         testLogger,
		}),
		films: NewFilmService(FilmServiceParams{
			FilmRepo:  repos.Films,
			GenreRepo: repos.Genres,
			MpaRepo:   repos.Mpa,
			Config:    cfg,
			Logger:    testLogger,
		}),
		catalog: NewCatalogService(repos.Genres, repos.Mpa),
	}
}

// mockFixtures holds mocked repositories for storage-fault paths.
type mockFixtures struct {
	userRepo       *mockRepo.MockUserRepository
	friendshipRepo *mockRepo.MockFriendshipRepository
	filmRepo       *mockRepo.MockFilmRepository
	genreRepo      *mockRepo.MockGenreRepository
	mpaRepo        *mockRepo.MockMpaRepository
	users          usecase.UserUsecase
	films          usecase.FilmUsecase
	catalog        usecase.CatalogUsecase
}

func createMockedServices(t *testing.T) mockFixtures {
	fx := mockFixtures{
		userRepo:       mockRepo.NewMockUserRepository(t),
		friendshipRepo: mockRepo.NewMockFriendshipRepository(t),
		filmRepo:       mockRepo.NewMockFilmRepository(t),
		genreRepo:      mockRepo.NewMockGenreRepository(t),
		mpaRepo:        mockRepo.NewMockMpaRepository(t),
	}
	fx.users = NewUserService(UserServiceParams{
		UserRepo:       fx.userRepo,
		FriendshipRepo: fx.friendshipRepo,
		Logger:         testLogger,
	})
	fx.films = NewFilmService(FilmServiceParams{
		FilmRepo:  fx.filmRepo,
		GenreRepo: fx.genreRepo,
		MpaRepo:   fx.mpaRepo,
		Logger:    testLogger,
	})
	fx.catalog = NewCatalogService(fx.genreRepo, fx.mpaRepo)

	return fx
}
