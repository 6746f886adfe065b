// Package persistence selects the storage backend named by storage.backend and
// exposes its repositories to the fx graph.
package persistence

import (
	"log/slog"

	"cinegraph/config"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/infra/persistence/memory"
	"cinegraph/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Result provides each repository of the selected backend separately.
type Result struct {
	fx.Out

	Users       repository.UserRepository
	Films       repository.FilmRepository
	Friendships repository.FriendshipRepository
	Genres      repository.GenreRepository
	Mpa         repository.MpaRepository
}

// New builds the repositories of the configured backend. The relational
// backends register their own ping and close hooks on the lifecycle.
func New(params Params) (Result, error) {
	repos, err := open(params)
	if err != nil {
		return Result{}, err
	}

	params.Logger.Info("Storage backend ready", slog.String("backend", params.Config.Storage.Backend))

	return Result{
		Users:       repos.Users,
		Films:       repos.Films,
		Friendships: repos.Friendships,
		Genres:      repos.Genres,
		Mpa:         repos.Mpa,
	}, nil
}

func open(params Params) (repository.Repositories, error) {
	if params.Config.Storage.Backend == config.BackendMemory {
		return memory.NewStore().Repositories(), nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return repository.Repositories{}, err
	}

	return postgres.NewRepositories(db), nil
}
