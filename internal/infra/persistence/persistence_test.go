package persistence

import (
	"context"
	"log/slog"
	"testing"

	"cinegraph/config"
	"cinegraph/internal/domain/entity"
	"cinegraph/internal/domain/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		path    string
	}{
		{name: "Memory", backend: config.BackendMemory},
		{name: "SQLite", backend: config.BackendSQLite, path: ":memory:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Storage.Backend = tt.backend
			cfg.Storage.SQLitePath = tt.path
			cfg.Storage.AutoMigrate = true
			cfg.Storage.Seed = true

			lc := fxtest.NewLifecycle(t)
			res, err := New(Params{
				Lifecycle: lc,
				Config:    cfg,
				Logger:    slog.New(slog.DiscardHandler),
			})
			require.NoError(t, err)
			lc.RequireStart()
			defer lc.RequireStop()

			ctx := context.Background()
			genres, err := res.Genres.FindAll(ctx)
			require.NoError(t, err)
			assert.Len(t, genres, len(entity.DefaultGenres()))

			u := repotest.NewUser(1)
			require.NoError(t, res.Users.Create(ctx, u))
			f := repotest.NewFilm("Alien", entity.MpaR, entity.GenreThriller)
			require.NoError(t, res.Films.Create(ctx, f))
			require.NoError(t, res.Films.AddLike(ctx, f.ID, u.ID))

			popular, err := res.Films.FindPopular(ctx, 1)
			require.NoError(t, err)
			require.Len(t, popular, 1)
			assert.Equal(t, f.ID, popular[0].ID)
		})
	}
}
