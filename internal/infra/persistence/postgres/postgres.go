// Package postgres is the relational storage backend built on GORM. It runs
// against PostgreSQL in production and against SQLite for local runs and tests.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"cinegraph/config"
	"cinegraph/internal/domain/entity"
	"cinegraph/internal/domain/lifecycle"
	"cinegraph/internal/domain/repository"
	"cinegraph/internal/errors"
	"cinegraph/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the database selected by storage.backend ("postgres" or "sqlite"),
// prepares the schema when configured and registers ping and close hooks.
func New(params Params) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch params.Config.Storage.Backend {
	case config.BackendSQLite:
		db, err = OpenSQLite(params.Config.Storage.SQLitePath)
	default:
		db, err = pgLib.New(params.Config.Postgres)
		if err != nil {
			err = errors.Wrap(err, "failed to create PostgreSQL client")
		}
	}
	if err != nil {
		return nil, err
	}

	db = configure(db, newGormSlogLogger(params.Logger, params.Config))

	if err := Prepare(context.Background(), db, params.Config.Storage); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping database")
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// OpenSQLite opens a SQLite database with foreign keys enforced. A single
// connection is used so that ":memory:" databases survive between calls and
// writers never contend for the file lock.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func sqliteDSN(path string) string {
	if path == "" {
		path = ":memory:"
	}

	return "file:" + path + "?_foreign_keys=on"
}

// configure applies the session settings every repository relies on.
func configure(db *gorm.DB, gormLog gormlogger.Interface) *gorm.DB {
	// Driver errors are translated to gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
	db.Config.TranslateError = true

	return db.Session(&gorm.Session{
		// Repositories open one explicit transaction per call; no implicit per-statement ones.
		SkipDefaultTransaction: true,
		Logger:                 gormLog,
	})
}

// Prepare migrates the schema and seeds the reference catalogs as configured.
func Prepare(ctx context.Context, db *gorm.DB, cfg config.StorageConfig) error {
	if cfg.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
			return errors.Wrap(err, "failed to migrate schema")
		}
	}
	if cfg.Seed {
		if err := Seed(ctx, db, entity.DefaultGenres(), entity.DefaultMpaRatings()); err != nil {
			return err
		}
	}

	return nil
}

// Seed inserts reference rows that are missing and leaves existing rows untouched.
func Seed(ctx context.Context, db *gorm.DB, genres []entity.Genre, ratings []entity.MpaRating) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genreMs := make([]model.GenreModel, 0, len(genres))
		for _, g := range genres {
			genreMs = append(genreMs, model.GenreModel{ID: g.ID, Name: g.Name})
		}
		mpaMs := make([]model.MpaModel, 0, len(ratings))
		for _, r := range ratings {
			mpaMs = append(mpaMs, model.MpaModel{ID: r.ID, Name: r.Name})
		}

		if len(genreMs) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&genreMs).Error; err != nil {
				return errors.Wrap(err, "failed to seed genres")
			}
		}
		if len(mpaMs) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&mpaMs).Error; err != nil {
				return errors.Wrap(err, "failed to seed MPA ratings")
			}
		}

		return nil
	})
}

// NewRepositories returns every GORM repository bound to db.
func NewRepositories(db *gorm.DB) repository.Repositories {
	return repository.Repositories{
		Users:       NewUserRepository(db),
		Films:       NewFilmRepository(db),
		Friendships: NewFriendshipRepository(db),
		Genres:      NewGenreRepository(db),
		Mpa:         NewMpaRepository(db),
	}
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "DB pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "DB pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
