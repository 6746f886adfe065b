// Package memory is the in-process storage backend. It keeps every collection
// in maps guarded by one RWMutex per collection.
//
// Lock order is users -> films -> friendships. A method that needs several
// collections acquires them in that order and releases them in reverse, so
// no two calls can deadlock and no global lock is needed.
package memory

import (
	"maps"
	"slices"
	"sync"
	"time"

	"cinegraph/internal/domain/entity"
	"cinegraph/internal/domain/repository"
)

// Store holds the state shared by the in-memory repositories.
type Store struct {
	usersMu sync.RWMutex
	users   map[int64]*entity.User
	emails  map[string]int64 // email -> owning user id

	filmsMu sync.RWMutex
	films   map[int64]*entity.Film
	likes   map[int64]map[int64]time.Time // film id -> user id -> liked at

	friendsMu sync.RWMutex
	friends   map[int64]map[int64]time.Time // user id -> friend id -> added at

	// Reference catalogs are written once in NewStore and read-only afterwards.
	genres map[int64]entity.Genre
	mpa    map[int64]entity.MpaRating

	userIDs repository.IDSequence
	filmIDs repository.IDSequence
	now     func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithUserSequence replaces the user id allocator.
func WithUserSequence(seq repository.IDSequence) Option {
	return func(s *Store) { s.userIDs = seq }
}

// WithFilmSequence replaces the film id allocator.
func WithFilmSequence(seq repository.IDSequence) Option {
	return func(s *Store) { s.filmIDs = seq }
}

// WithClock sets the time source used for relation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithCatalogs seeds the store with the given reference data instead of the defaults.
func WithCatalogs(genres []entity.Genre, ratings []entity.MpaRating) Option {
	return func(s *Store) {
		s.genres = make(map[int64]entity.Genre, len(genres))
		for _, g := range genres {
			s.genres[g.ID] = g
		}
		s.mpa = make(map[int64]entity.MpaRating, len(ratings))
		for _, r := range ratings {
			s.mpa[r.ID] = r
		}
	}
}

// NewStore creates an empty store seeded with the default genres and MPA ratings.
func NewStore(opts ...Option) *Store {
	s := &Store{
		users:   make(map[int64]*entity.User),
		emails:  make(map[string]int64),
		films:   make(map[int64]*entity.Film),
		likes:   make(map[int64]map[int64]time.Time),
		friends: make(map[int64]map[int64]time.Time),
		userIDs: NewSequence(0),
		filmIDs: NewSequence(0),
		now:     time.Now,
	}
	WithCatalogs(entity.DefaultGenres(), entity.DefaultMpaRatings())(s)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Repositories returns every repository backed by this store.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:       NewUserRepository(s),
		Films:       NewFilmRepository(s),
		Friendships: NewFriendshipRepository(s),
		Genres:      NewGenreRepository(s),
		Mpa:         NewMpaRepository(s),
	}
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}
