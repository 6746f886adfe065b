package repository

// Repositories bundles the stores of one storage backend. The in-memory and
// relational backends both produce this bundle, so callers and tests can swap
// them freely.
type Repositories struct {
	Users       UserRepository
	Films       FilmRepository
	Friendships FriendshipRepository
	Genres      GenreRepository
	Mpa         MpaRepository
}
