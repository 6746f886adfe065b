package entity

import "time"

// Like records that a user liked a film. A user likes a film at most once.
type Like struct {
	FilmID    int64
	UserID    int64
	CreatedAt time.Time
}

// Friendship is a directed edge: UserID lists FriendID as a friend.
// The reverse edge exists only if it was added explicitly.
type Friendship struct {
	UserID    int64
	FriendID  int64
	CreatedAt time.Time
}

// FilmGenre associates a film with one genre.
type FilmGenre struct {
	FilmID  int64
	GenreID int64
}
