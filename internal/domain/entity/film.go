package entity

import (
	"slices"
	"time"
)

const (
	// MaxDescriptionLength bounds Film.Description, counted in runes.
	MaxDescriptionLength = 200
)

// CinemaEpoch is the earliest accepted release date: the first public film screening.
var CinemaEpoch = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Film is a catalog entry. It references its MPA rating and genres by id only.
type Film struct {
	ID          int64
	Name        string
	Description string
	ReleaseDate time.Time
	Duration    int     // Minutes, positive.
	MpaID       int64   // Exactly one MPA rating.
	GenreIDs    []int64 // Unique, ascending.
}

// Normalize sorts and de-duplicates the genre references.
func (f *Film) Normalize() {
	f.GenreIDs = NormalizeIDs(f.GenreIDs)
}

// Clone returns a detached copy, genre slice included.
func (f *Film) Clone() *Film {
	if f == nil {
		return nil
	}
	c := *f
	c.GenreIDs = slices.Clone(f.GenreIDs)
	if c.GenreIDs == nil {
		c.GenreIDs = []int64{}
	}

	return &c
}

// NormalizeIDs returns a sorted copy of ids without duplicates. It never returns nil.
func NormalizeIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int64{}
	}

	return out
}

// FilmDetails is the composite read view of a film: the film itself with its
// MPA rating and genres resolved and its current like count.
type FilmDetails struct {
	Film
	Mpa       MpaRating
	Genres    []Genre
	LikeCount int
}
