package entity

// Genre is immutable reference data, seeded once.
type Genre struct {
	ID   int64
	Name string
}

// MpaRating is an MPA film rating (G, PG, ...), immutable reference data.
type MpaRating struct {
	ID   int64
	Name string
}

// Seeded genre ids.
const (
	GenreComedy int64 = iota + 1
	GenreDrama
	GenreCartoon
	GenreThriller
	GenreDocumentary
	GenreAction
)

// Seeded MPA rating ids.
const (
	MpaG int64 = iota + 1
	MpaPG
	MpaPG13
	MpaR
	MpaNC17
)

// DefaultGenres is the reference genre table every backend is seeded with.
func DefaultGenres() []Genre {
	return []Genre{
		{ID: GenreComedy, Name: "Comedy"},
		{ID: GenreDrama, Name: "Drama"},
		{ID: GenreCartoon, Name: "Cartoon"},
		{ID: GenreThriller, Name: "Thriller"},
		{ID: GenreDocumentary, Name: "Documentary"},
		{ID: GenreAction, Name: "Action"},
	}
}

// DefaultMpaRatings is the reference MPA table every backend is seeded with.
func DefaultMpaRatings() []MpaRating {
	return []MpaRating{
		{ID: MpaG, Name: "G"},
		{ID: MpaPG, Name: "PG"},
		{ID: MpaPG13, Name: "PG-13"},
		{ID: MpaR, Name: "R"},
		{ID: MpaNC17, Name: "NC-17"},
	}
}
