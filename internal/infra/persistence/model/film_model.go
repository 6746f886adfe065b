package model

import (
	"time"
)

// FilmModel mirrors the 'films' table. Genres live in 'film_genres'.
type FilmModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:varchar(200)"`
	ReleaseDate time.Time `gorm:"type:date;not null"`
	Duration    int       `gorm:"not null"`
	MpaID       int64     `gorm:"not null;index"`

	Mpa *MpaModel `gorm:"foreignKey:MpaID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (FilmModel) TableName() string {
	return "films"
}

// FilmGenreModel mirrors the 'film_genres' join table.
type FilmGenreModel struct {
	FilmID  int64 `gorm:"primaryKey;autoIncrement:false"`
	GenreID int64 `gorm:"primaryKey;autoIncrement:false"`

	Film  *FilmModel  `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE"`
	Genre *GenreModel `gorm:"foreignKey:GenreID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (FilmGenreModel) TableName() string {
	return "film_genres"
}

// LikeModel mirrors the 'likes' table. The composite key makes a like a set member.
type LikeModel struct {
	FilmID    int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64 `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time

	Film *FilmModel `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE"`
	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (LikeModel) TableName() string {
	return "likes"
}
