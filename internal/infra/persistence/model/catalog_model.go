package model

// GenreModel mirrors the 'genres' reference table. Ids are fixed by the seed.
type GenreModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null"`
}

// TableName explicitly sets the table name for GORM.
func (GenreModel) TableName() string {
	return "genres"
}

// MpaModel mirrors the 'mpa_ratings' reference table.
type MpaModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"type:varchar(10);uniqueIndex;not null"`
}

// TableName explicitly sets the table name for GORM.
func (MpaModel) TableName() string {
	return "mpa_ratings"
}

// All lists every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&GenreModel{},
		&MpaModel{},
		&UserModel{},
		&FilmModel{},
		&FilmGenreModel{},
		&LikeModel{},
		&FriendshipModel{},
	}
}
