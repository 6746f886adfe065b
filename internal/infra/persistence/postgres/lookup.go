package postgres

import (
	"slices"

	domainerrors "cinegraph/internal/domain/errors"
	"cinegraph/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Existence checks run inside the caller's transaction, before any write.

func requireUsers(tx *gorm.DB, ids ...int64) error {
	return requireIDs(tx, &model.UserModel{}, domainerrors.KindUser, ids)
}

func requireFilm(tx *gorm.DB, id int64) error {
	return requireIDs(tx, &model.FilmModel{}, domainerrors.KindFilm, []int64{id})
}

func requireMpa(tx *gorm.DB, id int64) error {
	return requireIDs(tx, &model.MpaModel{}, domainerrors.KindMpa, []int64{id})
}

func requireGenres(tx *gorm.DB, ids []int64) error {
	return requireIDs(tx, &model.GenreModel{}, domainerrors.KindGenre, ids)
}

// requireIDs reports the first id, in the order given, that has no row in table.
func requireIDs(tx *gorm.DB, table any, kind domainerrors.EntityKind, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	var found []int64
	if err := tx.Model(table).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	for _, id := range ids {
		if !slices.Contains(found, id) {
			return domainerrors.NewNotFoundError(kind, id)
		}
	}

	return nil
}
