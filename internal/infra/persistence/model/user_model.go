// Package model holds the GORM persistence models. They mirror the database
// tables and never leave the persistence layer.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The id is a database identity and is never reused.
type UserModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Login    string    `gorm:"type:varchar(100);not null"`
	Name     string    `gorm:"type:varchar(255)"`
	Birthday time.Time `gorm:"type:date;not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// FriendshipModel mirrors the 'friendships' table, one row per directed edge.
type FriendshipModel struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	FriendID  int64 `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time

	User   *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Friend *UserModel `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (FriendshipModel) TableName() string {
	return "friendships"
}
