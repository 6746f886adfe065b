// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is a member of the catalog who can like films and befriend other users.
type User struct {
	ID       int64     // Assigned by the store on create, immutable afterwards.
	Email    string    // Unique across all users (exact, case-sensitive match).
	Login    string    // Non-empty, no whitespace.
	Name     string    // Display name; falls back to Login when empty.
	Birthday time.Time // Date of birth, never in the future.
}

// DisplayName returns the name shown to other users.
func (u *User) DisplayName() string {
	if u.Name == "" {
		return u.Login
	}

	return u.Name
}

// Normalize fills the display name from the login when it is empty.
func (u *User) Normalize() {
	u.Name = u.DisplayName()
}

// Clone returns a detached copy so callers never share store-owned memory.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u

	return &c
}
