// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Ripple application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// Author is the minimal display-ready projection of a user embedded
// wherever a post or comment author is shown. It is resolved at read
// time from the users table, never stored denormalized.
type Author struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// UserPatch holds the self-editable profile fields for a partial update.
// Credentials and identity columns are not patchable.
type UserPatch struct {
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

// Empty reports whether the patch carries no field at all.
func (p UserPatch) Empty() bool {
	return p.Bio == nil && p.Avatar == nil
}

// AuthorRef returns the display projection for the user.
func (u *User) AuthorRef() Author {
	return Author{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}
