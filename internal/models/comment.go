// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment is owned exclusively by its parent post. It is created when
// appended and never edited or individually deleted, so there is no
// soft-delete column and no repository of its own.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
