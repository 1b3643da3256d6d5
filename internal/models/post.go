// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is the aggregate root of the feed domain. It owns its comments
// and its like set; both are mutated only through PostRepository so
// that every write stays a single atomic row operation.
//
// AuthorID is immutable after creation. The likes table carries at most
// one row per (user, post) pair.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	ImageURL string `json:"image_url"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	// Comments are append-only and kept in insertion order.
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`
	Likes    []Like    `gorm:"foreignKey:PostID" json:"likes"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// LikerIDs returns the user ids that currently like the post.
func (p *Post) LikerIDs() []uint {
	ids := make([]uint, 0, len(p.Likes))
	for _, l := range p.Likes {
		ids = append(ids, l.UserID)
	}
	return ids
}

// LikedBy reports whether userID is in the post's like set.
func (p *Post) LikedBy(userID uint) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// PostPatch holds the author-editable post fields for a partial update.
// AuthorID is absent: authorship never changes.
type PostPatch struct {
	Text     *string `json:"text"`
	ImageURL *string `json:"image_url"`
}

// Empty reports whether the patch carries no field at all.
func (p PostPatch) Empty() bool {
	return p.Text == nil && p.ImageURL == nil
}
