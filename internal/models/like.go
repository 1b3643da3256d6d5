package models

import "time"

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique; the unique index
// is what makes the toggle's INSERT ... ON CONFLICT DO NOTHING atomic.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeAction reports which side of the toggle a like request landed on.
type LikeAction string

const (
	// ActionLiked means the caller was not in the like set and has been added.
	ActionLiked LikeAction = "liked"
	// ActionUnliked means the caller was in the like set and has been removed.
	ActionUnliked LikeAction = "unliked"
)
