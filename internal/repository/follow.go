package repository

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for the directed follow graph.
// The timeline composer only ever reads it.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	FollowingIDs(ctx context.Context, followerID uint) ([]uint, error)
	Following(ctx context.Context, followerID uint) ([]models.User, error)
	Followers(ctx context.Context, followeeID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the edge. Re-following is a no-op thanks to the unique
// (follower_id, followee_id) index.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	defer observability.TrackQuery("upsert", "follows")()

	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID,
	)
	if result.Error != nil {
		return models.NewStorageError(result.Error)
	}
	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	defer observability.TrackQuery("delete", "follows")()

	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *followRepository) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	defer observability.TrackQuery("select", "follows")()

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return ids, nil
}

func (r *followRepository) Following(ctx context.Context, followerID uint) ([]models.User, error) {
	defer observability.TrackQuery("select", "follows")()

	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followee_id").
		Where("f.follower_id = ? AND users.deleted_at IS NULL", followerID).
		Find(&users).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return users, nil
}

func (r *followRepository) Followers(ctx context.Context, followeeID uint) ([]models.User, error) {
	defer observability.TrackQuery("select", "follows")()

	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followee_id = ? AND users.deleted_at IS NULL", followeeID).
		Find(&users).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return users, nil
}
