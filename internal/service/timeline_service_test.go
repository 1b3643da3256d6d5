package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type followRepoStub struct {
	followFn       func(context.Context, uint, uint) error
	unfollowFn     func(context.Context, uint, uint) error
	followingIDsFn func(context.Context, uint) ([]uint, error)
	followingFn    func(context.Context, uint) ([]models.User, error)
	followersFn    func(context.Context, uint) ([]models.User, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) error {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, followerID)
}
func (s *followRepoStub) Following(ctx context.Context, followerID uint) ([]models.User, error) {
	return s.followingFn(ctx, followerID)
}
func (s *followRepoStub) Followers(ctx context.Context, followeeID uint) ([]models.User, error) {
	return s.followersFn(ctx, followeeID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:       func(_ context.Context, _, _ uint) error { return nil },
		unfollowFn:     func(_ context.Context, _, _ uint) error { return nil },
		followingIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		followingFn:    func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		followersFn:    func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
	}
}

func TestTimelineService_Compose_IncludesSelf(t *testing.T) {
	t.Parallel()

	follow := noopFollowRepo()
	follow.followingIDsFn = func(_ context.Context, _ uint) ([]uint, error) {
		return []uint{2, 3}, nil
	}

	posts := noopPostRepo()
	var queried []uint
	posts.findByAuthorsInFn = func(_ context.Context, authorIDs []uint, _ uint) ([]*models.Post, error) {
		queried = authorIDs
		return nil, nil
	}

	svc := NewTimelineService(posts, follow)
	_, err := svc.Compose(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2, 3}, queried, "viewer must always be part of their own feed")
}

func TestTimelineService_Compose_NoFollowsStillSelf(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	var queried []uint
	posts.findByAuthorsInFn = func(_ context.Context, authorIDs []uint, _ uint) ([]*models.Post, error) {
		queried = authorIDs
		return []*models.Post{}, nil
	}

	svc := NewTimelineService(posts, noopFollowRepo())
	feed, err := svc.Compose(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, queried)
	assert.Empty(t, feed)
}

// Full-stack timeline scenario against an in-memory database: the viewer
// follows alice and bob but not carol, and sees exactly the union of their
// posts plus their own, newest first.
func TestTimelineService_Compose_Scenario(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{}, &models.Follow{}))

	users := make(map[string]*models.User)
	for _, name := range []string{"viewer", "alice", "bob", "carol"} {
		u := &models.User{Username: name, Email: name + "@example.com", Password: "x"}
		require.NoError(t, db.Create(u).Error)
		users[name] = u
	}

	// One post per author, strictly increasing timestamps.
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"alice", "bob", "carol", "viewer"} {
		p := &models.Post{
			Text:      fmt.Sprintf("post by %s", name),
			AuthorID:  users[name].ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(p).Error)
	}

	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	ctx := context.Background()

	require.NoError(t, followRepo.Follow(ctx, users["viewer"].ID, users["alice"].ID))
	require.NoError(t, followRepo.Follow(ctx, users["viewer"].ID, users["bob"].ID))

	svc := NewTimelineService(postRepo, followRepo)
	feed, err := svc.Compose(ctx, users["viewer"].ID)
	require.NoError(t, err)

	require.Len(t, feed, 3, "carol is not followed, so her post stays out")
	assert.Equal(t, "post by viewer", feed[0].Text)
	assert.Equal(t, "post by bob", feed[1].Text)
	assert.Equal(t, "post by alice", feed[2].Text)
	for _, p := range feed {
		assert.NotEqual(t, users["carol"].ID, p.AuthorID)
	}
}
